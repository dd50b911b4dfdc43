package middleware

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/vendorhub/backend/internal/domain/shared"
)

var setupValidatorOnce sync.Once

// SetupValidator makes binding errors name fields by their json (or form) tag
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name == "" {
					name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
				}
				return name
			})
		}
	})
}

// BindingError converts a gin binding failure into a VALIDATION_ERROR with field details
func BindingError(err error) *shared.DomainError {
	de := shared.NewDomainError(shared.CodeValidation, "request validation failed")

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		for _, e := range verrs {
			de.Details = append(de.Details, shared.FieldError{
				Field:   e.Field(),
				Message: validationMessage(e),
			})
		}
	case errors.As(err, &typeErr):
		de.Details = []shared.FieldError{{Field: typeErr.Field, Message: "must be a " + typeErr.Type.String()}}
	case errors.As(err, &syntaxErr):
		de.Message = "request body is not valid JSON"
	default:
		de.Message = "malformed request"
	}
	return de
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return "must be at least " + e.Param() + " characters"
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "must be at most " + e.Param() + " characters"
		}
		return "must be at most " + e.Param()
	case "len":
		return "must be exactly " + e.Param() + " characters"
	case "uuid":
		return "must be a UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "url":
		return "must be a URL"
	case "dive":
		return "has an invalid element"
	default:
		return "is invalid"
	}
}
