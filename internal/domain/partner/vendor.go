package partner

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
	VendorStatusBlocked  VendorStatus = "blocked" // Blocked due to risk or compliance issues
)

// IsValid returns true if the status is known
func (s VendorStatus) IsValid() bool {
	return s == VendorStatusActive || s == VendorStatusInactive || s == VendorStatusBlocked
}

var vendorCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{0,49}$`)

// Vendor is a supplier managed by a tenant
type Vendor struct {
	shared.TenantEntity
	Code         string
	Name         string
	Category     string
	ContactEmail string
	Country      string
	// RatingRef is the vendor's identifier at the risk rating provider
	RatingRef string
	// ERPRef is the vendor's identifier in the tenant's ERP
	ERPRef string
	Status VendorStatus
}

// NewVendor creates a new active vendor
func NewVendor(tenantID uuid.UUID, createdBy *uuid.UUID, code, name string) (*Vendor, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !vendorCodePattern.MatchString(code) {
		return nil, shared.NewValidationError("code", "must be 1-50 letters, digits, '-' or '_'")
	}
	if err := validateVendorName(name); err != nil {
		return nil, err
	}

	return &Vendor{
		TenantEntity: shared.NewTenantEntity(tenantID, createdBy),
		Code:         code,
		Name:         strings.TrimSpace(name),
		Status:       VendorStatusActive,
	}, nil
}

// Update replaces descriptive fields
func (v *Vendor) Update(name, category, contactEmail, country, ratingRef, erpRef string) error {
	if err := validateVendorName(name); err != nil {
		return err
	}
	v.Name = strings.TrimSpace(name)
	v.Category = category
	v.ContactEmail = contactEmail
	v.Country = country
	v.RatingRef = ratingRef
	v.ERPRef = erpRef
	v.Touch()
	return nil
}

// ChangeStatus moves the vendor to a new status
func (v *Vendor) ChangeStatus(status VendorStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "must be active, inactive or blocked")
	}
	v.Status = status
	v.Touch()
	return nil
}

// IsActive reports whether new business may reference this vendor
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}

func validateVendorName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewValidationError("name", "must be 1-200 characters")
	}
	return nil
}
