package integration

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Kind identifies the external system type of an integration
type Kind string

const (
	// KindERP receives purchase orders
	KindERP Kind = "erp"
	// KindRiskProvider supplies vendor risk ratings
	KindRiskProvider Kind = "risk_provider"
)

// IsValid returns true if the kind is known
func (k Kind) IsValid() bool {
	return k == KindERP || k == KindRiskProvider
}

// Integration is a tenant's configured connection to one external system.
// Every sync attempt references one.
type Integration struct {
	shared.TenantEntity
	// Kind selects which client talks to BaseURL
	Kind Kind
	// Name is a human label, unique per tenant
	Name string
	// BaseURL is the remote API root
	BaseURL string
	// APIKey is sent as a bearer credential; never returned by the API
	APIKey string
	// Enabled integrations are picked up for sync
	Enabled bool
}

// NewIntegration validates and creates an enabled integration
func NewIntegration(tenantID uuid.UUID, createdBy *uuid.UUID, kind Kind, name, baseURL, apiKey string) (*Integration, error) {
	if !kind.IsValid() {
		return nil, shared.NewValidationError("kind", "must be erp or risk_provider")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewValidationError("name", "must be 1-100 characters")
	}
	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}

	return &Integration{
		TenantEntity: shared.NewTenantEntity(tenantID, createdBy),
		Kind:         kind,
		Name:         name,
		BaseURL:      strings.TrimRight(baseURL, "/"),
		APIKey:       apiKey,
		Enabled:      true,
	}, nil
}

// Update changes connection settings. Empty values keep the current setting.
func (i *Integration) Update(baseURL, apiKey string, enabled *bool) error {
	if baseURL != "" {
		if err := validateBaseURL(baseURL); err != nil {
			return err
		}
		i.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if apiKey != "" {
		i.APIKey = apiKey
	}
	if enabled != nil {
		i.Enabled = *enabled
	}
	i.Touch()
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.NewValidationError("base_url", "must be an absolute http(s) URL")
	}
	return nil
}

// ErrNotConfigured is returned when a tenant has no enabled integration of the needed kind
var ErrNotConfigured = shared.NewDomainError(shared.CodeIntegrationNotConfigured, "no enabled integration of the required kind is configured")
