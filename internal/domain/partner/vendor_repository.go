package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// VendorRepository persists vendors. Every method is tenant-scoped.
type VendorRepository interface {
	Create(ctx context.Context, vendor *Vendor) error
	Save(ctx context.Context, vendor *Vendor) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Vendor, int64, error)
}

// Referenced resolves a vendor named in a request body. A vendor of another
// tenant is reported exactly like a missing one.
func Referenced(ctx context.Context, repo VendorRepository, tenantID, vendorID uuid.UUID) (*Vendor, error) {
	v, err := repo.FindByIDForTenant(ctx, tenantID, vendorID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError(shared.CodeInvalidReference, "vendor does not exist")
	}
	return v, err
}
