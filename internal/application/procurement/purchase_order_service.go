package procurement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	appintegration "github.com/vendorhub/backend/internal/application/integration"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/procurement"
	"github.com/vendorhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ResourceType labels purchase orders in sync logs and metrics
const ResourceType = "purchase_order"

// PurchaseOrderServiceConfig configures the purchase order service
type PurchaseOrderServiceConfig struct {
	// ClaimLease is how long a sync claim is honored before another run may take it over
	ClaimLease time.Duration
}

// PurchaseOrderService issues purchase orders and hands them off to the tenant's ERP.
// The local order is always committed first; the ERP copy is derived from it.
type PurchaseOrderService struct {
	orders       procurement.PurchaseOrderRepository
	vendors      partner.VendorRepository
	integrations integration.Repository
	clients      integration.ClientFactory
	runner       *appintegration.Runner
	config       PurchaseOrderServiceConfig
	logger       *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orders procurement.PurchaseOrderRepository,
	vendors partner.VendorRepository,
	integrations integration.Repository,
	clients integration.ClientFactory,
	runner *appintegration.Runner,
	config PurchaseOrderServiceConfig,
	logger *zap.Logger,
) *PurchaseOrderService {
	if config.ClaimLease <= 0 {
		config.ClaimLease = 5 * time.Minute
	}
	return &PurchaseOrderService{
		orders:       orders,
		vendors:      vendors,
		integrations: integrations,
		clients:      clients,
		runner:       runner,
		config:       config,
		logger:       logger,
	}
}

// Create commits a new purchase order and, when the tenant has an enabled ERP
// integration, pushes it inline. A failed push never fails the create; the
// order is returned with its sync state so the caller can re-sync later.
func (s *PurchaseOrderService) Create(ctx context.Context, p identity.Principal, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	vendor, err := s.referencedVendor(ctx, p.TenantID, req.VendorID)
	if err != nil {
		return nil, err
	}

	items := make([]procurement.LineItemInput, len(req.LineItems))
	for i, li := range req.LineItems {
		items[i] = procurement.LineItemInput{
			SKU:         li.SKU,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
	}

	po, err := procurement.NewPurchaseOrder(p.TenantID, &p.UserID, vendor.ID, req.Number, req.Currency, items)
	if err != nil {
		return nil, err
	}
	po.Notes = req.Notes

	erp, err := s.integrations.FindEnabled(ctx, p.TenantID, integration.KindERP)
	switch {
	case err == nil:
		po.AttachIntegration(erp.ID)
	case errors.Is(err, integration.ErrNotConfigured):
		erp = nil
	default:
		return nil, err
	}

	if err := s.orders.Create(ctx, po); err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order created",
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("purchase_order_id", po.ID.String()),
		zap.String("erp_sync_status", string(po.ERPSync.Status)))

	if erp == nil {
		resp := ToPurchaseOrderResponse(po)
		return &resp, nil
	}

	if err := s.push(ctx, po, erp, vendorRef(vendor)); err != nil {
		s.logger.Warn("Inline ERP sync did not complete; order kept for manual re-sync",
			zap.String("purchase_order_id", po.ID.String()),
			zap.Error(err))
	}
	return s.reload(ctx, po)
}

// Sync re-runs the ERP hand-off of one order. An order that is already synced
// is returned unchanged.
func (s *PurchaseOrderService) Sync(ctx context.Context, p identity.Principal, id uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.orders.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	if po.ERPSync.Status == integration.SyncStatusSynced {
		resp := ToPurchaseOrderResponse(po)
		return &resp, nil
	}

	erp, err := s.integrations.FindEnabled(ctx, p.TenantID, integration.KindERP)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendors.FindByIDForTenant(ctx, p.TenantID, po.VendorID)
	if err != nil {
		return nil, err
	}

	if err := s.push(ctx, po, erp, vendorRef(vendor)); err != nil {
		if errors.Is(err, integration.ErrSyncInProgress) {
			// a concurrent run may have finished in the meantime
			if fresh, ferr := s.orders.FindByIDForTenant(ctx, p.TenantID, id); ferr == nil &&
				fresh.ERPSync.Status == integration.SyncStatusSynced {
				resp := ToPurchaseOrderResponse(fresh)
				return &resp, nil
			}
		}
		return nil, err
	}
	return s.reload(ctx, po)
}

// push claims the order, runs the ERP hand-off through the runner and records
// the outcome on the order's sync columns. It survives client cancellation.
func (s *PurchaseOrderService) push(ctx context.Context, po *procurement.PurchaseOrder, erp *integration.Integration, vendorRef string) error {
	ctx = context.WithoutCancel(ctx)
	clock := s.runner.Clock()
	token := uuid.New()
	now := clock.Now()

	claimed, err := s.orders.ClaimSync(ctx, po.TenantID, po.ID, token, erp.ID, now, now.Add(-s.config.ClaimLease))
	if err != nil {
		return err
	}
	if !claimed {
		return integration.ErrSyncInProgress
	}

	log := s.logger.With(
		zap.String("tenant_id", po.TenantID.String()),
		zap.String("purchase_order_id", po.ID.String()),
		zap.String("integration_id", erp.ID.String()))

	state := po.ERPSync
	state.Status = integration.SyncStatusSyncing
	state.IntegrationID = &erp.ID
	priorAttempts := state.Attempts

	writeState := func(release bool) {
		ok, err := s.orders.UpdateSync(ctx, po.TenantID, po.ID, token, procurement.SyncUpdate{State: state, ReleaseClaim: release})
		if err != nil {
			log.Error("Failed to record ERP sync state", zap.String("status", string(state.Status)), zap.Error(err))
			return
		}
		if !ok {
			log.Warn("ERP sync claim lost before state could be recorded", zap.String("status", string(state.Status)))
		}
	}

	client, err := s.clients.ERP(erp)
	if err != nil {
		at := clock.Now()
		state.Status = integration.SyncStatusFailed
		state.LastError = err.Error()
		state.LastAttemptAt = &at
		writeState(true)
		return &integration.SyncError{Err: err}
	}

	remote := po.ToERP(vendorRef)
	job := appintegration.Job{
		TenantID:      po.TenantID,
		IntegrationID: erp.ID,
		Direction:     integration.DirectionOutbound,
		ResourceType:  ResourceType,
		ResourceID:    po.ID,
		OnRetry: func(_ context.Context, attempt int, err error, _ time.Duration) {
			at := clock.Now()
			state.Status = integration.SyncStatusRetrying
			state.LastError = err.Error()
			state.Attempts = priorAttempts + attempt
			state.LastAttemptAt = &at
			writeState(false)
		},
	}

	result, runErr := s.runner.Run(ctx, job, func(ctx context.Context, _ int) (int, error) {
		if state.ExternalID != "" {
			return 1, client.UpdatePurchaseOrder(ctx, state.ExternalID, remote)
		}
		externalID, err := client.CreatePurchaseOrder(ctx, remote, po.ID.String())
		if err != nil {
			return 0, err
		}
		// persist the remote id before anything else can fail
		state.ExternalID = externalID
		writeState(false)
		return 1, nil
	})

	at := clock.Now()
	state.Attempts = priorAttempts + result.Attempts
	state.LastAttemptAt = &at
	if runErr == nil {
		state.Status = integration.SyncStatusSynced
		state.LastError = ""
		state.SyncedAt = &at
	} else {
		state.Status = integration.SyncStatusFailed
		state.LastError = runErr.Error()
	}
	writeState(true)

	return runErr
}

// UpdateStatus closes or cancels an order. Sync columns are not touched.
func (s *PurchaseOrderService) UpdateStatus(ctx context.Context, p identity.Principal, id uuid.UUID, req UpdateStatusRequest) (*PurchaseOrderResponse, error) {
	po, err := s.orders.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := po.TransitionTo(procurement.PurchaseOrderStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, po); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// GetByID returns one order of the caller's tenant
func (s *PurchaseOrderService) GetByID(ctx context.Context, p identity.Principal, id uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.orders.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// List lists the caller's tenant's orders
func (s *PurchaseOrderService) List(ctx context.Context, p identity.Principal, filter shared.Filter) (shared.Paginated[PurchaseOrderResponse], error) {
	filter = filter.Normalize()
	orders, total, err := s.orders.FindAllForTenant(ctx, p.TenantID, filter)
	if err != nil {
		return shared.Paginated[PurchaseOrderResponse]{}, err
	}
	out := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return shared.NewPaginated(out, total, filter), nil
}

func (s *PurchaseOrderService) reload(ctx context.Context, po *procurement.PurchaseOrder) (*PurchaseOrderResponse, error) {
	fresh, err := s.orders.FindByIDForTenant(context.WithoutCancel(ctx), po.TenantID, po.ID)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(fresh)
	return &resp, nil
}

// referencedVendor resolves the order's vendor, which must be active
func (s *PurchaseOrderService) referencedVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (*partner.Vendor, error) {
	vendor, err := partner.Referenced(ctx, s.vendors, tenantID, vendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsActive() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "vendor is not active")
	}
	return vendor, nil
}

func vendorRef(v *partner.Vendor) string {
	if v.ERPRef != "" {
		return v.ERPRef
	}
	return v.Code
}
