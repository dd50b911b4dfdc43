package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/integration"
	"github.com/vendorhub/backend/internal/domain/procurement"
	"gorm.io/datatypes"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate.
// The erp_* columns are written only by the sync adapter.
type PurchaseOrderModel struct {
	OwnedRecord
	Number    string                          `gorm:"type:varchar(50);not null"`
	VendorID  uuid.UUID                       `gorm:"type:uuid;not null;index"`
	Currency  string                          `gorm:"type:varchar(3);not null"`
	Amount    decimal.Decimal                 `gorm:"type:numeric(18,2);not null"`
	LineItems datatypes.JSON                  `gorm:"type:jsonb;not null"`
	Notes     string                          `gorm:"type:text"`
	Status    procurement.PurchaseOrderStatus `gorm:"type:varchar(20);not null;index"`

	ERPSyncStatus    integration.SyncStatus `gorm:"column:erp_sync_status;type:varchar(20);not null;index"`
	ERPIntegrationID *uuid.UUID             `gorm:"column:erp_integration_id;type:uuid"`
	ERPExternalID    string                 `gorm:"column:erp_external_id;type:varchar(100)"`
	ERPLastError     string                 `gorm:"column:erp_last_error;type:text"`
	ERPAttempts      int                    `gorm:"column:erp_attempts;not null;default:0"`
	ERPLastAttemptAt *time.Time             `gorm:"column:erp_last_attempt_at"`
	ERPSyncedAt      *time.Time             `gorm:"column:erp_synced_at"`
	ERPSyncClaim     *uuid.UUID             `gorm:"column:erp_sync_claim;type:uuid"`
	ERPClaimedAt     *time.Time             `gorm:"column:erp_claimed_at"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder.
func (m *PurchaseOrderModel) ToDomain() (*procurement.PurchaseOrder, error) {
	var items []procurement.LineItem
	if len(m.LineItems) > 0 {
		if err := json.Unmarshal(m.LineItems, &items); err != nil {
			return nil, fmt.Errorf("decode line items of purchase order %s: %w", m.ID, err)
		}
	}
	return &procurement.PurchaseOrder{
		TenantEntity: m.ownedEntity(),
		Number:       m.Number,
		VendorID:     m.VendorID,
		Currency:     m.Currency,
		Amount:       m.Amount,
		LineItems:    items,
		Notes:        m.Notes,
		Status:       m.Status,
		ERPSync: procurement.SyncState{
			Status:        m.ERPSyncStatus,
			IntegrationID: m.ERPIntegrationID,
			ExternalID:    m.ERPExternalID,
			LastError:     m.ERPLastError,
			Attempts:      m.ERPAttempts,
			LastAttemptAt: m.ERPLastAttemptAt,
			SyncedAt:      m.ERPSyncedAt,
			ClaimToken:    m.ERPSyncClaim,
			ClaimedAt:     m.ERPClaimedAt,
		},
	}, nil
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder.
func PurchaseOrderModelFromDomain(po *procurement.PurchaseOrder) (*PurchaseOrderModel, error) {
	items, err := json.Marshal(po.LineItems)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}
	m := &PurchaseOrderModel{
		Number:           po.Number,
		VendorID:         po.VendorID,
		Currency:         po.Currency,
		Amount:           po.Amount,
		LineItems:        datatypes.JSON(items),
		Notes:            po.Notes,
		Status:           po.Status,
		ERPSyncStatus:    po.ERPSync.Status,
		ERPIntegrationID: po.ERPSync.IntegrationID,
		ERPExternalID:    po.ERPSync.ExternalID,
		ERPLastError:     po.ERPSync.LastError,
		ERPAttempts:      po.ERPSync.Attempts,
		ERPLastAttemptAt: po.ERPSync.LastAttemptAt,
		ERPSyncedAt:      po.ERPSync.SyncedAt,
		ERPSyncClaim:     po.ERPSync.ClaimToken,
		ERPClaimedAt:     po.ERPSync.ClaimedAt,
	}
	m.fillOwned(po.TenantEntity)
	return m, nil
}

// SyncColumns maps a sync state onto the erp_* columns only
func SyncColumns(s procurement.SyncState, releaseClaim bool) map[string]any {
	cols := map[string]any{
		"erp_sync_status":     s.Status,
		"erp_external_id":     s.ExternalID,
		"erp_last_error":      s.LastError,
		"erp_attempts":        s.Attempts,
		"erp_last_attempt_at": s.LastAttemptAt,
		"erp_synced_at":       s.SyncedAt,
	}
	if releaseClaim {
		cols["erp_sync_claim"] = nil
		cols["erp_claimed_at"] = nil
	}
	return cols
}
