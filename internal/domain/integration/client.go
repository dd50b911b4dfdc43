package integration

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ERPLineItem is one purchase order line as sent to the ERP
type ERPLineItem struct {
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ERPPurchaseOrder is the remote representation of a purchase order
type ERPPurchaseOrder struct {
	Number    string          `json:"number"`
	VendorRef string          `json:"vendor_ref"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	LineItems []ERPLineItem   `json:"line_items"`
}

// ERPClient pushes purchase orders to an ERP system
type ERPClient interface {
	// CreatePurchaseOrder creates the order remotely and returns the remote id.
	// idempotencyKey lets the remote side de-duplicate repeated creates.
	CreatePurchaseOrder(ctx context.Context, po ERPPurchaseOrder, idempotencyKey string) (string, error)
	// UpdatePurchaseOrder replaces the remote order identified by externalID
	UpdatePurchaseOrder(ctx context.Context, externalID string, po ERPPurchaseOrder) error
}

// Rating is a vendor risk rating pulled from a provider
type Rating struct {
	Score     float64   `json:"score"`
	Grade     string    `json:"grade"`
	Reference string    `json:"reference"`
	AsOf      time.Time `json:"as_of"`
}

// RiskRatingClient pulls vendor ratings from a rating provider
type RiskRatingClient interface {
	FetchRating(ctx context.Context, vendorRef string) (Rating, error)
}

// ClientFactory builds clients bound to one configured integration
type ClientFactory interface {
	ERP(in *Integration) (ERPClient, error)
	RiskRating(in *Integration) (RiskRatingClient, error)
}
