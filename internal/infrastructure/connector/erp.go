package connector

import (
	"context"
	"net/url"
	"strings"

	"github.com/vendorhub/backend/internal/domain/integration"
)

// ERPClient pushes purchase orders to an ERP exposing
// POST /purchase-orders and PUT /purchase-orders/{id}
type ERPClient struct {
	remote
}

type erpCreateResponse struct {
	ID string `json:"id"`
}

// NewERPClient builds a client bound to one ERP integration
func NewERPClient(in *integration.Integration, opts Options) *ERPClient {
	return &ERPClient{remote: remote{
		baseURL:    strings.TrimRight(in.BaseURL, "/"),
		apiKey:     in.APIKey,
		userAgent:  opts.UserAgent,
		httpClient: opts.httpClient(),
	}}
}

// CreatePurchaseOrder creates the order and returns the ERP's id for it
func (c *ERPClient) CreatePurchaseOrder(ctx context.Context, po integration.ERPPurchaseOrder, idempotencyKey string) (string, error) {
	var resp erpCreateResponse
	headers := map[string]string{"Idempotency-Key": idempotencyKey}
	if err := c.call(ctx, "POST", "/purchase-orders", headers, po, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.ID) == "" {
		return "", &integration.RemoteError{Message: "ERP accepted the order but returned no id"}
	}
	return resp.ID, nil
}

// UpdatePurchaseOrder replaces the remote order identified by externalID
func (c *ERPClient) UpdatePurchaseOrder(ctx context.Context, externalID string, po integration.ERPPurchaseOrder) error {
	return c.call(ctx, "PUT", "/purchase-orders/"+url.PathEscape(externalID), nil, po, nil)
}

var _ integration.ERPClient = (*ERPClient)(nil)
