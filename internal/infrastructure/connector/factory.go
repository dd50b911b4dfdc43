package connector

import (
	"fmt"

	"github.com/vendorhub/backend/internal/domain/integration"
)

// Factory builds connectors for configured integrations
type Factory struct {
	opts Options
}

// NewFactory creates a client factory sharing opts across connectors
func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts}
}

// ERP returns a client for an enabled ERP integration
func (f *Factory) ERP(in *integration.Integration) (integration.ERPClient, error) {
	if err := expectKind(in, integration.KindERP); err != nil {
		return nil, err
	}
	return NewERPClient(in, f.opts), nil
}

// RiskRating returns a client for an enabled risk provider integration
func (f *Factory) RiskRating(in *integration.Integration) (integration.RiskRatingClient, error) {
	if err := expectKind(in, integration.KindRiskProvider); err != nil {
		return nil, err
	}
	return NewRatingClient(in, f.opts), nil
}

func expectKind(in *integration.Integration, kind integration.Kind) error {
	if in == nil || !in.Enabled {
		return integration.ErrNotConfigured
	}
	if in.Kind != kind {
		return fmt.Errorf("integration %s is %s, want %s", in.ID, in.Kind, kind)
	}
	return nil
}

var _ integration.ClientFactory = (*Factory)(nil)
