package connector

import (
	"context"
	"net/url"
	"strings"

	"github.com/vendorhub/backend/internal/domain/integration"
)

// RatingClient pulls vendor ratings from GET /vendors/{ref}/rating
type RatingClient struct {
	remote
}

// NewRatingClient builds a client bound to one risk provider integration
func NewRatingClient(in *integration.Integration, opts Options) *RatingClient {
	return &RatingClient{remote: remote{
		baseURL:    strings.TrimRight(in.BaseURL, "/"),
		apiKey:     in.APIKey,
		userAgent:  opts.UserAgent,
		httpClient: opts.httpClient(),
	}}
}

// FetchRating returns the provider's current rating of vendorRef
func (c *RatingClient) FetchRating(ctx context.Context, vendorRef string) (integration.Rating, error) {
	var rating integration.Rating
	if err := c.call(ctx, "GET", "/vendors/"+url.PathEscape(vendorRef)+"/rating", nil, nil, &rating); err != nil {
		return integration.Rating{}, err
	}
	if rating.Score < 0 || rating.Score > 100 {
		return integration.Rating{}, &integration.RemoteError{Message: "rating score out of range"}
	}
	return rating, nil
}

var _ integration.RiskRatingClient = (*RatingClient)(nil)
