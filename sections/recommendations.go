package sections

import (
	"context"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/response"
)

// Recommendations retrieves listing and inventory improvement
// suggestions.
type Recommendations struct {
	section
}

// NewRecommendations builds the Recommendations facade.
func NewRecommendations(c *client.Client) *Recommendations {
	return &Recommendations{section{c: c, d: client.SectionDescriptor{
		Name:                "Recommendations",
		Path:                "/Recommendations/2013-04-01",
		Version:             "2013-04-01",
		Namespace:           "https://mws.amazonservices.com/Recommendations/2013-04-01",
		AccountLabel:        "SellerId",
		NextTokenOperations: []string{"ListRecommendations"},
	}}}
}

// GetLastUpdatedTimeForRecommendations reports when each recommendation
// category was last refreshed for a marketplace.
func (r *Recommendations) GetLastUpdatedTimeForRecommendations(ctx context.Context, marketplaceID string) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = r.c.MarketplaceID()
	}
	return r.request(ctx, client.Request{
		Action: "GetLastUpdatedTimeForRecommendations",
		Params: map[string]any{"MarketplaceId": marketplaceID},
	})
}

// ListRecommendations lists recommendations, optionally filtered by
// category.
func (r *Recommendations) ListRecommendations(ctx context.Context, marketplaceID, category string) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = r.c.MarketplaceID()
	}
	p := map[string]any{"MarketplaceId": marketplaceID}
	if category != "" {
		p["RecommendationCategory"] = category
	}
	return r.request(ctx, client.Request{Action: "ListRecommendations", Params: p})
}

// ListRecommendationsByNextToken continues ListRecommendations.
func (r *Recommendations) ListRecommendationsByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return r.byNextToken(ctx, "ListRecommendations", token)
}
