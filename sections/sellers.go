package sections

import (
	"context"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/response"
)

// Sellers reports the marketplaces a seller participates in.
type Sellers struct {
	section
}

// NewSellers builds the Sellers facade.
func NewSellers(c *client.Client) *Sellers {
	return &Sellers{section{c: c, d: client.SectionDescriptor{
		Name:                "Sellers",
		Path:                "/Sellers/2011-07-01",
		Version:             "2011-07-01",
		Namespace:           "http://mws.amazonservices.com/schema/Sellers/2011-07-01",
		AccountLabel:        "SellerId",
		NextTokenOperations: []string{"ListMarketplaceParticipations"},
	}}}
}

// ListMarketplaceParticipations lists the marketplaces the seller can
// sell in, with participation details.
func (s *Sellers) ListMarketplaceParticipations(ctx context.Context) (*response.Response, error) {
	return s.request(ctx, client.Request{Action: "ListMarketplaceParticipations"})
}

// ListMarketplaceParticipationsByNextToken continues
// ListMarketplaceParticipations.
func (s *Sellers) ListMarketplaceParticipationsByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return s.byNextToken(ctx, "ListMarketplaceParticipations", token)
}
