package sections

import (
	"context"
	"fmt"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/models"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/response"
)

// Products looks up catalog, pricing and fee data.
type Products struct {
	section
}

// NewProducts builds the Products facade.
func NewProducts(c *client.Client) *Products {
	return &Products{section{c: c, d: client.SectionDescriptor{
		Name:         "Products",
		Path:         "/Products/2011-10-01",
		Version:      "2011-10-01",
		Namespace:    "http://mws.amazonservices.com/schema/Products/2011-10-01",
		AccountLabel: "SellerId",
	}}}
}

func (p *Products) marketplaceOrDefault(marketplaceID string) string {
	if marketplaceID == "" {
		return p.c.MarketplaceID()
	}
	return marketplaceID
}

// ListMatchingProducts searches the catalog for products matching a free
// text query.
func (p *Products) ListMatchingProducts(ctx context.Context, marketplaceID, query, queryContextID string) (*response.Response, error) {
	args := map[string]any{
		"MarketplaceId": p.marketplaceOrDefault(marketplaceID),
		"Query":         query,
	}
	if queryContextID != "" {
		args["QueryContextId"] = queryContextID
	}
	return p.request(ctx, client.Request{Action: "ListMatchingProducts", Params: args})
}

// GetMatchingProduct fetches catalog data for up to ten ASINs.
func (p *Products) GetMatchingProduct(ctx context.Context, marketplaceID string, asins []string) (*response.Response, error) {
	return p.request(ctx, client.Request{
		Action: "GetMatchingProduct",
		Params: params.Merge(
			map[string]any{"MarketplaceId": p.marketplaceOrDefault(marketplaceID)},
			params.EnumerateParam("ASINList.ASIN", asins),
		),
	})
}

// GetMatchingProductForID fetches catalog data by an alternate ID type
// (ISBN, UPC, EAN, SellerSKU, ...).
func (p *Products) GetMatchingProductForID(ctx context.Context, marketplaceID, idType string, ids []string) (*response.Response, error) {
	return p.request(ctx, client.Request{
		Action: "GetMatchingProductForId",
		Params: params.Merge(
			map[string]any{
				"MarketplaceId": p.marketplaceOrDefault(marketplaceID),
				"IdType":        idType,
			},
			params.EnumerateParam("IdList.Id", ids),
		),
	})
}

// GetMyPriceForSKU returns the seller's own price for up to twenty SKUs.
func (p *Products) GetMyPriceForSKU(ctx context.Context, marketplaceID string, skus []string, condition string) (*response.Response, error) {
	args := params.Merge(
		map[string]any{"MarketplaceId": p.marketplaceOrDefault(marketplaceID)},
		params.EnumerateParam("SellerSKUList.SellerSKU", skus),
	)
	if condition != "" {
		args["ItemCondition"] = condition
	}
	return p.request(ctx, client.Request{Action: "GetMyPriceForSKU", Params: args})
}

// GetCompetitivePricingForASIN returns competitive pricing for ASINs.
func (p *Products) GetCompetitivePricingForASIN(ctx context.Context, marketplaceID string, asins []string) (*response.Response, error) {
	return p.request(ctx, client.Request{
		Action: "GetCompetitivePricingForASIN",
		Params: params.Merge(
			map[string]any{"MarketplaceId": p.marketplaceOrDefault(marketplaceID)},
			params.EnumerateParam("ASINList.ASIN", asins),
		),
	})
}

// GetLowestPricedOffersForASIN returns the lowest priced offers for one
// ASIN and condition.
func (p *Products) GetLowestPricedOffersForASIN(ctx context.Context, marketplaceID, asin, condition string) (*response.Response, error) {
	if condition == "" {
		condition = "New"
	}
	return p.request(ctx, client.Request{
		Action: "GetLowestPricedOffersForASIN",
		Params: map[string]any{
			"MarketplaceId": p.marketplaceOrDefault(marketplaceID),
			"ASIN":          asin,
			"ItemCondition": condition,
		},
	})
}

// GetMyFeesEstimate estimates selling fees for up to twenty price
// points. Each request is validated client-side before encoding.
func (p *Products) GetMyFeesEstimate(ctx context.Context, requests ...models.FeesEstimateRequest) (*response.Response, error) {
	list := make([]any, 0, len(requests))
	for i, fr := range requests {
		if err := fr.Validate(); err != nil {
			return nil, fmt.Errorf("fees estimate request %d: %w", i+1, err)
		}
		flat, err := params.FlatParamDict(fr.ParamMap(), "")
		if err != nil {
			return nil, err
		}
		list = append(list, flat)
	}
	keyed, err := params.EnumerateKeyedParam("FeesEstimateRequestList.FeesEstimateRequest", list)
	if err != nil {
		return nil, err
	}
	return p.request(ctx, client.Request{Action: "GetMyFeesEstimate", Params: keyed})
}
