package models

import "fmt"

// CurrencyAmount is a monetary value with its ISO 4217 currency code.
type CurrencyAmount struct {
	CurrencyCode string
	Amount       float64
}

// ParamMap renders the amount as MWS parameters.
func (c CurrencyAmount) ParamMap() map[string]any {
	return map[string]any{
		"CurrencyCode": c.CurrencyCode,
		"Amount":       c.Amount,
	}
}

// Points is the optional loyalty points component of a fees estimate.
type Points struct {
	PointsNumber        int
	PointsMonetaryValue CurrencyAmount
}

// ParamMap renders the points with their nested monetary value.
func (p Points) ParamMap() map[string]any {
	return map[string]any{
		"PointsNumber":        p.PointsNumber,
		"PointsMonetaryValue": p.PointsMonetaryValue.ParamMap(),
	}
}

// PriceToEstimateFees nests the listing price, shipping price and
// optional points of a fees-estimate query.
type PriceToEstimateFees struct {
	ListingPrice CurrencyAmount
	Shipping     *CurrencyAmount
	Points       *Points
}

// ParamMap renders the composite price structure.
func (p PriceToEstimateFees) ParamMap() map[string]any {
	out := map[string]any{
		"ListingPrice": p.ListingPrice.ParamMap(),
	}
	if p.Shipping != nil {
		out["Shipping"] = p.Shipping.ParamMap()
	}
	if p.Points != nil {
		out["Points"] = p.Points.ParamMap()
	}
	return out
}

// FeesEstimateRequest identifies one product and price point to estimate
// fees for.
type FeesEstimateRequest struct {
	MarketplaceID     string
	IDType            string // "ASIN" or "SellerSKU"
	IDValue           string
	Price             PriceToEstimateFees
	Identifier        string // caller-chosen echo token
	IsAmazonFulfilled bool
}

// Validate enforces the required identification fields.
func (f FeesEstimateRequest) Validate() error {
	if f.MarketplaceID == "" {
		return fmt.Errorf("MarketplaceId is required")
	}
	if f.IDType != "ASIN" && f.IDType != "SellerSKU" {
		return fmt.Errorf("IdType must be ASIN or SellerSKU, got %q", f.IDType)
	}
	if f.IDValue == "" {
		return fmt.Errorf("IdValue is required")
	}
	if f.Identifier == "" {
		return fmt.Errorf("Identifier is required")
	}
	return nil
}

// ParamMap renders the request; nested structures are expanded by the
// parameter encoder.
func (f FeesEstimateRequest) ParamMap() map[string]any {
	return map[string]any{
		"MarketplaceId":       f.MarketplaceID,
		"IdType":              f.IDType,
		"IdValue":             f.IDValue,
		"PriceToEstimateFees": f.Price.ParamMap(),
		"Identifier":          f.Identifier,
		"IsAmazonFulfilled":   f.IsAmazonFulfilled,
	}
}
