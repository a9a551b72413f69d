package sections

import (
	"context"
	"net/http"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/response"
)

// EasyShip manages Amazon Easy Ship pickups and time slots (IN
// marketplace only).
type EasyShip struct {
	section
}

// NewEasyShip builds the EasyShip facade.
func NewEasyShip(c *client.Client) *EasyShip {
	return &EasyShip{section{c: c, d: client.SectionDescriptor{
		Name:         "EasyShip",
		Path:         "/EasyShip/2018-09-01",
		Version:      "2018-09-01",
		Namespace:    "https://mws.amazonservices.in/EasyShip/2018-09-01",
		AccountLabel: "SellerId",
	}}}
}

// PackageDimensions is the physical package description EasyShip slots
// are quoted for.
type PackageDimensions struct {
	Length      float64
	Width       float64
	Height      float64
	Unit        string // "cm"
	WeightValue float64
	WeightUnit  string // "g"
}

// ListPickupSlots lists available pickup windows for one order and
// package.
func (e *EasyShip) ListPickupSlots(ctx context.Context, marketplaceID, amazonOrderID string, dims PackageDimensions) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = e.c.MarketplaceID()
	}
	flat, err := params.FlatParamDict(map[string]any{
		"PackageDimensions": map[string]any{
			"Length": dims.Length,
			"Width":  dims.Width,
			"Height": dims.Height,
			"Unit":   dims.Unit,
		},
		"PackageWeight": map[string]any{
			"Value": dims.WeightValue,
			"Unit":  dims.WeightUnit,
		},
	}, "")
	if err != nil {
		return nil, err
	}
	return e.request(ctx, client.Request{
		Action: "ListPickupSlots",
		Method: http.MethodPost,
		Params: params.Merge(flat, map[string]any{
			"MarketplaceId": marketplaceID,
			"AmazonOrderId": amazonOrderID,
		}),
	})
}

// GetScheduledPackage fetches the scheduled package for one order.
func (e *EasyShip) GetScheduledPackage(ctx context.Context, marketplaceID, amazonOrderID string) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = e.c.MarketplaceID()
	}
	return e.request(ctx, client.Request{
		Action: "GetScheduledPackage",
		Params: map[string]any{
			"ScheduledPackageId.AmazonOrderId": amazonOrderID,
			"MarketplaceId":                    marketplaceID,
		},
	})
}
