package sections

import (
	"context"
	"net/http"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/models"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/response"
)

// MerchantFulfillment buys shipping labels for seller-fulfilled orders.
type MerchantFulfillment struct {
	section
}

// NewMerchantFulfillment builds the MerchantFulfillment facade.
func NewMerchantFulfillment(c *client.Client) *MerchantFulfillment {
	return &MerchantFulfillment{section{c: c, d: client.SectionDescriptor{
		Name:         "MerchantFulfillment",
		Path:         "/MerchantFulfillment/2015-06-01",
		Version:      "2015-06-01",
		Namespace:    "https://mws.amazonservices.com/MerchantFulfillment/2015-06-01",
		AccountLabel: "SellerId",
	}}}
}

// ShipmentRequestDetails identifies the order, package and ship-from
// address a label is needed for.
type ShipmentRequestDetails struct {
	AmazonOrderID      string
	SellerOrderID      string
	ItemQuantities     map[string]int // OrderItemId -> quantity
	ShipFromAddress    models.Address
	PackageLength      float64
	PackageWidth       float64
	PackageHeight      float64
	DimensionsUnit     string // "inches" or "centimeters"
	WeightValue        float64
	WeightUnit         string // "oz" or "g"
	DeliveryExperience string
	CarrierWillPickUp  any
}

// ParamMap renders the nested request details structure.
func (d ShipmentRequestDetails) ParamMap() map[string]any {
	items := make([]any, 0, len(d.ItemQuantities))
	for id, qty := range d.ItemQuantities {
		items = append(items, map[string]any{"OrderItemId": id, "Quantity": qty})
	}
	out := map[string]any{
		"AmazonOrderId":   d.AmazonOrderID,
		"ItemList":        map[string]any{"Item": items},
		"ShipFromAddress": d.ShipFromAddress.ParamMap(),
		"PackageDimensions": map[string]any{
			"Length": d.PackageLength,
			"Width":  d.PackageWidth,
			"Height": d.PackageHeight,
			"Unit":   d.DimensionsUnit,
		},
		"Weight": map[string]any{
			"Value": d.WeightValue,
			"Unit":  d.WeightUnit,
		},
		"ShippingServiceOptions": map[string]any{
			"DeliveryExperience": d.DeliveryExperience,
			"CarrierWillPickUp":  params.ToBool(d.CarrierWillPickUp),
		},
	}
	if d.SellerOrderID != "" {
		out["SellerOrderId"] = d.SellerOrderID
	}
	return out
}

// GetEligibleShippingServices lists the shipping services available for
// one shipment request.
func (m *MerchantFulfillment) GetEligibleShippingServices(ctx context.Context, details ShipmentRequestDetails) (*response.Response, error) {
	p, err := params.FlatParamDict(details.ParamMap(), "ShipmentRequestDetails")
	if err != nil {
		return nil, err
	}
	return m.request(ctx, client.Request{Action: "GetEligibleShippingServices", Params: p, Method: http.MethodPost})
}

// CreateShipment purchases a label with a previously offered shipping
// service.
func (m *MerchantFulfillment) CreateShipment(ctx context.Context, details ShipmentRequestDetails, shippingServiceID, shippingServiceOfferID string) (*response.Response, error) {
	p, err := params.FlatParamDict(details.ParamMap(), "ShipmentRequestDetails")
	if err != nil {
		return nil, err
	}
	p["ShippingServiceId"] = shippingServiceID
	if shippingServiceOfferID != "" {
		p["ShippingServiceOfferId"] = shippingServiceOfferID
	}
	return m.request(ctx, client.Request{Action: "CreateShipment", Params: p, Method: http.MethodPost})
}

// GetShipment fetches a purchased shipment, including its label.
func (m *MerchantFulfillment) GetShipment(ctx context.Context, shipmentID string) (*response.Response, error) {
	return m.request(ctx, client.Request{
		Action: "GetShipment",
		Params: map[string]any{"ShipmentId": shipmentID},
	})
}

// CancelShipment cancels a purchased shipment.
func (m *MerchantFulfillment) CancelShipment(ctx context.Context, shipmentID string) (*response.Response, error) {
	return m.request(ctx, client.Request{
		Action: "CancelShipment",
		Params: map[string]any{"ShipmentId": shipmentID},
	})
}
