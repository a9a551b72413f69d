package sections

import (
	"context"
	"net/http"
	"time"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/models"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/response"
)

// OutboundShipments manages multi-channel fulfillment orders shipped
// from Amazon's network to arbitrary destinations.
type OutboundShipments struct {
	section
}

// NewOutboundShipments builds the FulfillmentOutboundShipment facade.
func NewOutboundShipments(c *client.Client) *OutboundShipments {
	return &OutboundShipments{section{c: c, d: client.SectionDescriptor{
		Name:                "FulfillmentOutboundShipment",
		Path:                "/FulfillmentOutboundShipment/2010-10-01",
		Version:             "2010-10-01",
		Namespace:           "http://mws.amazonaws.com/FulfillmentOutboundShipment/2010-10-01",
		AccountLabel:        "SellerId",
		NextTokenOperations: []string{"ListAllFulfillmentOrders"},
	}}}
}

// FulfillmentOrderItem is one requested line of an outbound order.
type FulfillmentOrderItem struct {
	SellerSKU                    string
	SellerFulfillmentOrderItemID string
	Quantity                     int
	DisplayableComment           string
}

// ParamMap renders the line item.
func (i FulfillmentOrderItem) ParamMap() map[string]any {
	out := map[string]any{
		"SellerSKU":                    i.SellerSKU,
		"SellerFulfillmentOrderItemId": i.SellerFulfillmentOrderItemID,
		"Quantity":                     i.Quantity,
	}
	if i.DisplayableComment != "" {
		out["DisplayableComment"] = i.DisplayableComment
	}
	return out
}

// CreateFulfillmentOrder requests fulfillment of items to a destination
// address.
func (o *OutboundShipments) CreateFulfillmentOrder(ctx context.Context, orderID, displayableOrderID string, orderDate time.Time, comment, shippingSpeed string, destination models.Address, items []FulfillmentOrderItem) (*response.Response, error) {
	list := make([]any, 0, len(items))
	for _, item := range items {
		list = append(list, item)
	}
	keyed, err := params.EnumerateKeyedParam("Items.member", list)
	if err != nil {
		return nil, err
	}
	address, err := params.FlatParamDict(destination.ParamMap(), "DestinationAddress")
	if err != nil {
		return nil, err
	}
	p := params.Merge(keyed, address, map[string]any{
		"SellerFulfillmentOrderId": orderID,
		"DisplayableOrderId":       displayableOrderID,
		"DisplayableOrderDateTime": orderDate,
		"DisplayableOrderComment":  comment,
		"ShippingSpeedCategory":    shippingSpeed,
	})
	return o.request(ctx, client.Request{Action: "CreateFulfillmentOrder", Params: p, Method: http.MethodPost})
}

// GetFulfillmentOrder fetches one outbound order and its shipments.
func (o *OutboundShipments) GetFulfillmentOrder(ctx context.Context, orderID string) (*response.Response, error) {
	return o.request(ctx, client.Request{
		Action: "GetFulfillmentOrder",
		Params: map[string]any{"SellerFulfillmentOrderId": orderID},
	})
}

// ListAllFulfillmentOrders lists outbound orders updated after a point
// in time.
func (o *OutboundShipments) ListAllFulfillmentOrders(ctx context.Context, queryStartDateTime time.Time) (*response.Response, error) {
	p := map[string]any{}
	if !queryStartDateTime.IsZero() {
		p["QueryStartDateTime"] = queryStartDateTime
	}
	return o.request(ctx, client.Request{Action: "ListAllFulfillmentOrders", Params: p})
}

// ListAllFulfillmentOrdersByNextToken continues ListAllFulfillmentOrders.
func (o *OutboundShipments) ListAllFulfillmentOrdersByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return o.byNextToken(ctx, "ListAllFulfillmentOrders", token)
}

// CancelFulfillmentOrder requests cancellation of an outbound order.
func (o *OutboundShipments) CancelFulfillmentOrder(ctx context.Context, orderID string) (*response.Response, error) {
	return o.request(ctx, client.Request{
		Action: "CancelFulfillmentOrder",
		Params: map[string]any{"SellerFulfillmentOrderId": orderID},
	})
}
