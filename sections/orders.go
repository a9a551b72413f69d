package sections

import (
	"context"
	"time"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/response"
)

// Orders retrieves order and order item data.
type Orders struct {
	section
}

// NewOrders builds the Orders facade.
func NewOrders(c *client.Client) *Orders {
	return &Orders{section{c: c, d: client.SectionDescriptor{
		Name:         "Orders",
		Path:         "/Orders/2013-09-01",
		Version:      "2013-09-01",
		Namespace:    "https://mws.amazonservices.com/Orders/2013-09-01",
		AccountLabel: "SellerId",
		NextTokenOperations: []string{
			"ListOrders",
			"ListOrderItems",
		},
	}}}
}

// ListOrdersFilter narrows a ListOrders call. Zero-valued fields are
// omitted from the request.
type ListOrdersFilter struct {
	CreatedAfter        time.Time
	CreatedBefore       time.Time
	LastUpdatedAfter    time.Time
	LastUpdatedBefore   time.Time
	OrderStatuses       []string
	FulfillmentChannels []string
	PaymentMethods      []string
	BuyerEmail          string
	SellerOrderID       string
	MaxResultsPerPage   int
}

// ListOrders returns orders in the given marketplaces matching the
// filter. The marketplace list defaults to the client's regional
// marketplace when empty.
func (o *Orders) ListOrders(ctx context.Context, marketplaceIDs []string, filter ListOrdersFilter) (*response.Response, error) {
	if len(marketplaceIDs) == 0 {
		marketplaceIDs = []string{o.c.MarketplaceID()}
	}
	p := params.Merge(
		params.EnumerateParam("MarketplaceId.Id", marketplaceIDs),
		params.EnumerateParam("OrderStatus.Status", filter.OrderStatuses),
		params.EnumerateParam("FulfillmentChannel.Channel", filter.FulfillmentChannels),
		params.EnumerateParam("PaymentMethod.Method", filter.PaymentMethods),
	)
	if !filter.CreatedAfter.IsZero() {
		p["CreatedAfter"] = filter.CreatedAfter
	}
	if !filter.CreatedBefore.IsZero() {
		p["CreatedBefore"] = filter.CreatedBefore
	}
	if !filter.LastUpdatedAfter.IsZero() {
		p["LastUpdatedAfter"] = filter.LastUpdatedAfter
	}
	if !filter.LastUpdatedBefore.IsZero() {
		p["LastUpdatedBefore"] = filter.LastUpdatedBefore
	}
	if filter.BuyerEmail != "" {
		p["BuyerEmail"] = filter.BuyerEmail
	}
	if filter.SellerOrderID != "" {
		p["SellerOrderId"] = filter.SellerOrderID
	}
	if filter.MaxResultsPerPage > 0 {
		p["MaxResultsPerPage"] = filter.MaxResultsPerPage
	}
	return o.request(ctx, client.Request{Action: "ListOrders", Params: p})
}

// ListOrdersByNextToken continues ListOrders.
func (o *Orders) ListOrdersByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return o.byNextToken(ctx, "ListOrders", token)
}

// GetOrder fetches up to 50 orders by their Amazon order IDs.
func (o *Orders) GetOrder(ctx context.Context, amazonOrderIDs []string) (*response.Response, error) {
	return o.request(ctx, client.Request{
		Action: "GetOrder",
		Params: params.EnumerateParam("AmazonOrderId.Id", amazonOrderIDs),
	})
}

// ListOrderItems returns the line items of one order.
func (o *Orders) ListOrderItems(ctx context.Context, amazonOrderID string) (*response.Response, error) {
	return o.request(ctx, client.Request{
		Action: "ListOrderItems",
		Params: map[string]any{"AmazonOrderId": amazonOrderID},
	})
}

// ListOrderItemsByNextToken continues ListOrderItems.
func (o *Orders) ListOrderItemsByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return o.byNextToken(ctx, "ListOrderItems", token)
}
