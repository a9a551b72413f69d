package sections

import (
	"context"
	"fmt"
	"time"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/response"
)

// Inventory queries fulfillment inventory availability.
type Inventory struct {
	section
}

// NewInventory builds the FulfillmentInventory facade.
func NewInventory(c *client.Client) *Inventory {
	return &Inventory{section{c: c, d: client.SectionDescriptor{
		Name:                "FulfillmentInventory",
		Path:                "/FulfillmentInventory/2010-10-01",
		Version:             "2010-10-01",
		Namespace:           "http://mws.amazonaws.com/FulfillmentInventory/2010-10-01",
		AccountLabel:        "SellerId",
		NextTokenOperations: []string{"ListInventorySupply"},
	}}}
}

// ListInventorySupply returns availability by SKU, either for an
// explicit SKU list or for everything changed since a timestamp. Exactly
// one of the two selectors must be provided.
func (i *Inventory) ListInventorySupply(ctx context.Context, skus []string, queryStartDateTime time.Time, responseGroup string) (*response.Response, error) {
	if len(skus) > 0 && !queryStartDateTime.IsZero() {
		return nil, fmt.Errorf("provide either skus or queryStartDateTime, not both")
	}
	p := params.EnumerateParam("SellerSkus.member", skus)
	if !queryStartDateTime.IsZero() {
		p["QueryStartDateTime"] = queryStartDateTime
	}
	if responseGroup != "" {
		p["ResponseGroup"] = responseGroup
	}
	return i.request(ctx, client.Request{Action: "ListInventorySupply", Params: p})
}

// ListInventorySupplyByNextToken continues ListInventorySupply.
func (i *Inventory) ListInventorySupplyByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return i.byNextToken(ctx, "ListInventorySupply", token)
}
