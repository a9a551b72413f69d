// Package sections contains one facade per MWS section. Facades are thin
// declarative layers: each one names its URI path, protocol version,
// namespace, account-type label and next-token operations, and its
// methods only gather arguments before handing off to the client
// pipeline.
package sections

import (
	"context"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/response"
)

// section is the embedded core shared by every facade.
type section struct {
	c *client.Client
	d client.SectionDescriptor
}

// Descriptor exposes the section's wire-level identity.
func (s *section) Descriptor() client.SectionDescriptor {
	return s.d
}

// Client returns the underlying pipeline client.
func (s *section) Client() *client.Client {
	return s.c
}

func (s *section) request(ctx context.Context, req client.Request) (*response.Response, error) {
	return s.c.Do(ctx, s.d, req)
}

// byNextToken continues a paging operation using only the continuation
// token. It targets the {action}ByNextToken sibling and discards every
// other argument.
func (s *section) byNextToken(ctx context.Context, action, token string) (*response.Response, error) {
	return s.request(ctx, client.Request{
		Action:    action,
		NextToken: token,
	})
}

// GetServiceStatus reports the operational status of the section's API.
// Every section supports it.
func (s *section) GetServiceStatus(ctx context.Context) (*response.Response, error) {
	return s.request(ctx, client.Request{Action: "GetServiceStatus"})
}

// Section is the common surface of every facade, used where code works
// across sections (for example the CLI status fan-out).
type Section interface {
	Descriptor() client.SectionDescriptor
	GetServiceStatus(ctx context.Context) (*response.Response, error)
}

// All wires up every facade against one client.
func All(c *client.Client) []Section {
	return []Section{
		NewFeeds(c),
		NewReports(c),
		NewOrders(c),
		NewProducts(c),
		NewInventory(c),
		NewInboundShipments(c),
		NewOutboundShipments(c),
		NewMerchantFulfillment(c),
		NewFinances(c),
		NewRecommendations(c),
		NewSellers(c),
		NewSubscriptions(c),
		NewEasyShip(c),
		NewOffAmazonPayments(c),
	}
}
