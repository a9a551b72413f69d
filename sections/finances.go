package sections

import (
	"context"
	"time"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/response"
)

// Finances retrieves financial event and settlement group data.
type Finances struct {
	section
}

// NewFinances builds the Finances facade.
func NewFinances(c *client.Client) *Finances {
	return &Finances{section{c: c, d: client.SectionDescriptor{
		Name:         "Finances",
		Path:         "/Finances/2015-05-01",
		Version:      "2015-05-01",
		Namespace:    "http://mws.amazonservices.com/Finances/2015-05-01",
		AccountLabel: "SellerId",
		NextTokenOperations: []string{
			"ListFinancialEventGroups",
			"ListFinancialEvents",
		},
	}}}
}

// ListFinancialEventGroups lists settlement groups started inside a
// window.
func (f *Finances) ListFinancialEventGroups(ctx context.Context, startedAfter, startedBefore time.Time, maxResults int) (*response.Response, error) {
	p := map[string]any{}
	if !startedAfter.IsZero() {
		p["FinancialEventGroupStartedAfter"] = startedAfter
	}
	if !startedBefore.IsZero() {
		p["FinancialEventGroupStartedBefore"] = startedBefore
	}
	if maxResults > 0 {
		p["MaxResultsPerPage"] = maxResults
	}
	return f.request(ctx, client.Request{Action: "ListFinancialEventGroups", Params: p})
}

// ListFinancialEventGroupsByNextToken continues ListFinancialEventGroups.
func (f *Finances) ListFinancialEventGroupsByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return f.byNextToken(ctx, "ListFinancialEventGroups", token)
}

// ListFinancialEvents lists financial events by order, group or posted
// window. The selectors are mutually exclusive on the service side.
func (f *Finances) ListFinancialEvents(ctx context.Context, amazonOrderID, financialEventGroupID string, postedAfter, postedBefore time.Time, maxResults int) (*response.Response, error) {
	p := map[string]any{}
	if amazonOrderID != "" {
		p["AmazonOrderId"] = amazonOrderID
	}
	if financialEventGroupID != "" {
		p["FinancialEventGroupId"] = financialEventGroupID
	}
	if !postedAfter.IsZero() {
		p["PostedAfter"] = postedAfter
	}
	if !postedBefore.IsZero() {
		p["PostedBefore"] = postedBefore
	}
	if maxResults > 0 {
		p["MaxResultsPerPage"] = maxResults
	}
	return f.request(ctx, client.Request{Action: "ListFinancialEvents", Params: p})
}

// ListFinancialEventsByNextToken continues ListFinancialEvents.
func (f *Finances) ListFinancialEventsByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return f.byNextToken(ctx, "ListFinancialEvents", token)
}
