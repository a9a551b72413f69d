package sections

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/models"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/response"
)

// InboundShipments manages shipments into Amazon's fulfillment network.
// It optionally stores a ship-from address so repeated calls need not
// pass one; the address can be set at construction, by property
// assignment or through the legacy setter, all three producing identical
// state. Changing it concurrently with in-flight requests is the
// caller's race to accept.
type InboundShipments struct {
	section
	fromAddress *models.Address
}

// InboundOption configures the facade at construction time.
type InboundOption func(*InboundShipments)

// WithShipFromAddress stores the default ship-from address.
func WithShipFromAddress(a models.Address) InboundOption {
	return func(s *InboundShipments) { s.fromAddress = &a }
}

// NewInboundShipments builds the FulfillmentInboundShipment facade.
func NewInboundShipments(c *client.Client, opts ...InboundOption) *InboundShipments {
	s := &InboundShipments{section: section{c: c, d: client.SectionDescriptor{
		Name:         "FulfillmentInboundShipment",
		Path:         "/FulfillmentInboundShipment/2010-10-01",
		Version:      "2010-10-01",
		Namespace:    "http://mws.amazonaws.com/FulfillmentInboundShipment/2010-10-01",
		AccountLabel: "SellerId",
		NextTokenOperations: []string{
			"ListInboundShipments",
			"ListInboundShipmentItems",
		},
	}}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromAddress returns the stored ship-from address, or nil.
func (s *InboundShipments) FromAddress() *models.Address {
	return s.fromAddress
}

// SetFromAddress stores the ship-from address.
func (s *InboundShipments) SetFromAddress(a models.Address) {
	s.fromAddress = &a
}

// SetShipFromAddress is the legacy setter, accepting a loosely-typed
// dictionary. It behaves identically to SetFromAddress.
func (s *InboundShipments) SetShipFromAddress(legacy map[string]any) error {
	a, err := models.AddressFromLegacy(legacy)
	if err != nil {
		return err
	}
	s.fromAddress = &a
	return nil
}

// shipFromParams renders the stored address under the given prefix,
// failing when no address has been configured.
func (s *InboundShipments) shipFromParams(prefix string) (map[string]any, error) {
	if s.fromAddress == nil {
		return nil, fmt.Errorf("a ship-from address is required; set one on the facade or pass it explicitly")
	}
	return params.FlatParamDict(s.fromAddress.ParamMap(), prefix)
}

// CreateInboundShipmentPlan asks the service to split items into
// shipment plans. Items must be the plan-request variant.
func (s *InboundShipments) CreateInboundShipmentPlan(ctx context.Context, items []models.InboundShipmentPlanRequestItem, shipToCountryCode, shipToSubdivisionCode, labelPreference string) (*response.Response, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one item is required")
	}
	list := make([]any, 0, len(items))
	for _, item := range items {
		if err := item.ValidateOperation(models.OpCreateInboundShipmentPlan); err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	keyed, err := params.EnumerateKeyedParam("InboundShipmentPlanRequestItems.member", list)
	if err != nil {
		return nil, err
	}
	from, err := s.shipFromParams("ShipFromAddress")
	if err != nil {
		return nil, err
	}
	p := params.Merge(keyed, from)
	if shipToCountryCode != "" {
		p["ShipToCountryCode"] = shipToCountryCode
	}
	if shipToSubdivisionCode != "" {
		p["ShipToCountrySubdivisionCode"] = shipToSubdivisionCode
	}
	if labelPreference != "" {
		p["LabelPrepPreference"] = labelPreference
	}
	return s.request(ctx, client.Request{Action: "CreateInboundShipmentPlan", Params: p})
}

// InboundShipmentHeader carries the shipment-level fields of create and
// update calls.
type InboundShipmentHeader struct {
	ShipmentName                   string
	DestinationFulfillmentCenterID string
	ShipmentStatus                 string
	LabelPrepPreference            string
	CasesRequired                  any
}

func (s *InboundShipments) shipmentParams(operation, shipmentID string, header InboundShipmentHeader, items []models.InboundShipmentItem) (map[string]any, error) {
	if shipmentID == "" {
		return nil, fmt.Errorf("ShipmentId is required")
	}
	list := make([]any, 0, len(items))
	for _, item := range items {
		if err := item.ValidateOperation(operation); err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	keyed, err := params.EnumerateKeyedParam("InboundShipmentItems.member", list)
	if err != nil {
		return nil, err
	}
	from, err := s.shipFromParams("InboundShipmentHeader.ShipFromAddress")
	if err != nil {
		return nil, err
	}
	p := params.Merge(keyed, from, map[string]any{
		"ShipmentId":                           shipmentID,
		"InboundShipmentHeader.ShipmentName":   header.ShipmentName,
		"InboundShipmentHeader.DestinationFulfillmentCenterId": header.DestinationFulfillmentCenterID,
		"InboundShipmentHeader.ShipmentStatus": header.ShipmentStatus,
	})
	if header.LabelPrepPreference != "" {
		p["InboundShipmentHeader.LabelPrepPreference"] = header.LabelPrepPreference
	}
	if header.CasesRequired != nil {
		p["InboundShipmentHeader.AreCasesRequired"] = params.ToBool(header.CasesRequired)
	}
	return p, nil
}

// CreateInboundShipment creates a shipment from an accepted plan. Items
// must be the shipment variant, whose quantity parameter is
// QuantityShipped.
func (s *InboundShipments) CreateInboundShipment(ctx context.Context, shipmentID string, header InboundShipmentHeader, items []models.InboundShipmentItem) (*response.Response, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one item is required")
	}
	p, err := s.shipmentParams(models.OpCreateInboundShipment, shipmentID, header, items)
	if err != nil {
		return nil, err
	}
	return s.request(ctx, client.Request{Action: "CreateInboundShipment", Params: p, Method: http.MethodPost})
}

// UpdateInboundShipment updates an existing shipment; items are
// optional.
func (s *InboundShipments) UpdateInboundShipment(ctx context.Context, shipmentID string, header InboundShipmentHeader, items []models.InboundShipmentItem) (*response.Response, error) {
	p, err := s.shipmentParams(models.OpUpdateInboundShipment, shipmentID, header, items)
	if err != nil {
		return nil, err
	}
	return s.request(ctx, client.Request{Action: "UpdateInboundShipment", Params: p, Method: http.MethodPost})
}

// GetPrepInstructionsForSKU returns preparation instructions for SKUs.
func (s *InboundShipments) GetPrepInstructionsForSKU(ctx context.Context, skus []string, shipToCountryCode string) (*response.Response, error) {
	if shipToCountryCode == "" {
		shipToCountryCode = "US"
	}
	return s.request(ctx, client.Request{
		Action: "GetPrepInstructionsForSKU",
		Params: params.Merge(
			params.EnumerateParam("SellerSKUList.ID", skus),
			map[string]any{"ShipToCountryCode": shipToCountryCode},
		),
	})
}

// ListInboundShipments lists shipments filtered by status, ID and
// last-update window.
func (s *InboundShipments) ListInboundShipments(ctx context.Context, shipmentStatuses, shipmentIDs []string, lastUpdatedAfter, lastUpdatedBefore time.Time) (*response.Response, error) {
	p := params.Merge(
		params.EnumerateParam("ShipmentStatusList.member", shipmentStatuses),
		params.EnumerateParam("ShipmentIdList.member", shipmentIDs),
	)
	if !lastUpdatedAfter.IsZero() {
		p["LastUpdatedAfter"] = lastUpdatedAfter
	}
	if !lastUpdatedBefore.IsZero() {
		p["LastUpdatedBefore"] = lastUpdatedBefore
	}
	return s.request(ctx, client.Request{Action: "ListInboundShipments", Params: p})
}

// ListInboundShipmentsByNextToken continues ListInboundShipments.
func (s *InboundShipments) ListInboundShipmentsByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return s.byNextToken(ctx, "ListInboundShipments", token)
}

// ListInboundShipmentItems lists the items of one shipment, or of all
// shipments updated inside a window.
func (s *InboundShipments) ListInboundShipmentItems(ctx context.Context, shipmentID string, lastUpdatedAfter, lastUpdatedBefore time.Time) (*response.Response, error) {
	p := map[string]any{}
	if shipmentID != "" {
		p["ShipmentId"] = shipmentID
	}
	if !lastUpdatedAfter.IsZero() {
		p["LastUpdatedAfter"] = lastUpdatedAfter
	}
	if !lastUpdatedBefore.IsZero() {
		p["LastUpdatedBefore"] = lastUpdatedBefore
	}
	return s.request(ctx, client.Request{Action: "ListInboundShipmentItems", Params: p})
}

// ListInboundShipmentItemsByNextToken continues ListInboundShipmentItems.
func (s *InboundShipments) ListInboundShipmentItemsByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return s.byNextToken(ctx, "ListInboundShipmentItems", token)
}
