package sections

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/creds"
	"github.com/gurre/mws/models"
)

// recordingDoer captures outgoing requests and replies with a minimal
// valid response document.
type recordingDoer struct {
	lastRequest *http.Request
}

func (r *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	r.lastRequest = req
	return &http.Response{
		StatusCode: 200,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewBufferString(`<Response><ResponseMetadata><RequestId>r</RequestId></ResponseMetadata></Response>`)),
	}, nil
}

func (r *recordingDoer) query(t *testing.T) map[string][]string {
	t.Helper()
	require.NotNil(t, r.lastRequest, "no request was dispatched")
	return r.lastRequest.URL.Query()
}

func newTestClient(t *testing.T, doer *recordingDoer) *client.Client {
	t.Helper()
	c, err := client.New(creds.Credentials{
		AccessKey: "AK",
		SecretKey: "SK",
		SellerID:  "SELLER",
	}, "US", client.WithHTTPClient(doer))
	require.NoError(t, err)
	return c
}

func testAddress() models.Address {
	return models.Address{Name: "Warehouse", AddressLine1: "1 Dock Rd", City: "Reno", StateOrProvinceCode: "NV", PostalCode: "89501"}
}

func TestEveryFacadeHasValidDescriptor(t *testing.T) {
	doer := &recordingDoer{}
	for _, s := range All(newTestClient(t, doer)) {
		d := s.Descriptor()
		assert.NoError(t, d.Validate(), "section %s", d.Name)
		assert.NotEmpty(t, d.Namespace, "section %s", d.Name)
	}
}

func TestGetServiceStatusOnEverySection(t *testing.T) {
	doer := &recordingDoer{}
	for _, s := range All(newTestClient(t, doer)) {
		_, err := s.GetServiceStatus(context.Background())
		require.NoError(t, err, "section %s", s.Descriptor().Name)
		q := doer.query(t)
		assert.Equal(t, "GetServiceStatus", q["Action"][0])
		assert.Equal(t, s.Descriptor().Path, doer.lastRequest.URL.Path)
	}
}

func TestListInboundShipmentsEnumeratesFilters(t *testing.T) {
	doer := &recordingDoer{}
	inbound := NewInboundShipments(newTestClient(t, doer))

	_, err := inbound.ListInboundShipments(context.Background(),
		[]string{"WORKING", "SHIPPED"},
		[]string{"FBA1", "FBA2"},
		time.Time{}, time.Time{})
	require.NoError(t, err)

	q := doer.query(t)
	assert.Equal(t, "WORKING", q["ShipmentStatusList.member.1"][0])
	assert.Equal(t, "SHIPPED", q["ShipmentStatusList.member.2"][0])
	assert.Equal(t, "FBA1", q["ShipmentIdList.member.1"][0])
	assert.Equal(t, "FBA2", q["ShipmentIdList.member.2"][0])
	assert.NotContains(t, q, "ShipmentStatusList.member.3")
}

func TestListInboundShipmentsEmptyFiltersProduceNoKeys(t *testing.T) {
	doer := &recordingDoer{}
	inbound := NewInboundShipments(newTestClient(t, doer))

	_, err := inbound.ListInboundShipments(context.Background(), nil, nil, time.Time{}, time.Time{})
	require.NoError(t, err)

	for key := range doer.query(t) {
		assert.NotContains(t, key, "ShipmentStatusList")
		assert.NotContains(t, key, "ShipmentIdList")
	}
}

func TestShipFromAddressRoutesAreEquivalent(t *testing.T) {
	c := newTestClient(t, &recordingDoer{})
	addr := testAddress()

	viaOption := NewInboundShipments(c, WithShipFromAddress(addr))
	viaSetter := NewInboundShipments(c)
	viaSetter.SetFromAddress(addr)
	viaLegacy := NewInboundShipments(c)
	require.NoError(t, viaLegacy.SetShipFromAddress(map[string]any{
		"name":              addr.Name,
		"address_1":         addr.AddressLine1,
		"city":              addr.City,
		"state_or_province": addr.StateOrProvinceCode,
		"postal_code":       addr.PostalCode,
	}))

	assert.Equal(t, viaOption.FromAddress(), viaSetter.FromAddress())
	assert.Equal(t, viaOption.FromAddress(), viaLegacy.FromAddress())
}

func TestCreateInboundShipmentPlanRequiresAddress(t *testing.T) {
	inbound := NewInboundShipments(newTestClient(t, &recordingDoer{}))
	_, err := inbound.CreateInboundShipmentPlan(context.Background(),
		[]models.InboundShipmentPlanRequestItem{{SellerSKU: "s", Quantity: 1}}, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ship-from address")
}

func TestCreateInboundShipmentPlanParams(t *testing.T) {
	doer := &recordingDoer{}
	inbound := NewInboundShipments(newTestClient(t, doer), WithShipFromAddress(testAddress()))

	_, err := inbound.CreateInboundShipmentPlan(context.Background(), []models.InboundShipmentPlanRequestItem{
		{SellerSKU: "SKU1", Quantity: 5},
		{SellerSKU: "SKU2", Quantity: 2},
	}, "", "", "")
	require.NoError(t, err)

	q := doer.query(t)
	assert.Equal(t, "SKU1", q["InboundShipmentPlanRequestItems.member.1.SellerSKU"][0])
	assert.Equal(t, "5", q["InboundShipmentPlanRequestItems.member.1.Quantity"][0])
	assert.Equal(t, "SKU2", q["InboundShipmentPlanRequestItems.member.2.SellerSKU"][0])
	assert.Equal(t, "Warehouse", q["ShipFromAddress.Name"][0])
	assert.Equal(t, "US", q["ShipFromAddress.CountryCode"][0])
}

func TestCreateInboundShipmentUsesQuantityShipped(t *testing.T) {
	doer := &recordingDoer{}
	inbound := NewInboundShipments(newTestClient(t, doer), WithShipFromAddress(testAddress()))

	_, err := inbound.CreateInboundShipment(context.Background(), "FBA123",
		InboundShipmentHeader{ShipmentName: "March restock", DestinationFulfillmentCenterID: "PHX3", ShipmentStatus: "WORKING"},
		[]models.InboundShipmentItem{{SellerSKU: "SKU1", QuantityShipped: 12}})
	require.NoError(t, err)

	q := doer.query(t)
	assert.Equal(t, http.MethodPost, doer.lastRequest.Method)
	assert.Equal(t, "FBA123", q["ShipmentId"][0])
	assert.Equal(t, "12", q["InboundShipmentItems.member.1.QuantityShipped"][0])
	assert.Equal(t, "March restock", q["InboundShipmentHeader.ShipmentName"][0])
	assert.Equal(t, "Warehouse", q["InboundShipmentHeader.ShipFromAddress.Name"][0])
}

func TestRequestReportOptions(t *testing.T) {
	doer := &recordingDoer{}
	reports := NewReports(newTestClient(t, doer))

	_, err := reports.RequestReport(context.Background(), "_GET_FLAT_FILE_ORDERS_DATA_",
		time.Time{}, time.Time{}, nil,
		map[string]any{"custom": true, "somethingelse": "abc"})
	require.NoError(t, err)

	q := doer.query(t)
	assert.Equal(t, "custom=true;somethingelse=abc", q["ReportOptions"][0])
	assert.Equal(t, "_GET_FLAT_FILE_ORDERS_DATA_", q["ReportType"][0])
}

func TestRequestReportResolvesAlias(t *testing.T) {
	doer := &recordingDoer{}
	reports := NewReports(newTestClient(t, doer))

	_, err := reports.RequestReport(context.Background(), "orders", time.Time{}, time.Time{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "_GET_FLAT_FILE_ORDERS_DATA_", doer.query(t)["ReportType"][0])
}

func TestManageReportScheduleRejectsUnknownSchedule(t *testing.T) {
	reports := NewReports(newTestClient(t, &recordingDoer{}))
	_, err := reports.ManageReportSchedule(context.Background(), "orders", "sometimes", time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sometimes")
}

func TestSubmitFeedSendsBody(t *testing.T) {
	doer := &recordingDoer{}
	feeds := NewFeeds(newTestClient(t, doer))

	feed := []byte("<AmazonEnvelope/>")
	_, err := feeds.SubmitFeed(context.Background(), feed, "_POST_PRODUCT_DATA_", "text/xml", []string{"ATVPDKIKX0DER"}, false)
	require.NoError(t, err)

	q := doer.query(t)
	assert.Equal(t, http.MethodPost, doer.lastRequest.Method)
	assert.Equal(t, "SubmitFeed", q["Action"][0])
	assert.Equal(t, "_POST_PRODUCT_DATA_", q["FeedType"][0])
	assert.Equal(t, "false", q["PurgeAndReplace"][0])
	assert.Equal(t, "ATVPDKIKX0DER", q["MarketplaceIdList.Id.1"][0])
	assert.Equal(t, "text/xml", doer.lastRequest.Header.Get("Content-Type"))
	assert.NotEmpty(t, doer.lastRequest.Header.Get("Content-MD5"))
}

func TestFeedsUsesMerchantLabel(t *testing.T) {
	doer := &recordingDoer{}
	feeds := NewFeeds(newTestClient(t, doer))

	_, err := feeds.GetFeedSubmissionResult(context.Background(), "12345")
	require.NoError(t, err)

	q := doer.query(t)
	assert.Equal(t, "SELLER", q["Merchant"][0])
	assert.NotContains(t, q, "SellerId")
}

func TestOrdersUsesSellerIdLabel(t *testing.T) {
	doer := &recordingDoer{}
	orders := NewOrders(newTestClient(t, doer))

	_, err := orders.GetOrder(context.Background(), []string{"111-111"})
	require.NoError(t, err)

	q := doer.query(t)
	assert.Equal(t, "SELLER", q["SellerId"][0])
	assert.NotContains(t, q, "Merchant")
}

func TestListOrdersDefaultsMarketplace(t *testing.T) {
	doer := &recordingDoer{}
	orders := NewOrders(newTestClient(t, doer))

	_, err := orders.ListOrders(context.Background(), nil, ListOrdersFilter{CreatedAfter: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "ATVPDKIKX0DER", doer.query(t)["MarketplaceId.Id.1"][0])
}

func TestNextTokenAliasMethods(t *testing.T) {
	doer := &recordingDoer{}
	c := newTestClient(t, doer)

	cases := []struct {
		name   string
		call   func(ctx context.Context) error
		action string
	}{
		{"orders", func(ctx context.Context) error {
			_, err := NewOrders(c).ListOrdersByNextToken(ctx, "tok")
			return err
		}, "ListOrdersByNextToken"},
		{"reports", func(ctx context.Context) error {
			_, err := NewReports(c).GetReportListByNextToken(ctx, "tok")
			return err
		}, "GetReportListByNextToken"},
		{"inventory", func(ctx context.Context) error {
			_, err := NewInventory(c).ListInventorySupplyByNextToken(ctx, "tok")
			return err
		}, "ListInventorySupplyByNextToken"},
		{"finances", func(ctx context.Context) error {
			_, err := NewFinances(c).ListFinancialEventsByNextToken(ctx, "tok")
			return err
		}, "ListFinancialEventsByNextToken"},
		{"sellers", func(ctx context.Context) error {
			_, err := NewSellers(c).ListMarketplaceParticipationsByNextToken(ctx, "tok")
			return err
		}, "ListMarketplaceParticipationsByNextToken"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.call(context.Background()))
			q := doer.query(t)
			assert.Equal(t, tc.action, q["Action"][0])
			assert.Equal(t, "tok", q["NextToken"][0])
		})
	}
}

func TestInventorySupplySelectorsAreExclusive(t *testing.T) {
	inv := NewInventory(newTestClient(t, &recordingDoer{}))
	_, err := inv.ListInventorySupply(context.Background(), []string{"SKU1"}, time.Now(), "")
	require.Error(t, err)
}

func TestGetMyFeesEstimateFlattensRequests(t *testing.T) {
	doer := &recordingDoer{}
	products := NewProducts(newTestClient(t, doer))

	_, err := products.GetMyFeesEstimate(context.Background(), models.FeesEstimateRequest{
		MarketplaceID: "ATVPDKIKX0DER",
		IDType:        "ASIN",
		IDValue:       "B000TEST",
		Identifier:    "req-1",
		Price: models.PriceToEstimateFees{
			ListingPrice: models.CurrencyAmount{CurrencyCode: "USD", Amount: 19.99},
		},
	})
	require.NoError(t, err)

	q := doer.query(t)
	prefix := "FeesEstimateRequestList.FeesEstimateRequest.1."
	assert.Equal(t, "ATVPDKIKX0DER", q[prefix+"MarketplaceId"][0])
	assert.Equal(t, "B000TEST", q[prefix+"IdValue"][0])
	assert.Equal(t, "USD", q[prefix+"PriceToEstimateFees.ListingPrice.CurrencyCode"][0])
	assert.Equal(t, "19.99", q[prefix+"PriceToEstimateFees.ListingPrice.Amount"][0])
	assert.Equal(t, "false", q[prefix+"IsAmazonFulfilled"][0])
}

func TestGetMyFeesEstimateValidates(t *testing.T) {
	products := NewProducts(newTestClient(t, &recordingDoer{}))
	_, err := products.GetMyFeesEstimate(context.Background(), models.FeesEstimateRequest{})
	require.Error(t, err)
}

func TestItemKindRejectedAcrossOperations(t *testing.T) {
	inbound := NewInboundShipments(newTestClient(t, &recordingDoer{}), WithShipFromAddress(testAddress()))

	// a shipment item cannot be smuggled into a plan call via the legacy
	// adapter; the typed API makes the mismatch unrepresentable, so the
	// pairing check is exercised directly
	item := models.InboundShipmentItem{SellerSKU: "s", QuantityShipped: 1}
	assert.Error(t, item.ValidateOperation(models.OpCreateInboundShipmentPlan))

	_, err := inbound.CreateInboundShipment(context.Background(), "", InboundShipmentHeader{}, []models.InboundShipmentItem{item})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ShipmentId")
}

func TestReportOptionsValueBooleans(t *testing.T) {
	got := reportOptionsValue(map[string]any{"custom": true, "other": false, "n": 3})
	assert.Equal(t, "custom=true;n=3;other=false", got)
}
