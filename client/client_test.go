package client

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurre/mws/creds"
)

// mockDoer captures the outgoing request and returns a canned response.
type mockDoer struct {
	lastRequest *http.Request
	lastBody    []byte
	status      int
	header      http.Header
	body        string
	err         error
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.lastRequest = req
	if req.Body != nil {
		m.lastBody, _ = io.ReadAll(req.Body)
	}
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = 200
	}
	header := m.header
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

const statusXML = `<GetServiceStatusResponse>
  <GetServiceStatusResult><Status>GREEN</Status></GetServiceStatusResult>
  <ResponseMetadata><RequestId>req-1</RequestId></ResponseMetadata>
</GetServiceStatusResponse>`

func testCreds() creds.Credentials {
	return creds.Credentials{
		AccessKey: "AKIAEXAMPLE",
		SecretKey: "secret",
		SellerID:  "SELLER123",
	}
}

func testSection() SectionDescriptor {
	return SectionDescriptor{
		Name:                "Orders",
		Path:                "/Orders/2013-09-01",
		Version:             "2013-09-01",
		AccountLabel:        "SellerId",
		NextTokenOperations: []string{"ListOrders"},
	}
}

func newTestClient(t *testing.T, mock *mockDoer) *Client {
	t.Helper()
	c, err := New(testCreds(), "US", WithHTTPClient(mock), WithClock(func() time.Time {
		return time.Date(2020, 10, 12, 0, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)
	return c
}

func TestNewRejectsUnknownRegion(t *testing.T) {
	_, err := New(testCreds(), "XX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XX")
}

func TestNewRejectsIncompleteCredentials(t *testing.T) {
	c := testCreds()
	c.SellerID = ""
	_, err := New(c, "US")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seller ID")
}

func TestNewResolvesAlias(t *testing.T) {
	c, err := New(testCreds(), "UK")
	require.NoError(t, err)
	assert.Equal(t, "GB", string(c.Region()))
}

func TestDoInjectsCommonParameters(t *testing.T) {
	mock := &mockDoer{body: statusXML}
	c := newTestClient(t, mock)

	_, err := c.Do(context.Background(), testSection(), Request{Action: "GetServiceStatus"})
	require.NoError(t, err)

	u := mock.lastRequest.URL
	assert.Equal(t, "mws.amazonservices.com", u.Host)
	assert.Equal(t, "/Orders/2013-09-01", u.Path)

	q := u.Query()
	assert.Equal(t, "AKIAEXAMPLE", q.Get("AWSAccessKeyId"))
	assert.Equal(t, "SELLER123", q.Get("SellerId"))
	assert.Equal(t, "HmacSHA256", q.Get("SignatureMethod"))
	assert.Equal(t, "2", q.Get("SignatureVersion"))
	assert.Equal(t, "2013-09-01", q.Get("Version"))
	assert.Equal(t, "GetServiceStatus", q.Get("Action"))
	assert.Equal(t, "2020-10-12T00:00:00", q.Get("Timestamp"))
	assert.NotEmpty(t, q.Get("Signature"))
	assert.Empty(t, q.Get("MWSAuthToken"))
}

func TestDoIncludesAuthTokenWhenConfigured(t *testing.T) {
	mock := &mockDoer{body: statusXML}
	credentials := testCreds()
	credentials.AuthToken = "amzn.mws.token"
	c, err := New(credentials, "US", WithHTTPClient(mock))
	require.NoError(t, err)

	_, err = c.Do(context.Background(), testSection(), Request{Action: "GetServiceStatus"})
	require.NoError(t, err)
	assert.Equal(t, "amzn.mws.token", mock.lastRequest.URL.Query().Get("MWSAuthToken"))
}

func TestDoCanonicalQueryIsSorted(t *testing.T) {
	mock := &mockDoer{body: statusXML}
	c := newTestClient(t, mock)

	_, err := c.Do(context.Background(), testSection(), Request{
		Action: "GetServiceStatus",
		Params: map[string]any{"Zebra": "z", "Alpha": "a"},
	})
	require.NoError(t, err)

	raw := mock.lastRequest.URL.RawQuery
	// Signature is appended after the canonical portion
	canonical := raw[:bytes.LastIndex([]byte(raw), []byte("&Signature="))]
	var keys []string
	for _, pair := range bytes.Split([]byte(canonical), []byte("&")) {
		keys = append(keys, string(bytes.SplitN(pair, []byte("="), 2)[0]))
	}
	assert.True(t, sort.StringsAreSorted(keys), "canonical keys not sorted: %v", keys)
}

func TestDoRejectsSectionWithoutPath(t *testing.T) {
	c := newTestClient(t, &mockDoer{body: statusXML})
	bad := testSection()
	bad.Path = "/"
	_, err := c.Do(context.Background(), bad, Request{Action: "GetServiceStatus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URI path")
}

func TestDoNextTokenReroutesAndDiscardsArguments(t *testing.T) {
	mock := &mockDoer{body: statusXML}
	c := newTestClient(t, mock)

	_, err := c.Do(context.Background(), testSection(), Request{
		Action:    "ListOrders",
		NextToken: "token123",
		Params: map[string]any{
			"CreatedAfter":       "2020-01-01",
			"MarketplaceId.Id.1": "ATVPDKIKX0DER",
		},
	})
	require.NoError(t, err)

	q := mock.lastRequest.URL.Query()
	assert.Equal(t, "ListOrdersByNextToken", q.Get("Action"))
	assert.Equal(t, "token123", q.Get("NextToken"))
	assert.Empty(t, q.Get("CreatedAfter"))
	assert.Empty(t, q.Get("MarketplaceId.Id.1"))
}

func TestDoNextTokenUnsupportedOperation(t *testing.T) {
	c := newTestClient(t, &mockDoer{body: statusXML})
	_, err := c.Do(context.Background(), testSection(), Request{
		Action:    "GetOrder",
		NextToken: "token123",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GetOrder")
}

func TestDoBodySetsContentHeaders(t *testing.T) {
	mock := &mockDoer{body: statusXML}
	c := newTestClient(t, mock)

	feed := []byte("sku\tprice\nABC\t9.99\n")
	_, err := c.Do(context.Background(), testSection(), Request{
		Method:  http.MethodPost,
		Action:  "SubmitFeed",
		Body:    feed,
		Headers: map[string]string{"Content-Type": "text/tab-separated-values"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, mock.lastRequest.Method)
	assert.Equal(t, "text/tab-separated-values", mock.lastRequest.Header.Get("Content-Type"))
	sum := md5.Sum(feed)
	assert.Equal(t, base64.StdEncoding.EncodeToString(sum[:]), mock.lastRequest.Header.Get("Content-MD5"))
	assert.Equal(t, feed, mock.lastBody)
}

func TestDoBodyWithoutContentTypeFails(t *testing.T) {
	c := newTestClient(t, &mockDoer{body: statusXML})
	_, err := c.Do(context.Background(), testSection(), Request{
		Method: http.MethodPost,
		Action: "SubmitFeed",
		Body:   []byte("data"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Content-Type")
}

func TestDoWrapsTransportFailure(t *testing.T) {
	mock := &mockDoer{err: fmt.Errorf("connection refused")}
	c := newTestClient(t, mock)

	_, err := c.Do(context.Background(), testSection(), Request{Action: "GetServiceStatus"})
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, terr.Error(), "connection refused")
}

func TestDoDecodesErrorResponse(t *testing.T) {
	body := `<ErrorResponse>
  <Error>
    <Type>Sender</Type>
    <Code>InvalidParameterValue</Code>
    <Message>CreatedAfter is invalid</Message>
  </Error>
  <RequestID>err-req-9</RequestID>
</ErrorResponse>`
	mock := &mockDoer{status: 400, body: body}
	c := newTestClient(t, mock)

	_, err := c.Do(context.Background(), testSection(), Request{Action: "ListOrders"})
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "InvalidParameterValue", perr.Code)
	assert.Equal(t, "CreatedAfter is invalid", perr.Message)
	assert.Equal(t, "err-req-9", perr.RequestID)
	assert.Equal(t, 400, perr.StatusCode)
}

func TestDoNonXMLServerErrorIsTransportError(t *testing.T) {
	header := http.Header{}
	header.Set("x-mws-request-id", "rid-1")
	header.Set("x-mws-timestamp", "2020-10-12T00:00:00Z")
	mock := &mockDoer{status: 503, body: "Service Unavailable", header: header}
	c := newTestClient(t, mock)

	_, err := c.Do(context.Background(), testSection(), Request{Action: "ListOrders"})
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 503, terr.StatusCode)
	assert.Equal(t, "rid-1", terr.RequestID)
	assert.Equal(t, "2020-10-12T00:00:00Z", terr.Timestamp)
}

func TestDoParsesResult(t *testing.T) {
	mock := &mockDoer{body: statusXML}
	c := newTestClient(t, mock)

	res, err := c.Do(context.Background(), testSection(), Request{Action: "GetServiceStatus"})
	require.NoError(t, err)
	assert.Equal(t, "GREEN", res.ParsedDict().GetString("Status"))
	assert.Equal(t, "req-1", res.RequestID())
}

func TestDoRejectsUncleanableParameter(t *testing.T) {
	c := newTestClient(t, &mockDoer{body: statusXML})
	_, err := c.Do(context.Background(), testSection(), Request{
		Action: "ListOrders",
		Params: map[string]any{"Bad": []int{1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad")
}

func TestMetricsCountRequests(t *testing.T) {
	mock := &mockDoer{body: statusXML}
	c := newTestClient(t, mock)

	_, err := c.Do(context.Background(), testSection(), Request{Action: "GetServiceStatus"})
	require.NoError(t, err)
	mock.err = fmt.Errorf("boom")
	_, _ = c.Do(context.Background(), testSection(), Request{Action: "GetServiceStatus"})

	snap := c.Metrics().Snapshot()
	assert.Equal(t, int64(2), snap.Requests)
	assert.Equal(t, int64(1), snap.Failures)
}

func TestSignatureMatchesCanonicalRequest(t *testing.T) {
	// same inputs, two calls: identical query strings including signature
	mock1 := &mockDoer{body: statusXML}
	mock2 := &mockDoer{body: statusXML}
	c1 := newTestClient(t, mock1)
	c2 := newTestClient(t, mock2)

	req := Request{Action: "ListOrders", Params: map[string]any{"MarketplaceId.Id.1": "ATVPDKIKX0DER"}}
	_, err := c1.Do(context.Background(), testSection(), req)
	require.NoError(t, err)
	_, err = c2.Do(context.Background(), testSection(), Request{Action: "ListOrders", Params: map[string]any{"MarketplaceId.Id.1": "ATVPDKIKX0DER"}})
	require.NoError(t, err)

	assert.Equal(t, mock1.lastRequest.URL.String(), mock2.lastRequest.URL.String())
}

func TestURLForm(t *testing.T) {
	mock := &mockDoer{body: statusXML}
	c := newTestClient(t, mock)
	_, err := c.Do(context.Background(), testSection(), Request{Action: "GetServiceStatus"})
	require.NoError(t, err)

	u, err := url.Parse(mock.lastRequest.URL.String())
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
}
