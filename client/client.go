// Package client implements the MWS request pipeline: it merges operation
// parameters with identity and protocol parameters, signs the request with
// Signature v2, dispatches it to the regional endpoint and wraps the
// response. Section facades are thin layers over Client.Do.
package client

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gurre/mws/creds"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/regions"
	"github.com/gurre/mws/response"
	"github.com/gurre/mws/signature"
)

const userAgent = "gurre-mws/1.0 (Language=Go)"

// HTTPDoer is the transport surface the client needs. *http.Client
// satisfies it; tests substitute a mock.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Compile-time interface check for the default transport.
var _ HTTPDoer = (*http.Client)(nil)

// SectionDescriptor declares the wire-level identity of one MWS section.
type SectionDescriptor struct {
	Name         string
	Path         string // URI path, "/" plus at least one segment
	Version      string // section protocol version, e.g. "2009-01-01"
	Namespace    string
	AccountLabel string // "Merchant" or "SellerId", section dependent
	// NextTokenOperations lists the actions that page via a sibling
	// {Action}ByNextToken operation.
	NextTokenOperations []string
}

// SupportsNextToken reports whether action pages via a ByNextToken
// sibling.
func (d SectionDescriptor) SupportsNextToken(action string) bool {
	for _, op := range d.NextTokenOperations {
		if op == action {
			return true
		}
	}
	return false
}

// Validate rejects descriptors without a usable URI path.
func (d SectionDescriptor) Validate() error {
	if len(d.Path) < 2 || !strings.HasPrefix(d.Path, "/") {
		return fmt.Errorf("section %s has no URI path configured", d.Name)
	}
	if d.Version == "" {
		return fmt.Errorf("section %s has no protocol version configured", d.Name)
	}
	if d.AccountLabel != "Merchant" && d.AccountLabel != "SellerId" {
		return fmt.Errorf("section %s must label the account as Merchant or SellerId", d.Name)
	}
	return nil
}

// Request describes one operation call before signing.
type Request struct {
	Method string // http.MethodGet or http.MethodPost; GET when empty
	Action string
	// Params holds the operation arguments, already expanded to flat
	// dotted paths by the params helpers.
	Params map[string]any
	// Body carries feed content for upload operations. A body requires a
	// Content-Type header and produces a Content-MD5 header.
	Body    []byte
	Headers map[string]string
	// ResultKey overrides the default "{Action}Result" subtree selection.
	ResultKey string
	// NextToken, when non-empty, re-routes the call to the ByNextToken
	// sibling operation carrying only the token. All other Params are
	// discarded, matching observed service behavior.
	NextToken string
}

// Client dispatches signed requests for one seller in one region. It is
// immutable after construction and safe for concurrent use when the
// underlying transport is.
type Client struct {
	creds    creds.Credentials
	region   regions.Region
	endpoint regions.Endpoint
	httpc    HTTPDoer
	log      logrus.FieldLogger
	metrics  *Metrics
	now      func() time.Time
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient substitutes the transport, typically to set timeouts or
// inject a mock.
func WithHTTPClient(h HTTPDoer) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger enables request-scoped structured logging.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithClock overrides the timestamp source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a client for the given credentials and region code. Region
// aliases such as UK are accepted; an unknown region is a configuration
// error.
func New(credentials creds.Credentials, region string, opts ...Option) (*Client, error) {
	if err := credentials.Validate(); err != nil {
		return nil, err
	}
	canonical, endpoint, err := regions.Resolve(region)
	if err != nil {
		return nil, err
	}
	c := &Client{
		creds:    credentials,
		region:   canonical,
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: 90 * time.Second},
		metrics:  NewMetrics(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Region returns the canonical region the client targets.
func (c *Client) Region() regions.Region {
	return c.region
}

// MarketplaceID returns the default marketplace for the client's region.
func (c *Client) MarketplaceID() string {
	return c.endpoint.MarketplaceID
}

// SellerID returns the configured seller identifier.
func (c *Client) SellerID() string {
	return c.creds.SellerID
}

// Metrics returns the client's request counters.
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// Do runs the full pipeline for one operation: parameter merge, cleaning,
// signing, dispatch and response wrapping. All client-side validation
// happens before any network traffic.
func (c *Client) Do(ctx context.Context, section SectionDescriptor, req Request) (*response.Response, error) {
	if err := section.Validate(); err != nil {
		return nil, err
	}

	action := req.Action
	callParams := req.Params
	if req.NextToken != "" {
		if !section.SupportsNextToken(action) {
			return nil, fmt.Errorf("operation %s does not support next-token continuation", action)
		}
		action += "ByNextToken"
		callParams = map[string]any{"NextToken": req.NextToken}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	merged := params.Merge(callParams, map[string]any{
		"AWSAccessKeyId":     c.creds.AccessKey,
		section.AccountLabel: c.creds.SellerID,
		"SignatureMethod":    signature.SignatureMethod,
		"SignatureVersion":   signature.SignatureVersion,
		"Timestamp":          c.now().UTC(),
		"Version":            section.Version,
		"Action":             action,
	})
	if c.creds.AuthToken != "" {
		merged["MWSAuthToken"] = c.creds.AuthToken
	}

	cleaned, err := params.CleanParams(merged)
	if err != nil {
		return nil, err
	}

	canonical := signature.CanonicalQuery(cleaned)
	sig := signature.Sign(method, c.endpoint.Host, section.Path, cleaned, c.creds.SecretKey)
	url := fmt.Sprintf("https://%s%s?%s&Signature=%s",
		c.endpoint.Host, section.Path, canonical, params.Escape(sig))

	httpReq, err := c.buildHTTPRequest(ctx, method, url, req)
	if err != nil {
		return nil, err
	}

	resultKey := req.ResultKey
	if resultKey == "" {
		resultKey = action + "Result"
	}

	start := c.now()
	res, err := c.dispatch(httpReq, resultKey)
	c.observe(section, action, start, err)
	return res, err
}

func (c *Client) buildHTTPRequest(ctx context.Context, method, url string, req Request) (*http.Request, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		if req.Headers["Content-Type"] == "" {
			return nil, fmt.Errorf("request body requires a Content-Type header")
		}
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", req.Action, err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if len(req.Body) > 0 {
		sum := md5.Sum(req.Body)
		httpReq.Header.Set("Content-MD5", base64.StdEncoding.EncodeToString(sum[:]))
	}
	return httpReq, nil
}

// dispatch performs the HTTP round trip and classifies the outcome into
// the error taxonomy.
func (c *Client) dispatch(httpReq *http.Request, resultKey string) (*response.Response, error) {
	httpRes, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer httpRes.Body.Close()

	body, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, &TransportError{
			Err:       err,
			RequestID: httpRes.Header.Get("x-mws-request-id"),
			Timestamp: httpRes.Header.Get("x-mws-timestamp"),
		}
	}

	res, err := response.New(httpRes.StatusCode, httpRes.Header, body, resultKey)
	if err != nil {
		return nil, err
	}

	if httpRes.StatusCode >= 400 {
		if perr := decodeErrorResponse(httpRes.StatusCode, res); perr != nil {
			return nil, perr
		}
		return nil, &TransportError{
			StatusCode: httpRes.StatusCode,
			Body:       body,
			RequestID:  httpRes.Header.Get("x-mws-request-id"),
			Timestamp:  httpRes.Header.Get("x-mws-timestamp"),
		}
	}
	return res, nil
}

func (c *Client) observe(section SectionDescriptor, action string, start time.Time, err error) {
	c.metrics.RecordRequest(c.now().Sub(start))
	if err != nil {
		c.metrics.RecordFailure()
	}
	if c.log == nil {
		return
	}
	entry := c.log.WithFields(logrus.Fields{
		"section": section.Name,
		"action":  action,
		"region":  string(c.region),
	})
	if err != nil {
		entry.WithError(err).Warn("MWS request failed")
		return
	}
	entry.Debug("MWS request completed")
}
