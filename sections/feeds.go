package sections

import (
	"context"
	"net/http"
	"time"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/response"
)

// Feeds uploads seller data files and tracks their processing.
type Feeds struct {
	section
}

// NewFeeds builds the Feeds facade.
func NewFeeds(c *client.Client) *Feeds {
	return &Feeds{section{c: c, d: client.SectionDescriptor{
		Name:                "Feeds",
		Path:                "/Feeds/2009-01-01",
		Version:             "2009-01-01",
		Namespace:           "http://mws.amazonaws.com/doc/2009-01-01/",
		AccountLabel:        "Merchant",
		NextTokenOperations: []string{"GetFeedSubmissionList"},
	}}}
}

// SubmitFeed uploads a feed file. The body is sent verbatim with the
// given content type and an MD5 integrity header; it is not form-encoded.
// PurgeAndReplace is dangerous and off by default.
func (f *Feeds) SubmitFeed(ctx context.Context, feed []byte, feedType, contentType string, marketplaceIDs []string, purgeAndReplace any) (*response.Response, error) {
	p := params.Merge(
		map[string]any{
			"FeedType":        feedType,
			"PurgeAndReplace": params.ToBool(purgeAndReplace),
		},
		params.EnumerateParam("MarketplaceIdList.Id", marketplaceIDs),
	)
	return f.request(ctx, client.Request{
		Method:  http.MethodPost,
		Action:  "SubmitFeed",
		Params:  p,
		Body:    feed,
		Headers: map[string]string{"Content-Type": contentType},
	})
}

// GetFeedSubmissionList lists feed submissions, optionally filtered by
// IDs, types, statuses and a submitted-date window.
func (f *Feeds) GetFeedSubmissionList(ctx context.Context, submissionIDs, feedTypes, statuses []string, maxCount int, fromDate, toDate time.Time) (*response.Response, error) {
	p := params.Merge(
		params.EnumerateParam("FeedSubmissionIdList.Id", submissionIDs),
		params.EnumerateParam("FeedTypeList.Type", feedTypes),
		params.EnumerateParam("FeedProcessingStatusList.Status", statuses),
	)
	if maxCount > 0 {
		p["MaxCount"] = maxCount
	}
	if !fromDate.IsZero() {
		p["SubmittedFromDate"] = fromDate
	}
	if !toDate.IsZero() {
		p["SubmittedToDate"] = toDate
	}
	return f.request(ctx, client.Request{Action: "GetFeedSubmissionList", Params: p})
}

// GetFeedSubmissionListByNextToken continues GetFeedSubmissionList.
func (f *Feeds) GetFeedSubmissionListByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return f.byNextToken(ctx, "GetFeedSubmissionList", token)
}

// GetFeedSubmissionCount counts feed submissions matching the filters.
func (f *Feeds) GetFeedSubmissionCount(ctx context.Context, feedTypes, statuses []string, fromDate, toDate time.Time) (*response.Response, error) {
	p := params.Merge(
		params.EnumerateParam("FeedTypeList.Type", feedTypes),
		params.EnumerateParam("FeedProcessingStatusList.Status", statuses),
	)
	if !fromDate.IsZero() {
		p["SubmittedFromDate"] = fromDate
	}
	if !toDate.IsZero() {
		p["SubmittedToDate"] = toDate
	}
	return f.request(ctx, client.Request{Action: "GetFeedSubmissionCount", Params: p})
}

// CancelFeedSubmissions cancels queued feed submissions by ID or type.
func (f *Feeds) CancelFeedSubmissions(ctx context.Context, submissionIDs, feedTypes []string) (*response.Response, error) {
	p := params.Merge(
		params.EnumerateParam("FeedSubmissionIdList.Id", submissionIDs),
		params.EnumerateParam("FeedTypeList.Type", feedTypes),
	)
	return f.request(ctx, client.Request{Action: "CancelFeedSubmissions", Params: p})
}

// GetFeedSubmissionResult fetches the processing report for one feed
// submission. The payload is often a flat file rather than XML, in which
// case the response exposes the raw bytes.
func (f *Feeds) GetFeedSubmissionResult(ctx context.Context, submissionID string) (*response.Response, error) {
	return f.request(ctx, client.Request{
		Action:    "GetFeedSubmissionResult",
		Params:    map[string]any{"FeedSubmissionId": submissionID},
		ResultKey: "Message",
	})
}
