package sections

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/models"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/response"
)

// Reports requests, lists, schedules and downloads seller reports.
type Reports struct {
	section
}

// NewReports builds the Reports facade.
func NewReports(c *client.Client) *Reports {
	return &Reports{section{c: c, d: client.SectionDescriptor{
		Name:         "Reports",
		Path:         "/Reports/2009-01-01",
		Version:      "2009-01-01",
		Namespace:    "http://mws.amazonaws.com/doc/2009-01-01/",
		AccountLabel: "Merchant",
		NextTokenOperations: []string{
			"GetReportRequestList",
			"GetReportList",
			"GetReportScheduleList",
		},
	}}}
}

// reportOptionsValue flattens a report options mapping into the
// "key=value;key=value" string the service expects. Booleans use their
// lowercase wire form. Keys are sorted for deterministic output.
func reportOptionsValue(options map[string]any) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v := options[k]
		if b, ok := v.(bool); ok {
			pairs = append(pairs, fmt.Sprintf("%s=%t", k, b))
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(pairs, ";")
}

// RequestReport asks the service to generate a report. The reportType
// accepts either a service constant or a friendly alias such as "orders".
func (r *Reports) RequestReport(ctx context.Context, reportType string, startDate, endDate time.Time, marketplaceIDs []string, reportOptions map[string]any) (*response.Response, error) {
	p := params.Merge(
		map[string]any{
			"ReportType": string(models.ReportTypeFromAlias(reportType)),
		},
		params.EnumerateParam("MarketplaceIdList.Id", marketplaceIDs),
	)
	if !startDate.IsZero() {
		p["StartDate"] = startDate
	}
	if !endDate.IsZero() {
		p["EndDate"] = endDate
	}
	if len(reportOptions) > 0 {
		p["ReportOptions"] = reportOptionsValue(reportOptions)
	}
	return r.request(ctx, client.Request{Action: "RequestReport", Params: p})
}

// GetReportRequestList lists report generation requests.
func (r *Reports) GetReportRequestList(ctx context.Context, requestIDs, reportTypes, statuses []string, maxCount int, fromDate, toDate time.Time) (*response.Response, error) {
	p := params.Merge(
		params.EnumerateParam("ReportRequestIdList.Id", requestIDs),
		params.EnumerateParam("ReportTypeList.Type", reportTypes),
		params.EnumerateParam("ReportProcessingStatusList.Status", statuses),
	)
	if maxCount > 0 {
		p["MaxCount"] = maxCount
	}
	if !fromDate.IsZero() {
		p["RequestedFromDate"] = fromDate
	}
	if !toDate.IsZero() {
		p["RequestedToDate"] = toDate
	}
	return r.request(ctx, client.Request{Action: "GetReportRequestList", Params: p})
}

// GetReportRequestListByNextToken continues GetReportRequestList.
func (r *Reports) GetReportRequestListByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return r.byNextToken(ctx, "GetReportRequestList", token)
}

// GetReportList lists generated reports available for download.
func (r *Reports) GetReportList(ctx context.Context, requestIDs, reportTypes []string, acknowledged any, maxCount int, fromDate, toDate time.Time) (*response.Response, error) {
	p := params.Merge(
		params.EnumerateParam("ReportRequestIdList.Id", requestIDs),
		params.EnumerateParam("ReportTypeList.Type", reportTypes),
	)
	if acknowledged != nil {
		p["Acknowledged"] = params.ToBool(acknowledged)
	}
	if maxCount > 0 {
		p["MaxCount"] = maxCount
	}
	if !fromDate.IsZero() {
		p["AvailableFromDate"] = fromDate
	}
	if !toDate.IsZero() {
		p["AvailableToDate"] = toDate
	}
	return r.request(ctx, client.Request{Action: "GetReportList", Params: p})
}

// GetReportListByNextToken continues GetReportList.
func (r *Reports) GetReportListByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return r.byNextToken(ctx, "GetReportList", token)
}

// GetReportCount counts available reports matching the filters.
func (r *Reports) GetReportCount(ctx context.Context, reportTypes []string, acknowledged any, fromDate, toDate time.Time) (*response.Response, error) {
	p := params.EnumerateParam("ReportTypeList.Type", reportTypes)
	if acknowledged != nil {
		p["Acknowledged"] = params.ToBool(acknowledged)
	}
	if !fromDate.IsZero() {
		p["AvailableFromDate"] = fromDate
	}
	if !toDate.IsZero() {
		p["AvailableToDate"] = toDate
	}
	return r.request(ctx, client.Request{Action: "GetReportCount", Params: p})
}

// GetReport downloads one report. Most report payloads are flat files
// (tab-delimited, CSV, sometimes ZIP or PDF); the response exposes the
// raw bytes and validates the Content-MD5 header when present.
func (r *Reports) GetReport(ctx context.Context, reportID string) (*response.Response, error) {
	return r.request(ctx, client.Request{
		Action: "GetReport",
		Params: map[string]any{"ReportId": reportID},
	})
}

// ManageReportSchedule sets or removes the generation schedule for a
// report type. The schedule accepts aliases such as "daily" or "never".
func (r *Reports) ManageReportSchedule(ctx context.Context, reportType, schedule string, scheduleDate time.Time) (*response.Response, error) {
	resolved, err := models.ScheduleFromAlias(schedule)
	if err != nil {
		return nil, err
	}
	p := map[string]any{
		"ReportType": string(models.ReportTypeFromAlias(reportType)),
		"Schedule":   string(resolved),
	}
	if !scheduleDate.IsZero() {
		p["ScheduleDate"] = scheduleDate
	}
	return r.request(ctx, client.Request{Action: "ManageReportSchedule", Params: p})
}

// GetReportScheduleList lists configured report schedules.
func (r *Reports) GetReportScheduleList(ctx context.Context, reportTypes []string) (*response.Response, error) {
	return r.request(ctx, client.Request{
		Action: "GetReportScheduleList",
		Params: params.EnumerateParam("ReportTypeList.Type", reportTypes),
	})
}

// GetReportScheduleListByNextToken continues GetReportScheduleList.
func (r *Reports) GetReportScheduleListByNextToken(ctx context.Context, token string) (*response.Response, error) {
	return r.byNextToken(ctx, "GetReportScheduleList", token)
}

// GetReportScheduleCount counts configured report schedules.
func (r *Reports) GetReportScheduleCount(ctx context.Context, reportTypes []string) (*response.Response, error) {
	return r.request(ctx, client.Request{
		Action: "GetReportScheduleCount",
		Params: params.EnumerateParam("ReportTypeList.Type", reportTypes),
	})
}

// UpdateReportAcknowledgements marks reports as acknowledged or not.
func (r *Reports) UpdateReportAcknowledgements(ctx context.Context, reportIDs []string, acknowledged any) (*response.Response, error) {
	p := params.EnumerateParam("ReportIdList.Id", reportIDs)
	if acknowledged != nil {
		p["Acknowledged"] = params.ToBool(acknowledged)
	}
	return r.request(ctx, client.Request{Action: "UpdateReportAcknowledgements", Params: p})
}
