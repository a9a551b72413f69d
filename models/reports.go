package models

import (
	"fmt"
	"strings"
)

// ProcessingStatus is the closed set of feed and report processing
// states.
type ProcessingStatus string

const (
	StatusSubmitted  ProcessingStatus = "_SUBMITTED_"
	StatusInProgress ProcessingStatus = "_IN_PROGRESS_"
	StatusCancelled  ProcessingStatus = "_CANCELLED_"
	StatusDone       ProcessingStatus = "_DONE_"
	StatusDoneNoData ProcessingStatus = "_DONE_NO_DATA_"
)

// Schedule is the closed set of report schedule periods.
type Schedule string

const (
	ScheduleEvery15Minutes Schedule = "_15_MINUTES_"
	ScheduleEvery30Minutes Schedule = "_30_MINUTES_"
	ScheduleEveryHour      Schedule = "_1_HOUR_"
	ScheduleEvery2Hours    Schedule = "_2_HOURS_"
	ScheduleEvery4Hours    Schedule = "_4_HOURS_"
	ScheduleEvery8Hours    Schedule = "_8_HOURS_"
	ScheduleEvery12Hours   Schedule = "_12_HOURS_"
	ScheduleDaily          Schedule = "_1_DAY_"
	ScheduleEvery2Days     Schedule = "_2_DAYS_"
	ScheduleEvery3Days     Schedule = "_72_HOURS_"
	ScheduleWeekly         Schedule = "_1_WEEK_"
	ScheduleEvery14Days    Schedule = "_14_DAYS_"
	ScheduleEvery15Days    Schedule = "_15_DAYS_"
	ScheduleEvery30Days    Schedule = "_30_DAYS_"
	ScheduleDelete         Schedule = "_NEVER_"
)

// scheduleAliases maps human-readable spellings to the service's opaque
// constants.
var scheduleAliases = map[string]Schedule{
	"15min":  ScheduleEvery15Minutes,
	"15m":    ScheduleEvery15Minutes,
	"30min":  ScheduleEvery30Minutes,
	"30m":    ScheduleEvery30Minutes,
	"hourly": ScheduleEveryHour,
	"1h":     ScheduleEveryHour,
	"2h":     ScheduleEvery2Hours,
	"4h":     ScheduleEvery4Hours,
	"8h":     ScheduleEvery8Hours,
	"12h":    ScheduleEvery12Hours,
	"daily":  ScheduleDaily,
	"1d":     ScheduleDaily,
	"2d":     ScheduleEvery2Days,
	"3d":     ScheduleEvery3Days,
	"72h":    ScheduleEvery3Days,
	"weekly": ScheduleWeekly,
	"1w":     ScheduleWeekly,
	"14d":    ScheduleEvery14Days,
	"15d":    ScheduleEvery15Days,
	"30d":    ScheduleEvery30Days,
	"never":  ScheduleDelete,
	"delete": ScheduleDelete,
}

// ScheduleFromAlias resolves either a human alias such as "daily" or an
// already-opaque service constant. Unknown values are a client error.
func ScheduleFromAlias(value string) (Schedule, error) {
	trimmed := strings.TrimSpace(value)
	if s, ok := scheduleAliases[strings.ToLower(trimmed)]; ok {
		return s, nil
	}
	candidate := Schedule(trimmed)
	for _, known := range scheduleAliases {
		if known == candidate {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown report schedule %q", value)
}

// ReportType is a report type enumeration value. The constants below
// cover the commonly requested types; any service-documented type string
// is accepted as-is.
type ReportType string

const (
	ReportAllListings              ReportType = "_GET_MERCHANT_LISTINGS_ALL_DATA_"
	ReportActiveListings           ReportType = "_GET_MERCHANT_LISTINGS_DATA_"
	ReportInactiveListings         ReportType = "_GET_MERCHANT_LISTINGS_INACTIVE_DATA_"
	ReportOpenListings             ReportType = "_GET_FLAT_FILE_OPEN_LISTINGS_DATA_"
	ReportOrdersFlatFile           ReportType = "_GET_FLAT_FILE_ORDERS_DATA_"
	ReportOrdersXML                ReportType = "_GET_ORDERS_DATA_"
	ReportAmazonFulfilledShipments ReportType = "_GET_AMAZON_FULFILLED_SHIPMENTS_DATA_"
	ReportFBAInventoryAFN          ReportType = "_GET_AFN_INVENTORY_DATA_"
	ReportFBAFees                  ReportType = "_GET_FBA_ESTIMATED_FBA_FEES_TXT_DATA_"
	ReportSettlementFlatFile       ReportType = "_GET_V2_SETTLEMENT_REPORT_DATA_FLAT_FILE_"
)

// reportTypeAliases maps friendly names to report type constants.
var reportTypeAliases = map[string]ReportType{
	"all_listings":        ReportAllListings,
	"active_listings":     ReportActiveListings,
	"inactive_listings":   ReportInactiveListings,
	"open_listings":       ReportOpenListings,
	"orders":              ReportOrdersFlatFile,
	"orders_xml":          ReportOrdersXML,
	"fulfilled_shipments": ReportAmazonFulfilledShipments,
	"fba_inventory":       ReportFBAInventoryAFN,
	"fba_fees":            ReportFBAFees,
	"settlement":          ReportSettlementFlatFile,
}

// ReportTypeFromAlias resolves a friendly alias; values already in the
// service's underscore form pass through unchanged.
func ReportTypeFromAlias(value string) ReportType {
	trimmed := strings.TrimSpace(value)
	if rt, ok := reportTypeAliases[strings.ToLower(trimmed)]; ok {
		return rt
	}
	return ReportType(trimmed)
}
