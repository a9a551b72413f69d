// Package regions holds the closed mapping from MWS region codes to the
// regional API endpoint and default marketplace identifier. The set of
// regions is fixed by the service; aliases such as UK for GB are resolved
// here so the rest of the client only ever sees canonical codes.
package regions

import (
	"fmt"
	"sort"
	"strings"
)

// Region identifies one MWS regional deployment.
type Region string

// Canonical region codes.
const (
	AE Region = "AE"
	AU Region = "AU"
	BR Region = "BR"
	CA Region = "CA"
	DE Region = "DE"
	EG Region = "EG"
	ES Region = "ES"
	FR Region = "FR"
	GB Region = "GB"
	IN Region = "IN"
	IT Region = "IT"
	JP Region = "JP"
	MX Region = "MX"
	NL Region = "NL"
	SA Region = "SA"
	SE Region = "SE"
	SG Region = "SG"
	TR Region = "TR"
	US Region = "US"
)

// Endpoint carries the connection details for one region.
type Endpoint struct {
	// Host is the regional MWS hostname, without scheme or path.
	Host string
	// MarketplaceID is the default marketplace for the region.
	MarketplaceID string
}

// endpoints is the closed region table. European marketplaces share the
// mws-eu host, the Americas share mws.amazonservices.com.
var endpoints = map[Region]Endpoint{
	AE: {Host: "mws.amazonservices.ae", MarketplaceID: "A2VIGQ35RCS4UG"},
	AU: {Host: "mws.amazonservices.com.au", MarketplaceID: "A39IBJ37TRP1C6"},
	BR: {Host: "mws.amazonservices.com", MarketplaceID: "A2Q3Y263D00KWC"},
	CA: {Host: "mws.amazonservices.ca", MarketplaceID: "A2EUQ1WTGCTBG2"},
	DE: {Host: "mws-eu.amazonservices.com", MarketplaceID: "A1PA6795UKMFR9"},
	EG: {Host: "mws-eu.amazonservices.com", MarketplaceID: "ARBP9OOSHTCHU"},
	ES: {Host: "mws-eu.amazonservices.com", MarketplaceID: "A1RKKUPIHCS9HS"},
	FR: {Host: "mws-eu.amazonservices.com", MarketplaceID: "A13V1IB3VIYZZH"},
	GB: {Host: "mws-eu.amazonservices.com", MarketplaceID: "A1F83G8C2ARO7P"},
	IN: {Host: "mws.amazonservices.in", MarketplaceID: "A21TJRUUN4KGV"},
	IT: {Host: "mws-eu.amazonservices.com", MarketplaceID: "APJ6JRA9NG5V4"},
	JP: {Host: "mws.amazonservices.jp", MarketplaceID: "A1VC38T7YXB528"},
	MX: {Host: "mws.amazonservices.com.mx", MarketplaceID: "A1AM78C64UM0Y8"},
	NL: {Host: "mws-eu.amazonservices.com", MarketplaceID: "A1805IZSGTT6HS"},
	SA: {Host: "mws-eu.amazonservices.com", MarketplaceID: "A17E79C6D8DWNP"},
	SE: {Host: "mws-eu.amazonservices.com", MarketplaceID: "A2NODRKZP88ZB9"},
	SG: {Host: "mws-fe.amazonservices.com", MarketplaceID: "A19VAU5U5O7RUS"},
	TR: {Host: "mws-eu.amazonservices.com", MarketplaceID: "A33AVAJ2PDY3EV"},
	US: {Host: "mws.amazonservices.com", MarketplaceID: "ATVPDKIKX0DER"},
}

// aliases maps accepted alternate spellings to canonical codes.
var aliases = map[string]Region{
	"UK": GB,
}

// Resolve maps a region code (case-insensitive, aliases permitted) to its
// endpoint. Unknown regions are a configuration error, reported before any
// request is attempted.
func Resolve(code string) (Region, Endpoint, error) {
	upper := strings.ToUpper(strings.TrimSpace(code))
	region := Region(upper)
	if canonical, ok := aliases[upper]; ok {
		region = canonical
	}
	ep, ok := endpoints[region]
	if !ok {
		return "", Endpoint{}, fmt.Errorf("unknown MWS region %q (known: %s)", code, strings.Join(Codes(), ", "))
	}
	return region, ep, nil
}

// Endpoint returns the endpoint for a canonical region. It panics on an
// unknown region; use Resolve for untrusted input.
func (r Region) Endpoint() Endpoint {
	ep, ok := endpoints[r]
	if !ok {
		panic(fmt.Sprintf("regions: no endpoint for %q", string(r)))
	}
	return ep
}

// Codes returns the canonical region codes in sorted order.
func Codes() []string {
	out := make([]string, 0, len(endpoints))
	for r := range endpoints {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}
