// Package models holds the small value objects that MWS operations accept
// as structured arguments. Each model's single responsibility is to emit
// its dotted parameter mapping; validation happens client-side before any
// request is built. Legacy map constructors translate the loosely-typed
// dictionaries older integrations pass around.
package models

import "fmt"

// Address is a postal address used by inbound shipments and merchant
// fulfillment operations.
type Address struct {
	Name                string
	AddressLine1        string
	AddressLine2        string
	City                string
	DistrictOrCounty    string
	StateOrProvinceCode string
	CountryCode         string // defaults to US when empty
	PostalCode          string
}

// ParamMap renders the address as MWS parameters. Empty optional fields
// are included as nil and dropped during cleaning.
func (a Address) ParamMap() map[string]any {
	country := a.CountryCode
	if country == "" {
		country = "US"
	}
	return map[string]any{
		"Name":                a.Name,
		"AddressLine1":        a.AddressLine1,
		"AddressLine2":        a.AddressLine2,
		"City":                a.City,
		"DistrictOrCounty":    a.DistrictOrCounty,
		"StateOrProvinceCode": a.StateOrProvinceCode,
		"CountryCode":         country,
		"PostalCode":          a.PostalCode,
	}
}

// legacyAddressKeys maps the documented legacy dictionary keys to their
// typed fields. Unknown keys are ignored.
var legacyAddressKeys = map[string]func(*Address, string){
	"name":               func(a *Address, v string) { a.Name = v },
	"address_1":          func(a *Address, v string) { a.AddressLine1 = v },
	"address_2":          func(a *Address, v string) { a.AddressLine2 = v },
	"city":               func(a *Address, v string) { a.City = v },
	"district_or_county": func(a *Address, v string) { a.DistrictOrCounty = v },
	"state_or_province":  func(a *Address, v string) { a.StateOrProvinceCode = v },
	"postal_code":        func(a *Address, v string) { a.PostalCode = v },
	"country":            func(a *Address, v string) { a.CountryCode = v },
}

// AddressFromLegacy builds an Address from a legacy dictionary. Known
// keys are translated, unknown keys ignored, and the required name and
// address_1 keys are enforced.
func AddressFromLegacy(m map[string]any) (Address, error) {
	var a Address
	for key, assign := range legacyAddressKeys {
		if raw, ok := m[key]; ok && raw != nil {
			assign(&a, fmt.Sprint(raw))
		}
	}
	if a.Name == "" {
		return Address{}, fmt.Errorf("legacy address is missing required key %q", "name")
	}
	if a.AddressLine1 == "" {
		return Address{}, fmt.Errorf("legacy address is missing required key %q", "address_1")
	}
	return a, nil
}
