// Package pricemath holds the pure computational core of the tracker:
// unit conversion between the canonical storage unit (INR per gram) and
// display units, locale-correct currency formatting, and nearest-date
// resolution over historical price series. Everything here is stateless
// and side-effect free; callers own fetching and persistence.
package pricemath

import "fmt"

// CurrencyUnit selects the display unit for a gold price.
type CurrencyUnit int

const (
	// INRPerGram is the canonical storage unit.
	INRPerGram CurrencyUnit = iota
	// USDPerTroyOunce is the international quoting convention.
	USDPerTroyOunce
)

func (u CurrencyUnit) String() string {
	switch u {
	case USDPerTroyOunce:
		return "usd_per_ounce"
	default:
		return "inr_per_gram"
	}
}

// ParseUnit maps the API query-string values to a CurrencyUnit.
// An empty string means the canonical unit.
func ParseUnit(s string) (CurrencyUnit, error) {
	switch s {
	case "", "inr_per_gram":
		return INRPerGram, nil
	case "usd_per_ounce":
		return USDPerTroyOunce, nil
	default:
		return INRPerGram, fmt.Errorf("unknown unit %q, expected inr_per_gram|usd_per_ounce", s)
	}
}
