package pricemath

const (
	// GramsPerTroyOunce is the precious-metal mass convention.
	GramsPerTroyOunce = 31.1035

	// DefaultUSDINRRate is the static exchange-rate approximation used
	// when no rate is configured. Overridable via USD_INR_RATE.
	DefaultUSDINRRate = 83.0
)

// Convert re-expresses a canonical INR-per-gram price in the requested
// display unit using the default exchange rate. The function is total:
// negative and zero inputs pass through unchanged.
func Convert(pricePerGramINR float64, unit CurrencyUnit) float64 {
	return ConvertWithRate(pricePerGramINR, unit, DefaultUSDINRRate)
}

// ConvertWithRate is Convert with an injected USD/INR rate. A rate <= 0
// falls back to the default.
func ConvertWithRate(pricePerGramINR float64, unit CurrencyUnit, usdINRRate float64) float64 {
	if unit != USDPerTroyOunce {
		return pricePerGramINR
	}
	if usdINRRate <= 0 {
		usdINRRate = DefaultUSDINRRate
	}
	return pricePerGramINR * GramsPerTroyOunce / usdINRRate
}
