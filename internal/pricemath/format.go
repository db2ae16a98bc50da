package pricemath

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	inrPrinter = message.NewPrinter(language.MustParse("en-IN"))
	usdPrinter = message.NewPrinter(language.AmericanEnglish)
)

// Format renders a price as a locale-correct currency string with exactly
// two fraction digits: Indian digit grouping with the rupee symbol for
// INRPerGram, US grouping with the dollar symbol for USDPerTroyOunce.
func Format(price float64, unit CurrencyUnit) string {
	if unit == USDPerTroyOunce {
		return usdPrinter.Sprintf("$%.2f", price)
	}
	return inrPrinter.Sprintf("₹%.2f", price)
}

// FormatString parses a string price and formats it. Non-numeric input
// yields the zero-valued currency string for the unit; display layers
// never see an error from here.
func FormatString(s string, unit CurrencyUnit) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		d = decimal.Zero
	}
	f, _ := d.Float64()
	return Format(f, unit)
}
