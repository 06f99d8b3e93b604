// Package format renders money and counts for CLI output.
package format

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Money renders an integer amount in the given ISO currency, falling back
// to USD when the code is unknown.
func Money(amount int, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	return printer.Sprint(currency.Symbol(unit.Amount(amount)))
}

// Count renders an integer with locale grouping (15000 -> "15,000").
func Count(n int) string {
	return printer.Sprintf("%d", n)
}
