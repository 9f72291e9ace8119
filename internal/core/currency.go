package core

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders a monetary value the way the UI and the export both
// show it: rounded to whole units, grouped, symbol-prefixed ("$16,000").
// Both surfaces must go through here so their figures stay identical.
func FormatCurrency(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return currencyPrinter.Sprintf("-$%d", -n)
	}
	return currencyPrinter.Sprintf("$%d", n)
}
