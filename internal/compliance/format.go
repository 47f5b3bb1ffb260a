package compliance

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// pt formats amounts with Portuguese digit grouping for check and
// recommendation text.
var pt = message.NewPrinter(language.EuropeanPortuguese)

// eur renders an EUR amount with two decimal places.
func eur(v float64) string {
	return pt.Sprintf("€%v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
