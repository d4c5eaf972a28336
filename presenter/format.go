package presenter

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// Currency renders v as US dollars with thousands separators and exactly
// two fractional digits, e.g. 240000 -> "$240,000.00".
func Currency(v float64) string {
	if v < 0 {
		return "-$" + usd.Sprintf("%.2f", -v)
	}
	return "$" + usd.Sprintf("%.2f", v)
}

// Raw renders v with the shortest precision that round-trips, so 6.5 stays
// "6.5" and 30 stays "30".
func Raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
