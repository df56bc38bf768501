package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is appended to every formatted amount.
const Currency = "FCFA"

// RoundTo rounds a value to the given number of decimal places.
func RoundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

// Round rounds a value to the nearest whole currency unit.
func Round(value float64) float64 {
	return math.Round(value)
}

// RoundIf rounds to whole currency units only when enabled.
func RoundIf(value float64, enabled bool) float64 {
	if enabled {
		return Round(value)
	}
	return value
}

// IsFinite reports whether the value is neither infinite nor NaN.
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// FormatAmount renders an amount with French digit grouping, e.g. "1 500 000 FCFA".
func FormatAmount(value float64, round bool) string {
	return FormatNumber(value, round) + " " + Currency
}

// FormatNumber renders a number the way fr-FR locales do. Unrounded values
// keep at most three fraction digits with a decimal comma.
func FormatNumber(value float64, round bool) string {
	p := message.NewPrinter(language.French)
	if round {
		v := Round(value)
		if v == 0 {
			v = 0 // drop negative zero
		}
		return p.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
	}
	return p.Sprint(number.Decimal(RoundTo(value, 3), number.MaxFractionDigits(3)))
}
