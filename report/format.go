package report

import (
	"fmt"

	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"
)

// LapTime renders seconds as mm:ss.mmm. Non-positive values render as "-".
func LapTime(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	ms := decimal.NewFromFloat(seconds).Shift(3).Round(0).IntPart()
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// Fixed renders v with the given number of decimal places, rounding half away
// from zero.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Delta renders a sector delta; zero renders as "-".
func Delta(v float64) string {
	if v == 0 {
		return "-"
	}
	return "+" + Fixed(v, 3)
}

// Percent renders a 0..1 ratio as a percentage.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Shift(2).StringFixed(1) + "%"
}

func optional(v omit.Val[float64], conv func(float64) float64, places int32) string {
	if f, ok := v.Get(); ok {
		return Fixed(conv(f), places)
	}
	return "-"
}
