package stats

import (
	"math"
	"strconv"
)

// FormatPValue renders a p-value with the given number of decimal
// digits, flooring tiny values as "<0.001" and capping near-one values
// as ">0.999". NaN renders as an empty string.
func FormatPValue(p float64, digits int) string {
	if math.IsNaN(p) {
		return ""
	}
	if digits <= 0 {
		digits = 3
	}
	step := math.Pow(10, -float64(digits))
	if p < step {
		return "<" + strconv.FormatFloat(step, 'f', digits, 64)
	}
	if p > 1-step {
		return ">" + strconv.FormatFloat(1-step, 'f', digits, 64)
	}
	return strconv.FormatFloat(p, 'f', digits, 64)
}
