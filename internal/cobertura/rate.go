package cobertura

import (
	"math"
	"strconv"
	"strings"
)

// percentRate converts a 0-100 percentage into a fraction rounded half-up
// to two decimals, rendered with at least one decimal digit ("0.0", "0.8",
// "0.67", "1.0").
func percentRate(pct float64) string {
	s := formatFraction(roundPercent(pct))
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// countRate divides covered by total, treating a zero total as one, and
// renders the result in its shortest form so an empty run yields "0".
func countRate(covered, total int) string {
	if total < 1 {
		total = 1
	}
	return formatFraction(roundPercent(float64(covered) * 100 / float64(total)))
}

// roundPercent rounds pct half-up to a whole percent and returns it as a
// fraction. Rounding works on the shortest decimal text of pct, so 28.5
// becomes 0.29 even though 0.285 has no exact binary form.
func roundPercent(pct float64) float64 {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	whole, frac, _ := strings.Cut(strconv.FormatFloat(math.Abs(pct), 'f', -1, 64), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0
	}
	if frac != "" && frac[0] >= '5' {
		n++
	}
	if pct < 0 {
		n = -n
	}
	return float64(n) / 100
}

func formatFraction(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
