package helpers

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney formats cents as dollars with thousands separators, e.g.
// -123456 becomes "-$1,234.56".
func FormatMoney(cents int64) string {
	sign := ""
	// Negate in uint64 so math.MinInt64 does not overflow.
	abs := uint64(cents)
	if cents < 0 {
		sign = "-"
		abs = uint64(-(cents + 1)) + 1
	}

	whole := strconv.FormatUint(abs/100, 10)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), abs%100)
}

// FormatRate formats a fraction as a percentage with two decimals.
func FormatRate(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', 2, 64) + "%"
}
