package numbers

import (
	"math"
	"strconv"
	"strings"
)

// CeilInt rounds v up to the next whole number.
func CeilInt(v float64) int64 {
	return int64(math.Ceil(v))
}

// Clamp limits v to [min, max]. NaN is mapped to min.
func Clamp(v, min, max float64) float64 {
	if v < min || math.IsNaN(v) {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsIntegral reports whether v is a finite whole number.
func IsIntegral(v float64) bool {
	return IsFinite(v) && math.Trunc(v) == v
}

// FormatFloat formats v with the fewest digits that represent it exactly.
// Whole numbers keep a trailing ".0".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// FormatFixed formats v with exactly decimals fractional digits.
func FormatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
