package domain

import (
	"cmp"
	"math"
)

// Clamp bounds v to [lo, hi]. All popularity and prestige mutations go
// through this so the [1,100] invariant holds at every write site.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round1 rounds to one decimal place. Quality scores are stored at this
// precision.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
