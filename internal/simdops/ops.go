// Package simdops provides SIMD-accelerated reductions over float64 slices,
// used for weighted averaging of motion samples.
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Dot returns the dot product of a and b over their common length.
func Dot(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	return f64.DotProductUnsafe(a[:n], b[:n])
}

// Normalize scales weights in place so they sum to one. It reports false and
// leaves weights untouched when their sum is not positive.
func Normalize(weights []float64) bool {
	total := f64.Sum(weights)
	if !(total > 0) {
		return false
	}
	f64.Scale(weights, weights, 1/total)
	return true
}
