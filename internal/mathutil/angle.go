package mathutil

import (
	"math"
)

// WrapDegrees maps an angle in degrees into the canonical interval (-180, 180].
// Non-finite input yields 0.
func WrapDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	r := math.Mod(deg, fullTurnDegrees)
	if r <= -halfTurnDegrees {
		r += fullTurnDegrees
	} else if r > halfTurnDegrees {
		r -= fullTurnDegrees
	}
	return r
}

// DeltaAngle returns the shortest signed difference target-current in degrees.
func DeltaAngle(current, target float64) float64 {
	return WrapDegrees(target - current)
}

// Clamp restricts v to [lo, hi]. If lo > hi the bounds are swapped.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

// Lerp interpolates between a and b with t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	t = Clamp01(t)
	return a + (b-a)*t
}

// InverseLerp returns where v lies between a and b as a fraction in [0, 1].
// A degenerate interval returns 0.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// Approximately reports whether a and b are equal within a relative epsilon,
// falling back to an absolute floor near zero.
func Approximately(a, b float64) bool {
	tol := math.Max(approxRelativeEpsilon*math.Max(math.Abs(a), math.Abs(b)), approxAbsoluteFloor)
	return math.Abs(b-a) < tol
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
