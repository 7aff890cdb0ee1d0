// Package testutil provides reusable assertion helpers for interaction tests.
package testutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance  = 1e-9
	PositionTolerance = 1e-6 // metres
	AngleTolerance    = 1e-4 // degrees
	VelocityTolerance = 1e-6
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice never decreases.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertVec3InDelta verifies each component of actual is within tolerance of expected.
func AssertVec3InDelta(t *testing.T, expected, actual mgl64.Vec3, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := range 3 {
		if math.IsNaN(actual[i]) || math.Abs(expected[i]-actual[i]) > tolerance {
			return assert.Fail(t, "vectors differ",
				"component %d: expected %v, actual %v (tolerance %g)", i, expected, actual, tolerance)
		}
	}
	return true
}

// AssertFiniteVec3 verifies that no component of v is NaN or Inf.
func AssertFiniteVec3(t *testing.T, v mgl64.Vec3, msgAndArgs ...any) bool {
	t.Helper()
	return AssertNoNaNOrInf(t, v[:], msgAndArgs...)
}

// AssertSameRotation verifies two quaternions describe the same orientation
// within toleranceDeg. q and -q are treated as equal.
func AssertSameRotation(t *testing.T, expected, actual mgl64.Quat, toleranceDeg float64, msgAndArgs ...any) bool {
	t.Helper()
	el, al := expected.Len(), actual.Len()
	if el == 0 || al == 0 || math.IsNaN(al) {
		return assert.Fail(t, "degenerate quaternion", "expected %v, actual %v", expected, actual)
	}
	d := math.Min(math.Abs(expected.Dot(actual)/(el*al)), 1)
	angle := mgl64.RadToDeg(2 * math.Acos(d))
	if angle > toleranceDeg {
		return assert.Fail(t, "rotations differ",
			"angle between %v and %v is %f deg (tolerance %g)", expected, actual, angle, toleranceDeg)
	}
	return true
}
