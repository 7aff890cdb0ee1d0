package constraint

import (
	"fmt"
	"math"

	"github.com/tphakala/go-xr-interact/internal/curve"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// Range is a closed interval [Min, Max]. A zero-length range is valid.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Validate checks that Min <= Max and both are finite.
func (r Range) Validate() error {
	if !mathutil.IsFinite(r.Min) || !mathutil.IsFinite(r.Max) {
		return fmt.Errorf("%w: range bounds must be finite", ErrInvalidConfig)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: range min %v exceeds max %v", ErrInvalidConfig, r.Min, r.Max)
	}
	return nil
}

// ClampContinuous restricts v to r. NaN maps to r.Min.
func ClampContinuous(v float64, r Range) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return mathutil.Clamp(v, r.Min, r.Max)
}

// Stops is a validated, strictly increasing list of normalised rest positions.
type Stops []float64

// NewStops validates and copies positions. There must be at least one, each
// within [0, 1], in strictly increasing order.
func NewStops(positions []float64) (Stops, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: at least one stop is required", ErrInvalidConfig)
	}
	for i, p := range positions {
		if !mathutil.IsFinite(p) || p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: stop %d (%v) outside [0, 1]", ErrInvalidConfig, i, p)
		}
		if i > 0 && p <= positions[i-1] {
			return nil, fmt.Errorf("%w: stops must be strictly increasing (stop %d)", ErrInvalidConfig, i)
		}
	}
	return append(Stops(nil), positions...), nil
}

// First returns the lowest stop.
func (s Stops) First() float64 { return s[0] }

// Last returns the highest stop.
func (s Stops) Last() float64 { return s[len(s)-1] }

// ClampToStops constrains a normalised position v to the span of the stops.
// Between two neighbouring stops the fractional progress is reshaped by
// shape, whose output is clamped to [0, 1]. A nil shape is the identity.
// The result always lies in [stops.First(), stops.Last()].
func ClampToStops(v float64, stops Stops, shape curve.Curve) float64 {
	if math.IsNaN(v) || v <= stops.First() {
		return stops.First()
	}
	if v >= stops.Last() {
		return stops.Last()
	}

	for i := 0; i < len(stops)-1; i++ {
		if v < stops[i+1] {
			span := stops[i+1] - stops[i]
			frac := (v - stops[i]) / span
			out := stops[i] + mathutil.Clamp01(curve.Evaluate(shape, frac))*span
			// rounding can push a full step just past the upper stop
			return mathutil.Clamp(out, stops[i], stops[i+1])
		}
	}
	return stops.Last()
}

// NearestStopIndex returns the index of the stop closest to v. When two
// stops are equally close the lower index wins.
func NearestStopIndex(v float64, stops Stops) int {
	if math.IsNaN(v) || v <= stops.First() {
		return 0
	}
	if v >= stops.Last() {
		return len(stops) - 1
	}

	nearest := 0
	nearestDist := math.Abs(stops[0] - v)
	for i := 1; i < len(stops); i++ {
		if d := math.Abs(stops[i] - v); d < nearestDist {
			nearest, nearestDist = i, d
		}
	}
	return nearest
}

// SmoothTowardStop eases current toward target without overshoot.
// velocity carries state between calls and is reset by snapping.
// smoothTime <= 0 snaps; dt <= 0 returns current unchanged.
func SmoothTowardStop(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	return mathutil.SmoothDamp(current, target, velocity, smoothTime, 0, dt)
}

// stopAtLimit zeroes a scalar velocity that drives further into a limit the
// value is pinned against.
func stopAtLimit(v float64, atMin, atMax bool) float64 {
	if atMin && v < 0 {
		return 0
	}
	if atMax && v > 0 {
		return 0
	}
	return v
}
