// Package curve provides the scalar shaping curves used to remap slider
// travel and to weight velocity samples by recency.
package curve

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// ErrInvalidCurve indicates a curve could not be built from the given keys.
var ErrInvalidCurve = errors.New("invalid curve")

// Curve maps a scalar input to a scalar output.
type Curve interface {
	Evaluate(t float64) float64
}

// Func adapts an ordinary function to the Curve interface.
type Func func(t float64) float64

// Evaluate calls f(t).
func (f Func) Evaluate(t float64) float64 { return f(t) }

// Identity returns its input unchanged.
var Identity Curve = Func(func(t float64) float64 { return t })

// Constant is a curve that always evaluates to the same value.
type Constant float64

// Evaluate returns c.
func (c Constant) Evaluate(float64) float64 { return float64(c) }

// Key is one keyframe of a Hermite curve: a value and an incoming/outgoing
// slope at a point in time.
type Key struct {
	Time    float64 `json:"time" yaml:"time"`
	Value   float64 `json:"value" yaml:"value"`
	Tangent float64 `json:"tangent" yaml:"tangent"`
}

// Keyframed is a piecewise cubic Hermite curve through a set of keys.
// Inputs outside the key range evaluate to the first or last key value.
type Keyframed struct {
	keys   []Key
	spline interp.PiecewiseCubic
}

// NewKeyframed builds a Hermite curve from keys sorted by strictly increasing time.
// A single key produces a constant curve.
func NewKeyframed(keys []Key) (*Keyframed, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: at least one key is required", ErrInvalidCurve)
	}
	for i, k := range keys {
		if !finite(k.Time) || !finite(k.Value) || !finite(k.Tangent) {
			return nil, fmt.Errorf("%w: key %d is not finite", ErrInvalidCurve, i)
		}
		if i > 0 && k.Time <= keys[i-1].Time {
			return nil, fmt.Errorf("%w: key times must be strictly increasing (key %d)", ErrInvalidCurve, i)
		}
	}

	c := &Keyframed{keys: append([]Key(nil), keys...)}
	if len(keys) < minSplineKeys {
		return c, nil
	}

	xs := make([]float64, len(keys))
	ys := make([]float64, len(keys))
	dydxs := make([]float64, len(keys))
	for i, k := range keys {
		xs[i], ys[i], dydxs[i] = k.Time, k.Value, k.Tangent
	}
	c.spline.FitWithDerivatives(xs, ys, dydxs)
	return c, nil
}

// Evaluate returns the curve value at t.
func (c *Keyframed) Evaluate(t float64) float64 {
	first, last := c.keys[0], c.keys[len(c.keys)-1]
	switch {
	case math.IsNaN(t), t <= first.Time:
		return first.Value
	case t >= last.Time:
		return last.Value
	}
	return c.spline.Predict(t)
}

// Keys returns a copy of the curve keys.
func (c *Keyframed) Keys() []Key {
	return append([]Key(nil), c.keys...)
}

// Linear is a piecewise linear curve through (x, y) points.
type Linear struct {
	xs, ys []float64
	fit    interp.PiecewiseLinear
}

// NewLinear builds a piecewise linear curve. xs must be strictly increasing.
func NewLinear(xs, ys []float64) (*Linear, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d xs but %d ys", ErrInvalidCurve, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: at least one point is required", ErrInvalidCurve)
	}
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			return nil, fmt.Errorf("%w: point %d is not finite", ErrInvalidCurve, i)
		}
		if i > 0 && xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: xs must be strictly increasing (point %d)", ErrInvalidCurve, i)
		}
	}

	l := &Linear{xs: append([]float64(nil), xs...), ys: append([]float64(nil), ys...)}
	if len(xs) >= minSplineKeys {
		if err := l.fit.Fit(l.xs, l.ys); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCurve, err)
		}
	}
	return l, nil
}

// Evaluate returns the interpolated value at t, clamped to the end points.
func (l *Linear) Evaluate(t float64) float64 {
	n := len(l.xs)
	switch {
	case math.IsNaN(t), t <= l.xs[0]:
		return l.ys[0]
	case t >= l.xs[n-1]:
		return l.ys[n-1]
	}
	return l.fit.Predict(t)
}

// EaseInOut returns a smoothstep-shaped curve on [0, 1] with flat ends.
func EaseInOut() Curve {
	c, _ := NewKeyframed([]Key{{Time: 0, Value: 0}, {Time: 1, Value: 1}})
	return c
}

// DefaultSliderMovement is the travel curve used by discrete-stop sliders:
// slow near each stop and fast through the middle of an interval.
func DefaultSliderMovement() Curve {
	c, _ := NewKeyframed([]Key{
		{Time: 0, Value: 0, Tangent: 0},
		{Time: sliderKnee1Time, Value: sliderKnee1Value, Tangent: sliderKneeTangent},
		{Time: sliderKnee2Time, Value: sliderKnee2Value, Tangent: sliderKneeTangent},
		{Time: 1, Value: 1, Tangent: 0},
	})
	return c
}

// Evaluate is a nil-safe helper: a nil curve behaves as Identity.
func Evaluate(c Curve, t float64) float64 {
	if c == nil {
		return t
	}
	return c.Evaluate(t)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
