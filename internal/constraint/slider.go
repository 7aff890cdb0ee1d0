package constraint

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tphakala/go-xr-interact/internal/curve"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// Axis selects the local axis a slider travels along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis converts "x", "y" or "z" (any case) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	default:
		return AxisX, fmt.Errorf("%w: unknown slider axis %q", ErrInvalidConfig, s)
	}
}

// String returns the lower-case axis name.
func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a]
}

// Slider keeps an object on one local axis between 0 and Size.
type Slider struct {
	axis    Axis
	size    float64
	changes changeTracker
}

// NewSlider creates a continuous slider of the given length.
func NewSlider(axis Axis, size float64) (*Slider, error) {
	if axis < AxisX || axis > AxisZ {
		return nil, fmt.Errorf("%w: slider axis %d", ErrInvalidConfig, axis)
	}
	if !(size > 0) || !mathutil.IsFinite(size) {
		return nil, fmt.Errorf("%w: slider size must be positive, got %v", ErrInvalidConfig, size)
	}
	return &Slider{axis: axis, size: size}, nil
}

// Kind returns KindSlider.
func (s *Slider) Kind() Kind { return KindSlider }

// Axis returns the travel axis.
func (s *Slider) Axis() Axis { return s.axis }

// Size returns the travel length.
func (s *Slider) Size() float64 { return s.size }

// Range returns the travel interval along the axis.
func (s *Slider) Range() Range { return Range{Min: 0, Max: s.size} }

// ConstrainTarget keeps current's off-axis position and orientation and
// takes the clamped on-axis coordinate from target.
func (s *Slider) ConstrainTarget(target, current mathutil.Pose) mathutil.Pose {
	out := current
	out.Position[s.axis] = ClampContinuous(target.Position[s.axis], s.Range())
	return out
}

// Solve clamps the body to the slider's travel, keeps only on-axis linear
// velocity and removes all angular velocity.
func (s *Slider) Solve(b Body) Body {
	if b.Sleeping {
		return b
	}

	pos := b.Pose.Position[s.axis]
	atMin, atMax := pos <= 0, pos >= s.size
	b.Pose.Position[s.axis] = ClampContinuous(pos, s.Range())

	var v mgl64.Vec3
	v[s.axis] = stopAtLimit(b.Velocity[s.axis], atMin, atMax)
	b.Velocity = v
	b.AngularVelocity = mgl64.Vec3{}
	return b
}

// NormalizedPosition returns the position along the slider as a value in [0, 1].
func (s *Slider) NormalizedPosition(current mathutil.Pose) float64 {
	return mathutil.Clamp01(current.Position[s.axis] / s.size)
}

// SetNormalizedPosition returns current moved to the normalised position n,
// clamped to [0, 1].
func (s *Slider) SetNormalizedPosition(current mathutil.Pose, n float64) mathutil.Pose {
	current.Position[s.axis] = mathutil.Clamp01(n) * s.size
	return current
}

// Observe reports the normalised position and whether it moved.
func (s *Slider) Observe(current mathutil.Pose) Result {
	return s.changes.observe(s.NormalizedPosition(current))
}

// Reset forgets the last reported position.
func (s *Slider) Reset() { s.changes.reset() }

// FixedSlider is a slider that comes to rest only at discrete stops. While
// held, travel between stops is reshaped by a movement curve; once released
// it settles on the nearest stop.
type FixedSlider struct {
	Slider

	stops     Stops
	movement  curve.Curve
	snapTime  float64
	settleVel float64
	indices   changeTracker
}

// FixedSliderConfig holds the parameters of a FixedSlider.
type FixedSliderConfig struct {
	Axis     Axis
	Size     float64
	Stops    []float64
	Movement curve.Curve // nil uses curve.DefaultSliderMovement
	SnapTime float64     // seconds; zero snaps instantly
}

// NewFixedSlider validates cfg and builds the slider.
func NewFixedSlider(cfg FixedSliderConfig) (*FixedSlider, error) {
	base, err := NewSlider(cfg.Axis, cfg.Size)
	if err != nil {
		return nil, err
	}
	stops, err := NewStops(cfg.Stops)
	if err != nil {
		return nil, err
	}
	if cfg.SnapTime < 0 || !mathutil.IsFinite(cfg.SnapTime) {
		return nil, fmt.Errorf("%w: snap time must be non-negative, got %v", ErrInvalidConfig, cfg.SnapTime)
	}
	movement := cfg.Movement
	if movement == nil {
		movement = curve.DefaultSliderMovement()
	}
	return &FixedSlider{
		Slider:   *base,
		stops:    stops,
		movement: movement,
		snapTime: cfg.SnapTime,
	}, nil
}

// Kind returns KindFixedSlider.
func (f *FixedSlider) Kind() Kind { return KindFixedSlider }

// Stops returns the rest positions.
func (f *FixedSlider) Stops() Stops { return f.stops }

// ConstrainTarget clamps the target to the stop span, reshaping travel
// between neighbouring stops with the movement curve.
func (f *FixedSlider) ConstrainTarget(target, current mathutil.Pose) mathutil.Pose {
	n := mathutil.Clamp01(target.Position[f.axis] / f.size)
	out := current
	out.Position[f.axis] = ClampToStops(n, f.stops, f.movement) * f.size
	return out
}

// Index returns the stop nearest the current position.
func (f *FixedSlider) Index(current mathutil.Pose) int {
	return NearestStopIndex(f.NormalizedPosition(current), f.stops)
}

// SetIndex moves current onto stop i. Indices outside [0, len(stops))
// leave current unchanged and report false.
func (f *FixedSlider) SetIndex(current mathutil.Pose, i int) (mathutil.Pose, bool) {
	if i < 0 || i >= len(f.stops) {
		return current, false
	}
	f.settleVel = 0
	return f.SetNormalizedPosition(current, f.stops[i]), true
}

// Settle moves one step of dt toward the nearest stop.
func (f *FixedSlider) Settle(current mathutil.Pose, dt float64) mathutil.Pose {
	pos := current.Position[f.axis]
	ideal := f.stops[f.Index(current)] * f.size
	current.Position[f.axis] = SmoothTowardStop(pos, ideal, &f.settleVel, f.snapTime, dt)
	return current
}

// ObserveIndex reports the nearest stop index and whether it changed.
func (f *FixedSlider) ObserveIndex(current mathutil.Pose) (int, bool) {
	r := f.indices.observe(float64(f.Index(current)))
	return int(r.Value), r.Changed
}

// Reset forgets change history and any settling motion.
func (f *FixedSlider) Reset() {
	f.Slider.Reset()
	f.indices.reset()
	f.settleVel = 0
}
