package constraint

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// Hinge allows rotation about the local Y axis between two angles, as for a
// door hung on a vertical pivot. Angles are in degrees, zero facing +Z.
type Hinge struct {
	pivot       mgl64.Vec3
	minAngle    float64
	maxAngle    float64
	restitution float64
	changes     changeTracker
}

// HingeConfig holds the parameters of a Hinge.
type HingeConfig struct {
	MinAngle float64
	MaxAngle float64

	// Restitution is the fraction of angular speed returned when the door
	// strikes a limit. Zero stops it dead.
	Restitution float64

	// Pivot is the door's position in its parent frame.
	Pivot mgl64.Vec3
}

// NewHinge validates cfg and builds the hinge.
func NewHinge(cfg HingeConfig) (*Hinge, error) {
	r := Range{Min: cfg.MinAngle, Max: cfg.MaxAngle}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Min < minHingeAngle || r.Max > maxHingeAngle {
		return nil, fmt.Errorf("%w: hinge limits must lie within [%v, %v]", ErrInvalidConfig, minHingeAngle, maxHingeAngle)
	}
	if cfg.Restitution < 0 || cfg.Restitution > 1 {
		return nil, fmt.Errorf("%w: restitution must be in [0, 1], got %v", ErrInvalidConfig, cfg.Restitution)
	}
	if !mathutil.Vec3Finite(cfg.Pivot) {
		return nil, fmt.Errorf("%w: hinge pivot must be finite", ErrInvalidConfig)
	}
	return &Hinge{pivot: cfg.Pivot, minAngle: cfg.MinAngle, maxAngle: cfg.MaxAngle, restitution: cfg.Restitution}, nil
}

// Kind returns KindHinge.
func (h *Hinge) Kind() Kind { return KindHinge }

// Limits returns the allowed angle range in degrees.
func (h *Hinge) Limits() Range { return Range{Min: h.minAngle, Max: h.maxAngle} }

// Angle returns the door's rotation about Y in degrees, in (-180, 180].
func (h *Hinge) Angle(current mathutil.Pose) float64 {
	forward := current.Rotation.Rotate(mathutil.AxisForward)
	return angleOfPlanarDirection(forward.X(), forward.Z())
}

// Pivot returns the door's position in its parent frame.
func (h *Hinge) Pivot() mgl64.Vec3 { return h.pivot }

// ConstrainTarget turns the door to face the target position, seen from the
// pivot in the parent's XZ plane, within limits. The input rotation is ignored and the door stays
// on its pivot.
func (h *Hinge) ConstrainTarget(target, _ mathutil.Pose) mathutil.Pose {
	dir := target.Position.Sub(h.pivot)
	angle := angleOfPlanarDirection(dir.X(), dir.Z())
	return mathutil.Pose{
		Position: h.pivot,
		Rotation: yaw(ClampAngle(angle, h.minAngle, h.maxAngle)),
	}
}

// Solve puts the door back on its pivot, removes any spin not about Y and clamps
// the angle, damping or bouncing spin that drives into a limit.
func (h *Hinge) Solve(b Body) Body {
	if b.Sleeping {
		return b
	}

	angle := h.Angle(b.Pose)
	atMin, atMax := angle <= h.minAngle, angle >= h.maxAngle
	angle = ClampAngle(angle, h.minAngle, h.maxAngle)

	b.Pose = mathutil.Pose{Position: h.pivot, Rotation: yaw(angle)}
	b.Velocity = mgl64.Vec3{}
	b.AngularVelocity = mgl64.Vec3{0, BounceAngularVelocity(b.AngularVelocity.Y(), atMin, atMax, h.restitution), 0}
	return b
}

// Observe reports the door angle and whether it changed.
func (h *Hinge) Observe(current mathutil.Pose) Result {
	return h.changes.observe(h.Angle(current))
}

// Reset forgets the last reported angle.
func (h *Hinge) Reset() { h.changes.reset() }

func yaw(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), mathutil.AxisUp)
}
