// Package constraint restricts the motion of grabbed objects: sliders along
// one local axis, sliders with discrete rest positions, and hinged doors.
//
// All poses handled here are local to the constrained object's parent frame.
package constraint

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// ErrInvalidConfig indicates invalid constraint parameters.
var ErrInvalidConfig = errors.New("invalid constraint configuration")

// Kind identifies a constraint implementation.
type Kind int

const (
	KindNone Kind = iota
	KindSlider
	KindFixedSlider
	KindHinge
)

// String returns the kind name used in profiles and logs.
func (k Kind) String() string {
	switch k {
	case KindSlider:
		return "slider"
	case KindFixedSlider:
		return "fixed_slider"
	case KindHinge:
		return "hinge"
	default:
		return "none"
	}
}

// Body is the simulated state of a constrained object after a physics step.
type Body struct {
	Pose            mathutil.Pose
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	// Sleeping bodies are left untouched by Solve.
	Sleeping bool
}

// Constraint is implemented by every constraint kind.
type Constraint interface {
	Kind() Kind

	// ConstrainTarget maps a desired pose onto the closest pose the
	// constraint allows. current is the object's present pose.
	ConstrainTarget(target, current mathutil.Pose) mathutil.Pose

	// Solve projects a body back onto the constraint after integration and
	// removes the velocity components the constraint forbids.
	Solve(b Body) Body

	// Observe reports the constraint's scalar value for the given pose and
	// whether it changed since the previous call.
	Observe(current mathutil.Pose) Result

	// Reset forgets change-detection history.
	Reset()
}

// Settler is implemented by constraints that move the object on their own
// while it is not held, such as snapping to a rest position.
type Settler interface {
	Settle(current mathutil.Pose, dt float64) mathutil.Pose
}

// Result is a constraint value together with a change notification decision.
type Result struct {
	Value   float64
	Changed bool
}

// changeTracker decides whether a value differs from the last one reported.
type changeTracker struct {
	previous float64
	primed   bool
}

func (c *changeTracker) observe(v float64) Result {
	if c.primed && mathutil.Approximately(v, c.previous) {
		return Result{Value: v}
	}
	c.previous = v
	c.primed = true
	return Result{Value: v, Changed: true}
}

func (c *changeTracker) reset() {
	*c = changeTracker{}
}
