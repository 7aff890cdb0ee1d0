package blend

import (
	"fmt"

	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// Constrained is the result of applying a Target to an interactor pose.
// Position and Rotation report which parts of Pose were overridden.
type Constrained struct {
	Pose     mathutil.Pose
	Position bool
	Rotation bool
}

// Target decides where an interactor's attach point should be drawn while
// it interacts with an object.
type Target interface {
	Constrain(interactor mathutil.Pose) Constrained
}

// Fixed pins the attach point to an anchor pose.
type Fixed struct {
	Anchor            mathutil.Pose
	ConstrainPosition bool
	ConstrainRotation bool
}

// Constrain returns the anchor for whichever parts are enabled.
func (f Fixed) Constrain(interactor mathutil.Pose) Constrained {
	out := Constrained{Pose: interactor}
	if f.ConstrainPosition {
		out.Pose.Position = f.Anchor.Position
		out.Position = true
	}
	if f.ConstrainRotation {
		out.Pose.Rotation = f.Anchor.Rotation
		out.Rotation = true
	}
	return out
}

// Spherical keeps the attach point inside, or on the surface of, a sphere
// around an anchor. With rotation constrained it takes the anchor's rotation.
type Spherical struct {
	Anchor            mathutil.Pose
	Radius            float64
	Surface           bool
	ConstrainPosition bool
	ConstrainRotation bool
}

// NewSpherical validates the radius and builds a position-and-rotation
// spherical target.
func NewSpherical(anchor mathutil.Pose, radius float64, surface bool) (Spherical, error) {
	if radius < 0 || !mathutil.IsFinite(radius) {
		return Spherical{}, fmt.Errorf("%w: sphere radius must be non-negative, got %v", ErrInvalidConfig, radius)
	}
	return Spherical{
		Anchor:            anchor,
		Radius:            radius,
		Surface:           surface,
		ConstrainPosition: true,
		ConstrainRotation: true,
	}, nil
}

// Constrain projects the interactor onto the sphere.
func (s Spherical) Constrain(interactor mathutil.Pose) Constrained {
	out := Constrained{Pose: interactor}
	if s.ConstrainPosition {
		offset := interactor.Position.Sub(s.Anchor.Position)
		if s.Surface || offset.Len() > s.Radius {
			out.Pose.Position = s.Anchor.Position.Add(mathutil.SafeNormalize(offset).Mul(s.Radius))
		}
		out.Position = true
	}
	if s.ConstrainRotation {
		out.Pose.Rotation = s.Anchor.Rotation
		out.Rotation = true
	}
	return out
}
