package interact

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tphakala/go-xr-interact/internal/blend"
	"github.com/tphakala/go-xr-interact/internal/constraint"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/pose"
)

// Pose is a rigid transform: a position and a unit quaternion.
type Pose = mathutil.Pose

// HandSide is a set of hands.
type HandSide = pose.Hand

// Hand sides.
const (
	HandLeft  = pose.HandLeft
	HandRight = pose.HandRight
	HandBoth  = pose.HandBoth
)

// HandPose is an authored hand pose offered by an object.
type HandPose = pose.Candidate

// BlendState is a snapshot of a hand's visual attach blend.
type BlendState = blend.State

// Axis is a slider travel axis.
type Axis = constraint.Axis

// Slider axes.
const (
	AxisX = constraint.AxisX
	AxisY = constraint.AxisY
	AxisZ = constraint.AxisZ
)

// At returns an unrotated pose at the given position.
func At(x, y, z float64) Pose {
	return mathutil.NewPose(mgl64.Vec3{x, y, z}, mgl64.QuatIdent())
}

// Oriented returns a pose at the given position rotated by Euler angles in
// degrees, applied Z, then X, then Y.
func Oriented(position mgl64.Vec3, x, y, z float64) Pose {
	return mathutil.NewPose(position, mathutil.EulerDegrees(x, y, z))
}
