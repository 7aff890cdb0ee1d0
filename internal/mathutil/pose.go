package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Basis axes in a right-handed, Y-up frame with Z forward.
var (
	AxisRight   = mgl64.Vec3{1, 0, 0}
	AxisUp      = mgl64.Vec3{0, 1, 0}
	AxisForward = mgl64.Vec3{0, 0, 1}
)

// Pose is a rigid transform: a position and an orientation.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose returns the pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// NewPose builds a pose, normalising the rotation.
func NewPose(position mgl64.Vec3, rotation mgl64.Quat) Pose {
	return Pose{Position: position, Rotation: NormalizeQuat(rotation)}
}

// Transform maps a pose expressed in p's local frame into p's parent frame.
func (p Pose) Transform(local Pose) Pose {
	return Pose{
		Position: p.Position.Add(p.Rotation.Rotate(local.Position)),
		Rotation: NormalizeQuat(p.Rotation.Mul(local.Rotation)),
	}
}

// InverseTransform maps a pose in p's parent frame into p's local frame.
func (p Pose) InverseTransform(world Pose) Pose {
	inv := p.Rotation.Inverse()
	return Pose{
		Position: inv.Rotate(world.Position.Sub(p.Position)),
		Rotation: NormalizeQuat(inv.Mul(world.Rotation)),
	}
}

// TransformPoint maps a local point into p's parent frame.
func (p Pose) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(local))
}

// InverseTransformPoint maps a parent-frame point into p's local frame.
func (p Pose) InverseTransformPoint(world mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Inverse().Rotate(world.Sub(p.Position))
}

// IsFinite reports whether every component of the pose is finite.
func (p Pose) IsFinite() bool {
	return Vec3Finite(p.Position) && QuatFinite(p.Rotation)
}

// LerpPose interpolates position linearly and rotation along the shortest arc.
func LerpPose(a, b Pose, t float64) Pose {
	return Pose{
		Position: LerpVec3(a.Position, b.Position, t),
		Rotation: Slerp(a.Rotation, b.Rotation, t),
	}
}

// LerpVec3 interpolates between a and b with t clamped to [0, 1].
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	return a.Add(b.Sub(a).Mul(t))
}

// Slerp is spherical interpolation with t clamped to [0, 1], always taking
// the shorter of the two arcs between a and b.
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp01(t)
	a = NormalizeQuat(a)
	b = NormalizeQuat(b)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return NormalizeQuat(mgl64.QuatSlerp(a, b, t))
}

// NormalizeQuat returns q with unit length. Degenerate or non-finite input
// yields the identity rotation.
func NormalizeQuat(q mgl64.Quat) mgl64.Quat {
	if !QuatFinite(q) {
		return mgl64.QuatIdent()
	}
	l := q.Len()
	if l < unitEpsilon {
		return mgl64.QuatIdent()
	}
	return q.Scale(1 / l)
}

// SafeNormalize returns the unit vector of v, or the zero vector when v is
// too short to have a direction.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < unitEpsilon || !IsFinite(l) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// QuatAngle returns the angle in degrees between two orientations, in [0, 180].
func QuatAngle(a, b mgl64.Quat) float64 {
	d := math.Min(math.Abs(NormalizeQuat(a).Dot(NormalizeQuat(b))), 1)
	return mgl64.RadToDeg(2 * math.Acos(d))
}

// ToAngleAxis decomposes q into a rotation angle in degrees, wrapped into
// (-180, 180], and a unit axis. The identity rotation reports the X axis.
func ToAngleAxis(q mgl64.Quat) (float64, mgl64.Vec3) {
	q = NormalizeQuat(q)
	w := Clamp(q.W, -1, 1)
	angle := mgl64.RadToDeg(2 * math.Acos(w))
	s := math.Sqrt(1 - w*w)
	if s < unitEpsilon {
		return 0, AxisRight
	}
	axis := q.V.Mul(1 / s)
	return WrapDegrees(angle), axis
}

// AngularVelocity converts a rotation delta applied over dt seconds into an
// angular velocity vector in radians per second. A zero dt yields zero.
func AngularVelocity(delta mgl64.Quat, dt float64) mgl64.Vec3 {
	if math.Abs(dt) < TimeEpsilon || !IsFinite(dt) {
		return mgl64.Vec3{}
	}
	angle, axis := ToAngleAxis(delta)
	return axis.Mul(mgl64.DegToRad(angle) / dt)
}

// EulerDegrees builds a rotation from angles in degrees applied about Z,
// then X, then Y.
func EulerDegrees(x, y, z float64) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(x), AxisRight)
	qy := mgl64.QuatRotate(mgl64.DegToRad(y), AxisUp)
	qz := mgl64.QuatRotate(mgl64.DegToRad(z), AxisForward)
	return NormalizeQuat(qy.Mul(qx).Mul(qz))
}

// Vec3Finite reports whether every component of v is finite.
func Vec3Finite(v mgl64.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// QuatFinite reports whether every component of q is finite.
func QuatFinite(q mgl64.Quat) bool {
	return IsFinite(q.W) && Vec3Finite(q.V)
}
