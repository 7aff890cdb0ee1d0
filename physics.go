package interact

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tphakala/go-xr-interact/internal/constraint"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// integrate advances a free body by one explicit Euler step.
func integrate(b *constraint.Body, dt float64, gravity mgl64.Vec3, drag, angularDrag float64) {
	b.Velocity = b.Velocity.Add(gravity.Mul(dt))
	if drag > 0 {
		b.Velocity = b.Velocity.Mul(1 / (1 + drag*dt))
	}
	if angularDrag > 0 {
		b.AngularVelocity = b.AngularVelocity.Mul(1 / (1 + angularDrag*dt))
	}

	b.Pose.Position = b.Pose.Position.Add(b.Velocity.Mul(dt))
	b.Pose.Rotation = rotateBy(b.Pose.Rotation, b.AngularVelocity, dt)
}

// rotateBy applies angular velocity w (rad/s, world frame) to q for dt seconds.
func rotateBy(q mgl64.Quat, w mgl64.Vec3, dt float64) mgl64.Quat {
	speed := w.Len()
	angle := speed * dt
	if angle == 0 || !mathutil.IsFinite(angle) {
		return q
	}
	step := mgl64.QuatRotate(angle, w.Mul(1/speed))
	return mathutil.NormalizeQuat(step.Mul(q))
}
