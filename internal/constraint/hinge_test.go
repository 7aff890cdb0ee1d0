package constraint

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/testutil"
)

func newDoor(t *testing.T, restitution float64) *Hinge {
	t.Helper()
	h, err := NewHinge(HingeConfig{MinAngle: -10, MaxAngle: 100, Restitution: restitution})
	require.NoError(t, err)
	return h
}

func TestCanonicalAngle(t *testing.T) {
	assert.Equal(t, 180.0, CanonicalAngle(-180))
	assert.InDelta(t, -170.0, CanonicalAngle(190), axisTolerance)
	assert.InDelta(t, 10.0, CanonicalAngle(370), axisTolerance)
}

func TestClampAngle_Idempotent(t *testing.T) {
	for a := -720.0; a <= 720; a += 13 {
		once := ClampAngle(a, -45, 120)
		assert.Equal(t, once, ClampAngle(once, -45, 120), "angle %v", a)
		testutil.AssertInRange(t, once, -45, 120)
	}
}

func TestReflectAngularVelocity(t *testing.T) {
	tests := []struct {
		name           string
		w              float64
		hitMin, hitMax bool
		want           float64
	}{
		{"Into min", -2, true, false, 0},
		{"Away from min", 2, true, false, 2},
		{"Into max", 3, false, true, 0},
		{"Away from max", -3, false, true, -3},
		{"Free", -1, false, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReflectAngularVelocity(tt.w, tt.hitMin, tt.hitMax)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.GreaterOrEqual(t, ReflectAngularVelocity(-2, true, false), 0.0)
}

func TestBounceAngularVelocity(t *testing.T) {
	assert.InDelta(t, 1.0, BounceAngularVelocity(-2, true, false, 0.5), axisTolerance)
	assert.InDelta(t, -1.5, BounceAngularVelocity(3, false, true, 0.5), axisTolerance)
	assert.Equal(t, 0.0, BounceAngularVelocity(-2, true, false, 0))
}

func TestNewHinge_Validation(t *testing.T) {
	_, err := NewHinge(HingeConfig{MinAngle: 10, MaxAngle: -10})
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewHinge(HingeConfig{MinAngle: -200, MaxAngle: 0})
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewHinge(HingeConfig{MaxAngle: 90, Restitution: 2})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestHinge_ConstrainTarget(t *testing.T) {
	h, err := NewHinge(HingeConfig{MinAngle: -10, MaxAngle: 100, Pivot: mgl64.Vec3{0, 1, 0}})
	require.NoError(t, err)
	current := mathutil.NewPose(mgl64.Vec3{0, 1.2, 0}, mathutil.EulerDegrees(0, 20, 0))

	tests := []struct {
		name   string
		target mgl64.Vec3
		want   float64
	}{
		{"Straight ahead", mgl64.Vec3{0, 3, 1}, 0},
		{"Right quarter", mgl64.Vec3{1, 0, 0}, 90},
		{"Diagonal", mgl64.Vec3{1, 0, 1}, 45},
		{"Past max", mgl64.Vec3{0.2, 0, -1}, 100},
		{"Past min", mgl64.Vec3{-1, 0, 1}, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.ConstrainTarget(mathutil.NewPose(tt.target, mathutil.EulerDegrees(40, 0, 0)), current)
			assert.InDelta(t, tt.want, h.Angle(got), testutil.AngleTolerance)
			assert.Equal(t, h.Pivot(), got.Position, "door stays on its pivot")
		})
	}
}

func TestHinge_Solve(t *testing.T) {
	h := newDoor(t, 0)

	b := h.Solve(Body{
		Pose:            mathutil.NewPose(mgl64.Vec3{}, mathutil.EulerDegrees(0, 130, 0)),
		Velocity:        mgl64.Vec3{1, 1, 1},
		AngularVelocity: mgl64.Vec3{0.5, 2, 0.5},
	})
	assert.InDelta(t, 100.0, h.Angle(b.Pose), testutil.AngleTolerance)
	assert.Equal(t, mgl64.Vec3{}, b.Velocity)
	assert.Equal(t, mgl64.Vec3{}, b.AngularVelocity)

	b = h.Solve(Body{
		Pose:            mathutil.NewPose(mgl64.Vec3{}, mathutil.EulerDegrees(0, 30, 0)),
		AngularVelocity: mgl64.Vec3{0, -1, 0},
	})
	assert.InDelta(t, 30.0, h.Angle(b.Pose), testutil.AngleTolerance)
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, b.AngularVelocity)
}

func TestHinge_SolveWithRestitution(t *testing.T) {
	h := newDoor(t, 0.5)
	b := h.Solve(Body{
		Pose:            mathutil.NewPose(mgl64.Vec3{}, mathutil.EulerDegrees(0, -20, 0)),
		AngularVelocity: mgl64.Vec3{0, -4, 0},
	})
	assert.InDelta(t, -10.0, h.Angle(b.Pose), testutil.AngleTolerance)
	assert.InDelta(t, 2.0, b.AngularVelocity.Y(), axisTolerance)
}

func TestHinge_Observe(t *testing.T) {
	h := newDoor(t, 0)
	closed := mathutil.IdentityPose()
	open := mathutil.NewPose(mgl64.Vec3{}, mathutil.EulerDegrees(0, 45, 0))

	assert.True(t, h.Observe(closed).Changed)
	assert.False(t, h.Observe(closed).Changed)
	r := h.Observe(open)
	assert.True(t, r.Changed)
	assert.InDelta(t, 45.0, r.Value, testutil.AngleTolerance)
}
