package constraint

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-xr-interact/internal/curve"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/testutil"
)

func at(x, y, z float64) mathutil.Pose {
	return mathutil.NewPose(mgl64.Vec3{x, y, z}, mgl64.QuatIdent())
}

func TestNewSlider_Validation(t *testing.T) {
	_, err := NewSlider(AxisX, 0)
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewSlider(Axis(7), 1)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseAxis("w")
	require.ErrorIs(t, err, ErrInvalidConfig)
	a, err := ParseAxis("Z")
	require.NoError(t, err)
	assert.Equal(t, AxisZ, a)
}

func TestSlider_ConstrainTarget(t *testing.T) {
	s, err := NewSlider(AxisY, 2)
	require.NoError(t, err)

	current := at(0.1, 0.5, -0.3)
	tests := []struct {
		name   string
		target mathutil.Pose
		wantY  float64
	}{
		{"Inside", at(5, 1.2, 5), 1.2},
		{"Below", at(0, -1, 0), 0},
		{"Above", at(0, 9, 0), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ConstrainTarget(tt.target, current)
			testutil.AssertVec3InDelta(t, mgl64.Vec3{0.1, tt.wantY, -0.3}, got.Position, testutil.PositionTolerance)
		})
	}
}

func TestSlider_Solve(t *testing.T) {
	s, err := NewSlider(AxisX, 1)
	require.NoError(t, err)

	b := s.Solve(Body{
		Pose:            at(1.4, 0.2, 0),
		Velocity:        mgl64.Vec3{3, 1, -1},
		AngularVelocity: mgl64.Vec3{1, 2, 3},
	})
	assert.Equal(t, 1.0, b.Pose.Position.X())
	assert.Equal(t, mgl64.Vec3{}, b.Velocity, "outward velocity at the end stop is removed")
	assert.Equal(t, mgl64.Vec3{}, b.AngularVelocity)

	b = s.Solve(Body{Pose: at(0.5, 0, 0), Velocity: mgl64.Vec3{-2, 4, 4}})
	assert.Equal(t, mgl64.Vec3{-2, 0, 0}, b.Velocity)

	sleeping := Body{Pose: at(7, 0, 0), Velocity: mgl64.Vec3{1, 1, 1}, Sleeping: true}
	assert.Equal(t, sleeping, s.Solve(sleeping))
}

func TestSlider_ObserveChanges(t *testing.T) {
	s, err := NewSlider(AxisZ, 2)
	require.NoError(t, err)

	r := s.Observe(at(0, 0, 0))
	assert.True(t, r.Changed, "first observation always reports")
	assert.Equal(t, 0.0, r.Value)

	assert.False(t, s.Observe(at(0, 0, 1e-9)).Changed)

	r = s.Observe(at(0, 0, 1))
	assert.True(t, r.Changed)
	assert.InDelta(t, 0.5, r.Value, axisTolerance)

	s.Reset()
	assert.True(t, s.Observe(at(0, 0, 1)).Changed)
}

func TestSlider_SetNormalizedPosition(t *testing.T) {
	s, err := NewSlider(AxisX, 4)
	require.NoError(t, err)

	p := s.SetNormalizedPosition(at(0, 1, 2), 0.25)
	assert.Equal(t, mgl64.Vec3{1, 1, 2}, p.Position)
	assert.Equal(t, 1.0, s.NormalizedPosition(s.SetNormalizedPosition(p, 3)))
}

func newFixedSlider(t *testing.T) *FixedSlider {
	t.Helper()
	f, err := NewFixedSlider(FixedSliderConfig{
		Axis:     AxisX,
		Size:     2,
		Stops:    DefaultStops,
		Movement: curve.Identity,
		SnapTime: DefaultSnapToStopTime,
	})
	require.NoError(t, err)
	return f
}

func TestFixedSlider_Validation(t *testing.T) {
	_, err := NewFixedSlider(FixedSliderConfig{Axis: AxisX, Size: 1})
	require.ErrorIs(t, err, ErrInvalidConfig, "no stops")

	_, err = NewFixedSlider(FixedSliderConfig{Axis: AxisX, Size: 1, Stops: DefaultStops, SnapTime: -1})
	require.ErrorIs(t, err, ErrInvalidConfig)

	f, err := NewFixedSlider(FixedSliderConfig{Axis: AxisX, Size: 1, Stops: DefaultStops})
	require.NoError(t, err)
	assert.Equal(t, KindFixedSlider, f.Kind())
}

func TestFixedSlider_ConstrainTarget(t *testing.T) {
	f := newFixedSlider(t)
	got := f.ConstrainTarget(at(0.5, 3, 3), at(0, 0, 0))
	assert.InDelta(t, 0.5, got.Position.X(), axisTolerance)
	assert.Equal(t, 0.0, got.Position.Y())

	got = f.ConstrainTarget(at(5, 0, 0), at(0, 0, 0))
	assert.InDelta(t, 2.0, got.Position.X(), axisTolerance)
}

func TestFixedSlider_SetIndex(t *testing.T) {
	f := newFixedSlider(t)
	start := at(0.3, 0, 0)

	for i, want := range []float64{0, 1, 2} {
		p, ok := f.SetIndex(start, i)
		require.True(t, ok, "index %d", i)
		assert.InDelta(t, want, p.Position.X(), axisTolerance)
		assert.Equal(t, i, f.Index(p))
	}

	for _, bad := range []int{-1, 3} {
		p, ok := f.SetIndex(start, bad)
		assert.False(t, ok)
		assert.Equal(t, start, p)
	}
}

func TestFixedSlider_SettlesOnNearestStop(t *testing.T) {
	f := newFixedSlider(t)
	p := at(0.8, 0, 0) // normalised 0.4, nearest stop 0.5 → x = 1
	for range 200 {
		p = f.Settle(p, 1.0/90)
		assert.LessOrEqual(t, p.Position.X(), 1.0)
	}
	assert.InDelta(t, 1.0, p.Position.X(), 1e-6)
	assert.Equal(t, 1, f.Index(p))
}

func TestFixedSlider_ObserveIndex(t *testing.T) {
	f := newFixedSlider(t)

	i, changed := f.ObserveIndex(at(0, 0, 0))
	assert.Equal(t, 0, i)
	assert.True(t, changed)

	_, changed = f.ObserveIndex(at(0.2, 0, 0))
	assert.False(t, changed)

	i, changed = f.ObserveIndex(at(1.1, 0, 0))
	assert.Equal(t, 1, i)
	assert.True(t, changed)
}
