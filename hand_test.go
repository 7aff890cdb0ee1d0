package interact

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tphakala/go-xr-interact/internal/blend"
	"github.com/tphakala/go-xr-interact/internal/constraint"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/pose"
	"github.com/tphakala/go-xr-interact/internal/testutil"
)

func newTestHand(t *testing.T, cancels *int) *Hand {
	t.Helper()
	cfg := DefaultHandConfig(HandRight)
	cfg.Logger = zaptest.NewLogger(t)
	cfg.Blend.OnCancel = func(blend.Cancellation) {
		if cancels != nil {
			*cancels++
		}
	}
	h, err := NewHand(&cfg)
	require.NoError(t, err)
	return h
}

func gripPose(position mgl64.Vec3) HandPose {
	return HandPose{
		ID:           "grip",
		Hands:        HandBoth,
		Interactions: pose.InteractionGrab,
		HasPosition:  true,
		Position:     position,
		Animation:    "fist",
	}
}

func TestHandConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HandConfig)
	}{
		{"Both hands", func(c *HandConfig) { c.Side = HandBoth }},
		{"Negative fade", func(c *HandConfig) { c.PoseExitTime = -1 }},
		{"Invalid blend", func(c *HandConfig) { c.Blend.SnapTime = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultHandConfig(HandLeft)
			tt.mutate(&cfg)
			_, err := NewHand(&cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := NewHand(nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestHand_GrabWithoutPoseAttachesImmediately(t *testing.T) {
	h := newTestHand(t, nil)
	g := newTestGrabbable(t, instantConfig(t), At(0, 1, 0))

	_, err := h.Grab(g, At(0, 1, 0), 0)
	require.NoError(t, err)
	assert.True(t, h.IsAttached())
	assert.Same(t, g, h.Held())

	tracked := At(0.2, 1, 0)
	f := h.Step(frameDt, frameDt, tracked)
	assert.Equal(t, tracked, f.Visual)
	assert.Equal(t, blend.PhaseIdle, f.Blend.Phase)
	testutil.AssertVec3InDelta(t, tracked.Position, g.Pose().Position, testutil.PositionTolerance)

	_, err = h.Grab(g, tracked, frameDt)
	require.ErrorIs(t, err, ErrAlreadyHeld)

	d, err := h.Release(2 * frameDt)
	require.NoError(t, err)
	assert.Equal(t, g.Session(), d.SessionID)
	assert.Nil(t, h.Held())

	_, err = h.Release(3 * frameDt)
	require.ErrorIs(t, err, ErrNotHeld)
}

func TestHand_GrabPoseBlendsBeforeAttaching(t *testing.T) {
	h := newTestHand(t, nil)
	cfg := instantConfig(t)
	cfg.Poses = []HandPose{gripPose(mgl64.Vec3{0, 0, 0})}
	g := newTestGrabbable(t, cfg, At(0, 1, 0))

	tracked := At(0, 1, 0.1)
	_, err := h.Grab(g, tracked, 0)
	require.NoError(t, err)
	assert.False(t, h.IsAttached(), "visual still entering")

	f := h.Step(blend.DefaultSnapTime/2, 0.1, tracked)
	assert.Equal(t, blend.PhaseEntering, f.Blend.Phase)
	assert.Equal(t, "grip", f.Blend.TargetPoseID)
	assert.Equal(t, "fist", f.Animation.Animation)
	testutil.AssertVec3InDelta(t, mgl64.Vec3{0, 1, 0.05}, f.Visual.Position, testutil.PositionTolerance)

	f = h.Step(blend.DefaultSnapTime/2, 0.2, tracked)
	assert.Equal(t, blend.PhaseEngaged, f.Blend.Phase)
	testutil.AssertVec3InDelta(t, mgl64.Vec3{0, 1, 0}, f.Visual.Position, testutil.PositionTolerance)
	assert.True(t, h.IsAttached())

	// Attached: the object follows and the visual stays on its pose.
	moved := At(0.1, 1, 0.1)
	f = h.Step(frameDt, 0.2+frameDt, moved)
	testutil.AssertVec3InDelta(t, mgl64.Vec3{0.1, 1, 0}, g.Pose().Position, testutil.PositionTolerance)
	testutil.AssertVec3InDelta(t, mgl64.Vec3{0.1, 1, 0}, f.Visual.Position, testutil.PositionTolerance)
}

func TestHand_PoseFilteredBySide(t *testing.T) {
	h := newTestHand(t, nil)
	left := gripPose(mgl64.Vec3{})
	left.Hands = HandLeft

	cfg := instantConfig(t)
	cfg.Poses = []HandPose{left}
	g := newTestGrabbable(t, cfg, mathutil.IdentityPose())

	_, err := h.Grab(g, mathutil.IdentityPose(), 0)
	require.NoError(t, err)
	assert.True(t, h.IsAttached(), "no pose for the right hand")
	assert.Equal(t, blend.PhaseIdle, h.Step(frameDt, frameDt, mathutil.IdentityPose()).Blend.Phase)
}

func TestHand_ViolationCancelsGrab(t *testing.T) {
	var cancels int
	h := newTestHand(t, &cancels)

	s, err := constraint.NewSlider(constraint.AxisX, 1)
	require.NoError(t, err)
	cfg := instantConfig(t)
	cfg.Constraint = s
	cfg.Poses = []HandPose{gripPose(mgl64.Vec3{})}
	g := newTestGrabbable(t, cfg, mathutil.IdentityPose())

	tracked := At(0, 0, 0.05)
	_, err = h.Grab(g, tracked, 0)
	require.NoError(t, err)
	h.Step(blend.DefaultSnapTime, blend.DefaultSnapTime, tracked)
	require.True(t, h.IsAttached())

	// The slider cannot follow along Z, so the pose ends up out of reach.
	f := h.Step(frameDt, 0.3, At(0, 0, 1))
	require.True(t, f.Cancelled)
	assert.True(t, f.Cancellation.Select)
	assert.True(t, f.Released)
	assert.Equal(t, g.Session(), f.Detach.SessionID)
	assert.Equal(t, 1, cancels)
	assert.Nil(t, h.Held())
	assert.False(t, g.IsHeld())
	assert.Equal(t, blend.PhaseReturning, f.Blend.Phase)

	_, err = h.Grab(g, At(0, 0, 1), 0.31)
	require.ErrorIs(t, err, ErrInteractionRefused)
	assert.False(t, h.Hover(g, At(0, 0, 1)))

	for i := range 40 {
		f = h.Step(frameDt, 0.31+float64(i)*frameDt, At(0, 0, 1))
		assert.False(t, f.Cancelled)
	}
	assert.Equal(t, 1, cancels, "cancelled exactly once")
	assert.True(t, h.CanInteract())
}

func hoverPose(id string) HandPose {
	return HandPose{
		ID:           id,
		Hands:        HandBoth,
		Interactions: pose.InteractionHover,
		HasPosition:  true,
		Animation:    id,
	}
}

func TestHand_HoverMovesBetweenObjects(t *testing.T) {
	h := newTestHand(t, nil)
	cfgA := instantConfig(t)
	cfgA.Name = "a"
	cfgA.Poses = []HandPose{hoverPose("point-a")}
	a := newTestGrabbable(t, cfgA, At(0.05, 0, 0))
	cfgB := instantConfig(t)
	cfgB.Name = "b"
	cfgB.Poses = []HandPose{hoverPose("point-b")}
	b := newTestGrabbable(t, cfgB, At(-0.05, 0, 0))

	tracked := mathutil.IdentityPose()
	require.True(t, h.Hover(a, tracked))
	f := h.Step(blend.DefaultSnapTime, blend.DefaultSnapTime, tracked)
	require.Equal(t, blend.PhaseEngaged, f.Blend.Phase)
	testutil.AssertVec3InDelta(t, mgl64.Vec3{0.05, 0, 0}, f.Visual.Position, testutil.PositionTolerance)

	require.True(t, h.Hover(b, tracked))
	assert.Same(t, b, h.Hovered())
	assert.True(t, h.CanInteract())

	now := blend.DefaultSnapTime
	for range 3 {
		now += blend.DefaultSnapTime / 2
		f = h.Step(blend.DefaultSnapTime/2, now, tracked)
	}
	assert.Equal(t, blend.PhaseEngaged, f.Blend.Phase)
	assert.Equal(t, "point-b", f.Blend.TargetPoseID)
	assert.Equal(t, "point-b", f.Animation.Animation)
	testutil.AssertVec3InDelta(t, mgl64.Vec3{-0.05, 0, 0}, f.Visual.Position, testutil.PositionTolerance)
}

func TestHand_SphericalGrabPose(t *testing.T) {
	h := newTestHand(t, nil)
	ring := HandPose{
		ID:           "ring",
		Hands:        HandBoth,
		Interactions: pose.InteractionGrab,
		HasPosition:  true,
		Radius:       0.1,
		Surface:      true,
	}
	cfg := instantConfig(t)
	cfg.Poses = []HandPose{ring}
	g := newTestGrabbable(t, cfg, mathutil.IdentityPose())

	tracked := At(0, 0, 0.05)
	_, err := h.Grab(g, tracked, 0)
	require.NoError(t, err)
	f := h.Step(blend.DefaultSnapTime, blend.DefaultSnapTime, tracked)
	require.Equal(t, blend.PhaseEngaged, f.Blend.Phase)
	testutil.AssertVec3InDelta(t, mgl64.Vec3{0, 0, 0.1}, f.Visual.Position, testutil.PositionTolerance)
}

func TestHand_LostTrackingKeepsVisual(t *testing.T) {
	h := newTestHand(t, nil)
	cfg := instantConfig(t)
	cfg.Poses = []HandPose{gripPose(mgl64.Vec3{})}
	g := newTestGrabbable(t, cfg, mathutil.IdentityPose())

	tracked := At(0, 0, 0.05)
	_, err := h.Grab(g, tracked, 0)
	require.NoError(t, err)
	before := h.Step(blend.DefaultSnapTime/2, 0.1, tracked)

	lost := Pose{Position: mgl64.Vec3{math.NaN(), 0, 0}, Rotation: mgl64.QuatIdent()}
	f := h.Step(frameDt, 0.1+frameDt, lost)
	assert.Equal(t, before.Visual, f.Visual)
	assert.False(t, f.Cancelled)

	f = h.Step(blend.DefaultSnapTime/2, 0.2, tracked)
	testutil.AssertFiniteVec3(t, f.Visual.Position)
	testutil.AssertVec3InDelta(t, mgl64.Vec3{}, f.Visual.Position, testutil.PositionTolerance)
	testutil.AssertFiniteVec3(t, g.Pose().Position)
}

func TestHand_HoverPose(t *testing.T) {
	h := newTestHand(t, nil)
	hover := HandPose{
		ID:           "point",
		Hands:        HandBoth,
		Interactions: pose.InteractionHover,
		Animation:    "point",
	}
	cfg := instantConfig(t)
	cfg.Poses = []HandPose{hover}
	g := newTestGrabbable(t, cfg, mathutil.IdentityPose())

	require.True(t, h.Hover(g, mathutil.IdentityPose()))
	assert.Same(t, g, h.Hovered())
	f := h.Step(pose.DefaultEnterTime, pose.DefaultEnterTime, mathutil.IdentityPose())
	assert.Equal(t, "point", f.Animation.Animation)
	assert.InDelta(t, 1.0, f.Animation.Weight, testutil.DefaultTolerance)
	assert.Equal(t, blend.KindHover, f.Blend.Kind)

	h.Unhover()
	assert.Nil(t, h.Hovered())
	f = h.Step(pose.DefaultExitTime, 1, mathutil.IdentityPose())
	assert.Equal(t, 0.0, f.Animation.Weight)
}
