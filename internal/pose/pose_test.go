package pose

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-xr-interact/internal/blend"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/testutil"
)

func TestSelect(t *testing.T) {
	candidates := []Candidate{
		{ID: "left-only", Hands: HandLeft, Interactions: InteractionAll, HasPosition: true, Position: mgl64.Vec3{0, 0, 0}},
		{ID: "free", Hands: HandBoth, Interactions: InteractionGrab},
		{ID: "far", Hands: HandBoth, Interactions: InteractionGrab, HasPosition: true, Position: mgl64.Vec3{1, 0, 0}},
		{ID: "near", Hands: HandBoth, Interactions: InteractionGrab, HasPosition: true, Position: mgl64.Vec3{0.2, 0, 0}},
		{ID: "near-twin", Hands: HandRight, Interactions: InteractionGrab, HasPosition: true, Position: mgl64.Vec3{0.2, 0, 0}},
		{ID: "hover", Hands: HandBoth, Interactions: InteractionHover, HasPosition: true, Position: mgl64.Vec3{0, 0, 0}},
	}

	tests := []struct {
		name   string
		hand   Hand
		kind   Interaction
		at     mgl64.Vec3
		want   string
		wantOK bool
	}{
		{"Nearest positioned wins", HandRight, InteractionGrab, mgl64.Vec3{0, 0, 0}, "near", true},
		{"Tie goes to earlier pose", HandRight, InteractionGrab, mgl64.Vec3{0.2, 0, 0}, "near", true},
		{"Far side", HandRight, InteractionGrab, mgl64.Vec3{2, 0, 0}, "far", true},
		{"Hand filter", HandLeft, InteractionHover, mgl64.Vec3{1, 0, 0}, "left-only", true},
		{"Hover filter", HandRight, InteractionHover, mgl64.Vec3{1, 0, 0}, "hover", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Select(candidates, tt.hand, tt.kind, tt.at)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestSelect_UnpositionedFallback(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Hands: HandBoth, Interactions: InteractionGrab},
		{ID: "b", Hands: HandBoth, Interactions: InteractionGrab},
	}
	got, ok := Select(candidates, HandLeft, InteractionGrab, mgl64.Vec3{})
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)

	_, ok = Select(candidates, HandLeft, InteractionHover, mgl64.Vec3{})
	assert.False(t, ok)
	_, ok = Select(nil, HandLeft, InteractionGrab, mgl64.Vec3{})
	assert.False(t, ok)
}

func TestCandidate_Target(t *testing.T) {
	c := Candidate{HasPosition: true, Position: mgl64.Vec3{1, 2, 3}}
	frame := mathutil.NewPose(mgl64.Vec3{0, 0, 10}, mathutil.EulerDegrees(0, 90, 0))

	f, ok := c.Target(frame).(blend.Fixed)
	require.True(t, ok)
	assert.True(t, f.ConstrainPosition)
	assert.False(t, f.ConstrainRotation)
	testutil.AssertVec3InDelta(t, mgl64.Vec3{3, 2, 9}, f.Anchor.Position, testutil.PositionTolerance)
}

func TestCandidate_SphericalTarget(t *testing.T) {
	c := Candidate{HasPosition: true, Position: mgl64.Vec3{0, 1, 0}, Radius: 0.5}
	frame := mathutil.NewPose(mgl64.Vec3{2, 0, 0}, mgl64.QuatIdent())

	s, ok := c.Target(frame).(blend.Spherical)
	require.True(t, ok)
	assert.InDelta(t, 0.5, s.Radius, testutil.DefaultTolerance)
	assert.False(t, s.Surface)
	assert.False(t, s.ConstrainRotation)

	// Inside the sphere the hand is left alone; outside it is pulled to the shell.
	inside := mathutil.NewPose(mgl64.Vec3{2.2, 1, 0}, mgl64.QuatIdent())
	testutil.AssertVec3InDelta(t, inside.Position, s.Constrain(inside).Pose.Position, testutil.PositionTolerance)
	outside := mathutil.NewPose(mgl64.Vec3{4, 1, 0}, mgl64.QuatIdent())
	testutil.AssertVec3InDelta(t, mgl64.Vec3{2.5, 1, 0}, s.Constrain(outside).Pose.Position, testutil.PositionTolerance)

	c.Surface = true
	s = c.Target(frame).(blend.Spherical)
	testutil.AssertVec3InDelta(t, mgl64.Vec3{2.5, 1, 0}, s.Constrain(inside).Pose.Position, testutil.PositionTolerance)
}

func TestParse(t *testing.T) {
	h, err := ParseHand("Left")
	require.NoError(t, err)
	assert.Equal(t, HandLeft, h)
	_, err = ParseHand("tentacle")
	require.Error(t, err)

	i, err := ParseInteractions([]string{"grab"})
	require.NoError(t, err)
	assert.Equal(t, InteractionGrab, i)
	i, err = ParseInteractions(nil)
	require.NoError(t, err)
	assert.Equal(t, InteractionAll, i)
	_, err = ParseInteractions([]string{"poke"})
	require.Error(t, err)
}
