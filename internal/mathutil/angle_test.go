package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-xr-interact/internal/testutil"
)

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"Zero", 0, 0},
		{"Positive half turn stays", 180, 180},
		{"Negative half turn flips", -180, 180},
		{"Just past half turn", 190, -170},
		{"Full turn", 360, 0},
		{"Large positive", 725, 5},
		{"Large negative", -725, -5},
		{"Negative in range", -90, -90},
		{"Three quarter turn", 270, -90},
		{"NaN", math.NaN(), 0},
		{"Inf", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, WrapDegrees(tt.in), testutil.DefaultTolerance)
		})
	}
}

func TestWrapDegrees_Range(t *testing.T) {
	for a := -1080.0; a <= 1080; a += 7.5 {
		w := WrapDegrees(a)
		assert.Greater(t, w, -180.0, "WrapDegrees(%v)", a)
		assert.LessOrEqual(t, w, 180.0, "WrapDegrees(%v)", a)
	}
}

func TestDeltaAngle(t *testing.T) {
	assert.InDelta(t, 20.0, DeltaAngle(170, -170), testutil.DefaultTolerance)
	assert.InDelta(t, -20.0, DeltaAngle(-170, 170), testutil.DefaultTolerance)
	assert.InDelta(t, 90.0, DeltaAngle(0, 90), testutil.DefaultTolerance)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(-3, 1, 2))
	assert.Equal(t, 2.0, Clamp(3, 1, 2))
	assert.Equal(t, 1.5, Clamp(1.5, 1, 2))
	assert.Equal(t, 1.5, Clamp(1.5, 2, 1), "swapped bounds")
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
	assert.Equal(t, 1.0, Clamp01(5))
}

func TestLerpAndInverseLerp(t *testing.T) {
	assert.InDelta(t, 5.0, Lerp(0, 10, 0.5), testutil.DefaultTolerance)
	assert.InDelta(t, 10.0, Lerp(0, 10, 2), testutil.DefaultTolerance)
	assert.InDelta(t, 0.25, InverseLerp(0, 4, 1), testutil.DefaultTolerance)
	assert.Equal(t, 0.0, InverseLerp(3, 3, 7), "degenerate interval")
}

func TestApproximately(t *testing.T) {
	assert.True(t, Approximately(1, 1+1e-8))
	assert.True(t, Approximately(0, 1e-7))
	assert.False(t, Approximately(0, 1e-3))
	assert.True(t, Approximately(1e6, 1e6+0.5))
	assert.False(t, Approximately(1e6, 1e6+5))
}
