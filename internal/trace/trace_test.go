package trace

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

func record(frames int, offset float64) *Digest {
	d := New()
	for i := range frames {
		d.BeginFrame(i)
		d.Pose("ball", mathutil.NewPose(mgl64.Vec3{float64(i) + offset, 1, 0}, mgl64.QuatIdent()))
		d.Value("door", 12.5)
	}
	return d
}

func TestDigest_Deterministic(t *testing.T) {
	a := record(10, 0)
	b := record(10, 0)
	assert.Equal(t, a.Sum64(), b.Sum64())
	assert.Equal(t, 10, a.Frames())
	assert.Len(t, a.String(), 16)
}

func TestDigest_DetectsChanges(t *testing.T) {
	base := record(10, 0).Sum64()
	assert.NotEqual(t, base, record(11, 0).Sum64(), "extra frame")
	assert.NotEqual(t, base, record(10, 1e-3).Sum64(), "moved pose")
}

func TestDigest_IgnoresRoundingNoise(t *testing.T) {
	assert.Equal(t, record(5, 0).Sum64(), record(5, 1e-13).Sum64())

	a, b := New(), New()
	a.Float(0)
	b.Float(-1e-15)
	assert.Equal(t, a.Sum64(), b.Sum64())
}

func TestDigest_QuaternionSign(t *testing.T) {
	q := mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0})
	a, b := New(), New()
	a.Pose("p", mathutil.NewPose(mgl64.Vec3{}, q))
	b.Pose("p", mathutil.NewPose(mgl64.Vec3{}, q.Scale(-1)))
	assert.Equal(t, a.Sum64(), b.Sum64())
}

func TestDigest_NamesAreDelimited(t *testing.T) {
	a, b := New(), New()
	a.Value("ab", 1)
	a.Value("c", 1)
	b.Value("a", 1)
	b.Value("bc", 1)
	assert.NotEqual(t, a.Sum64(), b.Sum64())
}

func TestDigest_Reset(t *testing.T) {
	d := record(3, 0)
	d.Reset()
	assert.Equal(t, 0, d.Frames())
	assert.Equal(t, New().Sum64(), d.Sum64())
}
