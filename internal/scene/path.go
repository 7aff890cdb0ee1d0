package scene

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tphakala/go-xr-interact/internal/curve"
	"github.com/tphakala/go-xr-interact/internal/loader"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// Path is the tracked hand trajectory: positions interpolate linearly and
// rotations spherically between keyframes, holding the end poses outside.
type Path struct {
	times     []float64
	axes      [3]*curve.Linear
	rotations []mgl64.Quat
}

// NewPath builds a path from keyframes with strictly increasing times.
func NewPath(keys []loader.Keyframe) (*Path, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("path needs at least one keyframe")
	}

	p := &Path{
		times:     make([]float64, len(keys)),
		rotations: make([]mgl64.Quat, len(keys)),
	}
	var coords [3][]float64
	for i, k := range keys {
		p.times[i] = k.Time
		p.rotations[i] = mathutil.EulerDegrees(k.Rotation[0], k.Rotation[1], k.Rotation[2])
		for a := range coords {
			coords[a] = append(coords[a], k.Position[a])
		}
	}
	for a := range coords {
		c, err := curve.NewLinear(p.times, coords[a])
		if err != nil {
			return nil, fmt.Errorf("path: %w", err)
		}
		p.axes[a] = c
	}
	return p, nil
}

// At returns the hand pose at time t.
func (p *Path) At(t float64) mathutil.Pose {
	pos := mgl64.Vec3{p.axes[0].Evaluate(t), p.axes[1].Evaluate(t), p.axes[2].Evaluate(t)}
	return mathutil.NewPose(pos, p.rotationAt(t))
}

func (p *Path) rotationAt(t float64) mgl64.Quat {
	n := len(p.times)
	if t <= p.times[0] {
		return p.rotations[0]
	}
	if t >= p.times[n-1] {
		return p.rotations[n-1]
	}
	// First keyframe at or after t.
	i := sort.SearchFloat64s(p.times, t)
	if p.times[i] == t {
		return p.rotations[i]
	}
	u := (t - p.times[i-1]) / (p.times[i] - p.times[i-1])
	return mathutil.Slerp(p.rotations[i-1], p.rotations[i], u)
}
