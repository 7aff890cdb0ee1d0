// Package velocity estimates linear and angular velocity of a tracked object
// from per-frame motion deltas, averaged over a trailing time window.
package velocity

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tphakala/go-xr-interact/internal/curve"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/simdops"
)

// ErrInvalidCapacity indicates a sampler was requested with no room for samples.
var ErrInvalidCapacity = errors.New("sampler capacity must be at least 1")

// Sample is one recorded frame of motion.
type Sample struct {
	Time            float64
	Velocity        mgl64.Vec3 // metres per second
	AngularVelocity mgl64.Vec3 // radians per second
}

// Window selects and weights the samples that contribute to a smoothed value.
//
// Samples older than Duration are excluded. The remaining samples are weighted
// by Weight(1 - age/Duration), so Weight(1) applies to a sample taken now and
// Weight(0) to one at the edge of the window. A nil Weight is the identity curve.
// A non-positive Duration uses the most recent sample only.
type Window struct {
	Duration float64
	Weight   curve.Curve
}

// Sampler is a fixed-capacity ring of motion samples. When full, the oldest
// sample is overwritten. It is not safe for concurrent use.
type Sampler struct {
	data     []Sample
	capacity int
	size     int
	writePos int

	// scratch buffers for the weighted reduction, one per vector component
	weights    []float64
	components [componentCount][]float64
}

// NewSampler creates a sampler holding up to capacity samples.
func NewSampler(capacity int) (*Sampler, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	s := &Sampler{
		data:     make([]Sample, capacity),
		capacity: capacity,
		weights:  make([]float64, capacity),
	}
	for i := range s.components {
		s.components[i] = make([]float64, capacity)
	}
	return s, nil
}

// Reset discards all recorded samples.
func (s *Sampler) Reset() {
	clear(s.data)
	s.size = 0
	s.writePos = 0
}

// Len returns the number of samples currently held.
func (s *Sampler) Len() int { return s.size }

// Capacity returns the maximum number of samples held.
func (s *Sampler) Capacity() int { return s.capacity }

// Record stores a sample, overwriting the oldest when full. Samples with
// non-finite fields are dropped and Record reports false.
func (s *Sampler) Record(sample Sample) bool {
	if !mathutil.IsFinite(sample.Time) ||
		!mathutil.Vec3Finite(sample.Velocity) ||
		!mathutil.Vec3Finite(sample.AngularVelocity) {
		return false
	}

	s.data[s.writePos] = sample
	s.writePos = (s.writePos + 1) % s.capacity
	if s.size < s.capacity {
		s.size++
	}
	return true
}

// RecordSample converts a frame's position and rotation deltas into velocities
// and stores them with timestamp now. dRot is the rotation that carries last
// frame's orientation onto this frame's. A (near) zero dt is skipped and
// RecordSample reports false.
func (s *Sampler) RecordSample(dPos mgl64.Vec3, dRot mgl64.Quat, dt, now float64) bool {
	if !mathutil.IsFinite(dt) || dt > -mathutil.TimeEpsilon && dt < mathutil.TimeEpsilon {
		return false
	}
	return s.Record(Sample{
		Time:            now,
		Velocity:        dPos.Mul(1 / dt),
		AngularVelocity: mathutil.AngularVelocity(dRot, dt),
	})
}

// At returns the i-th most recent sample; At(0) is the newest.
func (s *Sampler) At(i int) (Sample, bool) {
	if i < 0 || i >= s.size {
		return Sample{}, false
	}
	return s.data[s.index(i)], true
}

// Smoothed returns the window-weighted average linear and angular velocity
// as of time now. An empty sampler, or one whose in-window weights sum to
// zero, yields zero vectors.
func (s *Sampler) Smoothed(now float64, w Window) (mgl64.Vec3, mgl64.Vec3) {
	if s.size == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}
	if w.Duration <= 0 || !mathutil.IsFinite(w.Duration) {
		latest := s.data[s.index(0)]
		return latest.Velocity, latest.AngularVelocity
	}

	n := 0
	for i := range s.size {
		sample := s.data[s.index(i)]
		age := now - sample.Time
		if age > w.Duration {
			break
		}

		weight := curve.Evaluate(w.Weight, mathutil.Clamp01(1-age/w.Duration))
		if !mathutil.IsFinite(weight) || weight < 0 {
			weight = 0
		}

		s.weights[n] = weight
		for c := range linearComponents {
			s.components[c][n] = sample.Velocity[c]
			s.components[linearComponents+c][n] = sample.AngularVelocity[c]
		}
		n++
	}

	weights := s.weights[:n]
	if !simdops.Normalize(weights) {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}

	var linear, angular mgl64.Vec3
	for c := range linearComponents {
		linear[c] = simdops.Dot(s.components[c][:n], weights)
		angular[c] = simdops.Dot(s.components[linearComponents+c][:n], weights)
	}
	return linear, angular
}

// SmoothedVelocity returns the linear part of Smoothed.
func (s *Sampler) SmoothedVelocity(now float64, w Window) mgl64.Vec3 {
	v, _ := s.Smoothed(now, w)
	return v
}

// SmoothedAngularVelocity returns the angular part of Smoothed.
func (s *Sampler) SmoothedAngularVelocity(now float64, w Window) mgl64.Vec3 {
	_, a := s.Smoothed(now, w)
	return a
}

// index maps the i-th most recent sample to its slot in data.
func (s *Sampler) index(i int) int {
	return ((s.writePos-1-i)%s.capacity + s.capacity) % s.capacity
}
