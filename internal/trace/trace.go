// Package trace fingerprints simulation output so two replays can be
// compared with a single number.
package trace

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// Resolution is the step values are rounded to before hashing, so results
// that differ only by rounding noise produce the same digest.
const Resolution = 1e-9

// Digest accumulates a 64-bit xxhash over frames of named values.
type Digest struct {
	h      *xxhash.Digest
	buf    [8]byte
	frames int
}

// New returns an empty digest.
func New() *Digest {
	return &Digest{h: xxhash.New()}
}

// BeginFrame marks the start of frame index.
func (d *Digest) BeginFrame(index int) {
	d.frames++
	d.putUint(uint64(index))
}

// Pose adds a named pose.
func (d *Digest) Pose(name string, p mathutil.Pose) {
	d.putString(name)
	d.Vec3(p.Position)
	q := mathutil.NormalizeQuat(p.Rotation)
	// q and -q are the same rotation.
	if q.W < 0 {
		q = q.Scale(-1)
	}
	d.Float(q.W)
	d.Vec3(q.V)
}

// Value adds a named scalar.
func (d *Digest) Value(name string, v float64) {
	d.putString(name)
	d.Float(v)
}

// Vec3 adds a vector.
func (d *Digest) Vec3(v mgl64.Vec3) {
	d.Float(v[0])
	d.Float(v[1])
	d.Float(v[2])
}

// Float adds a scalar rounded to Resolution.
func (d *Digest) Float(v float64) {
	r := math.Round(v/Resolution) * Resolution
	if r == 0 {
		r = 0 // drop the sign of negative zero
	}
	d.putUint(math.Float64bits(r))
}

// Frames returns the number of frames added.
func (d *Digest) Frames() int { return d.frames }

// Sum64 returns the digest.
func (d *Digest) Sum64() uint64 { return d.h.Sum64() }

// String returns the digest as 16 hex digits.
func (d *Digest) String() string { return fmt.Sprintf("%016x", d.Sum64()) }

// Reset clears the digest.
func (d *Digest) Reset() {
	d.h.Reset()
	d.frames = 0
}

func (d *Digest) putUint(v uint64) {
	binary.LittleEndian.PutUint64(d.buf[:], v)
	_, _ = d.h.Write(d.buf[:])
}

func (d *Digest) putString(s string) {
	d.putUint(uint64(len(s)))
	_, _ = d.h.WriteString(s)
}
