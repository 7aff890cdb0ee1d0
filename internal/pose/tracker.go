package pose

import (
	"fmt"

	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// Default override pose transition times in seconds.
const (
	DefaultEnterTime = 0.2
	DefaultExitTime  = 0.3
)

// slots is the number of animation slots cross-faded between.
const slots = 2

// Frame is what an animated hand should show this frame.
type Frame struct {
	// Weight of the override pose layer in [0, 1].
	Weight float64
	// Slot is the active animation slot, 0 or 1.
	Slot int
	// Animation in the active slot; empty when none.
	Animation string
}

// Tracker cross-fades a hand between its input-driven animation and an
// override pose. Switching pose while one is showing moves to the other of
// two slots so the animation system can blend between them.
type Tracker struct {
	enterTime float64
	exitTime  float64

	active  bool
	pending string
	weight  float64
	slot    int
	clips   [slots]string

	// layer weight published by the previous Step
	shown float64
}

// NewTracker builds a tracker with the given transition times.
func NewTracker(enterTime, exitTime float64) (*Tracker, error) {
	if enterTime < 0 || exitTime < 0 || !mathutil.IsFinite(enterTime) || !mathutil.IsFinite(exitTime) {
		return nil, fmt.Errorf("transition times must be non-negative, got %v and %v", enterTime, exitTime)
	}
	return &Tracker{enterTime: enterTime, exitTime: exitTime}, nil
}

// Apply starts fading in an override pose playing animation.
func (t *Tracker) Apply(animation string) {
	t.active = true
	t.pending = animation
	t.weight = 0
}

// Clear starts fading the override pose out.
func (t *Tracker) Clear() {
	t.active = false
	t.pending = ""
}

// Entering reports whether an override pose is still fading in.
func (t *Tracker) Entering() bool { return t.active && t.weight < 1 }

// Returning reports whether a cleared override pose is still fading out.
func (t *Tracker) Returning() bool { return !t.active && t.weight > 0 }

// Step advances the fade by dt seconds.
func (t *Tracker) Step(dt float64) Frame {
	if dt < 0 || !mathutil.IsFinite(dt) {
		dt = 0
	}

	if t.active {
		t.setAnimation(t.pending)
		t.weight = advance(t.weight, dt, t.enterTime)
	} else if t.weight > 0 {
		t.weight = advance(t.weight, -dt, t.exitTime)
		if t.weight <= 0 {
			t.weight = 0
			t.clips = [slots]string{}
			t.slot = 0
		}
	}

	t.shown = t.weight
	return Frame{Weight: t.weight, Slot: t.slot, Animation: t.clips[t.slot]}
}

func (t *Tracker) setAnimation(animation string) {
	if animation == "" {
		return
	}
	if t.shown <= 0 {
		t.slot = 0
		t.clips[0] = animation
		return
	}
	if t.clips[t.slot] != animation {
		t.slot = 1 - t.slot
		t.clips[t.slot] = animation
	}
}

// advance moves w by dt/duration, snapping when duration is zero.
func advance(w, dt, duration float64) float64 {
	if duration <= 0 {
		if dt < 0 {
			return 0
		}
		return 1
	}
	return mathutil.Clamp01(w + dt/duration)
}
