package interact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/tphakala/go-xr-interact/internal/constraint"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/pose"
	"github.com/tphakala/go-xr-interact/internal/velocity"
)

// Common errors returned by grabbables and hands.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid interaction configuration")

	// ErrAlreadyHeld is returned when grabbing an object that is already held.
	ErrAlreadyHeld = errors.New("object already held")

	// ErrNotHeld is returned when releasing an object that is not held.
	ErrNotHeld = errors.New("object not held")

	// ErrInteractionRefused is returned when a hand cannot start an
	// interaction, typically because its visual is still returning from a
	// cancelled one.
	ErrInteractionRefused = errors.New("interaction refused")
)

// MovementType selects how a held object follows its interactor.
type MovementType int

const (
	// MovementInstantaneous sets the pose directly every frame.
	MovementInstantaneous MovementType = iota

	// MovementKinematic moves the body to the target pose with zero velocity.
	MovementKinematic

	// MovementVelocityTracking drives the body's velocities toward the target
	// and integrates them, so constraints and collisions act on the motion.
	MovementVelocityTracking
)

// ParseMovementType converts a profile name to a MovementType.
func ParseMovementType(s string) (MovementType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "instantaneous", "":
		return MovementInstantaneous, nil
	case "kinematic":
		return MovementKinematic, nil
	case "velocity_tracking", "velocity":
		return MovementVelocityTracking, nil
	default:
		return MovementInstantaneous, fmt.Errorf("%w: unknown movement type %q", ErrInvalidConfig, s)
	}
}

// String returns the profile name of the movement type.
func (m MovementType) String() string {
	switch m {
	case MovementKinematic:
		return "kinematic"
	case MovementVelocityTracking:
		return "velocity_tracking"
	default:
		return "instantaneous"
	}
}

// Config holds the parameters of a Grabbable.
type Config struct {
	// Name identifies the object in logs.
	Name string

	// Movement selects how the object follows its interactor while held.
	Movement MovementType

	// AttachEaseInTime is how long the object takes to reach the interactor
	// after being grabbed. Zero attaches immediately.
	AttachEaseInTime float64

	// TrackPosition and TrackRotation choose which parts of the interactor's
	// pose the object follows.
	TrackPosition bool
	TrackRotation bool

	// Follow smoothing. Amount is the per-second lerp rate toward the target;
	// Tighten is the fraction of the remaining gap closed afterwards, from 0
	// (no bias) to 1 (no smoothing at all).
	SmoothPosition       bool
	SmoothPositionAmount float64
	TightenPosition      float64
	SmoothRotation       bool
	SmoothRotationAmount float64
	TightenRotation      float64

	// Velocity tracking. Damping in [0, 1] is how much existing velocity is
	// discarded each step; Scale multiplies the tracked velocity.
	VelocityDamping        float64
	VelocityScale          float64
	AngularVelocityDamping float64
	AngularVelocityScale   float64

	// ThrowOnDetach makes the object inherit the smoothed interactor velocity
	// when released.
	ThrowOnDetach             bool
	ThrowWindow               velocity.Window
	ThrowVelocityScale        float64
	ThrowAngularVelocityScale float64

	// SampleCapacity is the number of velocity samples kept while held.
	SampleCapacity int

	// Free body motion after release.
	Gravity     mgl64.Vec3
	Drag        float64
	AngularDrag float64

	// Constraint limits the object's motion. Nil leaves it free. Constraint
	// poses are expressed in Parent's frame.
	Constraint constraint.Constraint
	Parent     mathutil.Pose

	// Poses are the hand poses offered to hands interacting with the object,
	// in the object's local frame.
	Poses []pose.Candidate

	// OnValueChange is called when the constraint's value changes: the
	// normalised slider position, or the door angle in degrees.
	OnValueChange func(value float64)

	// OnIndexChange is called when a fixed slider's nearest stop changes.
	OnIndexChange func(index int)

	// Logger receives grab and release events at debug level. Nil disables
	// logging.
	Logger *zap.Logger
}

// DefaultConfig returns the parameters of a free throwable object.
func DefaultConfig() Config {
	return Config{
		Movement:                  MovementInstantaneous,
		AttachEaseInTime:          DefaultAttachEaseInTime,
		TrackPosition:             true,
		TrackRotation:             true,
		SmoothPositionAmount:      DefaultSmoothingAmount,
		TightenPosition:           DefaultTighteningAmount,
		SmoothRotationAmount:      DefaultSmoothingAmount,
		TightenRotation:           DefaultTighteningAmount,
		VelocityDamping:           DefaultVelocityDamping,
		VelocityScale:             DefaultVelocityScale,
		AngularVelocityDamping:    DefaultAngularVelocityDamping,
		AngularVelocityScale:      DefaultAngularVelocityScale,
		ThrowOnDetach:             true,
		ThrowWindow:               velocity.DefaultWindow(),
		ThrowVelocityScale:        DefaultThrowVelocityScale,
		ThrowAngularVelocityScale: DefaultThrowAngularVelocityScale,
		SampleCapacity:            velocity.DefaultCapacity,
		Gravity:                   mgl64.Vec3{0, DefaultGravity, 0},
		AngularDrag:               DefaultAngularDrag,
		Parent:                    mathutil.IdentityPose(),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Movement < MovementInstantaneous || c.Movement > MovementVelocityTracking {
		return fmt.Errorf("%w: unknown movement type %d", ErrInvalidConfig, c.Movement)
	}

	if !nonNegative(c.AttachEaseInTime) {
		return fmt.Errorf("%w: attach ease-in time must be non-negative", ErrInvalidConfig)
	}

	if !inRange(c.SmoothPositionAmount, 0, maxSmoothingAmount) || !inRange(c.SmoothRotationAmount, 0, maxSmoothingAmount) {
		return fmt.Errorf("%w: smoothing amounts must be in [0, %v]", ErrInvalidConfig, maxSmoothingAmount)
	}

	for _, f := range []float64{c.TightenPosition, c.TightenRotation, c.VelocityDamping, c.AngularVelocityDamping} {
		if !inRange(f, 0, 1) {
			return fmt.Errorf("%w: tightening and damping must be in [0, 1]", ErrInvalidConfig)
		}
	}

	for _, s := range []float64{c.VelocityScale, c.AngularVelocityScale, c.ThrowVelocityScale, c.ThrowAngularVelocityScale} {
		if !mathutil.IsFinite(s) {
			return fmt.Errorf("%w: velocity scales must be finite", ErrInvalidConfig)
		}
	}

	if !mathutil.IsFinite(c.ThrowWindow.Duration) {
		return fmt.Errorf("%w: throw window duration must be finite", ErrInvalidConfig)
	}

	if c.SampleCapacity < 1 {
		return fmt.Errorf("%w: sample capacity must be at least 1", ErrInvalidConfig)
	}

	if !mathutil.Vec3Finite(c.Gravity) || !nonNegative(c.Drag) || !nonNegative(c.AngularDrag) {
		return fmt.Errorf("%w: gravity must be finite and drag non-negative", ErrInvalidConfig)
	}

	if !c.Parent.IsFinite() {
		return fmt.Errorf("%w: parent pose must be finite", ErrInvalidConfig)
	}

	for _, p := range c.Poses {
		if !nonNegative(p.Radius) {
			return fmt.Errorf("%w: pose %q radius must be non-negative", ErrInvalidConfig, p.ID)
		}
	}

	return nil
}

func nonNegative(v float64) bool {
	return v >= 0 && mathutil.IsFinite(v)
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
