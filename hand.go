package interact

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tphakala/go-xr-interact/internal/blend"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/pose"
)

// HandConfig holds the parameters of a Hand.
type HandConfig struct {
	// Side is the hand, left or right, used to filter hand poses.
	Side pose.Hand

	// Blend sets the visual attach timing and the limits beyond which an
	// interaction is cancelled. Blend.OnCancel is called after the hand has
	// dropped the cancelled interactions.
	Blend blend.Config

	// Pose animation fade times in seconds.
	PoseEnterTime float64
	PoseExitTime  float64

	// Logger receives interaction events at debug level. Nil disables
	// logging.
	Logger *zap.Logger
}

// DefaultHandConfig returns the default configuration for one hand.
func DefaultHandConfig(side pose.Hand) HandConfig {
	return HandConfig{
		Side:          side,
		Blend:         blend.DefaultConfig(),
		PoseEnterTime: pose.DefaultEnterTime,
		PoseExitTime:  pose.DefaultExitTime,
	}
}

// Validate checks if the configuration is valid.
func (c *HandConfig) Validate() error {
	if c.Side != pose.HandLeft && c.Side != pose.HandRight {
		return fmt.Errorf("%w: hand side must be left or right, got %s", ErrInvalidConfig, c.Side)
	}
	if !nonNegative(c.PoseEnterTime) || !nonNegative(c.PoseExitTime) {
		return fmt.Errorf("%w: pose fade times must be non-negative", ErrInvalidConfig)
	}
	if err := c.Blend.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// HandFrame is the outcome of one Hand step.
type HandFrame struct {
	// Visual is the world pose at which to draw the hand.
	Visual mathutil.Pose
	// Animation is the pose animation layer to show.
	Animation pose.Frame
	// Blend is the attach blender state after the step.
	Blend blend.State

	// Cancelled is set when a limit violation ended interactions this step.
	Cancelled    bool
	Cancellation blend.Cancellation

	// Released is set when a cancelled grab dropped the held object.
	Released bool
	Detach   Detach
}

// Hand drives one interactor: it grabs and hovers Grabbables, blends its
// visual onto their hand poses and cancels interactions whose pose strays
// too far from the tracked interactor. It is not safe for concurrent use.
type Hand struct {
	cfg    HandConfig
	logger *zap.Logger

	blender *blend.Blender
	tracker *pose.Tracker

	held    *Grabbable
	hovered *Grabbable
	// held object offered a grab pose
	posed bool

	cancelled bool
	cancel    blend.Cancellation
}

// poseTarget pins the hand visual to a hand pose on a possibly moving object.
type poseTarget struct {
	object    *Grabbable
	candidate pose.Candidate
}

// Constrain implements blend.Target.
func (t poseTarget) Constrain(interactor mathutil.Pose) blend.Constrained {
	return t.candidate.Target(t.object.Pose()).Constrain(interactor)
}

// NewHand creates a hand controller.
func NewHand(config *HandConfig) (*Hand, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := *config
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.Stringer("hand", cfg.Side))

	h := &Hand{cfg: cfg, logger: logger}

	blendCfg := cfg.Blend
	blendCfg.Logger = logger
	blendCfg.OnCancel = func(c blend.Cancellation) {
		h.cancelled = true
		h.cancel = c
	}

	var err error
	if h.blender, err = blend.New(blendCfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if h.tracker, err = pose.NewTracker(cfg.PoseEnterTime, cfg.PoseExitTime); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return h, nil
}

// Side returns the hand side.
func (h *Hand) Side() pose.Hand { return h.cfg.Side }

// Held returns the held object, or nil.
func (h *Hand) Held() *Grabbable { return h.held }

// Hovered returns the hovered object, or nil.
func (h *Hand) Hovered() *Grabbable { return h.hovered }

// CanInteract reports whether the hand may start a new grab or hover. It is
// false while the visual returns from a cancelled or finished interaction.
func (h *Hand) CanInteract() bool { return h.blender.CanBeginNewInteraction() }

// IsAttached reports whether the held object follows the hand. While the
// visual is still entering a grab pose the object stays put.
func (h *Hand) IsAttached() bool {
	if h.held == nil {
		return false
	}
	return !h.posed || h.blender.State().Phase != blend.PhaseEntering
}

// Hover starts hovering g with the interactor at the given world pose.
// Moving straight from one hovered object to another hands the visual over
// to the new hover pose without returning it to the interactor first.
func (h *Hand) Hover(g *Grabbable, interactor mathutil.Pose) bool {
	if g == nil || !h.CanInteract() {
		return false
	}
	if h.hovered == g {
		return true
	}

	c, posed := h.choosePose(g, pose.InteractionHover, interactor)
	if prev := h.hovered; prev != nil {
		h.logger.Debug("hover ended", zap.String("object", prev.Name()))
		if !posed {
			h.blender.End(blend.KindHover)
			if h.held == nil {
				h.tracker.Clear()
			}
		}
	}

	h.hovered = g
	if posed {
		h.blender.Begin(blend.KindHover, poseTarget{object: g, candidate: c}, c.ID)
		if h.held == nil {
			h.tracker.Apply(c.Animation)
		}
	}
	h.logger.Debug("hover started", zap.String("object", g.Name()))
	return true
}

// Unhover stops hovering.
func (h *Hand) Unhover() {
	if h.hovered == nil {
		return
	}
	h.logger.Debug("hover ended", zap.String("object", h.hovered.Name()))
	h.hovered = nil
	h.blender.End(blend.KindHover)
	if h.held == nil {
		h.tracker.Clear()
	}
}

// Grab picks up g with the interactor at the given world pose.
func (h *Hand) Grab(g *Grabbable, interactor mathutil.Pose, now float64) (uuid.UUID, error) {
	if g == nil {
		return uuid.Nil, fmt.Errorf("%w: nil object", ErrInteractionRefused)
	}
	if !h.CanInteract() {
		return uuid.Nil, ErrInteractionRefused
	}
	if h.held != nil {
		return uuid.Nil, fmt.Errorf("%w: hand already holds %q", ErrAlreadyHeld, h.held.Name())
	}

	id, err := g.Grab(interactor, now)
	if err != nil {
		return uuid.Nil, err
	}
	h.held = g

	c, ok := h.choosePose(g, pose.InteractionGrab, interactor)
	h.posed = ok
	if ok {
		h.blender.Begin(blend.KindSelect, poseTarget{object: g, candidate: c}, c.ID)
		h.tracker.Apply(c.Animation)
	}
	return id, nil
}

// Release drops the held object.
func (h *Hand) Release(now float64) (Detach, error) {
	if h.held == nil {
		return Detach{}, ErrNotHeld
	}
	g := h.held
	h.held = nil
	h.blender.End(blend.KindSelect)
	h.tracker.Clear()
	return g.Release(now)
}

// Step advances the hand by dt seconds with the interactor at the given
// world pose. An attached object follows first so the visual lands on its
// updated pose; a limit violation then drops every interaction.
func (h *Hand) Step(dt, now float64, interactor mathutil.Pose) HandFrame {
	if h.IsAttached() {
		h.held.Follow(dt, now, interactor)
	}

	var f HandFrame
	f.Visual = h.blender.Step(dt, interactor)

	if h.cancelled {
		h.cancelled = false
		f.Cancelled = true
		f.Cancellation = h.cancel

		if h.cancel.Select && h.held != nil {
			g := h.held
			h.held = nil
			if d, err := g.Release(now); err == nil {
				f.Released = true
				f.Detach = d
			}
		}
		if h.cancel.Hover {
			h.hovered = nil
		}
		h.tracker.Clear()

		h.logger.Debug("interaction cancelled",
			zap.Bool("select", h.cancel.Select),
			zap.Bool("hover", h.cancel.Hover))
		if h.cfg.Blend.OnCancel != nil {
			h.cfg.Blend.OnCancel(h.cancel)
		}
	}

	f.Animation = h.tracker.Step(dt)
	f.Blend = h.blender.State()
	return f
}

func (h *Hand) choosePose(g *Grabbable, kind pose.Interaction, interactor mathutil.Pose) (pose.Candidate, bool) {
	local := g.Pose().InverseTransformPoint(interactor.Position)
	return pose.Select(g.Poses(), h.cfg.Side, kind, local)
}
