// Package blend drives an interactor's visual (a rendered hand, say) onto a
// constrained attach target while it interacts with an object, and eases it
// back to the tracked pose afterwards.
package blend

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// ErrInvalidConfig indicates invalid blender parameters.
var ErrInvalidConfig = errors.New("invalid blend configuration")

// Phase is the blender's position in its interaction cycle.
type Phase int

const (
	// PhaseIdle: the visual follows the interactor exactly.
	PhaseIdle Phase = iota
	// PhaseEntering: the blend amount rises toward one over SnapTime.
	PhaseEntering
	// PhaseEngaged: the visual sits on the constrained target.
	PhaseEngaged
	// PhaseReturning: the blend amount falls to zero over ReleaseTime. New
	// interactions are refused until it reaches zero.
	PhaseReturning
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseEngaged:
		return "engaged"
	case PhaseReturning:
		return "returning"
	default:
		return "idle"
	}
}

// Kind distinguishes the two interaction slots. Select takes precedence.
type Kind int

const (
	KindSelect Kind = iota
	KindHover
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindHover {
		return "hover"
	}
	return "select"
}

// Limits bound how far the visual may stray from the interactor before the
// interaction is cancelled.
type Limits struct {
	MaxDistance float64 `json:"max_distance" yaml:"max_distance"`
	MaxAngle    float64 `json:"max_angle" yaml:"max_angle"`
}

// Cancellation lists the interactions a blender cancelled.
type Cancellation struct {
	Select     bool
	Hover      bool
	SelectPose string
	HoverPose  string
}

// Config holds blender parameters.
type Config struct {
	// SnapTime is how long the visual takes to reach the target. Zero snaps.
	SnapTime float64
	// ReleaseTime is how long the visual takes to return. Zero snaps.
	ReleaseTime float64

	Select Limits
	Hover  Limits

	// AttachOffset is the attach point in the interactor's frame. The
	// constrained target positions this point, not the interactor origin.
	AttachOffset mathutil.Pose

	// OnCancel is called once each time a limit violation cancels the
	// current interactions. May be nil.
	OnCancel func(Cancellation)

	// Logger receives phase transitions at debug level. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns the default timing and limits.
func DefaultConfig() Config {
	return Config{
		SnapTime:     DefaultSnapTime,
		ReleaseTime:  DefaultReleaseTime,
		Select:       Limits{MaxDistance: DefaultSelectMaxDistance, MaxAngle: DefaultSelectMaxAngle},
		Hover:        Limits{MaxDistance: DefaultHoverMaxDistance, MaxAngle: DefaultHoverMaxAngle},
		AttachOffset: mathutil.IdentityPose(),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SnapTime < 0 || c.ReleaseTime < 0 || !mathutil.IsFinite(c.SnapTime) || !mathutil.IsFinite(c.ReleaseTime) {
		return fmt.Errorf("%w: snap and release times must be non-negative", ErrInvalidConfig)
	}
	for _, l := range []Limits{c.Select, c.Hover} {
		if l.MaxDistance < 0 || l.MaxAngle < 0 {
			return fmt.Errorf("%w: limits must be non-negative", ErrInvalidConfig)
		}
	}
	if !c.AttachOffset.IsFinite() {
		return fmt.Errorf("%w: attach offset must be finite", ErrInvalidConfig)
	}
	return nil
}

// State is a snapshot of the blender.
type State struct {
	Amount       float64
	Phase        Phase
	Kind         Kind
	Active       bool
	SourcePoseID string
	TargetPoseID string
}

type slot struct {
	target Target
	poseID string
	active bool
}

// Blender is the attach blend state machine for one interactor. It is not
// safe for concurrent use.
type Blender struct {
	cfg    Config
	logger *zap.Logger

	phase  Phase
	amount float64
	slots  [slotCount]slot

	// visual pose relative to the interactor
	visualLocal mathutil.Pose
	// world pose returned by the last finite Step
	visual      mathutil.Pose
	returnFrom  mathutil.Pose
	returnScale float64

	sourcePoseID string
	targetPoseID string
}

// New creates a Blender.
func New(cfg Config) (*Blender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.AttachOffset = mathutil.NewPose(cfg.AttachOffset.Position, cfg.AttachOffset.Rotation)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Blender{
		cfg:         cfg,
		logger:      logger,
		visualLocal: mathutil.IdentityPose(),
		visual:      mathutil.IdentityPose(),
	}, nil
}

// CanBeginNewInteraction reports whether Begin would be accepted.
func (b *Blender) CanBeginNewInteraction() bool {
	return b.phase != PhaseReturning
}

// Begin starts an interaction of the given kind against target. poseID
// names the pose the visual is blending into, for animation. Begin is
// refused while returning, or when target is nil.
func (b *Blender) Begin(kind Kind, target Target, poseID string) bool {
	if !b.CanBeginNewInteraction() || target == nil || kind < KindSelect || kind > KindHover {
		return false
	}

	prevKind, prevActive := b.activeKind()
	b.slots[kind] = slot{target: target, poseID: poseID, active: true}

	// A new target for the kind on show blends over from the current visual.
	newKind, _ := b.activeKind()
	if !prevActive || newKind != prevKind || kind == newKind {
		b.sourcePoseID = b.targetPoseID
		b.targetPoseID = b.slots[newKind].poseID
	}

	if b.phase == PhaseIdle || kind == newKind {
		b.transition(PhaseEntering)
		b.amount = 0
	}
	return true
}

// End finishes an interaction of the given kind. When no interaction
// remains the blender starts returning.
func (b *Blender) End(kind Kind) {
	if kind < KindSelect || kind > KindHover || !b.slots[kind].active {
		return
	}
	b.slots[kind] = slot{}

	if next, ok := b.activeKind(); ok {
		b.sourcePoseID = b.targetPoseID
		b.targetPoseID = b.slots[next].poseID
		return
	}
	if b.phase == PhaseEntering || b.phase == PhaseEngaged {
		b.startReturning()
	}
}

// Step advances the blender by dt seconds with the interactor at the given
// world pose and returns the world pose at which to draw the visual. A
// non-finite interactor pose leaves the blender untouched and returns the
// previous visual.
func (b *Blender) Step(dt float64, interactor mathutil.Pose) mathutil.Pose {
	if !interactor.IsFinite() {
		return b.visual
	}
	if dt < 0 || !mathutil.IsFinite(dt) {
		dt = 0
	}
	b.visual = b.step(dt, interactor)
	return b.visual
}

func (b *Blender) step(dt float64, interactor mathutil.Pose) mathutil.Pose {

	kind, active := b.activeKind()
	if !active {
		if b.phase == PhaseEntering || b.phase == PhaseEngaged {
			b.startReturning()
		}
		return b.stepReturn(dt, interactor)
	}

	if b.cfg.SnapTime > 0 && b.amount < 1 {
		b.amount += dt / b.cfg.SnapTime
	} else {
		b.amount = 1
	}
	if b.amount >= 1-engagedEpsilon {
		b.amount = 1
		if b.phase != PhaseEngaged {
			b.transition(PhaseEngaged)
		}
	}

	target := b.attachTarget(b.slots[kind].target.Constrain(interactor), interactor)
	out := target
	if b.amount < 1 {
		current := interactor.Transform(b.visualLocal)
		out = mathutil.LerpPose(current, target, b.amount)
	}
	b.visualLocal = interactor.InverseTransform(out)

	if b.amount > 0 && b.violates(kind, out, interactor) {
		b.cancel()
	}
	return out
}

// State returns a snapshot of the blender.
func (b *Blender) State() State {
	kind, active := b.activeKind()
	return State{
		Amount:       b.amount,
		Phase:        b.phase,
		Kind:         kind,
		Active:       active,
		SourcePoseID: b.sourcePoseID,
		TargetPoseID: b.targetPoseID,
	}
}

// Reset abandons any interaction without notification and returns to idle.
func (b *Blender) Reset() {
	b.slots = [slotCount]slot{}
	b.phase = PhaseIdle
	b.amount = 0
	b.visualLocal = mathutil.IdentityPose()
	b.visual = mathutil.IdentityPose()
	b.sourcePoseID, b.targetPoseID = "", ""
}

func (b *Blender) activeKind() (Kind, bool) {
	switch {
	case b.slots[KindSelect].active:
		return KindSelect, true
	case b.slots[KindHover].active:
		return KindHover, true
	default:
		return KindSelect, false
	}
}

// attachTarget converts a constrained attach-point pose into the pose of the
// interactor root that places the attach point there.
func (b *Blender) attachTarget(c Constrained, interactor mathutil.Pose) mathutil.Pose {
	root := interactor
	off := b.cfg.AttachOffset
	if c.Rotation {
		root.Rotation = mathutil.NormalizeQuat(c.Pose.Rotation.Mul(off.Rotation.Inverse()))
	}
	if c.Position {
		root.Position = c.Pose.Position.Sub(root.Rotation.Rotate(off.Position))
	}
	return root
}

func (b *Blender) violates(kind Kind, visual, interactor mathutil.Pose) bool {
	limits := b.cfg.Select
	if kind == KindHover {
		limits = b.cfg.Hover
	}
	if visual.Position.Sub(interactor.Position).Len() > limits.MaxDistance {
		return true
	}
	return mathutil.QuatAngle(visual.Rotation, interactor.Rotation) > limits.MaxAngle
}

func (b *Blender) cancel() {
	c := Cancellation{
		Select:     b.slots[KindSelect].active,
		Hover:      b.slots[KindHover].active,
		SelectPose: b.slots[KindSelect].poseID,
		HoverPose:  b.slots[KindHover].poseID,
	}
	b.slots = [slotCount]slot{}
	b.startReturning()

	b.logger.Debug("interaction cancelled by limit violation",
		zap.Bool("select", c.Select),
		zap.Bool("hover", c.Hover))
	if b.cfg.OnCancel != nil {
		b.cfg.OnCancel(c)
	}
}

func (b *Blender) startReturning() {
	b.returnFrom = b.visualLocal
	b.returnScale = b.amount
	b.sourcePoseID = b.targetPoseID
	b.targetPoseID = ""
	b.transition(PhaseReturning)
}

func (b *Blender) stepReturn(dt float64, interactor mathutil.Pose) mathutil.Pose {
	if b.phase != PhaseReturning {
		b.visualLocal = mathutil.IdentityPose()
		return interactor
	}

	if b.cfg.ReleaseTime > 0 {
		b.amount -= dt / b.cfg.ReleaseTime
	} else {
		b.amount = 0
	}
	if b.amount <= 0 || b.returnScale <= 0 {
		b.amount = 0
		b.visualLocal = mathutil.IdentityPose()
		b.sourcePoseID = ""
		b.transition(PhaseIdle)
		return interactor
	}

	b.visualLocal = mathutil.LerpPose(mathutil.IdentityPose(), b.returnFrom, b.amount/b.returnScale)
	return interactor.Transform(b.visualLocal)
}

func (b *Blender) transition(p Phase) {
	if b.phase == p {
		return
	}
	b.logger.Debug("attach blend phase change",
		zap.Stringer("from", b.phase),
		zap.Stringer("to", p),
		zap.Float64("amount", b.amount))
	b.phase = p
}
