package interact

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tphakala/go-xr-interact/internal/constraint"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/pose"
	"github.com/tphakala/go-xr-interact/internal/velocity"
)

// Detach describes an object leaving an interactor.
type Detach struct {
	// SessionID identifies the grab that ended.
	SessionID uuid.UUID
	// Time the object was released, in seconds.
	Time float64
	// Velocity and AngularVelocity handed to the object, already scaled.
	// Zero unless the object throws on detach.
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// Grabbable is an object that can be picked up, moved by an interactor and
// released, optionally restricted by a constraint. It is not safe for
// concurrent use.
type Grabbable struct {
	cfg    Config
	logger *zap.Logger

	body       constraint.Body
	constraint constraint.Constraint
	sampler    *velocity.Sampler

	held     bool
	session  uuid.UUID
	movement MovementType

	// object pose in the interactor's frame, captured at grab
	attachLocal mathutil.Pose
	// interactor position in the object's frame, captured at grab
	grip mgl64.Vec3
	// smoothed world pose the object is moving toward
	target   mathutil.Pose
	easeTime float64
	last     mathutil.Pose

	detach Detach
}

// NewGrabbable creates a grabbable object at the given world pose.
func NewGrabbable(config *Config, start mathutil.Pose) (*Grabbable, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !start.IsFinite() {
		return nil, fmt.Errorf("%w: start pose must be finite", ErrInvalidConfig)
	}

	sampler, err := velocity.NewSampler(config.SampleCapacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := *config
	cfg.Parent = mathutil.NewPose(cfg.Parent.Position, cfg.Parent.Rotation)
	cfg.Poses = append([]pose.Candidate(nil), cfg.Poses...)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Name != "" {
		logger = logger.With(zap.String("object", cfg.Name))
	}

	g := &Grabbable{
		cfg:        cfg,
		logger:     logger,
		body:       constraint.Body{Pose: mathutil.NewPose(start.Position, start.Rotation)},
		constraint: cfg.Constraint,
		sampler:    sampler,
		movement:   cfg.Movement,
	}
	g.solve()
	return g, nil
}

// Name returns the configured object name.
func (g *Grabbable) Name() string { return g.cfg.Name }

// Pose returns the object's world pose.
func (g *Grabbable) Pose() mathutil.Pose { return g.body.Pose }

// Velocity returns the object's linear velocity in m/s.
func (g *Grabbable) Velocity() mgl64.Vec3 { return g.body.Velocity }

// AngularVelocity returns the object's angular velocity in rad/s.
func (g *Grabbable) AngularVelocity() mgl64.Vec3 { return g.body.AngularVelocity }

// Sleeping reports whether the released object has come to rest.
func (g *Grabbable) Sleeping() bool { return g.body.Sleeping }

// Constraint returns the object's constraint, or nil.
func (g *Grabbable) Constraint() constraint.Constraint { return g.constraint }

// Poses returns the hand poses offered by the object.
func (g *Grabbable) Poses() []pose.Candidate { return g.cfg.Poses }

// IsHeld reports whether an interactor holds the object.
func (g *Grabbable) IsHeld() bool { return g.held }

// IsEasingIn reports whether a held object is still easing onto its
// interactor.
func (g *Grabbable) IsEasingIn() bool {
	return g.held && g.cfg.AttachEaseInTime > 0 && g.easeTime < g.cfg.AttachEaseInTime
}

// Session returns the ID of the current or most recent grab.
func (g *Grabbable) Session() uuid.UUID { return g.session }

// LastDetach returns the most recent release.
func (g *Grabbable) LastDetach() Detach { return g.detach }

// Grab attaches the object to an interactor at the given world pose. The
// object keeps its offset from the interactor for the rest of the grab.
func (g *Grabbable) Grab(interactor mathutil.Pose, now float64) (uuid.UUID, error) {
	if g.held {
		return uuid.Nil, ErrAlreadyHeld
	}

	g.held = true
	g.session = uuid.New()
	g.movement = g.cfg.Movement
	g.detach = Detach{}

	g.body.Velocity = mgl64.Vec3{}
	g.body.AngularVelocity = mgl64.Vec3{}
	g.body.Sleeping = false

	g.target = g.body.Pose
	g.easeTime = 0
	g.attachLocal = interactor.InverseTransform(g.body.Pose)
	g.grip = g.body.Pose.InverseTransformPoint(interactor.Position)

	g.sampler.Reset()
	g.last = g.body.Pose

	g.logger.Debug("grabbed",
		zap.Stringer("session", g.session),
		zap.Stringer("movement", g.movement),
		zap.Float64("time", now))
	return g.session, nil
}

// Release detaches the object. With ThrowOnDetach the object leaves with the
// smoothed velocity of the last ThrowWindow seconds, scaled.
func (g *Grabbable) Release(now float64) (Detach, error) {
	if !g.held {
		return Detach{}, ErrNotHeld
	}
	g.held = false
	g.movement = g.cfg.Movement

	d := Detach{SessionID: g.session, Time: now}
	if g.cfg.ThrowOnDetach {
		lin, ang := g.sampler.Smoothed(now, g.cfg.ThrowWindow)
		d.Velocity = lin.Mul(g.cfg.ThrowVelocityScale)
		d.AngularVelocity = ang.Mul(g.cfg.ThrowAngularVelocityScale)
		g.body.Velocity = d.Velocity
		g.body.AngularVelocity = d.AngularVelocity
	}
	g.body.Sleeping = false
	g.solve()

	g.detach = d
	g.logger.Debug("released",
		zap.Stringer("session", d.SessionID),
		zap.Float64("time", now),
		zap.Float64("speed", d.Velocity.Len()),
		zap.Float64("spin", d.AngularVelocity.Len()))
	return d, nil
}

// Follow moves a held object toward the interactor at the given world pose
// and returns the object's new pose. It does nothing when the object is not
// held.
func (g *Grabbable) Follow(dt, now float64, interactor mathutil.Pose) mathutil.Pose {
	if !g.held || dt <= 0 || !mathutil.IsFinite(dt) || !interactor.IsFinite() {
		return g.body.Pose
	}

	g.updateTarget(dt, interactor)

	switch g.movement {
	case MovementVelocityTracking:
		g.trackVelocity(dt)
		integrate(&g.body, dt, mgl64.Vec3{}, 0, 0)
		g.solve()
	default:
		if g.cfg.TrackPosition {
			g.body.Pose.Position = g.target.Position
		}
		if g.cfg.TrackRotation {
			g.body.Pose.Rotation = g.target.Rotation
		}
		g.body.Velocity = mgl64.Vec3{}
		g.body.AngularVelocity = mgl64.Vec3{}
	}

	g.sampler.RecordSample(
		g.body.Pose.Position.Sub(g.last.Position),
		g.body.Pose.Rotation.Mul(g.last.Rotation.Inverse()),
		dt, now)
	g.last = g.body.Pose

	g.observe()
	return g.body.Pose
}

// Step advances a released object by dt seconds: constraints that rest on
// their own settle, other objects integrate their velocity under gravity
// and drag. A held object is left where it is.
func (g *Grabbable) Step(dt float64) mathutil.Pose {
	if g.held || dt <= 0 || !mathutil.IsFinite(dt) {
		return g.body.Pose
	}

	if settler, ok := g.constraint.(constraint.Settler); ok {
		local := g.cfg.Parent.InverseTransform(g.body.Pose)
		g.body.Pose = g.cfg.Parent.Transform(settler.Settle(local, dt))
		g.body.Velocity = mgl64.Vec3{}
		g.body.AngularVelocity = mgl64.Vec3{}
		g.observe()
		return g.body.Pose
	}

	if g.body.Sleeping {
		return g.body.Pose
	}

	integrate(&g.body, dt, g.cfg.Gravity, g.cfg.Drag, g.cfg.AngularDrag)
	g.solve()
	if g.body.Velocity.Len()+g.body.AngularVelocity.Len() < sleepSpeed {
		g.body.Velocity = mgl64.Vec3{}
		g.body.AngularVelocity = mgl64.Vec3{}
		g.body.Sleeping = true
	}

	g.observe()
	return g.body.Pose
}

// SetPose teleports the object, clearing its velocity. The pose is projected
// onto the constraint.
func (g *Grabbable) SetPose(p mathutil.Pose) {
	if !p.IsFinite() {
		return
	}
	g.body = constraint.Body{Pose: mathutil.NewPose(p.Position, p.Rotation)}
	g.solve()
	g.last = g.body.Pose
	g.target = g.body.Pose
}

// Value returns the constraint's scalar value for the current pose: the
// normalised position of a slider or the angle of a door in degrees. It
// returns zero for unconstrained objects.
func (g *Grabbable) Value() float64 {
	local := g.localPose()
	switch c := g.constraint.(type) {
	case *constraint.FixedSlider:
		return c.NormalizedPosition(local)
	case *constraint.Slider:
		return c.NormalizedPosition(local)
	case *constraint.Hinge:
		return c.Angle(local)
	default:
		return 0
	}
}

// Index returns the nearest stop of a fixed slider, or -1 for other objects.
func (g *Grabbable) Index() int {
	if f, ok := g.constraint.(*constraint.FixedSlider); ok {
		return f.Index(g.localPose())
	}
	return -1
}

// SetValue moves a slider to the normalised position v, clamped to [0, 1].
// It reports false for objects that are not sliders.
func (g *Grabbable) SetValue(v float64) bool {
	var s *constraint.Slider
	switch c := g.constraint.(type) {
	case *constraint.FixedSlider:
		s = &c.Slider
	case *constraint.Slider:
		s = c
	default:
		return false
	}
	g.SetPose(g.cfg.Parent.Transform(s.SetNormalizedPosition(g.localPose(), v)))
	return true
}

// SetIndex moves a fixed slider onto stop i, where 0 <= i < number of stops.
func (g *Grabbable) SetIndex(i int) bool {
	f, ok := g.constraint.(*constraint.FixedSlider)
	if !ok {
		return false
	}
	local, ok := f.SetIndex(g.localPose(), i)
	if !ok {
		return false
	}
	g.SetPose(g.cfg.Parent.Transform(local))
	return true
}

func (g *Grabbable) localPose() mathutil.Pose {
	return g.cfg.Parent.InverseTransform(g.body.Pose)
}

// updateTarget computes the constrained attach pose and eases or smooths the
// follow target toward it.
func (g *Grabbable) updateTarget(dt float64, interactor mathutil.Pose) {
	raw := interactor.Transform(g.attachLocal)
	if g.constraint != nil {
		aim := g.cfg.Parent.InverseTransform(raw)
		if h, ok := g.constraint.(*constraint.Hinge); ok {
			aim = g.hingeAim(h, interactor)
		}
		raw = g.cfg.Parent.Transform(g.constraint.ConstrainTarget(aim, g.localPose()))
	}

	if g.cfg.AttachEaseInTime > 0 && g.easeTime < g.cfg.AttachEaseInTime {
		g.easeTime += dt
		if g.easeTime >= g.cfg.AttachEaseInTime {
			g.target = raw
			return
		}
		g.target = mathutil.LerpPose(g.target, raw, mathutil.Clamp01(g.easeTime/g.cfg.AttachEaseInTime))
		return
	}

	if g.cfg.SmoothPosition {
		p := mathutil.LerpVec3(g.target.Position, raw.Position, g.cfg.SmoothPositionAmount*dt)
		g.target.Position = mathutil.LerpVec3(p, raw.Position, g.cfg.TightenPosition)
	} else {
		g.target.Position = raw.Position
	}

	if g.cfg.SmoothRotation {
		r := mathutil.Slerp(g.target.Rotation, raw.Rotation, g.cfg.SmoothRotationAmount*dt)
		g.target.Rotation = mathutil.Slerp(r, raw.Rotation, g.cfg.TightenRotation)
	} else {
		g.target.Rotation = raw.Rotation
	}
}

// hingeAim returns the parent-frame target a door should face so that the
// point it was gripped at turns toward the interactor.
func (g *Grabbable) hingeAim(h *constraint.Hinge, interactor mathutil.Pose) mathutil.Pose {
	pivot := h.Pivot()
	hand := g.cfg.Parent.InverseTransformPoint(interactor.Position).Sub(pivot)
	back := mgl64.QuatRotate(-math.Atan2(g.grip.X(), g.grip.Z()), mathutil.AxisUp)
	return mathutil.NewPose(pivot.Add(back.Rotate(hand)), mgl64.QuatIdent())
}

// trackVelocity steers the body's velocities so one step of integration
// lands it on the target.
func (g *Grabbable) trackVelocity(dt float64) {
	if g.cfg.TrackPosition {
		v := g.body.Velocity.Mul(1 - g.cfg.VelocityDamping)
		delta := g.target.Position.Sub(g.body.Pose.Position).Mul(1 / dt)
		if mathutil.Vec3Finite(delta) {
			v = v.Add(delta.Mul(g.cfg.VelocityScale))
		}
		g.body.Velocity = v
	}

	if g.cfg.TrackRotation {
		w := g.body.AngularVelocity.Mul(1 - g.cfg.AngularVelocityDamping)
		delta := g.target.Rotation.Mul(g.body.Pose.Rotation.Inverse())
		if tracked := mathutil.AngularVelocity(delta, dt); mathutil.Vec3Finite(tracked) {
			w = w.Add(tracked.Mul(g.cfg.AngularVelocityScale))
		}
		g.body.AngularVelocity = w
	}
}

// solve projects the body onto the constraint in the parent's frame.
func (g *Grabbable) solve() {
	if g.constraint == nil {
		return
	}
	parent := g.cfg.Parent
	toLocal := parent.Rotation.Inverse()

	local := g.constraint.Solve(constraint.Body{
		Pose:            parent.InverseTransform(g.body.Pose),
		Velocity:        toLocal.Rotate(g.body.Velocity),
		AngularVelocity: toLocal.Rotate(g.body.AngularVelocity),
		Sleeping:        g.body.Sleeping,
	})

	g.body.Pose = parent.Transform(local.Pose)
	g.body.Velocity = parent.Rotation.Rotate(local.Velocity)
	g.body.AngularVelocity = parent.Rotation.Rotate(local.AngularVelocity)
}

// observe reports constraint value and stop changes to the callbacks.
func (g *Grabbable) observe() {
	if g.constraint == nil {
		return
	}
	local := g.localPose()

	if r := g.constraint.Observe(local); r.Changed && g.cfg.OnValueChange != nil {
		g.cfg.OnValueChange(r.Value)
	}
	if f, ok := g.constraint.(*constraint.FixedSlider); ok {
		if i, changed := f.ObserveIndex(local); changed && g.cfg.OnIndexChange != nil {
			g.cfg.OnIndexChange(i)
		}
	}
}
