// Package scene replays a scripted interaction scenario: an ECS world of
// interactables driven by one simulated hand, stepped frame by frame.
package scene

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"

	interact "github.com/tphakala/go-xr-interact"
	"github.com/tphakala/go-xr-interact/internal/blend"
	"github.com/tphakala/go-xr-interact/internal/loader"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/trace"
)

// ErrFinished is returned by Step after the last frame.
var ErrFinished = errors.New("scenario finished")

// Release is an object leaving the hand.
type Release struct {
	Object    string
	SessionID uuid.UUID
	Time      float64

	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	// Cancelled is set when the hand strayed too far and dropped the object.
	Cancelled bool
}

// Skipped is a scripted event the hand refused.
type Skipped struct {
	Event  loader.Event
	Reason string
}

// ObjectState is an interactable at the end of a frame.
type ObjectState struct {
	Name string
	Kind string
	Pose mathutil.Pose

	Value float64
	Index int

	ValueChanges int
	IndexChanges int

	Held     bool
	Free     bool
	Sleeping bool
}

// Frame is the outcome of one simulation step.
type Frame struct {
	Index      int
	Time       float64
	Interactor mathutil.Pose
	Hand       interact.HandFrame
	Objects    []ObjectState
}

// Report summarises a finished replay.
type Report struct {
	Scenario      string
	Frames        int
	Duration      float64
	Releases      []Release
	Cancellations int
	Skipped       []Skipped
	Objects       []ObjectState
	Digest        string
}

// Scene is a running replay. It is not safe for concurrent use; separate
// scenes share nothing and may run in parallel.
type Scene struct {
	scenario *loader.Scenario
	logger   *zap.Logger

	world    ecs.World
	objects  *ecs.Map3[Label, Body, Readout]
	readouts *ecs.Map[Readout]
	free     *ecs.Map[Free]
	released *ecs.Filter2[Body, Free]
	outputs  *ecs.Filter3[Label, Body, Readout]
	entities map[string]ecs.Entity

	hand *interact.Hand
	path *Path

	dt     float64
	frames int
	frame  int
	next   int

	digest *trace.Digest
	report Report
}

// New builds the world for a validated scenario. A nil logger disables
// logging.
func New(sc *loader.Scenario, logger *zap.Logger) (*Scene, error) {
	if sc == nil {
		return nil, fmt.Errorf("%w: scenario is nil", loader.ErrInvalidScenario)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("scenario", sc.Name))

	path, err := NewPath(sc.Path)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		scenario: sc,
		logger:   logger,
		world:    ecs.NewWorld(),
		entities: make(map[string]ecs.Entity, len(sc.Objects)),
		path:     path,
		dt:       sc.FrameTime(),
		frames:   sc.Frames(),
		digest:   trace.New(),
		report:   Report{Scenario: sc.Name},
	}
	s.objects = ecs.NewMap3[Label, Body, Readout](&s.world)
	s.readouts = ecs.NewMap[Readout](&s.world)
	s.free = ecs.NewMap[Free](&s.world)
	s.released = ecs.NewFilter2[Body, Free](&s.world)
	s.outputs = ecs.NewFilter3[Label, Body, Readout](&s.world)

	handCfg, err := handConfig(sc.Hand, logger)
	if err != nil {
		return nil, err
	}
	handCfg.Blend.OnCancel = func(blend.Cancellation) { s.report.Cancellations++ }
	if s.hand, err = interact.NewHand(&handCfg); err != nil {
		return nil, fmt.Errorf("hand: %w", err)
	}

	for i, o := range sc.Objects {
		if err := s.spawn(i, o); err != nil {
			return nil, fmt.Errorf("object %q: %w", o.Name, err)
		}
	}
	return s, nil
}

func (s *Scene) spawn(order int, o loader.Object) error {
	cfg, start, err := objectConfig(o, s.logger)
	if err != nil {
		return err
	}

	e := s.objects.NewEntity(
		&Label{Name: o.Name, Kind: o.Kind, Order: order},
		&Body{},
		&Readout{Index: -1},
	)
	cfg.OnValueChange = func(v float64) {
		r := s.readouts.Get(e)
		r.Value = v
		r.ValueChanges++
	}
	cfg.OnIndexChange = func(i int) {
		r := s.readouts.Get(e)
		r.Index = i
		r.IndexChanges++
	}

	g, err := interact.NewGrabbable(&cfg, start)
	if err != nil {
		return err
	}
	_, body, r := s.objects.Get(e)
	body.Object = g
	r.Value = g.Value()
	r.Index = g.Index()
	s.entities[o.Name] = e
	return nil
}

// Scenario returns the scenario being replayed.
func (s *Scene) Scenario() *loader.Scenario { return s.scenario }

// Hand returns the simulated hand.
func (s *Scene) Hand() *interact.Hand { return s.hand }

// Object returns the named interactable.
func (s *Scene) Object(name string) (*interact.Grabbable, bool) {
	e, ok := s.entities[name]
	if !ok {
		return nil, false
	}
	_, body, _ := s.objects.Get(e)
	return body.Object, true
}

// Frames returns the total number of frames.
func (s *Scene) Frames() int { return s.frames }

// Done reports whether every frame has been stepped.
func (s *Scene) Done() bool { return s.frame >= s.frames }

// Step advances one frame. Within a frame, scripted events fire first, then
// the hand steps (moving any held object), then released objects move on
// their own, and finally the frame is added to the trace.
func (s *Scene) Step() (Frame, error) {
	if s.Done() {
		return Frame{}, ErrFinished
	}
	s.frame++
	now := float64(s.frame) * s.dt
	interactor := s.path.At(now)

	s.fireEvents(now, interactor)

	hf := s.hand.Step(s.dt, now, interactor)
	if hf.Released {
		s.recordRelease(s.lastHeld(hf.Detach), hf.Detach, true)
	}

	query := s.released.Query()
	for query.Next() {
		body, _ := query.Get()
		body.Object.Step(s.dt)
	}

	f := Frame{Index: s.frame, Time: now, Interactor: interactor, Hand: hf}
	f.Objects = s.snapshot()
	s.trace(f)
	return f, nil
}

// Run steps every remaining frame and returns the report. It stops early
// when ctx is cancelled.
func (s *Scene) Run(ctx context.Context) (*Report, error) {
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := s.Step(); err != nil {
			return nil, err
		}
	}
	return s.Report(), nil
}

// Report returns the summary so far.
func (s *Scene) Report() *Report {
	r := s.report
	r.Frames = s.frame
	r.Duration = float64(s.frame) * s.dt
	r.Releases = append([]Release(nil), s.report.Releases...)
	r.Skipped = append([]Skipped(nil), s.report.Skipped...)
	r.Objects = s.snapshot()
	r.Digest = s.digest.String()
	return &r
}

// Digest returns the running trace digest.
func (s *Scene) Digest() uint64 { return s.digest.Sum64() }

func (s *Scene) fireEvents(now float64, interactor mathutil.Pose) {
	events := s.scenario.Events
	for s.next < len(events) && events[s.next].Time <= now {
		ev := events[s.next]
		s.next++
		if err := s.apply(ev, now, interactor); err != nil {
			s.logger.Warn("event skipped",
				zap.String("action", ev.Action),
				zap.String("object", ev.Object),
				zap.Float64("time", ev.Time),
				zap.Error(err))
			s.report.Skipped = append(s.report.Skipped, Skipped{Event: ev, Reason: err.Error()})
		}
	}
}

func (s *Scene) apply(ev loader.Event, now float64, interactor mathutil.Pose) error {
	switch ev.Action {
	case loader.ActionGrab:
		g, _ := s.Object(ev.Object)
		_, err := s.hand.Grab(g, interactor, now)
		return err
	case loader.ActionRelease:
		held := s.hand.Held()
		if held == nil {
			return interact.ErrNotHeld
		}
		if ev.Object != "" && ev.Object != held.Name() {
			return fmt.Errorf("%w: hand holds %q", interact.ErrNotHeld, held.Name())
		}
		d, err := s.hand.Release(now)
		if err != nil {
			return err
		}
		s.recordRelease(held, d, false)
		return nil
	case loader.ActionHover:
		g, _ := s.Object(ev.Object)
		if !s.hand.Hover(g, interactor) {
			return interact.ErrInteractionRefused
		}
		return nil
	case loader.ActionUnhover:
		s.hand.Unhover()
		return nil
	default:
		return fmt.Errorf("unknown action %q", ev.Action)
	}
}

// lastHeld finds the object whose grab session ended with d.
func (s *Scene) lastHeld(d interact.Detach) *interact.Grabbable {
	for _, e := range s.entities {
		_, body, _ := s.objects.Get(e)
		if body.Object.Session() == d.SessionID {
			return body.Object
		}
	}
	return nil
}

func (s *Scene) recordRelease(g *interact.Grabbable, d interact.Detach, cancelled bool) {
	if g == nil {
		return
	}
	e := s.entities[g.Name()]
	if s.free.Has(e) {
		s.free.Get(e).Since = d.Time
	} else {
		s.free.Add(e, &Free{Since: d.Time})
	}

	s.report.Releases = append(s.report.Releases, Release{
		Object:          g.Name(),
		SessionID:       d.SessionID,
		Time:            d.Time,
		Velocity:        d.Velocity,
		AngularVelocity: d.AngularVelocity,
		Cancelled:       cancelled,
	})
	s.logger.Debug("released",
		zap.String("object", g.Name()),
		zap.Bool("cancelled", cancelled),
		zap.Float64("speed", d.Velocity.Len()))
}

// snapshot collects object states in scenario order.
func (s *Scene) snapshot() []ObjectState {
	out := make([]ObjectState, len(s.scenario.Objects))
	query := s.outputs.Query()
	for query.Next() {
		label, body, r := query.Get()
		g := body.Object
		out[label.Order] = ObjectState{
			Name:         label.Name,
			Kind:         label.Kind,
			Pose:         g.Pose(),
			Value:        r.Value,
			Index:        r.Index,
			ValueChanges: r.ValueChanges,
			IndexChanges: r.IndexChanges,
			Held:         g.IsHeld(),
			Free:         s.free.Has(query.Entity()),
			Sleeping:     g.Sleeping(),
		}
	}
	return out
}

func (s *Scene) trace(f Frame) {
	s.digest.BeginFrame(f.Index)
	s.digest.Pose("hand", f.Hand.Visual)
	for _, o := range f.Objects {
		s.digest.Pose(o.Name, o.Pose)
		s.digest.Value(o.Name, o.Value)
	}
}
