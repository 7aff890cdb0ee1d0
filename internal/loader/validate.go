package loader

import (
	"fmt"
	"math"

	interact "github.com/tphakala/go-xr-interact"
	"github.com/tphakala/go-xr-interact/internal/constraint"
	"github.com/tphakala/go-xr-interact/internal/pose"
)

// Validate checks that the scenario can be replayed.
func (s *Scenario) Validate() error {
	if !positive(s.FrameRate) {
		return fmt.Errorf("%w: frame_rate must be positive, got %v", ErrInvalidScenario, s.FrameRate)
	}
	if !positive(s.Duration) {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidScenario, s.Duration)
	}
	if s.Duration*s.FrameRate > MaxFrames {
		return fmt.Errorf("%w: %v s at %v fps exceeds %d frames", ErrInvalidScenario, s.Duration, s.FrameRate, MaxFrames)
	}
	if err := s.Hand.validate(); err != nil {
		return fmt.Errorf("%w: hand: %w", ErrInvalidScenario, err)
	}

	names := make(map[string]struct{}, len(s.Objects))
	for i, o := range s.Objects {
		if o.Name == "" {
			return fmt.Errorf("%w: object %d has no name", ErrInvalidScenario, i)
		}
		if _, dup := names[o.Name]; dup {
			return fmt.Errorf("%w: duplicate object %q", ErrInvalidScenario, o.Name)
		}
		names[o.Name] = struct{}{}
		if err := o.validate(); err != nil {
			return fmt.Errorf("%w: object %q: %w", ErrInvalidScenario, o.Name, err)
		}
	}

	if len(s.Path) == 0 {
		return fmt.Errorf("%w: path needs at least one keyframe", ErrInvalidScenario)
	}
	for i, k := range s.Path {
		if !finite(k.Time) || !finiteVec(k.Position) || !finiteVec(k.Rotation) {
			return fmt.Errorf("%w: path keyframe %d is not finite", ErrInvalidScenario, i)
		}
		if i > 0 && k.Time <= s.Path[i-1].Time {
			return fmt.Errorf("%w: path times must increase, keyframe %d at %v", ErrInvalidScenario, i, k.Time)
		}
	}

	for i, e := range s.Events {
		if !finite(e.Time) || e.Time < 0 {
			return fmt.Errorf("%w: event %d time must be non-negative", ErrInvalidScenario, i)
		}
		switch e.Action {
		case ActionGrab, ActionHover:
			if e.Object == "" {
				return fmt.Errorf("%w: event %d: %s needs an object", ErrInvalidScenario, i, e.Action)
			}
		case ActionRelease, ActionUnhover:
		default:
			return fmt.Errorf("%w: event %d: unknown action %q", ErrInvalidScenario, i, e.Action)
		}
		if _, ok := names[e.Object]; e.Object != "" && !ok {
			return fmt.Errorf("%w: event %d: unknown object %q", ErrInvalidScenario, i, e.Object)
		}
	}
	return nil
}

func (h Hand) validate() error {
	side, err := pose.ParseHand(h.Side)
	if err != nil {
		return err
	}
	if side != pose.HandLeft && side != pose.HandRight {
		return fmt.Errorf("side must be left or right, got %q", h.Side)
	}
	for _, v := range []float64{h.SnapTime, h.ReleaseTime, h.PoseEnterTime, h.PoseExitTime} {
		if !finite(v) || v < 0 {
			return fmt.Errorf("times must be non-negative")
		}
	}
	for _, l := range []Limits{h.Select, h.Hover} {
		if !finite(l.MaxDistance) || !finite(l.MaxAngle) || l.MaxDistance < 0 || l.MaxAngle < 0 {
			return fmt.Errorf("limits must be non-negative")
		}
	}
	return nil
}

func (o Object) validate() error {
	if !finiteVec(o.Position) || !finiteVec(o.Rotation) {
		return fmt.Errorf("pose must be finite")
	}
	if o.Movement != "" {
		if _, err := interact.ParseMovementType(o.Movement); err != nil {
			return err
		}
	}

	switch o.Kind {
	case KindThrowable, "":
	case KindSlider, KindFixedSlider:
		if _, err := constraint.ParseAxis(o.Axis); err != nil {
			return err
		}
		if !positive(o.Size) {
			return fmt.Errorf("size must be positive, got %v", o.Size)
		}
		if o.Kind == KindFixedSlider && o.Stops != nil {
			if _, err := constraint.NewStops(o.Stops); err != nil {
				return err
			}
		}
	case KindHinge:
		if !finite(o.MinAngle) || !finite(o.MaxAngle) || o.MinAngle > o.MaxAngle {
			return fmt.Errorf("min_angle %v must not exceed max_angle %v", o.MinAngle, o.MaxAngle)
		}
	default:
		return fmt.Errorf("unknown kind %q", o.Kind)
	}

	for i, p := range o.Poses {
		if _, err := pose.ParseHand(p.Hands); err != nil {
			return fmt.Errorf("pose %d: %w", i, err)
		}
		if _, err := pose.ParseInteractions(p.Interactions); err != nil {
			return fmt.Errorf("pose %d: %w", i, err)
		}
		if (p.Position != nil && !finiteVec(*p.Position)) || (p.Rotation != nil && !finiteVec(*p.Rotation)) {
			return fmt.Errorf("pose %d must be finite", i)
		}
		if p.Radius < 0 || !finite(p.Radius) {
			return fmt.Errorf("pose %d radius must be non-negative, got %v", i, p.Radius)
		}
		if p.Radius > 0 && p.Position == nil {
			return fmt.Errorf("pose %d radius needs a position", i)
		}
	}
	return nil
}

func positive(v float64) bool { return finite(v) && v > 0 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finiteVec(v Vec3) bool { return finite(v[0]) && finite(v[1]) && finite(v[2]) }
