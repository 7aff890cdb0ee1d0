package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	interact "github.com/tphakala/go-xr-interact"
	"github.com/tphakala/go-xr-interact/internal/blend"
	"github.com/tphakala/go-xr-interact/internal/constraint"
	"github.com/tphakala/go-xr-interact/internal/loader"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
	"github.com/tphakala/go-xr-interact/internal/pose"
)

// objectConfig translates a scenario object into a grabbable configuration
// and its start pose.
func objectConfig(o loader.Object, logger *zap.Logger) (interact.Config, mathutil.Pose, error) {
	cfg := interact.DefaultConfig()
	cfg.Name = o.Name
	cfg.Logger = logger

	frame := mathutil.NewPose(o.Position.Vec(), euler(o.Rotation))

	switch o.Kind {
	case loader.KindSlider, loader.KindFixedSlider:
		axis, err := constraint.ParseAxis(o.Axis)
		if err != nil {
			return cfg, frame, err
		}
		if o.Kind == loader.KindSlider {
			cfg.Constraint, err = constraint.NewSlider(axis, o.Size)
		} else {
			stops := o.Stops
			if stops == nil {
				stops = constraint.DefaultStops
			}
			cfg.Constraint, err = constraint.NewFixedSlider(constraint.FixedSliderConfig{
				Axis:     axis,
				Size:     o.Size,
				Stops:    stops,
				SnapTime: constraint.DefaultSnapToStopTime,
			})
		}
		if err != nil {
			return cfg, frame, err
		}
		cfg.Parent = frame
	case loader.KindHinge:
		h, err := constraint.NewHinge(constraint.HingeConfig{MinAngle: o.MinAngle, MaxAngle: o.MaxAngle})
		if err != nil {
			return cfg, frame, err
		}
		cfg.Constraint = h
		cfg.Parent = frame
	}

	if o.Movement != "" {
		m, err := interact.ParseMovementType(o.Movement)
		if err != nil {
			return cfg, frame, err
		}
		cfg.Movement = m
	}
	if o.ThrowOnDetach != nil {
		cfg.ThrowOnDetach = *o.ThrowOnDetach
	}

	for _, p := range o.Poses {
		c, err := handPose(p)
		if err != nil {
			return cfg, frame, err
		}
		cfg.Poses = append(cfg.Poses, c)
	}
	return cfg, frame, nil
}

func handPose(p loader.HandPose) (pose.Candidate, error) {
	hands, err := pose.ParseHand(p.Hands)
	if err != nil {
		return pose.Candidate{}, err
	}
	kinds, err := pose.ParseInteractions(p.Interactions)
	if err != nil {
		return pose.Candidate{}, err
	}
	c := pose.Candidate{
		ID:           p.ID,
		Hands:        hands,
		Interactions: kinds,
		Rotation:     mgl64.QuatIdent(),
		Radius:       p.Radius,
		Surface:      p.Surface,
		Animation:    p.Animation,
	}
	if p.Position != nil {
		c.HasPosition = true
		c.Position = p.Position.Vec()
	}
	if p.Rotation != nil {
		c.HasRotation = true
		c.Rotation = euler(*p.Rotation)
	}
	return c, nil
}

// handConfig translates the scenario hand settings.
func handConfig(h loader.Hand, logger *zap.Logger) (interact.HandConfig, error) {
	side, err := pose.ParseHand(h.Side)
	if err != nil {
		return interact.HandConfig{}, fmt.Errorf("hand: %w", err)
	}
	cfg := interact.DefaultHandConfig(side)
	cfg.Blend.SnapTime = h.SnapTime
	cfg.Blend.ReleaseTime = h.ReleaseTime
	cfg.Blend.Select = blend.Limits{MaxDistance: h.Select.MaxDistance, MaxAngle: h.Select.MaxAngle}
	cfg.Blend.Hover = blend.Limits{MaxDistance: h.Hover.MaxDistance, MaxAngle: h.Hover.MaxAngle}
	cfg.PoseEnterTime = h.PoseEnterTime
	cfg.PoseExitTime = h.PoseExitTime
	cfg.Logger = logger
	return cfg, nil
}

func euler(v loader.Vec3) mgl64.Quat {
	return mathutil.EulerDegrees(v[0], v[1], v[2])
}
