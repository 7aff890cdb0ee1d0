package interact

import (
	"github.com/tphakala/go-xr-interact/internal/constraint"
	"github.com/tphakala/go-xr-interact/internal/mathutil"
)

// NewThrowable creates a free object that inherits the hand's velocity when
// released.
func NewThrowable(name string, start mathutil.Pose) (*Grabbable, error) {
	cfg := DefaultConfig()
	cfg.Name = name
	return NewGrabbable(&cfg, start)
}

// NewSlider creates an object that slides along one axis of parent, from
// parent's origin to size metres.
func NewSlider(name string, parent mathutil.Pose, axis Axis, size float64) (*Grabbable, error) {
	s, err := constraint.NewSlider(axis, size)
	if err != nil {
		return nil, err
	}
	cfg := constrainedConfig(name, parent, s)
	return NewGrabbable(&cfg, parent)
}

// NewFixedSlider creates a slider that comes to rest on one of the given
// normalised stops when released. Nil stops uses constraint.DefaultStops.
func NewFixedSlider(name string, parent mathutil.Pose, axis Axis, size float64, stops []float64) (*Grabbable, error) {
	if stops == nil {
		stops = constraint.DefaultStops
	}
	f, err := constraint.NewFixedSlider(constraint.FixedSliderConfig{
		Axis:     axis,
		Size:     size,
		Stops:    stops,
		SnapTime: constraint.DefaultSnapToStopTime,
	})
	if err != nil {
		return nil, err
	}
	cfg := constrainedConfig(name, parent, f)
	return NewGrabbable(&cfg, parent)
}

// NewDoor creates a door hinged at parent's origin, turning about parent's Y
// axis between minAngle and maxAngle degrees.
func NewDoor(name string, parent mathutil.Pose, minAngle, maxAngle float64) (*Grabbable, error) {
	h, err := constraint.NewHinge(constraint.HingeConfig{MinAngle: minAngle, MaxAngle: maxAngle})
	if err != nil {
		return nil, err
	}
	cfg := constrainedConfig(name, parent, h)
	return NewGrabbable(&cfg, parent)
}

func constrainedConfig(name string, parent mathutil.Pose, c constraint.Constraint) Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Parent = parent
	cfg.Constraint = c
	return cfg
}
