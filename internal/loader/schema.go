package loader

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is an [x, y, z] triple.
type Vec3 [3]float64

// Vec returns v as a vector.
func (v Vec3) Vec() mgl64.Vec3 { return mgl64.Vec3(v) }

// Scenario is a scripted interaction session: a set of objects, the path
// the tracked hand follows and the grab and hover events along it.
type Scenario struct {
	Name string `json:"name" yaml:"name"`

	// FrameRate is the simulation rate in frames per second.
	FrameRate float64 `json:"frame_rate" yaml:"frame_rate"`
	// Duration is the length of the replay in seconds.
	Duration float64 `json:"duration" yaml:"duration"`

	Hand    Hand       `json:"hand" yaml:"hand"`
	Objects []Object   `json:"objects" yaml:"objects"`
	Path    []Keyframe `json:"path" yaml:"path"`
	Events  []Event    `json:"events" yaml:"events"`
}

// Hand configures the simulated hand. Omitted fields keep their defaults.
type Hand struct {
	Side          string  `json:"side" yaml:"side"`
	SnapTime      float64 `json:"snap_time" yaml:"snap_time"`
	ReleaseTime   float64 `json:"release_time" yaml:"release_time"`
	PoseEnterTime float64 `json:"pose_enter_time" yaml:"pose_enter_time"`
	PoseExitTime  float64 `json:"pose_exit_time" yaml:"pose_exit_time"`
	Select        Limits  `json:"select" yaml:"select"`
	Hover         Limits  `json:"hover" yaml:"hover"`
}

// Limits bound how far the hand visual may stray from the tracked hand.
type Limits struct {
	MaxDistance float64 `json:"max_distance" yaml:"max_distance"`
	MaxAngle    float64 `json:"max_angle" yaml:"max_angle"`
}

// Object kinds.
const (
	KindThrowable   = "throwable"
	KindSlider      = "slider"
	KindFixedSlider = "fixed_slider"
	KindHinge       = "hinge"
)

// Object is one interactable.
type Object struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`

	// Movement is instantaneous, kinematic or velocity_tracking. Empty
	// keeps the default.
	Movement string `json:"movement" yaml:"movement"`

	// Position and Rotation (Euler degrees) place the object, or for
	// constrained kinds the constraint's parent frame.
	Position Vec3 `json:"position" yaml:"position"`
	Rotation Vec3 `json:"rotation" yaml:"rotation"`

	// Slider parameters.
	Axis  string    `json:"axis" yaml:"axis"`
	Size  float64   `json:"size" yaml:"size"`
	Stops []float64 `json:"stops" yaml:"stops"`

	// Hinge limits in degrees.
	MinAngle float64 `json:"min_angle" yaml:"min_angle"`
	MaxAngle float64 `json:"max_angle" yaml:"max_angle"`

	// ThrowOnDetach overrides whether the object keeps the hand's
	// velocity on release.
	ThrowOnDetach *bool `json:"throw_on_detach" yaml:"throw_on_detach"`

	Poses []HandPose `json:"poses" yaml:"poses"`
}

// HandPose is an authored hand pose in the object's frame.
type HandPose struct {
	ID           string   `json:"id" yaml:"id"`
	Hands        string   `json:"hands" yaml:"hands"`
	Interactions []string `json:"interactions" yaml:"interactions"`
	Position     *Vec3    `json:"position" yaml:"position"`
	Rotation     *Vec3    `json:"rotation" yaml:"rotation"`
	Radius       float64  `json:"radius" yaml:"radius"`
	Surface      bool     `json:"surface" yaml:"surface"`
	Animation    string   `json:"animation" yaml:"animation"`
}

// Keyframe is a tracked hand pose at a point in time.
type Keyframe struct {
	Time     float64 `json:"time" yaml:"time"`
	Position Vec3    `json:"position" yaml:"position"`
	Rotation Vec3    `json:"rotation" yaml:"rotation"`
}

// Event actions.
const (
	ActionGrab    = "grab"
	ActionRelease = "release"
	ActionHover   = "hover"
	ActionUnhover = "unhover"
)

// Event is a scripted hand action.
type Event struct {
	Time   float64 `json:"time" yaml:"time"`
	Action string  `json:"action" yaml:"action"`
	Object string  `json:"object" yaml:"object"`
}
