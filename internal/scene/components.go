package scene

import (
	interact "github.com/tphakala/go-xr-interact"
)

// Label names an interactable.
type Label struct {
	Name string
	Kind string
	// Order is the object's position in the scenario.
	Order int
}

// Body holds the interactable's controller.
type Body struct {
	Object *interact.Grabbable
}

// Readout is the latest constraint output of an interactable.
type Readout struct {
	Value float64
	// Index is the nearest stop of a fixed slider, -1 otherwise.
	Index int

	ValueChanges int
	IndexChanges int
}

// Free marks an interactable that has been released and now moves on its
// own.
type Free struct {
	Since float64
}
