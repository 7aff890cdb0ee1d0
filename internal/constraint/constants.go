package constraint

// Slider defaults
const (
	DefaultSliderSize     = 1.0 // metres
	DefaultSnapToStopTime = 0.1 // seconds to settle onto the nearest stop
)

// DefaultStops are the rest positions of a discrete slider.
var DefaultStops = []float64{0, 0.5, 1}

// Hinge angle bounds in degrees.
const (
	minHingeAngle = -180.0
	maxHingeAngle = 180.0
)
