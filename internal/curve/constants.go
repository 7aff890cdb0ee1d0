package curve

// minSplineKeys is the fewest keys gonum interpolators accept.
const minSplineKeys = 2

// Default slider movement curve knees.
const (
	sliderKnee1Time   = 0.3
	sliderKnee1Value  = 0.2
	sliderKnee2Time   = 0.6
	sliderKnee2Value  = 0.8
	sliderKneeTangent = 1.74
)
