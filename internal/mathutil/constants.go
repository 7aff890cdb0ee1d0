package mathutil

import "math"

// Angular constants
const (
	fullTurnDegrees = 360.0
	halfTurnDegrees = 180.0
)

// Comparison tolerances
const (
	// approxRelativeEpsilon scales with operand magnitude in Approximately.
	approxRelativeEpsilon = 1e-6
	// approxAbsoluteFloor is the minimum tolerance near zero (8 float32 epsilons).
	approxAbsoluteFloor = 8 * 1.1920929e-7

	// TimeEpsilon below which a time step is treated as zero.
	TimeEpsilon = 1e-6

	// unitEpsilon guards normalisation of near-zero vectors and quaternions.
	unitEpsilon = 1e-12
)

// SmoothDamp polynomial coefficients.
// exp(-x) is approximated by 1/(1 + x + 0.48x² + 0.235x³).
const (
	smoothDampOmegaFactor = 2.0
	smoothDampCoeff2      = 0.48
	smoothDampCoeff3      = 0.235
)

// maxSpeed used when the caller does not bound SmoothDamp.
var unboundedSpeed = math.Inf(1)
