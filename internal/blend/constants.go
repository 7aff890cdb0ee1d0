package blend

// Blend timing defaults in seconds.
const (
	DefaultSnapTime    = 0.2
	DefaultReleaseTime = 0.3
)

// Violation limits. Distances in metres, angles in degrees.
const (
	DefaultSelectMaxDistance = 0.25
	DefaultSelectMaxAngle    = 90.0
	DefaultHoverMaxDistance  = 0.15
	DefaultHoverMaxAngle     = 90.0
)

// engagedEpsilon absorbs rounding when dt/snapTime steps sum to one.
const engagedEpsilon = 1e-9

const slotCount = 2
