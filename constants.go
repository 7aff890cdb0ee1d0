package interact

// Follow defaults
const (
	DefaultAttachEaseInTime = 0.15 // seconds
	DefaultSmoothingAmount  = 5.0  // per second
	DefaultTighteningAmount = 0.5  // fraction of the remaining gap closed each frame
)

// Velocity tracking defaults
const (
	DefaultVelocityDamping        = 1.0
	DefaultVelocityScale          = 1.0
	DefaultAngularVelocityDamping = 1.0
	DefaultAngularVelocityScale   = 1.0
)

// Throw defaults
const (
	DefaultThrowVelocityScale        = 1.5
	DefaultThrowAngularVelocityScale = 1.0
)

// Free body defaults
const (
	DefaultGravity     = -9.81 // m/s² along Y
	DefaultAngularDrag = 0.05
)

const (
	maxSmoothingAmount = 20.0

	// sleepSpeed is the combined linear and angular speed below which a
	// released body stops being integrated.
	sleepSpeed = 0.005
)
