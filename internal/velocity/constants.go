package velocity

// DefaultCapacity is the number of frames kept for throw smoothing.
const DefaultCapacity = 20

// Default smoothing window.
const (
	DefaultWindowDuration = 0.25 // seconds
)

// Vector component layout of the scratch buffers: three linear followed by
// three angular.
const (
	linearComponents = 3
	componentCount   = 2 * linearComponents
)

// DefaultWindow returns the window used for throws when none is configured.
func DefaultWindow() Window {
	return Window{Duration: DefaultWindowDuration}
}
