package robot

// PostureController commands the 12 leg motors.
// Use this minimal interface when only posture control is needed.
type PostureController interface {
	SetPosture(Posture) error
}

// PostureReader reads the current motor positions back from the simulator.
type PostureReader interface {
	GetPosture() (Posture, error)
}

// StatusController provides bridge daemon status queries.
type StatusController interface {
	GetBridgeStatus() (string, error)
}

// Resetter resets the robot base position and orientation in the simulator.
type Resetter interface {
	ResetBase() error
}

// Controller is the composite interface for full robot control.
// It combines all individual control interfaces.
type Controller interface {
	PostureController
	PostureReader
	StatusController
	Resetter
}

// Ensure HTTPController implements Controller
var _ Controller = (*HTTPController)(nil)
