package hardware

// Input names a physical digital input: a controller button, a D-pad
// direction or a brain-screen button.
type Input string

// Axis names a physical analog axis on the controller.
type Axis string

// Pin names a digital output port (the ADI ports 'A' to 'H').
type Pin string

// Motor is a smart motor port number, always positive at this layer.
type Motor int

const (
	MaxVelocity = 127

	ScreenLeft   Input = "ScreenLeft"
	ScreenCenter Input = "ScreenCenter"
	ScreenRight  Input = "ScreenRight"
)

// Interface is the read/write surface of the device layer.  Reads of a
// disconnected controller return stale or zero values; writes are
// fire-and-forget and failures are logged by the implementation.
type Interface interface {
	ReadDigital(in Input) bool
	ReadAnalog(axis Axis) int
	WriteDigitalOutput(pin Pin, value bool)
	SetMotorVelocity(port Motor, velocity int)
	BrakeMotor(port Motor)

	// Capability checks used to reject bad bindings at startup.
	HasInput(in Input) bool
	HasAxis(axis Axis) bool
	HasOutput(pin Pin) bool
}

// MotorState is the last command a motor port received.
type MotorState struct {
	Velocity int
	Braked   bool
}

func ClampVelocity(v int) int {
	if v > MaxVelocity {
		return MaxVelocity
	}
	if v < -MaxVelocity {
		return -MaxVelocity
	}
	return v
}

// OutputPins are the digital output ports present on the brain.
var OutputPins = []Pin{"A", "B", "C", "D", "E", "F", "G", "H"}
