package hardware

import (
	"sync"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/joystick"
	"github.com/sirupsen/logrus"
)

// Dummy is an in-memory device layer.  Inputs are set by the caller and every
// output is recorded, so it doubles as the test double for the tasks.
type Dummy struct {
	log logrus.FieldLogger

	lock    sync.Mutex
	inputs  map[Input]bool
	axes    map[Axis]int
	outputs map[Pin]bool
	motors  map[Motor]MotorState

	outputWrites map[Pin]int
}

func NewDummy(log logrus.FieldLogger) *Dummy {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dummy{
		log:          log,
		inputs:       map[Input]bool{},
		axes:         map[Axis]int{},
		outputs:      map[Pin]bool{},
		motors:       map[Motor]MotorState{},
		outputWrites: map[Pin]int{},
	}
}

var _ Interface = (*Dummy)(nil)

func (d *Dummy) SetInput(in Input, held bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.inputs[in] = held
}

func (d *Dummy) SetAxis(axis Axis, value int) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.axes[axis] = value
}

func (d *Dummy) ReadDigital(in Input) bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.inputs[in]
}

func (d *Dummy) ReadAnalog(axis Axis) int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.axes[axis]
}

func (d *Dummy) WriteDigitalOutput(pin Pin, value bool) {
	d.log.Debugf("DHW: WriteDigitalOutput pin=%v value=%v", pin, value)
	d.lock.Lock()
	defer d.lock.Unlock()
	d.outputs[pin] = value
	d.outputWrites[pin]++
}

func (d *Dummy) SetMotorVelocity(port Motor, velocity int) {
	d.log.Debugf("DHW: SetMotorVelocity port=%v velocity=%v", port, velocity)
	d.lock.Lock()
	defer d.lock.Unlock()
	d.motors[port] = MotorState{Velocity: ClampVelocity(velocity)}
}

func (d *Dummy) BrakeMotor(port Motor) {
	d.log.Debugf("DHW: BrakeMotor port=%v", port)
	d.lock.Lock()
	defer d.lock.Unlock()
	d.motors[port] = MotorState{Braked: true}
}

func (d *Dummy) Output(pin Pin) bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.outputs[pin]
}

// OutputWrites returns how many times pin has been written.
func (d *Dummy) OutputWrites(pin Pin) int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.outputWrites[pin]
}

func (d *Dummy) Motor(port Motor) MotorState {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.motors[port]
}

func (d *Dummy) HasInput(in Input) bool {
	switch in {
	case ScreenLeft, ScreenCenter, ScreenRight:
		return true
	}
	return joystick.HasDigital(string(in))
}

func (d *Dummy) HasAxis(axis Axis) bool {
	_, ok := joystick.Axes[string(axis)]
	return ok
}

func (d *Dummy) HasOutput(pin Pin) bool {
	for _, p := range OutputPins {
		if p == pin {
			return true
		}
	}
	return false
}
