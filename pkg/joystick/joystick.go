package joystick

import (
	"encoding/binary"
	"fmt"
	"os"
)

// The PS-style pad on the Pi stands in for the V5 controller.  Its face
// buttons are named after the V5 buttons in the same position.  Stick axes
// read -32767 for up and left and +32767 for down and right; the D-pad
// reports as a pair of axes too.

type EventType uint8

const (
	EventTypeButton EventType = 1
	EventTypeAxis   EventType = 2

	// Set on the synthetic events the driver sends on open to report the
	// current state; they are applied like any other event.
	eventTypeInit = 0x80
)

func (e EventType) String() string {
	switch e {
	case EventTypeAxis:
		return "axis"
	case EventTypeButton:
		return "button"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(e))
	}
}

// Button numbers.
const (
	ButtonA uint8 = iota
	ButtonB
	ButtonY
	ButtonX
	ButtonL1
	ButtonR1
	ButtonL2
	ButtonR2
	ButtonShare
	ButtonOptions
)

// Axis numbers.
const (
	AxisLStickX uint8 = 0
	AxisLStickY uint8 = 1
	AxisRStickX uint8 = 3
	AxisRStickY uint8 = 4
	AxisDPadX   uint8 = 6
	AxisDPadY   uint8 = 7
)

// Event is one kernel js_event, without its timestamp.
type Event struct {
	Value  int16
	Type   EventType
	Number uint8
}

func (e *Event) String() string {
	return fmt.Sprintf("%v(%v)=%v", e.Type, e.Number, e.Value)
}

// Joystick reads events from a /dev/input/js* device.
type Joystick struct {
	device *os.File
}

func NewJoystick(device string) (*Joystick, error) {
	f, err := os.Open(device)
	if err != nil {
		return nil, err
	}
	return &Joystick{device: f}, nil
}

// ReadEvent blocks until the pad reports a change.
func (j *Joystick) ReadEvent() (*Event, error) {
	var raw struct {
		Millis uint32
		Value  int16
		Type   uint8
		Number uint8
	}
	if err := binary.Read(j.device, binary.LittleEndian, &raw); err != nil {
		return nil, err
	}
	return &Event{
		Value:  raw.Value,
		Type:   EventType(raw.Type &^ eventTypeInit),
		Number: raw.Number,
	}, nil
}

func (j *Joystick) Close() error {
	return j.device.Close()
}
