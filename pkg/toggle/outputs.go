package toggle

import "github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"

// Pin drives a digital output (a pneumatic solenoid).
type Pin struct {
	HW  interface{ WriteDigitalOutput(hardware.Pin, bool) }
	Pin hardware.Pin
}

func (p Pin) Set(engaged bool) {
	p.HW.WriteDigitalOutput(p.Pin, engaged)
}

// Spinner is an actuator group that can run at a velocity or brake.
type Spinner interface {
	Move(velocity int)
	Brake()
}

// Motor runs a motor group at Velocity() while engaged and brakes it otherwise.
type Motor struct {
	Group    Spinner
	Velocity func() int
}

func (m Motor) Set(engaged bool) {
	if engaged {
		m.Group.Move(m.Velocity())
	} else {
		m.Group.Brake()
	}
}

// TextLine shows Text on a status screen line while engaged.
type TextLine struct {
	Screen interface {
		SetText(line int, text string)
		ClearLine(line int)
	}
	Line int
	Text string
}

func (l TextLine) Set(engaged bool) {
	if engaged {
		l.Screen.SetText(l.Line, l.Text)
	} else {
		l.Screen.ClearLine(l.Line)
	}
}
