package arbiter

import (
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
)

type MotorWriter interface {
	SetMotorVelocity(port hardware.Motor, velocity int)
	BrakeMotor(port hardware.Motor)
}

// Group is a named set of motors commanded together.  A negative port number
// means the motor is mounted reversed.
type Group struct {
	Name  string
	Ports []int

	hw MotorWriter
}

func NewGroup(name string, hw MotorWriter, ports ...int) *Group {
	return &Group{
		Name:  name,
		Ports: append([]int(nil), ports...),
		hw:    hw,
	}
}

// Motors returns the physical ports of the group.
func (g *Group) Motors() []hardware.Motor {
	out := make([]hardware.Motor, 0, len(g.Ports))
	for _, p := range g.Ports {
		if p < 0 {
			p = -p
		}
		out = append(out, hardware.Motor(p))
	}
	return out
}

func (g *Group) Move(velocity int) {
	for _, p := range g.Ports {
		if p < 0 {
			g.hw.SetMotorVelocity(hardware.Motor(-p), -velocity)
		} else {
			g.hw.SetMotorVelocity(hardware.Motor(p), velocity)
		}
	}
}

func (g *Group) Brake() {
	for _, m := range g.Motors() {
		g.hw.BrakeMotor(m)
	}
}

// Apply issues c to every motor in the group.
func (g *Group) Apply(c Command) {
	switch c.Kind {
	case Forward:
		g.Move(c.Speed)
	case Reverse:
		g.Move(-c.Speed)
	default:
		g.Brake()
	}
}
