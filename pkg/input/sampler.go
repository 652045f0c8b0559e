package input

import "github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"

type Reader interface {
	ReadDigital(in hardware.Input) bool
	ReadAnalog(axis hardware.Axis) int
}

// Snapshot is one cycle's view of the controller.
type Snapshot struct {
	Digital map[hardware.Input]bool
	Forward int
	Turn    int
}

func (s Snapshot) Held(in hardware.Input) bool {
	return s.Digital[in]
}

// Sampler reads a fixed set of digital inputs and the two drive axes.  It
// keeps no history and cannot tell a disconnected controller from an idle one.
type Sampler struct {
	hw      Reader
	inputs  []hardware.Input
	forward hardware.Axis
	turn    hardware.Axis
}

func NewSampler(hw Reader, forward, turn hardware.Axis, inputs ...hardware.Input) *Sampler {
	return &Sampler{
		hw:      hw,
		inputs:  append([]hardware.Input(nil), inputs...),
		forward: forward,
		turn:    turn,
	}
}

func (s *Sampler) Sample() Snapshot {
	snap := Snapshot{Digital: make(map[hardware.Input]bool, len(s.inputs))}
	for _, in := range s.inputs {
		snap.Digital[in] = s.hw.ReadDigital(in)
	}
	if s.forward != "" {
		snap.Forward = s.hw.ReadAnalog(s.forward)
	}
	if s.turn != "" {
		snap.Turn = s.hw.ReadAnalog(s.turn)
	}
	return snap
}

// Edge reports not-held to held transitions of a single input.
type Edge struct {
	last bool
}

func (e *Edge) Rising(held bool) bool {
	rising := held && !e.last
	e.last = held
	return rising
}
