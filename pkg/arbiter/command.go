package arbiter

import "fmt"

type Kind int

const (
	Brake Kind = iota
	Forward
	Reverse
)

func (k Kind) String() string {
	switch k {
	case Brake:
		return "brake"
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Command is one cycle's decision for an actuator group.  Speed is only
// meaningful for Forward and Reverse.
type Command struct {
	Kind  Kind
	Speed int
}

func (c Command) String() string {
	if c.Kind == Brake {
		return "Brake"
	}
	return fmt.Sprintf("%v(%d)", c.Kind, c.Speed)
}

// Decide evaluates the conditions in priority order: forward wins over
// reverse, and brake is issued when neither is held.
func Decide(forward, reverse bool, speed int) Command {
	switch {
	case forward:
		return Command{Kind: Forward, Speed: speed}
	case reverse:
		return Command{Kind: Reverse, Speed: speed}
	default:
		return Command{Kind: Brake}
	}
}

// SpinCommand maps a signed autonomous velocity onto a command: positive is
// Forward, negative Reverse and zero Brake.
func SpinCommand(velocity int) Command {
	switch {
	case velocity > 0:
		return Command{Kind: Forward, Speed: velocity}
	case velocity < 0:
		return Command{Kind: Reverse, Speed: -velocity}
	default:
		return Command{Kind: Brake}
	}
}
