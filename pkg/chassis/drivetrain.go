package chassis

import (
	"math"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/arbiter"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
)

// Dimensions of the drivetrain, as handed to the motion library.
type Dimensions struct {
	TrackWidth      float64 `yaml:"trackWidth"`      // inches
	WheelDiameter   float64 `yaml:"wheelDiameter"`   // inches
	RPM             float64 `yaml:"rpm"`             // drivetrain output rpm
	HorizontalDrift float64 `yaml:"horizontalDrift"` // library tuning value
}

// Drivetrain mixes drive commands onto the left and right motor groups.
type Drivetrain struct {
	Left  *arbiter.Group
	Right *arbiter.Group

	Dimensions Dimensions
}

// Arcade mixes a throttle and a turn value.  If either side would exceed full
// speed both sides are scaled down together so the curvature is kept.
func (d *Drivetrain) Arcade(forward, turn int) {
	left, right := Mix(forward, turn)
	d.Tank(left, right)
}

func (d *Drivetrain) Tank(left, right int) {
	d.Left.Move(hardware.ClampVelocity(left))
	d.Right.Move(hardware.ClampVelocity(right))
}

func Mix(forward, turn int) (left, right int) {
	l := float64(forward + turn)
	r := float64(forward - turn)

	m := math.Max(math.Abs(l), math.Abs(r))
	scale := 1.0
	if m > hardware.MaxVelocity {
		scale = hardware.MaxVelocity / m
	}
	return int(math.Round(l * scale)), int(math.Round(r * scale))
}
