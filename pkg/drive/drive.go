package drive

import (
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/input"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/periodic"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

type Arcader interface {
	Arcade(forward, turn int)
}

// Loop hands the two stick axes to the drivetrain's arcade mixer, unfiltered.
type Loop struct {
	chassis Arcader
	sampler *input.Sampler
	log     logrus.FieldLogger
}

func New(hw input.Reader, forward, turn hardware.Axis, ch Arcader, log logrus.FieldLogger) *Loop {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loop{
		chassis: ch,
		sampler: input.NewSampler(hw, forward, turn),
		log:     log,
	}
}

func (l *Loop) Step() {
	snap := l.sampler.Sample()
	l.chassis.Arcade(snap.Forward, snap.Turn)
}

func (l *Loop) Task(period time.Duration, clk clock.Clock) *periodic.Task {
	return &periodic.Task{
		Name:   "drive",
		Period: period,
		Clock:  clk,
		Log:    l.log,
		Step:   func(time.Time) { l.Step() },
	}
}
