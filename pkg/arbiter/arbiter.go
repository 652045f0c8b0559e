package arbiter

import (
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/input"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/periodic"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// Arbiter issues exactly one command per cycle to its group, chosen from the
// "spin forward" and "spin reverse" inputs.
type Arbiter struct {
	group    *Group
	forward  hardware.Input
	reverse  hardware.Input
	velocity func() int
	sampler  *input.Sampler
	log      logrus.FieldLogger

	last    Command
	started bool
}

func New(hw input.Reader, group *Group, forward, reverse hardware.Input, velocity func() int, log logrus.FieldLogger) *Arbiter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Arbiter{
		group:    group,
		forward:  forward,
		reverse:  reverse,
		velocity: velocity,
		sampler:  input.NewSampler(hw, "", "", forward, reverse),
		log:      log.WithField("group", group.Name),
	}
}

// Step samples, decides and applies one command, which it returns.
func (a *Arbiter) Step() Command {
	snap := a.sampler.Sample()
	c := Decide(snap.Held(a.forward), snap.Held(a.reverse), a.velocity())
	a.group.Apply(c)
	if !a.started || c != a.last {
		a.log.Debugf("%s: %v", a.group.Name, c)
		a.started = true
	}
	a.last = c
	return c
}

func (a *Arbiter) Task(period time.Duration, clk clock.Clock) *periodic.Task {
	return &periodic.Task{
		Name:   "arbiter " + a.group.Name,
		Period: period,
		Clock:  clk,
		Log:    a.log,
		Step:   func(time.Time) { a.Step() },
	}
}
