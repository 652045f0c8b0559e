package toggle

import (
	"fmt"
	"sync"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/input"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/periodic"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// Policy decides when a held button may flip the toggle again.
type Policy int

const (
	// EdgeLatched flips once per press; the button must be seen released
	// before it can flip again, however long it is held.  The hold-off runs
	// from the release and swallows bounces and quick re-presses.
	EdgeLatched Policy = iota
	// TimeLatched flips whenever the button is held and the hold-off since
	// the previous flip has elapsed, so a long hold flips repeatedly.
	TimeLatched
)

func (p Policy) String() string {
	switch p {
	case EdgeLatched:
		return "edge"
	case TimeLatched:
		return "time"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "edge", "":
		return EdgeLatched, nil
	case "time":
		return TimeLatched, nil
	}
	return 0, fmt.Errorf("unknown toggle policy %q", s)
}

// Output is the actuator a toggle drives.  Set is called synchronously on
// every flip.
type Output interface {
	Set(engaged bool)
}

type Toggle struct {
	Name string

	policy  Policy
	holdoff time.Duration
	output  Output
	log     logrus.FieldLogger

	// Only touched by the single writer (the toggle task in opcontrol, the
	// sequencer in autonomous).
	awaitRelease bool
	holdoffUntil time.Time

	lock    sync.Mutex
	engaged bool
}

func New(name string, policy Policy, holdoff time.Duration, output Output, log logrus.FieldLogger) *Toggle {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Toggle{
		Name:    name,
		policy:  policy,
		holdoff: holdoff,
		output:  output,
		log:     log.WithField("toggle", name),
	}
}

func (t *Toggle) Policy() Policy {
	return t.policy
}

// Update feeds one cycle's button state and reports whether the toggle flipped.
func (t *Toggle) Update(held bool, now time.Time) bool {
	switch t.policy {
	case EdgeLatched:
		if t.awaitRelease {
			if !held {
				t.awaitRelease = false
				t.holdoffUntil = now.Add(t.holdoff)
			}
			return false
		}
		if !held || now.Before(t.holdoffUntil) {
			return false
		}
		t.awaitRelease = true
	case TimeLatched:
		if !held || now.Before(t.holdoffUntil) {
			return false
		}
		t.holdoffUntil = now.Add(t.holdoff)
	}
	t.Set(!t.Engaged())
	return true
}

func (t *Toggle) Engaged() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.engaged
}

// Set forces the state and writes it to the output.
func (t *Toggle) Set(engaged bool) {
	t.lock.Lock()
	t.engaged = engaged
	t.lock.Unlock()
	t.log.Infof("%s -> %v", t.Name, engaged)
	t.output.Set(engaged)
}

// Task samples the bound input every period and updates the toggle.
func (t *Toggle) Task(hw input.Reader, in hardware.Input, period time.Duration, clk clock.Clock) *periodic.Task {
	sampler := input.NewSampler(hw, "", "", in)
	return &periodic.Task{
		Name:   "toggle " + t.Name,
		Period: period,
		Clock:  clk,
		Log:    t.log,
		Step: func(now time.Time) {
			t.Update(sampler.Sample().Held(in), now)
		},
	}
}
