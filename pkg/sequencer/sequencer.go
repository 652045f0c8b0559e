package sequencer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/chassis"
	"github.com/juju/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrRunning = errors.New("autonomous sequence already running")

// Step is one entry of the autonomous script.  Execute blocks until the step
// is complete and reports whether it was cut short by its timeout.
type Step interface {
	String() string
	Execute(ctx context.Context, s *Sequencer) (timedOut bool)
}

type StepResult struct {
	Step     string
	Start    time.Time
	End      time.Time
	TimedOut bool
}

type Report struct {
	Steps []StepResult
}

// TimedOut counts the steps that hit their timeout.
func (r *Report) TimedOut() int {
	n := 0
	for _, s := range r.Steps {
		if s.TimedOut {
			n++
		}
	}
	return n
}

// Sequencer runs a fixed list of steps strictly in order, never more than one
// at a time.
type Sequencer struct {
	chassis chassis.Interface
	steps   []Step
	clock   clock.Clock
	log     logrus.FieldLogger

	running int32
}

type timeoutStep interface {
	timeout() time.Duration
}

func New(ch chassis.Interface, steps []Step, clk clock.Clock, log logrus.FieldLogger) (*Sequencer, error) {
	for i, st := range steps {
		if ts, ok := st.(timeoutStep); ok && ts.timeout() <= 0 {
			return nil, errors.Errorf("step %d (%v) needs a positive timeout", i, st)
		}
	}
	if clk == nil {
		clk = clock.WallClock
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sequencer{
		chassis: ch,
		steps:   append([]Step(nil), steps...),
		clock:   clk,
		log:     log,
	}, nil
}

func (s *Sequencer) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// Run executes the script once from the first step.  If ctx is cancelled the
// current motion is stopped, the drive is zeroed and ctx's error returned
// together with the steps completed so far.
func (s *Sequencer) Run(ctx context.Context) (*Report, error) {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return nil, ErrRunning
	}
	defer atomic.StoreInt32(&s.running, 0)

	report := &Report{}
	s.log.Infof("Autonomous: running %d steps", len(s.steps))
	for i, st := range s.steps {
		if ctx.Err() != nil {
			break
		}
		s.log.Infof("Autonomous: step %d/%d: %v", i+1, len(s.steps), st)
		start := s.clock.Now()
		timedOut := st.Execute(ctx, s)
		report.Steps = append(report.Steps, StepResult{
			Step:     st.String(),
			Start:    start,
			End:      s.clock.Now(),
			TimedOut: timedOut,
		})
	}
	if err := ctx.Err(); err != nil {
		s.log.Warn("Autonomous: stopped early")
		s.chassis.CancelMotion()
		s.chassis.Tank(0, 0)
		return report, err
	}
	s.log.WithField("timeouts", report.TimedOut()).Info("Autonomous: done")
	return report, nil
}

// awaitMotion joins the motion just requested, giving up after timeout.  On
// timeout the motion is cancelled so that the next step never overlaps it.
func (s *Sequencer) awaitMotion(ctx context.Context, name string, timeout time.Duration) bool {
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.chassis.WaitUntilDone(waitCtx)
	}()

	timer := s.clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return false
	case <-timer.Chan():
		cancel()
		s.chassis.CancelMotion()
		<-done
		s.log.WithField("pose", s.chassis.Pose()).Warnf("Autonomous: %s not done after %v, moving on", name, timeout)
		return true
	}
}

// sleep waits for d or until ctx is done.
func (s *Sequencer) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := s.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.Chan():
	}
}
