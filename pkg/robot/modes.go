package robot

import (
	"context"
	"sync"
)

// Mode is one competition mode, started and stopped by the host.
type Mode struct {
	name  string
	sound string
	run   func(ctx context.Context)
	robot *Robot

	cancel context.CancelFunc
	stopWG sync.WaitGroup
}

func (m *Mode) Name() string {
	return m.name
}

func (m *Mode) StartupSound() string {
	return m.sound
}

func (m *Mode) Start(ctx context.Context) {
	m.stopWG.Add(1)
	var loopCtx context.Context
	loopCtx, m.cancel = context.WithCancel(ctx)
	go func() {
		defer m.stopWG.Done()
		m.run(loopCtx)
	}()
}

// Stop cancels the mode, waits for its tasks to return at their next cycle
// and halts the motors.
func (m *Mode) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.stopWG.Wait()
	m.cancel = nil
	m.robot.Halt()
}

const (
	ModeMatch      = "match"
	ModeDisabled   = "disabled"
	ModeAutonomous = "autonomous"
	ModeOpControl  = "opcontrol"
)

// Modes returns the competition modes in switching order.  Without field
// control, match runs autonomous and then operator control.
func (r *Robot) Modes() []*Mode {
	modes := []*Mode{
		{name: ModeMatch, run: func(ctx context.Context) {
			if r.runAutonomous(ctx) {
				r.OpControl(ctx)
			}
		}},
		{name: ModeDisabled, run: func(ctx context.Context) {
			r.Disabled(ctx)
			<-ctx.Done()
		}},
		{name: ModeAutonomous, run: func(ctx context.Context) {
			r.runAutonomous(ctx)
			<-ctx.Done()
		}},
		{name: ModeOpControl, run: r.OpControl},
	}
	for _, m := range modes {
		m.robot = r
		m.sound = r.cfg.Sounds[m.name]
	}
	return modes
}

// runAutonomous reports whether the script ran to the end.
func (r *Robot) runAutonomous(ctx context.Context) bool {
	report, err := r.Autonomous(ctx)
	if err != nil {
		r.log.WithError(err).Warn("Autonomous did not finish")
		return false
	}
	if n := report.TimedOut(); n > 0 {
		r.log.Warnf("Autonomous finished with %d timed out steps", n)
	}
	return true
}
