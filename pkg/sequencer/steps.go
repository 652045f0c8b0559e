package sequencer

import (
	"context"
	"fmt"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/arbiter"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/chassis"
)

type MoveToPose struct {
	Target  chassis.Pose
	Timeout time.Duration
	Reverse bool
}

func (m *MoveToPose) String() string {
	dir := "forwards"
	if m.Reverse {
		dir = "reverse"
	}
	return fmt.Sprintf("moveToPose %v %s within %v", m.Target, dir, m.Timeout)
}

func (m *MoveToPose) timeout() time.Duration { return m.Timeout }

func (m *MoveToPose) Execute(ctx context.Context, s *Sequencer) bool {
	s.chassis.MoveToPose(m.Target, m.Timeout, chassis.MoveOptions{Forwards: !m.Reverse})
	return s.awaitMotion(ctx, "moveToPose", m.Timeout)
}

type TurnToPoint struct {
	X, Y    float64
	Timeout time.Duration
	Reverse bool
}

func (t *TurnToPoint) String() string {
	dir := "facing"
	if t.Reverse {
		dir = "backing onto"
	}
	return fmt.Sprintf("turnToPoint %s (%.2f, %.2f) within %v", dir, t.X, t.Y, t.Timeout)
}

func (t *TurnToPoint) timeout() time.Duration { return t.Timeout }

func (t *TurnToPoint) Execute(ctx context.Context, s *Sequencer) bool {
	s.chassis.TurnToPoint(t.X, t.Y, t.Timeout, chassis.MoveOptions{Forwards: !t.Reverse})
	return s.awaitMotion(ctx, "turnToPoint", t.Timeout)
}

type FollowPath struct {
	Path      *chassis.Path
	Lookahead float64
	Timeout   time.Duration
}

func (f *FollowPath) String() string {
	return fmt.Sprintf("followPath %s (%d points, lookahead %.1f) within %v",
		f.Path.Name, len(f.Path.Points), f.Lookahead, f.Timeout)
}

func (f *FollowPath) timeout() time.Duration { return f.Timeout }

func (f *FollowPath) Execute(ctx context.Context, s *Sequencer) bool {
	s.chassis.FollowPath(f.Path, f.Lookahead, f.Timeout)
	return s.awaitMotion(ctx, "followPath", f.Timeout)
}

// Actuator is anything a pulse can switch, normally a toggle.
type Actuator interface {
	Set(engaged bool)
}

// DrivePulse drives both sides open loop for Duration, switches Actuator to
// Engage, waits Settle and then stops the drive.  There is no feedback: the
// distance covered depends on the duration, battery and carpet, so the
// numbers have to be re-tuned on the field.
type DrivePulse struct {
	Left, Right int
	Duration    time.Duration
	Actuator    Actuator
	Engage      bool
	Settle      time.Duration
}

func (p *DrivePulse) String() string {
	return fmt.Sprintf("drivePulse (%d, %d) for %v, set %v, settle %v",
		p.Left, p.Right, p.Duration, p.Engage, p.Settle)
}

func (p *DrivePulse) Execute(ctx context.Context, s *Sequencer) bool {
	s.chassis.Tank(p.Left, p.Right)
	s.sleep(ctx, p.Duration)
	if ctx.Err() == nil && p.Actuator != nil {
		p.Actuator.Set(p.Engage)
	}
	s.sleep(ctx, p.Settle)
	s.chassis.Tank(0, 0)
	return false
}

// Intake spins an actuator group: positive velocities run it forwards,
// negative in reverse and zero brakes it.
type Intake struct {
	Group    interface{ Apply(arbiter.Command) }
	Velocity int
}

func (i *Intake) String() string {
	return fmt.Sprintf("intake %v", arbiter.SpinCommand(i.Velocity))
}

func (i *Intake) Execute(ctx context.Context, s *Sequencer) bool {
	i.Group.Apply(arbiter.SpinCommand(i.Velocity))
	return false
}

// Wait pauses the script.
type Wait struct {
	Duration time.Duration
}

func (w *Wait) String() string {
	return fmt.Sprintf("wait %v", w.Duration)
}

func (w *Wait) Execute(ctx context.Context, s *Sequencer) bool {
	s.sleep(ctx, w.Duration)
	return false
}
