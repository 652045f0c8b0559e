package robot

import (
	"io"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/arbiter"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/chassis"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/config"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/drive"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/input"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/periodic"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/screen"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/sequencer"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/toggle"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/tunable"
	"github.com/juju/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators a Robot is built on.  Only HW is required.
type Deps struct {
	HW hardware.Interface
	// Chassis defaults to a simulated chassis driving the configured
	// drivetrain motors.
	Chassis chassis.Interface
	// Sink defaults to the configured framebuffer, or the log.
	Sink  screen.Sink
	Clock clock.Clock
	Log   logrus.FieldLogger
}

// Robot is the context shared by every task of a run: the hardware, the
// bindings and the actuators, each owned by exactly one component.
type Robot struct {
	cfg     *config.Config
	hw      hardware.Interface
	chassis chassis.Interface
	clock   clock.Clock
	log     logrus.FieldLogger

	bindings  *input.Bindings
	partition *partition

	display *screen.Display
	sink    screen.Sink
	closer  io.Closer

	toggles   map[string]*toggle.Toggle
	intake    *arbiter.Group
	tunables  tunable.Tunables
	sequencer *sequencer.Sequencer

	// Tasks started by Initialize and run for the rest of the process.
	background []*periodic.Task
	// Tasks run by OpControl.
	opcontrol []*periodic.Task

	initialized bool
}

// New builds the robot and checks the whole configuration against the
// hardware.  A missing binding, unknown input or shared actuator fails here,
// before any mode runs.
func New(cfg *config.Config, deps Deps) (*Robot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.HW == nil {
		return nil, errors.New("robot needs hardware")
	}
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.WallClock
	}

	r := &Robot{
		cfg:       cfg,
		hw:        deps.HW,
		chassis:   deps.Chassis,
		clock:     clk,
		log:       log,
		partition: newPartition(),
		toggles:   map[string]*toggle.Toggle{},
		tunables:  tunable.Tunables{Log: log.WithField("system", "tunables")},
	}

	var err error
	r.bindings, err = input.NewBindings(cfg.Bindings, r.hw)
	if err != nil {
		return nil, errors.Wrap(err, "bad bindings")
	}

	if err := r.buildChassis(); err != nil {
		return nil, err
	}
	if err := r.buildDisplay(deps.Sink); err != nil {
		return nil, err
	}
	if err := r.buildIntake(); err != nil {
		return nil, err
	}
	if err := r.buildToggles(); err != nil {
		return nil, err
	}
	if err := r.buildDrive(); err != nil {
		return nil, err
	}
	if err := r.buildTrim(); err != nil {
		return nil, err
	}
	if err := r.buildSequencer(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Robot) Config() *config.Config {
	return r.cfg
}

func (r *Robot) Chassis() chassis.Interface {
	return r.chassis
}

func (r *Robot) Display() *screen.Display {
	return r.display
}

// Toggle returns the named toggle, or nil.
func (r *Robot) Toggle(name string) *toggle.Toggle {
	return r.toggles[name]
}

func (r *Robot) Tunables() []*tunable.Tunable {
	return r.tunables.All
}

// Owner reports which component owns an actuator, e.g. "motor 7" or "pin E".
func (r *Robot) Owner(resource string) string {
	return r.partition.Owner(resource)
}

func (r *Robot) buildChassis() error {
	cc := r.cfg.Chassis
	var ports []int
	ports = append(ports, cc.Left...)
	ports = append(ports, cc.Right...)
	if err := r.partition.claim("drivetrain", motorResources(ports)...); err != nil {
		return err
	}
	if r.chassis != nil {
		return nil
	}
	dt := &chassis.Drivetrain{
		Left:       arbiter.NewGroup("left drive", r.hw, cc.Left...),
		Right:      arbiter.NewGroup("right drive", r.hw, cc.Right...),
		Dimensions: cc.Dimensions,
	}
	r.chassis = chassis.NewSim(dt, cc.Sim, r.clock, r.log.WithField("system", "chassis"))
	return nil
}

func (r *Robot) buildDisplay(sink screen.Sink) error {
	r.display = screen.New(r.log.WithField("system", "screen"))
	dc := r.cfg.Display

	var status screen.Status
	var lines []int
	switch dc.Status {
	case "pose":
		status = screen.PoseStatus(r.chassis)
		lines = []int{0, 1, 2, 3}
	case "buttons":
		status = screen.ButtonStatus(r.hw)
		lines = []int{0}
	}
	if err := r.partition.claim("screen status", lineResources(lines...)...); err != nil {
		return err
	}

	if sink == nil && dc.Framebuffer != "" {
		fb, err := screen.OpenFramebuffer(dc.Framebuffer)
		if err != nil {
			r.log.WithError(err).Warn("Screen unavailable, showing it in the log")
		} else {
			sink = fb
			r.closer = fb
		}
	}
	if sink == nil {
		sink = screen.LogSink{Log: r.log.WithField("system", "screen")}
	}
	r.sink = sink

	period := dc.Period
	if period <= 0 {
		period = r.cfg.CyclePeriod
	}
	r.background = append(r.background, r.display.Task(status, sink, period, r.clock))
	return nil
}

func (r *Robot) lookup(action string) (hardware.Input, error) {
	in, err := r.bindings.Lookup(action)
	if err != nil {
		return "", errors.Wrap(err, "bad bindings")
	}
	return in, nil
}

func (r *Robot) buildIntake() error {
	ic := r.cfg.Intake
	if ic == nil {
		return nil
	}
	if err := r.partition.claim("intake", motorResources(ic.Ports)...); err != nil {
		return err
	}
	fwd, err := r.lookup(ic.Forward)
	if err != nil {
		return err
	}
	rev, err := r.lookup(ic.Reverse)
	if err != nil {
		return err
	}
	r.intake = arbiter.NewGroup("intake", r.hw, ic.Ports...)
	velocity := r.tunables.Create("intake velocity", ic.Velocity, 0, hardware.MaxVelocity)
	arb := arbiter.New(r.hw, r.intake, fwd, rev, velocity.Get, r.log.WithField("system", "intake"))
	r.opcontrol = append(r.opcontrol, arb.Task(r.cfg.CyclePeriod, r.clock))
	return nil
}

func (r *Robot) buildToggles() error {
	for _, tc := range r.cfg.Toggles {
		owner := "toggle " + tc.Name
		in, err := r.lookup(tc.Binding)
		if err != nil {
			return err
		}
		policy, err := toggle.ParsePolicy(tc.Policy)
		if err != nil {
			return errors.Wrapf(err, "toggle %q", tc.Name)
		}

		var out toggle.Output
		oc := tc.Output
		switch oc.Kind {
		case "pin":
			if !r.hw.HasOutput(oc.Pin) {
				return errors.Errorf("toggle %q: no output pin %s", tc.Name, oc.Pin)
			}
			if err := r.partition.claim(owner, pinResource(string(oc.Pin))); err != nil {
				return err
			}
			out = toggle.Pin{HW: r.hw, Pin: oc.Pin}
		case "motor":
			if err := r.partition.claim(owner, motorResources(oc.Ports)...); err != nil {
				return err
			}
			velocity := r.tunables.Create(tc.Name+" velocity", oc.Velocity, -hardware.MaxVelocity, hardware.MaxVelocity)
			out = toggle.Motor{Group: arbiter.NewGroup(tc.Name, r.hw, oc.Ports...), Velocity: velocity.Get}
		case "text":
			if err := r.partition.claim(owner, lineResources(oc.Line)...); err != nil {
				return err
			}
			out = toggle.TextLine{Screen: r.display, Line: oc.Line, Text: oc.Text}
		}

		t := toggle.New(tc.Name, policy, tc.Holdoff, out, r.log.WithField("system", "toggle"))
		r.toggles[tc.Name] = t
		task := t.Task(r.hw, in, r.cfg.CyclePeriod, r.clock)
		if tc.Always {
			r.background = append(r.background, task)
		} else {
			r.opcontrol = append(r.opcontrol, task)
		}
	}
	return nil
}

func (r *Robot) buildDrive() error {
	dc := r.cfg.Drive
	if !dc.Enabled {
		return nil
	}
	for _, axis := range []hardware.Axis{dc.Forward, dc.Turn} {
		if !r.hw.HasAxis(axis) {
			return errors.Wrapf(input.ErrUnknownInput, "drive axis %q", axis)
		}
	}
	l := drive.New(r.hw, dc.Forward, dc.Turn, r.chassis, r.log.WithField("system", "drive"))
	r.opcontrol = append(r.opcontrol, l.Task(r.cfg.CyclePeriod, r.clock))
	return nil
}

func (r *Robot) buildTrim() error {
	tc := r.cfg.Trim
	if tc == nil || r.intake == nil {
		return nil
	}
	up, err := r.lookup(tc.Up)
	if err != nil {
		return err
	}
	down, err := r.lookup(tc.Down)
	if err != nil {
		return err
	}
	velocity := r.tunables.Find("intake velocity")
	sampler := input.NewSampler(r.hw, "", "", up, down)
	var upEdge, downEdge input.Edge
	r.opcontrol = append(r.opcontrol, &periodic.Task{
		Name:   "trim",
		Period: r.cfg.CyclePeriod,
		Clock:  r.clock,
		Log:    r.log.WithField("system", "trim"),
		Step: func(time.Time) {
			snap := sampler.Sample()
			if upEdge.Rising(snap.Held(up)) {
				velocity.Add(tc.Step)
			}
			if downEdge.Rising(snap.Held(down)) {
				velocity.Add(-tc.Step)
			}
		},
	})
	return nil
}

func (r *Robot) buildSequencer() error {
	var steps []sequencer.Step
	for i, sc := range r.cfg.Autonomous {
		st, err := r.step(sc)
		if err != nil {
			return errors.Wrapf(err, "autonomous step %d", i+1)
		}
		steps = append(steps, st)
	}
	var err error
	r.sequencer, err = sequencer.New(r.chassis, steps, r.clock, r.log.WithField("system", "autonomous"))
	return err
}

func (r *Robot) step(sc config.Step) (sequencer.Step, error) {
	switch sc.Kind {
	case config.StepMoveToPose:
		return &sequencer.MoveToPose{
			Target:  chassis.Pose{X: sc.X, Y: sc.Y, Theta: sc.Heading},
			Timeout: sc.Timeout,
			Reverse: sc.Reverse,
		}, nil
	case config.StepTurnToPoint:
		return &sequencer.TurnToPoint{X: sc.X, Y: sc.Y, Timeout: sc.Timeout, Reverse: sc.Reverse}, nil
	case config.StepFollowPath:
		path, err := config.Path(sc.Path)
		if err != nil {
			return nil, err
		}
		return &sequencer.FollowPath{Path: path, Lookahead: sc.Lookahead, Timeout: sc.Timeout}, nil
	case config.StepDrivePulse:
		st := &sequencer.DrivePulse{
			Left:     sc.Left,
			Right:    sc.Right,
			Duration: sc.Duration,
			Engage:   sc.Engage,
			Settle:   sc.Settle,
		}
		if sc.Toggle != "" {
			t := r.toggles[sc.Toggle]
			if t == nil {
				return nil, errors.Errorf("no toggle %q", sc.Toggle)
			}
			// Background toggles run during autonomous too.
			for _, tc := range r.cfg.Toggles {
				if tc.Name == sc.Toggle && tc.Always {
					return nil, errors.Wrapf(ErrActuatorConflict, "toggle %q is also driven by its button during autonomous", sc.Toggle)
				}
			}
			st.Actuator = t
		}
		return st, nil
	case config.StepIntake:
		if r.intake == nil {
			return nil, errors.New("intake step without an intake")
		}
		return &sequencer.Intake{Group: r.intake, Velocity: sc.Velocity}, nil
	case config.StepWait:
		return &sequencer.Wait{Duration: sc.Duration}, nil
	}
	return nil, errors.Errorf("unknown step kind %q", sc.Kind)
}
