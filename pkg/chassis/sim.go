package chassis

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/angle"
	"github.com/juju/clock"
	"github.com/quartercastle/vector"
	"github.com/sirupsen/logrus"
)

type SimConfig struct {
	LinearSpeed  float64       `yaml:"linearSpeed"`  // inches per second
	AngularSpeed float64       `yaml:"angularSpeed"` // degrees per second
	Tick         time.Duration `yaml:"tick"`
}

const (
	arrivedInches  = 0.5
	arrivedDegrees = 1.0
)

// Sim stands in for the motion library on the bench.  Drive commands go to
// the real drivetrain motors; motion requests move the tracked pose towards
// the target at fixed speeds, with no control loop behind them.
type Sim struct {
	*Drivetrain

	cfg   SimConfig
	clock clock.Clock
	log   logrus.FieldLogger

	lock   sync.Mutex
	pose   Pose
	motion *motion
}

type motion struct {
	name   string
	cancel chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (m *motion) stop() {
	m.once.Do(func() { close(m.cancel) })
	<-m.done
}

var _ Interface = (*Sim)(nil)

func NewSim(dt *Drivetrain, cfg SimConfig, clk clock.Clock, log logrus.FieldLogger) *Sim {
	if cfg.LinearSpeed <= 0 {
		cfg.LinearSpeed = 40
	}
	if cfg.AngularSpeed <= 0 {
		cfg.AngularSpeed = 180
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 10 * time.Millisecond
	}
	if clk == nil {
		clk = clock.WallClock
	}
	return &Sim{
		Drivetrain: dt,
		cfg:        cfg,
		clock:      clk,
		log:        log,
	}
}

func (s *Sim) SetPose(p Pose) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.pose = p
}

func (s *Sim) Pose() Pose {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.pose
}

func (s *Sim) MoveToPose(target Pose, timeout time.Duration, opts MoveOptions) {
	s.start("moveToPose", timeout, func(dt float64) bool {
		return s.moveTowards(target.X, target.Y, dt, &target.Theta)
	})
}

func (s *Sim) TurnToPoint(x, y float64, timeout time.Duration, opts MoveOptions) {
	p := s.Pose()
	heading := angle.Towards(p.X, p.Y, x, y)
	if !opts.Forwards {
		heading = angle.Heading(heading + 180)
	}
	s.start("turnToPoint", timeout, func(dt float64) bool {
		return s.rotateTowards(heading, dt)
	})
}

// FollowPath chases the first waypoint at least lookahead away, falling back
// to the last one near the end.
func (s *Sim) FollowPath(path *Path, lookahead float64, timeout time.Duration) {
	if len(path.Points) == 0 {
		return
	}
	next := 0
	s.start("followPath "+path.Name, timeout, func(dt float64) bool {
		p := s.Pose()
		target := path.Points[len(path.Points)-1]
		for i := next; i < len(path.Points); i++ {
			wp := path.Points[i]
			if distance(p.X, p.Y, wp.X, wp.Y) >= lookahead {
				target = wp
				next = i
				break
			}
		}
		return s.moveTowards(target.X, target.Y, dt, nil) && target == path.Points[len(path.Points)-1]
	})
}

func (s *Sim) WaitUntilDone(ctx context.Context) error {
	s.lock.Lock()
	m := s.motion
	s.lock.Unlock()
	if m == nil {
		return nil
	}
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sim) CancelMotion() {
	s.lock.Lock()
	m := s.motion
	s.lock.Unlock()
	if m != nil {
		m.stop()
	}
}

// start replaces any motion in progress; only one runs at a time.
func (s *Sim) start(name string, timeout time.Duration, advance func(dt float64) bool) {
	s.CancelMotion()
	m := &motion{
		name:   name,
		cancel: make(chan struct{}),
		done:   make(chan struct{}),
	}
	s.lock.Lock()
	s.motion = m
	s.lock.Unlock()

	deadline := s.clock.Now().Add(timeout)
	go func() {
		defer close(m.done)
		for {
			select {
			case <-m.cancel:
				s.log.Debugf("Sim: %s cancelled at %v", name, s.Pose())
				return
			case <-s.clock.After(s.cfg.Tick):
			}
			if advance(s.cfg.Tick.Seconds()) {
				s.log.Debugf("Sim: %s arrived at %v", name, s.Pose())
				return
			}
			if !s.clock.Now().Before(deadline) {
				s.log.Debugf("Sim: %s ran out of time at %v", name, s.Pose())
				return
			}
		}
	}()
}

// moveTowards steps the position towards (x, y) and, if heading is set, the
// heading towards it.  It reports whether both have arrived.
func (s *Sim) moveTowards(x, y, dt float64, heading *float64) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	pos := vector.Vector{s.pose.X, s.pose.Y}
	delta := vector.Vector{x, y}.Add(pos.Scale(-1))
	dist := delta.Magnitude()
	step := s.cfg.LinearSpeed * dt
	if dist <= step {
		s.pose.X, s.pose.Y = x, y
		dist = 0
	} else {
		moved := pos.Add(delta.Scale(step / dist))
		s.pose.X, s.pose.Y = moved[0], moved[1]
		dist -= step
		if heading == nil {
			s.pose.Theta = angle.Towards(pos[0], pos[1], x, y)
		}
	}

	turned := true
	if heading != nil {
		turned = s.rotateLocked(*heading, dt)
	}
	return dist < arrivedInches && turned
}

func (s *Sim) rotateTowards(heading, dt float64) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.rotateLocked(heading, dt)
}

func (s *Sim) rotateLocked(heading, dt float64) bool {
	diff := angle.Shortest(s.pose.Theta, heading)
	step := s.cfg.AngularSpeed * dt
	if math.Abs(diff) <= step {
		s.pose.Theta = angle.Heading(heading)
		return true
	}
	s.pose.Theta = angle.Heading(s.pose.Theta + math.Copysign(step, diff))
	return math.Abs(diff)-step < arrivedDegrees
}

func distance(x1, y1, x2, y2 float64) float64 {
	return vector.Vector{x2 - x1, y2 - y1}.Magnitude()
}
