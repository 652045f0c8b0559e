package chassis

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/arbiter"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/sirupsen/logrus"
)

func TestMix(t *testing.T) {
	for _, c := range []struct {
		f, t, l, r int
	}{
		{0, 0, 0, 0},
		{127, 0, 127, 127},
		{0, 127, 127, -127},
		{-127, 0, -127, -127},
		{127, 127, 127, 0},
		{100, 50, 127, 42},
	} {
		l, r := Mix(c.f, c.t)
		if l != c.l || r != c.r {
			t.Errorf("Mix(%d, %d) = %d, %d; expected %d, %d", c.f, c.t, l, r, c.l, c.r)
		}
	}
}

func newDrivetrain(hw *hardware.Dummy) *Drivetrain {
	return &Drivetrain{
		Left:  arbiter.NewGroup("left", hw, -7, -6),
		Right: arbiter.NewGroup("right", hw, 18, 19),
	}
}

func TestArcadeDrivesBothSides(t *testing.T) {
	hw := hardware.NewDummy(nil)
	dt := newDrivetrain(hw)
	dt.Arcade(60, 20)
	if hw.Motor(7).Velocity != -80 || hw.Motor(6).Velocity != -80 {
		t.Fatalf("Left side (reversed) should read -80: %+v %+v", hw.Motor(7), hw.Motor(6))
	}
	if hw.Motor(18).Velocity != 40 || hw.Motor(19).Velocity != 40 {
		t.Fatalf("Right side should read 40: %+v %+v", hw.Motor(18), hw.Motor(19))
	}
	dt.Tank(-200, 0)
	if hw.Motor(7).Velocity != 127 {
		t.Fatalf("Tank should clamp, got %+v", hw.Motor(7))
	}
}

func TestParsePath(t *testing.T) {
	data := []byte(`#PATH-POINTS-START Path
-55, 12, 80
-40, 20, 80
-24, 24, 0
endData
200, 0, 200
#PATH.JERRYIO-DATA {"appVersion": "0.4.0"}
`)
	p, err := ParsePath("path.txt", data)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Points) != 3 {
		t.Fatalf("Expected 3 waypoints, got %d", len(p.Points))
	}
	if p.Points[2] != (Waypoint{X: -24, Y: 24, Speed: 0}) {
		t.Fatalf("Unexpected last point %+v", p.Points[2])
	}
	if _, err := ParsePath("empty", []byte("endData\n")); err == nil {
		t.Fatal("Empty path should fail")
	}
	if _, err := ParsePath("bad", []byte("1, x, 3\n")); err == nil {
		t.Fatal("Bad number should fail")
	}
}

func newSim(hw *hardware.Dummy, linear float64) *Sim {
	return NewSim(newDrivetrain(hw), SimConfig{
		LinearSpeed:  linear,
		AngularSpeed: 3600,
		Tick:         time.Millisecond,
	}, nil, logrus.New())
}

func waitDone(t *testing.T, s *Sim) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.WaitUntilDone(ctx); err != nil {
		t.Fatalf("Motion did not finish: %v", err)
	}
}

func TestSimMoveToPose(t *testing.T) {
	s := newSim(hardware.NewDummy(nil), 2000)
	s.SetPose(Pose{X: -55.5, Y: 12, Theta: 270})
	s.MoveToPose(Pose{X: -46, Y: 12, Theta: 270}, 2*time.Second, MoveOptions{})
	waitDone(t, s)
	p := s.Pose()
	if math.Abs(p.X+46) > arrivedInches || math.Abs(p.Y-12) > arrivedInches || p.Theta != 270 {
		t.Fatalf("Did not arrive: %v", p)
	}
}

func TestSimTimeout(t *testing.T) {
	s := newSim(hardware.NewDummy(nil), 1)
	s.MoveToPose(Pose{X: 100, Y: 0}, 20*time.Millisecond, MoveOptions{Forwards: true})
	waitDone(t, s)
	if p := s.Pose(); p.X > 1 {
		t.Fatalf("Motion should have stopped at its timeout, got %v", p)
	}
}

func TestSimTurnToPointBackwards(t *testing.T) {
	s := newSim(hardware.NewDummy(nil), 100)
	s.SetPose(Pose{X: 0, Y: 0, Theta: 0})
	s.TurnToPoint(0, 10, time.Second, MoveOptions{Forwards: false})
	waitDone(t, s)
	if p := s.Pose(); math.Abs(p.Theta-180) > arrivedDegrees {
		t.Fatalf("Backwards turn should face away from the point, got %v", p)
	}
}

func TestSimFollowPath(t *testing.T) {
	s := newSim(hardware.NewDummy(nil), 2000)
	path := &Path{Name: "p", Points: []Waypoint{{0, 10, 50}, {10, 10, 50}, {10, 20, 0}}}
	s.FollowPath(path, 3, 2*time.Second)
	waitDone(t, s)
	if p := s.Pose(); math.Abs(p.X-10) > arrivedInches || math.Abs(p.Y-20) > arrivedInches {
		t.Fatalf("Should end at the last waypoint, got %v", p)
	}
}

func TestSimCancel(t *testing.T) {
	s := newSim(hardware.NewDummy(nil), 1)
	s.MoveToPose(Pose{X: 100}, time.Hour, MoveOptions{})
	s.CancelMotion()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := s.WaitUntilDone(ctx); err != nil {
		t.Fatalf("Cancelled motion should be done: %v", err)
	}
}
