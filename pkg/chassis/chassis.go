package chassis

import (
	"context"
	"fmt"
	"time"
)

// Pose is the robot's field position in inches and its compass heading in
// degrees (0 = +Y, clockwise positive).
type Pose struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Theta float64 `yaml:"theta"`
}

func (p Pose) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.1f)", p.X, p.Y, p.Theta)
}

type MoveOptions struct {
	Forwards bool
}

// Interface is the narrow surface of the motion and odometry library.  The
// motion requests return immediately; WaitUntilDone joins the current one.
type Interface interface {
	SetPose(p Pose)
	Pose() Pose

	MoveToPose(target Pose, timeout time.Duration, opts MoveOptions)
	TurnToPoint(x, y float64, timeout time.Duration, opts MoveOptions)
	FollowPath(path *Path, lookahead float64, timeout time.Duration)

	// WaitUntilDone blocks until no motion is in progress or ctx is done.
	WaitUntilDone(ctx context.Context) error
	// CancelMotion stops the current motion, if any, and returns once it has
	// stopped driving.
	CancelMotion()

	Arcade(forward, turn int)
	Tank(left, right int)
}
