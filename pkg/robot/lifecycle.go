package robot

import (
	"context"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/periodic"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/sequencer"
)

// Initialize seeds the pose and starts the display and the background
// toggles, which run until ctx is done.  Only the first call has an effect.
func (r *Robot) Initialize(ctx context.Context) {
	if r.initialized {
		return
	}
	r.initialized = true

	r.chassis.SetPose(r.cfg.InitialPose)
	r.log.WithField("pose", r.cfg.InitialPose).Info("Initialized")
	go periodic.RunAll(ctx, r.background...)
}

// Autonomous runs the script once from the top.
func (r *Robot) Autonomous(ctx context.Context) (*sequencer.Report, error) {
	return r.sequencer.Run(ctx)
}

// OpControl runs the operator tasks until ctx is done.
func (r *Robot) OpControl(ctx context.Context) {
	r.log.Infof("Operator control: %d tasks", len(r.opcontrol))
	periodic.RunAll(ctx, r.opcontrol...)
}

func (r *Robot) Disabled(ctx context.Context) {
	r.log.Info("Disabled")
}

// Halt stops the motors a mode may have left running: the drive and the
// intake.  Toggle outputs keep their state.
func (r *Robot) Halt() {
	r.chassis.CancelMotion()
	r.chassis.Tank(0, 0)
	if r.intake != nil {
		r.intake.Brake()
	}
}

// Close releases the screen.
func (r *Robot) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
