package periodic

import (
	"context"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// Task runs Step once per Period until its context is done.  The context is
// the task's stop signal and is only checked at the end-of-cycle delay, so a
// cycle is never interrupted half way.
type Task struct {
	Name   string
	Period time.Duration
	Step   func(now time.Time)

	Clock clock.Clock
	Log   logrus.FieldLogger
}

func (t *Task) Run(ctx context.Context) {
	clk := t.Clock
	if clk == nil {
		clk = clock.WallClock
	}
	log := t.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.Debugf("Task %s started, period %v", t.Name, t.Period)
	defer log.Debugf("Task %s stopped", t.Name)

	for {
		t.Step(clk.Now())
		select {
		case <-ctx.Done():
			return
		case <-clk.After(t.Period):
		}
	}
}

// RunAll runs the tasks concurrently and blocks until all of them have
// stopped.  No ordering between the tasks is implied.
func RunAll(ctx context.Context, tasks ...*Task) {
	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(t *Task) {
			defer wg.Done()
			t.Run(ctx)
		}(t)
	}
	wg.Wait()
}
