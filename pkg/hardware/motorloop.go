package hardware

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/motorboard"
	"github.com/sirupsen/logrus"
)

// motorLoop owns the I2C bus.  The tasks only store desired values; the loop
// pushes changed ports to the board on every tick.
type motorLoop struct {
	lock    sync.Mutex
	desired map[Motor]MotorState
	dirty   map[Motor]bool

	board motorboard.Interface
	log   logrus.FieldLogger
}

func newMotorLoop(board motorboard.Interface, log logrus.FieldLogger) *motorLoop {
	return &motorLoop{
		desired: map[Motor]MotorState{},
		dirty:   map[Motor]bool{},
		board:   board,
		log:     log,
	}
}

func (l *motorLoop) set(port Motor, s MotorState) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if cur, ok := l.desired[port]; ok && cur == s {
		return
	}
	l.desired[port] = s
	l.dirty[port] = true
}

func (l *motorLoop) state(port Motor) MotorState {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.desired[port]
}

// flush writes every changed port once.  A failed write is logged and the
// port is left clean; the next change to it will be written as normal.
func (l *motorLoop) flush() {
	l.lock.Lock()
	var ports []Motor
	updates := map[Motor]MotorState{}
	for p := range l.dirty {
		ports = append(ports, p)
		updates[p] = l.desired[p]
	}
	l.dirty = map[Motor]bool{}
	l.lock.Unlock()

	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })
	for _, p := range ports {
		s := updates[p]
		var err error
		if s.Braked {
			err = l.board.Brake(int(p))
		} else {
			err = l.board.SetVelocity(int(p), int8(s.Velocity))
		}
		if err != nil {
			l.log.WithError(err).Errorf("Failed to update motor %d", p)
		}
	}
}

func (l *motorLoop) loop(ctx context.Context, period time.Duration) {
	l.log.Info("Motor loop started")
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			l.log.Info("Motor loop stopping, braking all motors")
			l.lock.Lock()
			for p := range l.desired {
				l.desired[p] = MotorState{Braked: true}
				l.dirty[p] = true
			}
			l.lock.Unlock()
			l.flush()
			return
		case <-ticker.C:
			l.flush()
		}
	}
}
