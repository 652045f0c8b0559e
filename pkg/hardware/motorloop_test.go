package hardware

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
)

type fakeBoard struct {
	writes []string
	fail   bool
}

func (b *fakeBoard) SetVelocity(port int, velocity int8) error {
	b.writes = append(b.writes, fmt.Sprintf("v%d:%d", port, velocity))
	if b.fail {
		return errors.New("bus error")
	}
	return nil
}

func (b *fakeBoard) Brake(port int) error {
	b.writes = append(b.writes, fmt.Sprintf("b%d", port))
	return nil
}

func (b *fakeBoard) Close() error { return nil }

func TestMotorLoopWritesOnlyChanges(t *testing.T) {
	b := &fakeBoard{}
	l := newMotorLoop(b, logrus.New())

	l.set(5, MotorState{Velocity: 127})
	l.set(1, MotorState{Velocity: 127})
	l.flush()
	if !reflect.DeepEqual(b.writes, []string{"v1:127", "v5:127"}) {
		t.Fatalf("Unexpected writes %v", b.writes)
	}

	// Same values again: nothing to write.
	l.set(1, MotorState{Velocity: 127})
	l.flush()
	if len(b.writes) != 2 {
		t.Fatalf("Unchanged values should not be rewritten, got %v", b.writes)
	}

	l.set(1, MotorState{Braked: true})
	l.flush()
	if b.writes[2] != "b1" {
		t.Fatalf("Expected brake of port 1, got %v", b.writes)
	}
}

func TestMotorLoopNoRetryOnFailure(t *testing.T) {
	b := &fakeBoard{fail: true}
	l := newMotorLoop(b, logrus.New())
	l.set(2, MotorState{Velocity: -60})
	l.flush()
	l.flush()
	if len(b.writes) != 1 {
		t.Fatalf("Failed writes must not be retried, got %v", b.writes)
	}
	if l.state(2).Velocity != -60 {
		t.Fatal("Desired state should be kept after a failed write")
	}
}
