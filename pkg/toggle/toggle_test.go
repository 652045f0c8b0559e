package toggle

import (
	"testing"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
)

const cycle = 25 * time.Millisecond

type recorder struct {
	writes []bool
}

func (r *recorder) Set(engaged bool) {
	r.writes = append(r.writes, engaged)
}

// feed drives the toggle with one held value per cycle and returns the
// number of flips.
func feed(tg *Toggle, start time.Time, held ...bool) int {
	flips := 0
	for i, h := range held {
		if tg.Update(h, start.Add(time.Duration(i)*cycle)) {
			flips++
		}
	}
	return flips
}

func repeat(v bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestEdgeLatchedLongHoldFlipsOnce(t *testing.T) {
	r := &recorder{}
	tg := New("Stake Lock", EdgeLatched, 0, r, nil)

	held := append([]bool{false}, repeat(true, 400)...)
	if flips := feed(tg, time.Time{}, held...); flips != 1 {
		t.Fatalf("A continuous hold should flip once, got %d", flips)
	}
	if !tg.Engaged() {
		t.Fatal("Toggle should be engaged after one flip")
	}

	// Release then press again: second flip.
	seq := append(repeat(false, 2), repeat(true, 3)...)
	if flips := feed(tg, time.Time{}.Add(time.Hour), seq...); flips != 1 {
		t.Fatalf("Release then hold should flip once more, got %d", flips)
	}
	if tg.Engaged() {
		t.Fatal("Toggle should be disengaged after the second flip")
	}
}

func TestEdgeLatchedSinglePressWritesEngagedOnce(t *testing.T) {
	hw := hardware.NewDummy(nil)
	tg := New("Stake Lock", EdgeLatched, 0, Pin{HW: hw, Pin: "E"}, nil)

	feed(tg, time.Time{}, false, true, true, false, false)

	if hw.OutputWrites("E") != 1 {
		t.Fatalf("Expected exactly one write, got %d", hw.OutputWrites("E"))
	}
	if !hw.Output("E") {
		t.Fatal("Pin should have been written engaged")
	}
}

func TestEdgeLatchedHoldoffAfterRelease(t *testing.T) {
	r := &recorder{}
	tg := New("Stake Lock", EdgeLatched, 250*time.Millisecond, r, nil)

	// Released at 25ms: a bounce at 50ms and anything before 275ms is
	// swallowed, a press at 300ms flips.
	held := []bool{true, false, true, false}
	held = append(held, repeat(false, 8)...)
	held = append(held, true)
	if flips := feed(tg, time.Time{}, held...); flips != 2 {
		t.Fatalf("Expected 2 flips, got %d (%v)", flips, r.writes)
	}
}

func TestEdgeLatchedPressHeldThroughHoldoffFlips(t *testing.T) {
	r := &recorder{}
	tg := New("Stake Lock", EdgeLatched, 250*time.Millisecond, r, nil)

	// Re-pressed during the hold-off and still held when it ends at 275ms.
	held := append([]bool{true, false}, repeat(true, 12)...)
	if flips := feed(tg, time.Time{}, held...); flips != 2 {
		t.Fatalf("Expected 2 flips, got %d (%v)", flips, r.writes)
	}
	if tg.Engaged() {
		t.Fatal("Toggle should be back to disengaged")
	}
}

func TestTimeLatchedFlipsAgainAfterHoldoff(t *testing.T) {
	r := &recorder{}
	tg := New("Stake Lock", TimeLatched, 250*time.Millisecond, r, nil)

	// 250ms hold-off at a 25ms cycle: a 26-cycle hold spans 625ms, so it
	// flips at 0, 250 and 500ms.
	if flips := feed(tg, time.Time{}, repeat(true, 26)...); flips != 3 {
		t.Fatalf("Expected 3 flips for a 625ms hold, got %d (%v)", flips, r.writes)
	}
	want := []bool{true, false, true}
	for i, w := range want {
		if r.writes[i] != w {
			t.Fatalf("Write %d = %v, expected %v", i, r.writes[i], w)
		}
	}
}

func TestTimeLatchedIgnoresRepressDuringHoldoff(t *testing.T) {
	r := &recorder{}
	tg := New("Stake Lock", TimeLatched, 250*time.Millisecond, r, nil)
	flips := feed(tg, time.Time{}, true, false, true, false, true)
	if flips != 1 {
		t.Fatalf("Presses inside the hold-off must not flip, got %d", flips)
	}
}

type fakeGroup struct {
	velocity int
	braked   bool
}

func (g *fakeGroup) Move(v int) { g.velocity, g.braked = v, false }
func (g *fakeGroup) Brake()     { g.velocity, g.braked = 0, true }

type fakeScreen struct {
	lines map[int]string
}

func (s *fakeScreen) SetText(line int, text string) { s.lines[line] = text }
func (s *fakeScreen) ClearLine(line int)           { delete(s.lines, line) }

func TestOutputs(t *testing.T) {
	g := &fakeGroup{}
	m := Motor{Group: g, Velocity: func() int { return -127 }}
	m.Set(true)
	if g.velocity != -127 || g.braked {
		t.Fatalf("Engaged motor should run at -127, got %+v", g)
	}
	m.Set(false)
	if !g.braked {
		t.Fatal("Disengaged motor should brake")
	}

	s := &fakeScreen{lines: map[int]string{}}
	l := TextLine{Screen: s, Line: 4, Text: "Right button was pressed!"}
	l.Set(true)
	if s.lines[4] != "Right button was pressed!" {
		t.Fatalf("Unexpected screen %v", s.lines)
	}
	l.Set(false)
	if _, ok := s.lines[4]; ok {
		t.Fatal("Line should be cleared")
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy("time"); err != nil || p != TimeLatched {
		t.Fatalf("Got %v %v", p, err)
	}
	if p, err := ParsePolicy(""); err != nil || p != EdgeLatched {
		t.Fatalf("Empty policy should default to edge, got %v %v", p, err)
	}
	if _, err := ParsePolicy("level"); err == nil {
		t.Fatal("Unknown policy should fail")
	}
}
