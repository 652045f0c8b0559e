package screen

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/chassis"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/fogleman/gg"
	"github.com/juju/clock/testclock"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestCompass(t *testing.T) {
	for _, c := range []struct {
		theta float64
		want  string
	}{
		{0, "H||||||||||||||||"},
		{90, "||||||||H||||||||"},
		{180, "||||||||||||||||H"},
		{-350, "H||||||||||||||||"},
		{270, "|||||||||||||||||"},
	} {
		if got := Compass(c.theta); got != c.want {
			t.Errorf("Compass(%v) = %q, expected %q", c.theta, got, c.want)
		}
	}
}

func TestButtonsBitmap(t *testing.T) {
	hw := hardware.NewDummy(nil)
	hw.SetInput(hardware.ScreenLeft, true)
	hw.SetInput(hardware.ScreenRight, true)
	if b := ButtonsBitmap(hw); b != 5 {
		t.Fatalf("Expected 5, got %d", b)
	}
}

func TestLines(t *testing.T) {
	log, hook := test.NewNullLogger()
	d := New(log)
	d.SetText(4, "Right button was pressed!")
	d.SetText(Lines, "off the end")
	if l := d.Lines(); l[4] != "Right button was pressed!" {
		t.Fatalf("Unexpected lines %q", l)
	}
	if len(hook.AllEntries()) != 1 {
		t.Fatal("Writing past the last line should warn")
	}
	d.ClearLine(4)
	if d.Lines()[4] != "" {
		t.Fatal("Line should be cleared")
	}
}

type pose chassis.Pose

func (p pose) Pose() chassis.Pose { return chassis.Pose(p) }

type frames struct {
	shown [][]string
}

func (f *frames) Show(lines []string) error {
	f.shown = append(f.shown, lines)
	return nil
}

func TestTaskShowsChangedFrames(t *testing.T) {
	clk := testclock.NewClock(time.Time{})
	log, _ := test.NewNullLogger()
	d := New(log)
	sink := &frames{}
	task := d.Task(PoseStatus(pose{X: -55.5, Y: 12, Theta: 270}), sink, 25*time.Millisecond, clk)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		task.Run(ctx)
		close(done)
	}()
	if err := clk.WaitAdvance(25*time.Millisecond, time.Second, 1); err != nil {
		t.Fatal(err)
	}
	if err := clk.WaitAdvance(0, time.Second, 1); err != nil {
		t.Fatal(err)
	}
	cancel()
	<-done

	if len(sink.shown) != 1 {
		t.Fatalf("An unchanged frame should be shown once, got %d", len(sink.shown))
	}
	f := sink.shown[0]
	if f[0] != "X: -55.500000" || f[1] != "Y: 12.000000" || f[2] != "Theta: 270.000000" {
		t.Errorf("Unexpected pose lines %q", f[:3])
	}
}

func TestFramebufferWritesWholeScreen(t *testing.T) {
	dir, err := ioutil.TempDir("", "fb")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "fb1")
	if err := ioutil.WriteFile(path, nil, 0666); err != nil {
		t.Fatal(err)
	}

	fb, err := OpenFramebuffer(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := fb.Show([]string{"X: 1"}); err != nil {
		t.Fatal(err)
	}
	if err := fb.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != size*size*2 {
		t.Fatalf("Expected %d bytes, got %d", size*size*2, len(data))
	}
	for _, b := range data {
		if b != 0 {
			t.Fatal("Close should blank the screen")
		}
	}
}

func TestRenderRotatesPixels(t *testing.T) {
	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.SetPixel(0, 0)
	buf := render(dc)
	// (0, 0) lands at the end of the first panel row.
	if buf[(size-1)*2] != 0xff || buf[(size-1)*2+1] != 0xff {
		t.Fatalf("Unexpected bytes %x %x", buf[(size-1)*2], buf[(size-1)*2+1])
	}
}
