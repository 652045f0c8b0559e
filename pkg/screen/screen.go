package screen

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/angle"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/chassis"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/input"
	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/periodic"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// Lines on the status screen.
const Lines = 8

// Display holds the text of the status screen.  Lines are written by the
// status task and by toggles with a text output; each line has one owner.
type Display struct {
	log logrus.FieldLogger

	lock  sync.Mutex
	lines [Lines]string
}

func New(log logrus.FieldLogger) *Display {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Display{log: log}
}

func (d *Display) SetText(line int, text string) {
	if line < 0 || line >= Lines {
		d.log.Warnf("Screen: no line %d for %q", line, text)
		return
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.lines[line] = text
}

func (d *Display) Print(line int, format string, args ...interface{}) {
	d.SetText(line, fmt.Sprintf(format, args...))
}

func (d *Display) ClearLine(line int) {
	d.SetText(line, "")
}

func (d *Display) Lines() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string(nil), d.lines[:]...)
}

// Sink shows a frame somewhere: the LCD framebuffer or the log.
type Sink interface {
	Show(lines []string) error
}

// Status fills in the lines the status task owns.
type Status func(d *Display)

type PoseSource interface {
	Pose() chassis.Pose
}

// PoseStatus prints the tracked pose on lines 0-2 and the compass strip on 3.
func PoseStatus(src PoseSource) Status {
	return func(d *Display) {
		p := src.Pose()
		d.Print(0, "X: %f", p.X)
		d.Print(1, "Y: %f", p.Y)
		d.Print(2, "Theta: %f", p.Theta)
		d.SetText(3, Compass(p.Theta))
	}
}

// ButtonStatus prints the brain screen button bitmap on line 0.
func ButtonStatus(hw input.Reader) Status {
	return func(d *Display) {
		d.Print(0, "Buttons Bitmap: %d", ButtonsBitmap(hw))
	}
}

const compassWidth = 17

// Compass draws a strip of bars with an H every 45/4 degrees of heading.
// Headings past the end of the strip show no marker.
func Compass(theta float64) string {
	strip := []byte(strings.Repeat("|", compassWidth))
	rot := int(angle.Heading(theta)) * 4 / 45
	if rot < len(strip) {
		strip[rot] = 'H'
	}
	return string(strip)
}

// ButtonsBitmap packs the three screen buttons as left=4, center=2, right=1.
func ButtonsBitmap(hw input.Reader) int {
	bits := 0
	if hw.ReadDigital(hardware.ScreenLeft) {
		bits |= 4
	}
	if hw.ReadDigital(hardware.ScreenCenter) {
		bits |= 2
	}
	if hw.ReadDigital(hardware.ScreenRight) {
		bits |= 1
	}
	return bits
}

// Task refreshes the status lines every period and sends changed frames to
// the sink.  status may be nil when only toggles write to the screen.
func (d *Display) Task(status Status, sink Sink, period time.Duration, clk clock.Clock) *periodic.Task {
	var last []string
	failed := false
	return &periodic.Task{
		Name:   "screen",
		Period: period,
		Clock:  clk,
		Log:    d.log,
		Step: func(time.Time) {
			if status != nil {
				status(d)
			}
			frame := d.Lines()
			if equal(frame, last) {
				return
			}
			last = frame
			if err := sink.Show(frame); err != nil {
				if !failed {
					d.log.WithError(err).Error("Screen failure")
				}
				failed = true
				return
			}
			failed = false
		},
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// LogSink shows frames in the log, for benches without a screen.
type LogSink struct {
	Log logrus.FieldLogger
}

func (s LogSink) Show(lines []string) error {
	s.Log.Debugf("Screen:\n%s", strings.Join(lines, "\n"))
	return nil
}
