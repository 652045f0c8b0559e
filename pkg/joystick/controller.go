package joystick

import (
	"context"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// Buttons maps controller input names onto pad button numbers.
var Buttons = map[string]uint8{
	"A":       ButtonA,
	"B":       ButtonB,
	"Y":       ButtonY,
	"X":       ButtonX,
	"L1":      ButtonL1,
	"R1":      ButtonR1,
	"L2":      ButtonL2,
	"R2":      ButtonR2,
	"Share":   ButtonShare,
	"Options": ButtonOptions,
}

// DPad maps controller input names onto a D-pad axis and the sign of the
// value that counts as "held".
var DPad = map[string]struct {
	Axis uint8
	Sign int16
}{
	"Up":    {AxisDPadY, -1},
	"Down":  {AxisDPadY, 1},
	"Left":  {AxisDPadX, -1},
	"Right": {AxisDPadX, 1},
}

// Axes maps analog axis names onto pad axes.  Inverted axes report "up" as
// positive to match the V5 controller convention.
var Axes = map[string]struct {
	Axis   uint8
	Invert bool
}{
	"LeftX":  {AxisLStickX, false},
	"LeftY":  {AxisLStickY, true},
	"RightX": {AxisRStickX, false},
	"RightY": {AxisRStickY, true},
}

// AnalogRange is the magnitude of a fully deflected stick after scaling.
const AnalogRange = 127

// Controller tracks the latest value of every button and axis.  It holds no
// history; a disconnected pad simply keeps reporting its last values.
type Controller struct {
	lock    sync.Mutex
	buttons [16]bool
	axes    [8]int16
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) Apply(e *Event) {
	c.lock.Lock()
	defer c.lock.Unlock()
	switch e.Type {
	case EventTypeButton:
		if int(e.Number) < len(c.buttons) {
			c.buttons[e.Number] = e.Value != 0
		}
	case EventTypeAxis:
		if int(e.Number) < len(c.axes) {
			c.axes[e.Number] = e.Value
		}
	}
}

func (c *Controller) Button(n uint8) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	if int(n) >= len(c.buttons) {
		return false
	}
	return c.buttons[n]
}

func (c *Controller) Axis(n uint8) int16 {
	c.lock.Lock()
	defer c.lock.Unlock()
	if int(n) >= len(c.axes) {
		return 0
	}
	return c.axes[n]
}

// Digital reads a named button or D-pad direction.
func (c *Controller) Digital(name string) (held, ok bool) {
	if n, ok := Buttons[name]; ok {
		return c.Button(n), true
	}
	if d, ok := DPad[name]; ok {
		v := c.Axis(d.Axis)
		return v != 0 && (v > 0) == (d.Sign > 0), true
	}
	return false, false
}

// Analog reads a named stick axis scaled into [-AnalogRange, AnalogRange].
func (c *Controller) Analog(name string) (value int, ok bool) {
	a, ok := Axes[name]
	if !ok {
		return 0, false
	}
	v := float64(c.Axis(a.Axis)) / math.MaxInt16
	if a.Invert {
		v = -v
	}
	scaled := int(math.Round(v * AnalogRange))
	if scaled > AnalogRange {
		scaled = AnalogRange
	} else if scaled < -AnalogRange {
		scaled = -AnalogRange
	}
	return scaled, true
}

// Loop applies events from the joystick until it fails or ctx is done.
func (c *Controller) Loop(ctx context.Context, j *Joystick, log logrus.FieldLogger) error {
	defer j.Close()
	for ctx.Err() == nil {
		event, err := j.ReadEvent()
		if err != nil {
			log.WithError(err).Error("Failed to read from joystick")
			return err
		}
		log.Debugf("Joy: %s", event)
		c.Apply(event)
	}
	return ctx.Err()
}

// HasDigital reports whether name is a button or D-pad direction.
func HasDigital(name string) bool {
	if _, ok := Buttons[name]; ok {
		return true
	}
	_, ok := DPad[name]
	return ok
}
