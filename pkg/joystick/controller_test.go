package joystick

import (
	"math"
	"testing"
)

func TestControllerButtons(t *testing.T) {
	c := NewController()
	if held, ok := c.Digital("L1"); !ok || held {
		t.Fatalf("Fresh controller should report L1 released, got held=%v ok=%v", held, ok)
	}
	c.Apply(&Event{Type: EventTypeButton, Number: ButtonL1, Value: 1})
	if held, _ := c.Digital("L1"); !held {
		t.Fatal("L1 should be held after a press event")
	}
	c.Apply(&Event{Type: EventTypeButton, Number: ButtonL1, Value: 0})
	if held, _ := c.Digital("L1"); held {
		t.Fatal("L1 should be released after a release event")
	}
	if _, ok := c.Digital("Turbo"); ok {
		t.Fatal("Unknown input names should not be ok")
	}
}

func TestControllerDPad(t *testing.T) {
	c := NewController()
	c.Apply(&Event{Type: EventTypeAxis, Number: AxisDPadY, Value: -32767})
	if up, _ := c.Digital("Up"); !up {
		t.Fatal("Up should be held")
	}
	if down, _ := c.Digital("Down"); down {
		t.Fatal("Down should not be held while up is")
	}
}

func TestControllerAnalogScaling(t *testing.T) {
	c := NewController()
	c.Apply(&Event{Type: EventTypeAxis, Number: AxisLStickY, Value: math.MinInt16 + 1})
	c.Apply(&Event{Type: EventTypeAxis, Number: AxisRStickX, Value: math.MaxInt16})

	if v, _ := c.Analog("LeftY"); v != 127 {
		t.Fatalf("Full stick up should read +127, got %d", v)
	}
	if v, _ := c.Analog("RightX"); v != 127 {
		t.Fatalf("Full stick right should read +127, got %d", v)
	}
	c.Apply(&Event{Type: EventTypeAxis, Number: AxisLStickY, Value: math.MinInt16})
	if v, _ := c.Analog("LeftY"); v != 127 {
		t.Fatalf("Overrange stick should clamp at +127, got %d", v)
	}
	if v, _ := c.Analog("LeftX"); v != 0 {
		t.Fatalf("Centred stick should read 0, got %d", v)
	}
}
