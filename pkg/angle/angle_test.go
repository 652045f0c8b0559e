package angle

import (
	"math"
	"testing"
)

func TestFromFloat(t *testing.T) {
	expectPlusMinus(t, 0, 0)
	expectPlusMinus(t, 180, 180)
	expectPlusMinus(t, -180, 180)
	expectPlusMinus(t, 181, -179)
	expectPlusMinus(t, 270, -90)
	expectPlusMinus(t, 720+45, 45)
	expectPlusMinus(t, -450, -90)
}

func expectPlusMinus(t *testing.T, in, expected float64) {
	if a := FromFloat(in).Float(); a != expected {
		t.Errorf("FromFloat(%f) = %f, expected %f", in, a, expected)
	}
}

func TestHeading(t *testing.T) {
	for _, c := range []struct{ in, out float64 }{
		{0, 0},
		{270, 270},
		{360, 0},
		{-90, 270},
		{-360, 0},
		{725, 5},
	} {
		if h := Heading(c.in); h != c.out {
			t.Errorf("Heading(%v) = %v, expected %v", c.in, h, c.out)
		}
	}
}

func TestTowards(t *testing.T) {
	if h := Towards(0, 0, 0, 10); math.Abs(h) > 1e-9 {
		t.Errorf("Straight up should be 0, got %v", h)
	}
	if h := Towards(0, 0, 10, 0); math.Abs(h-90) > 1e-9 {
		t.Errorf("Right should be 90, got %v", h)
	}
	if h := Towards(-24, 24, -46, 12); h < 180 || h > 270 {
		t.Errorf("Down-left should be in the third quadrant, got %v", h)
	}
}

func TestShortest(t *testing.T) {
	if d := Shortest(350, 10); d != 20 {
		t.Errorf("Expected +20 across north, got %v", d)
	}
	if d := Shortest(10, 350); d != -20 {
		t.Errorf("Expected -20 across north, got %v", d)
	}
	if d := Shortest(270, 90); d != 180 {
		t.Errorf("Expected 180 for opposite headings, got %v", d)
	}
}
