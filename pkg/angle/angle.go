package angle

import "math"

// PlusMinus180 is an angle in degrees, stored as a value in range (-180, 180].
// All operations clamp their output into range.
type PlusMinus180 struct {
	float64
}

func (a PlusMinus180) Add(b PlusMinus180) PlusMinus180 {
	return FromFloat(a.float64 + b.float64)
}

func (a PlusMinus180) Sub(b PlusMinus180) PlusMinus180 {
	return FromFloat(a.float64 - b.float64)
}

// Float returns the angle in degrees, range (-180, 180].
func (a PlusMinus180) Float() float64 {
	return a.float64
}

// FromFloat converts a float of any magnitude to a PlusMinus180 by calculating
// f mod 360 and shifting into range.
func FromFloat(f float64) PlusMinus180 {
	d := math.Mod(f, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return PlusMinus180{d}
}

// Heading normalises a compass heading of any magnitude into [0, 360).
func Heading(f float64) float64 {
	d := math.Mod(f, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// Towards returns the compass heading (0 = +Y, clockwise positive) of the
// point (tx, ty) as seen from (x, y).
func Towards(x, y, tx, ty float64) float64 {
	return Heading(math.Atan2(tx-x, ty-y) * 180 / math.Pi)
}

// Shortest returns the signed rotation in degrees that takes heading from to
// heading to by the shorter way round.
func Shortest(from, to float64) float64 {
	return FromFloat(to - from).Float()
}
