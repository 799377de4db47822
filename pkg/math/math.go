// pkg/math/math.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Radians converts an angle expressed in degrees to radians.
func Radians(d float32) float32 {
	return d / 180 * gomath.Pi
}

// Degrees converts an angle expressed in radians to degrees.
func Degrees(r float32) float32 {
	return r * 180 / gomath.Pi
}

// A number of utility functions for evaluating transcendentals and the like follow;
// since we mostly use float32, it's handy to be able to call these directly rather
// than with all of the casts that are required when using the math package.

func Sin(a float32) float32 {
	return float32(gomath.Sin(float64(a)))
}

func Cos(a float32) float32 {
	return float32(gomath.Cos(float64(a)))
}

func Sqrt(a float32) float32 {
	return float32(gomath.Sqrt(float64(a)))
}

func Mod(a, b float32) float32 {
	return float32(gomath.Mod(float64(a), float64(b)))
}

func Hypot(x, y float32) float32 {
	return float32(gomath.Hypot(float64(x), float64(y)))
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

func Lerp(x, a, b float32) float32 {
	return (1-x)*a + x*b
}

///////////////////////////////////////////////////////////////////////////
// headings

// NormalizeHeading reduces a heading to [0,360).
func NormalizeHeading(h float32) float32 {
	if h < 0 {
		return 360 - NormalizeHeading(-h)
	}
	return Mod(h, 360)
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float32, b float32) float32 {
	var d float32
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// OppositeHeading returns the reciprocal of the given heading.
func OppositeHeading(h float32) float32 {
	return NormalizeHeading(h + 180)
}

///////////////////////////////////////////////////////////////////////////
// speed

// SpeedUnitsPerSecond converts a speed in km/h to field units per second,
// given the field scale in kilometers per unit.
func SpeedUnitsPerSecond(kmh, kmPerUnit float32) float32 {
	return (kmh / 3.6) / (kmPerUnit * 1000)
}
