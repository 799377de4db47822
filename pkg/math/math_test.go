// pkg/math/math_test.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestNormalizeHeading(t *testing.T) {
	type Test struct {
		h      float32
		result float32
	}
	for _, test := range []Test{
		Test{h: 0, result: 0},
		Test{h: 360, result: 0},
		Test{h: 361, result: 1},
		Test{h: -1, result: 359},
		Test{h: -60, result: 300},
		Test{h: 725, result: 5},
		Test{h: 180, result: 180},
	} {
		if n := NormalizeHeading(test.h); n != test.result {
			t.Errorf("incorrect normalized heading for %f: wanted %f, got %f", test.h, test.result, n)
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	type Test struct {
		a, b   float32
		result float32
	}
	for _, test := range []Test{
		Test{a: 0, b: 0, result: 0},
		Test{a: 350, b: 10, result: 20},
		Test{a: 10, b: 350, result: 20},
		Test{a: 90, b: 270, result: 180},
		Test{a: 45, b: 30, result: 15},
	} {
		if d := HeadingDifference(test.a, test.b); d != test.result {
			t.Errorf("incorrect heading difference for (%f,%f): wanted %f, got %f",
				test.a, test.b, test.result, d)
		}
	}
}

func TestDistance2f(t *testing.T) {
	type Test struct {
		a, b   [2]float32
		result float32
	}
	for _, test := range []Test{
		Test{a: [2]float32{0, 0}, b: [2]float32{3, 4}, result: 5},
		Test{a: [2]float32{100, 100}, b: [2]float32{100, 100}, result: 0},
		Test{a: [2]float32{-1, 0}, b: [2]float32{1, 0}, result: 2},
	} {
		if d := Distance2f(test.a, test.b); d != test.result {
			t.Errorf("incorrect distance for (%v,%v): wanted %f, got %f", test.a, test.b, test.result, d)
		}
	}
}

func TestSpeedUnitsPerSecond(t *testing.T) {
	// 400 km/h at 0.03 km per unit: 400/3.6 m/s over 30 m units.
	v := SpeedUnitsPerSecond(400, 0.03)
	expected := float32(400.0 / 3.6 / 30.0)
	if Abs(v-expected) > 1e-3 {
		t.Errorf("incorrect unit speed: wanted %f, got %f", expected, v)
	}

	if v := SpeedUnitsPerSecond(0, 0.03); v != 0 {
		t.Errorf("zero speed should convert to zero, got %f", v)
	}
}

func TestExtent2D(t *testing.T) {
	e := Extent2D{P0: [2]float32{0, 0}, P1: [2]float32{800, 700}}

	if c := e.Center(); c != [2]float32{400, 350} {
		t.Errorf("incorrect center: %v", c)
	}
	if !e.Inside([2]float32{400, 350}) {
		t.Errorf("center should be inside")
	}
	if e.Inside([2]float32{801, 350}) {
		t.Errorf("point past max corner should be outside")
	}

	exp := e.Expand(100)
	if !exp.Inside([2]float32{-99, -99}) || exp.Inside([2]float32{-101, 0}) {
		t.Errorf("expanded extent bounds incorrect: %+v", exp)
	}
	if exp.Width() != e.Width()+200 || exp.Height() != e.Height()+200 {
		t.Errorf("expanded extent dimensions incorrect: %+v", exp)
	}
}
