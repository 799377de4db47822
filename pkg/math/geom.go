// pkg/math/geom.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// [2]float32

func Add2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] + b[0], a[1] + b[1]}
}

func Sub2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}

func Scale2f(a [2]float32, s float32) [2]float32 {
	return [2]float32{s * a[0], s * a[1]}
}

func Length2f(v [2]float32) float32 {
	return Hypot(v[0], v[1])
}

func Distance2f(a [2]float32, b [2]float32) float32 {
	return Length2f(Sub2f(a, b))
}

///////////////////////////////////////////////////////////////////////////
// Extent2D

// Extent2D represents a 2D bounding box with the two vertices at its
// opposite minimum and maximum corners.
type Extent2D struct {
	P0, P1 [2]float32
}

func (e Extent2D) Width() float32 {
	return e.P1[0] - e.P0[0]
}

func (e Extent2D) Height() float32 {
	return e.P1[1] - e.P0[1]
}

func (e Extent2D) Center() [2]float32 {
	return [2]float32{(e.P0[0] + e.P1[0]) / 2, (e.P0[1] + e.P1[1]) / 2}
}

// Expand expands the extent by the given distance in all directions.
func (e Extent2D) Expand(d float32) Extent2D {
	return Extent2D{
		P0: [2]float32{e.P0[0] - d, e.P0[1] - d},
		P1: [2]float32{e.P1[0] + d, e.P1[1] + d}}
}

func (e Extent2D) Inside(p [2]float32) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}
