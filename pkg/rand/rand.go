// pkg/rand/rand.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"github.com/MichaelTJones/pcg"
)

///////////////////////////////////////////////////////////////////////////
// Random numbers.

type Rand struct {
	r *pcg.PCG32
}

func New() *Rand {
	return &Rand{r: pcg.NewPCG32()}
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

func (r *Rand) Float32() float32 {
	return float32(r.r.Random()) / (1<<32 - 1)
}

// Float32Range returns a uniformly-distributed value in [low, high].
func (r *Rand) Float32Range(low, high float32) float32 {
	return low + (high-low)*r.Float32()
}

func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

// Drop-in replacement for the subset of math/rand that we use...
var rng *Rand

func init() {
	rng = New()
}

func Seed(s int64) {
	rng.Seed(s)
}

func Intn(n int) int {
	return rng.Intn(n)
}

func Float32() float32 {
	return rng.Float32()
}

func Uint32() uint32 {
	return rng.Uint32()
}

// SampleSlice uniformly randomly samples an element of a non-empty slice.
func SampleSlice[T any](r *Rand, slice []T) T {
	return slice[r.Intn(len(slice))]
}

// Sample uniformly randomly samples one of its arguments.
func Sample[T any](r *Rand, t ...T) T {
	return t[r.Intn(len(t))]
}
