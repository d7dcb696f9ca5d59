// Package random owns the random-source capability shared by every
// generation stage.
//
// Ownership boundary:
// - source interface consumed by quota, sampler and mine packages
// - seeded construction and fresh seed generation
// - small draw helpers built on top of a Source
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// streamConstant is the fixed PCG stream selector. Changing it changes every
// seeded run.
const streamConstant = 0x6d696e6567656e

// Source is the draw surface used by generation code. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). It panics when n <= 0.
	IntN(n int) int
	// Uint64 returns 64 random bits.
	Uint64() uint64
}

var _ Source = (*rand.Rand)(nil)

// New creates a deterministic source for seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, streamConstant))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Uniform draws a continuous value in [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

// IntRange draws an integer in the closed range [lo, hi].
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Shuffle permutes n elements in place through swap.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		swap(i, j)
	}
}
