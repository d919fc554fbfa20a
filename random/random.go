// Package random supplies the engine's uniform random sources, including
// draws from 128-bit ranges for possibility and deal indexes.
package random

import (
	"math/bits"

	"golang.org/x/exp/rand"
	"lukechampine.com/uint128"
)

// Generator wraps a seeded PCG source. Generators are not safe for
// concurrent use; the searcher gives each worker its own via Split.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Split derives an independently seeded generator. The searcher owns
// seeding: workers never share a source.
func (g *Generator) Split() *Generator {
	return NewGenerator(g.rng.Uint64())
}

func (g *Generator) Uint64() uint64 { return g.rng.Uint64() }

func (g *Generator) Intn(n int) int { return g.rng.Intn(n) }

// Range64 draws uniformly from [0, n). Rejection sampling over the
// smallest covering power of two keeps the draw unbiased.
func (g *Generator) Range64(n uint64) uint64 {
	if n == 0 {
		panic("range over empty interval")
	}
	if n == 1 {
		return 0
	}
	mask := ^uint64(0) >> bits.LeadingZeros64(n-1)
	for {
		v := g.rng.Uint64() & mask
		if v < n {
			return v
		}
	}
}

// Range128 draws uniformly from [0, n) for arbitrary 128-bit n.
func (g *Generator) Range128(n uint128.Uint128) uint128.Uint128 {
	if n.IsZero() {
		panic("range over empty interval")
	}
	if n.Hi == 0 {
		return uint128.From64(g.Range64(n.Lo))
	}
	hiMask := ^uint64(0) >> bits.LeadingZeros64(n.Hi)
	for {
		v := uint128.New(g.rng.Uint64(), g.rng.Uint64()&hiMask)
		if v.Cmp(n) < 0 {
			return v
		}
	}
}
