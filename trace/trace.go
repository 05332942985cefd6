// Package trace builds synthetic byte-address streams for feeding a cache
// hierarchy. Patterns are word-addressed and scaled to byte addresses.
package trace

import (
	"math/rand"
)

// wordSize scales word-addressed patterns to byte addresses.
const wordSize = 4

// A Generator produces deterministic address traces from a seeded random
// source. The same seed always yields the same trace.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Sequential returns count consecutive word addresses starting at
// startWord, repeated repeats times.
func (g *Generator) Sequential(startWord, count, repeats int) []uint64 {
	addrs := make([]uint64, 0, count*repeats)
	for r := 0; r < repeats; r++ {
		for i := 0; i < count; i++ {
			addrs = append(addrs, uint64(startWord+i)*wordSize)
		}
	}
	return addrs
}

// Uniform returns count uniformly random word addresses in [0, maxWord].
func (g *Generator) Uniform(count, maxWord int) []uint64 {
	addrs := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		addrs = append(addrs, uint64(g.rng.Intn(maxWord+1))*wordSize)
	}
	return addrs
}

// Synthetic returns the reference mixed workload: a repeated sequential
// region, a burst of random accesses, and a second repeated sequential
// region elsewhere in memory.
func (g *Generator) Synthetic() []uint64 {
	addrs := g.Sequential(0, 128, 4)
	addrs = append(addrs, g.Uniform(256, 4096)...)
	addrs = append(addrs, g.Sequential(2048, 128, 4)...)
	return addrs
}
