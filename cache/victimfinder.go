package cache

import (
	"math/rand"
)

// A VictimFinder decides which block of a set should be evicted.
//
// Every finder prefers an invalid block over evicting a valid one, so cold
// sets always fill before any policy applies.
type VictimFinder interface {
	FindVictim(set *Set) *Block
}

// NewVictimFinder returns the finder implementing the given policy. An
// unrecognized policy gets the LRU finder, matching ParsePolicy. The random
// source is only used by the Random policy.
func NewVictimFinder(policy Policy, rng *rand.Rand) VictimFinder {
	switch policy {
	case PolicyFIFO:
		return NewFIFOVictimFinder()
	case PolicyRandom:
		return NewRandomVictimFinder(rng)
	case PolicyLFU:
		return NewLFUVictimFinder()
	default:
		return NewLRUVictimFinder()
	}
}

// emptyBlock returns the first invalid block of the set, or nil if the set
// is full.
func emptyBlock(set *Set) *Block {
	for _, b := range set.Blocks {
		if !b.Valid {
			return b
		}
	}
	return nil
}

// LRUVictimFinder evicts the block with the smallest timestamp. Hits
// refresh timestamps, so that block is the least recently used one.
type LRUVictimFinder struct{}

// NewLRUVictimFinder returns a newly constructed LRU evictor.
func NewLRUVictimFinder() *LRUVictimFinder {
	return &LRUVictimFinder{}
}

// FindVictim returns the least recently used block in a set.
func (f *LRUVictimFinder) FindVictim(set *Set) *Block {
	if b := emptyBlock(set); b != nil {
		return b
	}

	victim := set.Blocks[0]
	for _, b := range set.Blocks[1:] {
		if b.Timestamp < victim.Timestamp {
			victim = b
		}
	}
	return victim
}

// FIFOVictimFinder evicts the block with the smallest timestamp. FIFO never
// refreshes timestamps on hits, so that block is the oldest load.
type FIFOVictimFinder struct{}

// NewFIFOVictimFinder returns a newly constructed FIFO evictor.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return &FIFOVictimFinder{}
}

// FindVictim returns the first-loaded block in a set.
func (f *FIFOVictimFinder) FindVictim(set *Set) *Block {
	if b := emptyBlock(set); b != nil {
		return b
	}

	victim := set.Blocks[0]
	for _, b := range set.Blocks[1:] {
		if b.Timestamp < victim.Timestamp {
			victim = b
		}
	}
	return victim
}

// LFUVictimFinder evicts the block with the smallest use frequency,
// breaking ties by the smallest timestamp so the oldest load is evicted.
type LFUVictimFinder struct{}

// NewLFUVictimFinder returns a newly constructed LFU evictor.
func NewLFUVictimFinder() *LFUVictimFinder {
	return &LFUVictimFinder{}
}

// FindVictim returns the least frequently used block in a set.
func (f *LFUVictimFinder) FindVictim(set *Set) *Block {
	if b := emptyBlock(set); b != nil {
		return b
	}

	victim := set.Blocks[0]
	for _, b := range set.Blocks[1:] {
		if b.Frequency < victim.Frequency ||
			(b.Frequency == victim.Frequency && b.Timestamp < victim.Timestamp) {
			victim = b
		}
	}
	return victim
}

// RandomVictimFinder evicts a uniformly random block. It draws from an
// injected random source so a fixed seed reproduces identical runs.
type RandomVictimFinder struct {
	rng *rand.Rand
}

// NewRandomVictimFinder returns a newly constructed random evictor drawing
// from rng.
func NewRandomVictimFinder(rng *rand.Rand) *RandomVictimFinder {
	return &RandomVictimFinder{rng: rng}
}

// FindVictim returns a uniformly random block in a set.
func (f *RandomVictimFinder) FindVictim(set *Set) *Block {
	if b := emptyBlock(set); b != nil {
		return b
	}

	return set.Blocks[f.rng.Intn(len(set.Blocks))]
}
