package cache_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cache"
)

// fullSet builds a four-way set with all blocks valid and the given
// timestamps and frequencies.
func fullSet(timestamps, frequencies []uint64) *cache.Set {
	set := cache.NewSet(len(timestamps))
	for i, b := range set.Blocks {
		b.Valid = true
		b.Tag = uint64(i)
		b.Timestamp = timestamps[i]
		b.Frequency = frequencies[i]
	}
	return set
}

var _ = Describe("VictimFinder", func() {
	It("should prefer an invalid block under every policy", func() {
		rng := rand.New(rand.NewSource(1))
		finders := []cache.VictimFinder{
			cache.NewLRUVictimFinder(),
			cache.NewFIFOVictimFinder(),
			cache.NewLFUVictimFinder(),
			cache.NewRandomVictimFinder(rng),
		}
		for _, finder := range finders {
			set := fullSet([]uint64{3, 1, 4, 2}, []uint64{9, 9, 9, 9})
			set.Blocks[2].Valid = false
			Expect(finder.FindVictim(set)).To(
				BeIdenticalTo(set.Blocks[2]))
		}
	})

	Describe("LRUVictimFinder", func() {
		It("should pick the smallest timestamp", func() {
			set := fullSet([]uint64{3, 1, 4, 2}, []uint64{1, 1, 1, 1})
			victim := cache.NewLRUVictimFinder().FindVictim(set)
			Expect(victim).To(BeIdenticalTo(set.Blocks[1]))
		})
	})

	Describe("FIFOVictimFinder", func() {
		It("should pick the oldest load", func() {
			set := fullSet([]uint64{7, 5, 6, 8}, []uint64{1, 1, 1, 1})
			victim := cache.NewFIFOVictimFinder().FindVictim(set)
			Expect(victim).To(BeIdenticalTo(set.Blocks[1]))
		})
	})

	Describe("LFUVictimFinder", func() {
		It("should pick the smallest frequency", func() {
			set := fullSet([]uint64{1, 2, 3, 4}, []uint64{5, 2, 9, 4})
			victim := cache.NewLFUVictimFinder().FindVictim(set)
			Expect(victim).To(BeIdenticalTo(set.Blocks[1]))
		})

		It("should break frequency ties by the smallest timestamp", func() {
			set := fullSet([]uint64{4, 2, 3, 1}, []uint64{2, 2, 5, 2})
			victim := cache.NewLFUVictimFinder().FindVictim(set)
			Expect(victim).To(BeIdenticalTo(set.Blocks[3]))
		})
	})

	Describe("RandomVictimFinder", func() {
		It("should draw the same victims from the same seed", func() {
			pick := func() []int {
				finder := cache.NewRandomVictimFinder(
					rand.New(rand.NewSource(99)))
				picks := []int{}
				for i := 0; i < 50; i++ {
					set := fullSet(
						[]uint64{1, 2, 3, 4}, []uint64{1, 1, 1, 1})
					victim := finder.FindVictim(set)
					for way, b := range set.Blocks {
						if b == victim {
							picks = append(picks, way)
						}
					}
				}
				return picks
			}
			Expect(pick()).To(Equal(pick()))
		})
	})

	Describe("NewVictimFinder", func() {
		It("should dispatch each policy to its finder", func() {
			rng := rand.New(rand.NewSource(1))
			Expect(cache.NewVictimFinder(cache.PolicyLRU, rng)).To(
				BeAssignableToTypeOf(&cache.LRUVictimFinder{}))
			Expect(cache.NewVictimFinder(cache.PolicyFIFO, rng)).To(
				BeAssignableToTypeOf(&cache.FIFOVictimFinder{}))
			Expect(cache.NewVictimFinder(cache.PolicyLFU, rng)).To(
				BeAssignableToTypeOf(&cache.LFUVictimFinder{}))
			Expect(cache.NewVictimFinder(cache.PolicyRandom, rng)).To(
				BeAssignableToTypeOf(&cache.RandomVictimFinder{}))
		})

		It("should fall back to LRU for unknown policies", func() {
			finder := cache.NewVictimFinder(cache.Policy("MRU"), nil)
			Expect(finder).To(
				BeAssignableToTypeOf(&cache.LRUVictimFinder{}))
		})
	})
})
