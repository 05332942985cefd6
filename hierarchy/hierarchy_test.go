package hierarchy_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/hierarchy"
)

func mustCache(name string, size, assoc, block int, hitTime uint64) *cache.Cache {
	c, err := cache.New(cache.Config{
		Name: name, Size: size, Associativity: assoc,
		BlockSize: block, Policy: cache.PolicyLRU, HitTime: hitTime,
	})
	Expect(err).NotTo(HaveOccurred())
	return c
}

var _ = Describe("Hierarchy", func() {
	var (
		l1 *cache.Cache
		l2 *cache.Cache
		h  *hierarchy.Hierarchy
	)

	BeforeEach(func() {
		l1 = mustCache("L1", 512, 2, 32, 1)
		l2 = mustCache("L2", 4096, 4, 64, 10)

		var err error
		// Declared slowest-first on purpose; construction must reorder.
		h, err = hierarchy.New([]*cache.Cache{l2, l1}, 100)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("should sort caches by ascending hit time", func() {
			caches := h.Caches()
			Expect(caches[0].Name()).To(Equal("L1"))
			Expect(caches[1].Name()).To(Equal("L2"))
		})

		It("should reject a zero main memory access time", func() {
			_, err := hierarchy.New([]*cache.Cache{l1}, 0)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Access", func() {
		It("should charge every probed level and main memory on a full miss", func() {
			h.Access(0)
			// L1 probe + L2 probe + main memory.
			Expect(h.TotalAccessTime()).To(Equal(uint64(1 + 10 + 100)))
		})

		It("should stop at the first hit", func() {
			h.Access(0)
			before := h.TotalAccessTime()

			Expect(h.Access(0)).To(BeTrue())
			Expect(h.TotalAccessTime() - before).To(Equal(uint64(1)))
			Expect(l2.AccessCount()).To(Equal(uint64(1)),
				"the second access must not reach L2")
		})

		It("should charge N*hitTime when every access hits the fastest level", func() {
			h.Access(0)
			warm := h.TotalAccessTime()

			const n = 10
			for i := 0; i < n; i++ {
				Expect(h.Access(0)).To(BeTrue())
			}
			Expect(h.TotalAccessTime() - warm).To(Equal(uint64(n)))
		})

		It("should count one hierarchy access per address on the fastest cache", func() {
			addrs := []uint64{0, 32, 64, 0, 32}
			for _, addr := range addrs {
				h.Access(addr)
			}
			Expect(l1.AccessCount()).To(Equal(uint64(len(addrs))))
			Expect(h.Summary().TotalAccesses).To(
				Equal(uint64(len(addrs))))
		})
	})

	Describe("Summary", func() {
		It("should report zeros before any access", func() {
			sum := h.Summary()
			Expect(sum.AMAT).To(Equal(0.0))
			Expect(sum.TotalAccessTime).To(Equal(uint64(0)))
			Expect(sum.TotalAccesses).To(Equal(uint64(0)))
		})

		It("should derive AMAT from total time and accesses", func() {
			h.Access(0) // miss everywhere: 111
			h.Access(0) // L1 hit: 1
			h.Access(0) // L1 hit: 1

			sum := h.Summary()
			Expect(sum.TotalAccessTime).To(Equal(uint64(113)))
			Expect(sum.AMAT).To(BeNumerically("~", 113.0/3.0, 1e-12))
		})

		It("should charge the miss penalty only once for a hot block", func() {
			single, err := hierarchy.New(
				[]*cache.Cache{mustCache("L1", 1024, 1, 32, 3)}, 100)
			Expect(err).NotTo(HaveOccurred())

			// 1 cold miss + 9 hits: every access pays the probe, the
			// main-memory penalty is paid once.
			for i := 0; i < 10; i++ {
				single.Access(0)
			}
			sum := single.Summary()
			Expect(sum.TotalAccessTime).To(Equal(uint64(10*3 + 100)))
			Expect(sum.AMAT).To(BeNumerically("~", 13.0, 1e-12))
		})
	})

	Describe("Reset", func() {
		It("should clear all counters and cache contents", func() {
			for _, addr := range []uint64{0, 32, 0, 64} {
				h.Access(addr)
			}

			h.Reset()

			Expect(h.TotalAccessTime()).To(Equal(uint64(0)))
			Expect(h.Summary().TotalAccesses).To(Equal(uint64(0)))
			Expect(l1.AccessCount()).To(Equal(uint64(0)))
			Expect(l2.AccessCount()).To(Equal(uint64(0)))
			// Previously cached addresses must miss again.
			Expect(h.Access(0)).To(BeFalse())
		})
	})

	Describe("logical time", func() {
		It("should order recency across levels per hierarchy access", func() {
			// One-set two-way L1: A, B, A, C must evict B, exactly as if
			// the cache were driven directly with increasing times.
			small := mustCache("L1", 64, 2, 32, 1)
			hh, err := hierarchy.New([]*cache.Cache{small}, 100)
			Expect(err).NotTo(HaveOccurred())

			hh.Access(0)
			hh.Access(32)
			hh.Access(0)
			hh.Access(64)
			Expect(hh.Access(0)).To(BeTrue(), "A must survive")
			Expect(hh.Access(32)).To(BeFalse(), "B must be gone")
		})
	})
})
