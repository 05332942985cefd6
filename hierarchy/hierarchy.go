// Package hierarchy chains caches into a multi-level memory hierarchy and
// accounts per-access latency down to a main-memory fallback.
package hierarchy

import (
	"fmt"
	"sort"

	"github.com/sarchlab/cachesim/cache"
)

// Hierarchy drives an access through an ordered sequence of caches, fastest
// first, and accumulates the total access time. It is not safe for
// concurrent use.
type Hierarchy struct {
	caches               []*cache.Cache
	mainMemoryAccessTime uint64

	// logicalTime ticks once per hierarchy access and is shared by every
	// level for recency comparisons. It is not wall-clock time.
	logicalTime     uint64
	totalAccessTime uint64
}

// New builds a hierarchy over the given caches with a main-memory fallback
// latency. The caches are stably re-sorted by ascending hit time, so the
// declared order does not need to be latency-ordered. The main memory
// access time must be positive.
func New(caches []*cache.Cache, mainMemoryAccessTime uint64) (*Hierarchy, error) {
	if mainMemoryAccessTime == 0 {
		return nil, fmt.Errorf(
			"hierarchy: main memory access time must be positive")
	}

	h := &Hierarchy{
		caches:               make([]*cache.Cache, len(caches)),
		mainMemoryAccessTime: mainMemoryAccessTime,
	}
	copy(h.caches, caches)
	sort.SliceStable(h.caches, func(i, j int) bool {
		return h.caches[i].HitTime() < h.caches[j].HitTime()
	})

	return h, nil
}

// Access sends one address through the hierarchy and returns true if any
// level hit. Every probed level costs its hit time regardless of outcome;
// if every level misses, the main-memory access time is added once.
func (h *Hierarchy) Access(addr uint64) bool {
	h.logicalTime++
	for _, c := range h.caches {
		h.totalAccessTime += c.HitTime()
		if c.Access(addr, h.logicalTime) {
			return true
		}
	}
	h.totalAccessTime += h.mainMemoryAccessTime
	return false
}

// Reset restores all mutable state to its initial value: time counters are
// zeroed and every cache is reset. Configuration is untouched.
func (h *Hierarchy) Reset() {
	h.totalAccessTime = 0
	h.logicalTime = 0
	for _, c := range h.caches {
		c.ResetStats()
	}
}

// Caches returns the caches in probe order, fastest first.
func (h *Hierarchy) Caches() []*cache.Cache {
	caches := make([]*cache.Cache, len(h.caches))
	copy(caches, h.caches)
	return caches
}

// TotalAccessTime returns the accumulated access time of the run so far.
func (h *Hierarchy) TotalAccessTime() uint64 {
	return h.totalAccessTime
}

// MainMemoryAccessTime returns the configured main-memory fallback latency.
func (h *Hierarchy) MainMemoryAccessTime() uint64 {
	return h.mainMemoryAccessTime
}

// Stats returns one record per cache, in probe order.
func (h *Hierarchy) Stats() []cache.StatsRecord {
	records := make([]cache.StatsRecord, 0, len(h.caches))
	for _, c := range h.caches {
		records = append(records, c.Stats())
	}
	return records
}

// A Summary aggregates hierarchy-wide timing over a run.
type Summary struct {
	// AMAT is the average memory access time: total access time over the
	// number of hierarchy accesses. Zero when nothing was accessed.
	AMAT float64 `json:"amat" structs:"amat"`

	// TotalAccessTime is the accumulated latency of the whole run.
	TotalAccessTime uint64 `json:"total_access_time" structs:"total_access_time"`

	// TotalAccesses is the number of hierarchy accesses performed. It
	// equals the fastest cache's access count, since every access probes
	// that cache first.
	TotalAccesses uint64 `json:"total_accesses" structs:"total_accesses"`
}

// Summary derives the hierarchy-wide timing summary from the counters. It
// never mutates state.
func (h *Hierarchy) Summary() Summary {
	s := Summary{TotalAccessTime: h.totalAccessTime}
	if len(h.caches) == 0 {
		return s
	}

	s.TotalAccesses = h.caches[0].AccessCount()
	if s.TotalAccesses > 0 {
		s.AMAT = float64(h.totalAccessTime) / float64(s.TotalAccesses)
	}
	return s
}
