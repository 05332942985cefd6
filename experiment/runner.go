// Package experiment runs address traces through cache hierarchies and
// drives parameter sweeps for comparing configurations.
package experiment

import (
	"time"

	"github.com/rs/xid"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/hierarchy"
)

// A Result captures the raw metrics of one simulation run.
type Result struct {
	// ConfigName identifies the experiment.
	ConfigName string `json:"config_name"`

	// RunID uniquely identifies this run across exports.
	RunID string `json:"run_id"`

	// PerCache holds one statistics record per hierarchy level, fastest
	// first.
	PerCache []cache.StatsRecord `json:"per_cache"`

	// AMAT is the average memory access time in simulated time units.
	AMAT float64 `json:"amat"`

	// TotalAccessTime is the accumulated simulated latency.
	TotalAccessTime uint64 `json:"total_access_time"`

	// TotalAccesses is the number of addresses fed through the hierarchy.
	TotalAccesses uint64 `json:"total_accesses"`

	// WallTime is how long the simulation took to execute. It is cosmetic
	// and never feeds back into simulated timing.
	WallTime time.Duration `json:"wall_time_ns"`
}

// Run resets the hierarchy, feeds every address of the trace in order, and
// snapshots the resulting statistics.
func Run(name string, h *hierarchy.Hierarchy, addrs []uint64) Result {
	start := time.Now()

	h.Reset()
	for _, addr := range addrs {
		h.Access(addr)
	}

	sum := h.Summary()
	return Result{
		ConfigName:      name,
		RunID:           xid.New().String(),
		PerCache:        h.Stats(),
		AMAT:            sum.AMAT,
		TotalAccessTime: sum.TotalAccessTime,
		TotalAccesses:   sum.TotalAccesses,
		WallTime:        time.Since(start),
	}
}

// A ComparisonRow is the flat per-experiment summary used for exports.
type ComparisonRow struct {
	ConfigName       string  `json:"config_name" structs:"config_name"`
	AMAT             float64 `json:"amat" structs:"amat"`
	TotalAccessTime  uint64  `json:"total_access_time" structs:"total_access_time"`
	WallclockSeconds float64 `json:"wallclock_seconds" structs:"wallclock_seconds"`
	L1HitRatio       float64 `json:"l1_hit_ratio" structs:"l1_hit_ratio"`
}

// ComparisonRow flattens the result for export. The L1 hit ratio comes from
// the fastest cache.
func (r Result) ComparisonRow() ComparisonRow {
	row := ComparisonRow{
		ConfigName:       r.ConfigName,
		AMAT:             r.AMAT,
		TotalAccessTime:  r.TotalAccessTime,
		WallclockSeconds: r.WallTime.Seconds(),
	}
	if len(r.PerCache) > 0 {
		row.L1HitRatio = r.PerCache[0].HitRatio
	}
	return row
}
