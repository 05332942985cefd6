// Package report renders cache and hierarchy statistics as console tables.
// It is a read-only view over experiment results.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/sarchlab/cachesim/experiment"
)

// Print writes a per-cache table followed by the hierarchy summary to w.
func Print(w io.Writer, r experiment.Result) {
	fmt.Fprintf(w, "--- %s ---\n", r.ConfigName)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw,
		"cache\thits\tmisses\taccesses\thit ratio\tmiss ratio\tsets\tways\tblock")
	for _, rec := range r.PerCache {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%.2f%%\t%d\t%d\t%dB\n",
			rec.Name, rec.Hits, rec.Misses, rec.Accesses,
			ratioString(rec.HitRatio), rec.MissRatio*100,
			rec.NumSets, rec.Associativity, rec.BlockSize)
	}
	tw.Flush()

	fmt.Fprintf(w, "AMAT: %.4f time units\n", r.AMAT)
	fmt.Fprintf(w, "Total access time: %d time units\n", r.TotalAccessTime)
	fmt.Fprintf(w, "Total accesses: %d\n", r.TotalAccesses)
	fmt.Fprintf(w, "Wall-clock time: %.4fs\n", r.WallTime.Seconds())
}

// ratioString colorizes hit ratios so sweep output is scannable at a
// glance. Coloring is suppressed automatically on non-terminal writers.
func ratioString(ratio float64) string {
	s := fmt.Sprintf("%.2f%%", ratio*100)
	switch {
	case ratio >= 0.9:
		return color.GreenString("%s", s)
	case ratio < 0.5:
		return color.RedString("%s", s)
	default:
		return s
	}
}
