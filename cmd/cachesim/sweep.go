package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/experiment"
	"github.com/sarchlab/cachesim/export"
	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/report"
	"github.com/sarchlab/cachesim/trace"
)

var (
	sweepOutDir    string
	sweepDBPath    string
	sweepSeed      int64
	sweepTraceSeed int64
	sweepVerbose   bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the experiment suite and export CSV results.",
	Long: `sweep runs the full experiment suite over the synthetic trace: ` +
		`a set of hierarchy comparisons plus associativity, block-size, ` +
		`cache-size, and replacement-policy sweeps. Each suite writes one ` +
		`CSV file for plotting and analysis.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSweeps(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// comparisonExperiment pairs a named hierarchy config with the comparison
// suite it belongs to.
type comparisonExperiment struct {
	name   string
	config *hierarchy.Config
}

func comparisonExperiments() []comparisonExperiment {
	singleLevel := func(name string, c cache.Config) comparisonExperiment {
		return comparisonExperiment{
			name: name,
			config: &hierarchy.Config{
				Levels:               []cache.Config{c},
				MainMemoryAccessTime: experiment.DefaultMainMemoryTime,
			},
		}
	}

	return []comparisonExperiment{
		singleLevel("1-Level Direct-Mapped", cache.Config{
			Name: "L1 (Direct)", Size: 1024, Associativity: 1,
			BlockSize: 32, Policy: cache.PolicyLRU, HitTime: 1,
		}),
		singleLevel("1-Level 4-Way (LRU)", cache.Config{
			Name: "L1 (4-way)", Size: 1024, Associativity: 4,
			BlockSize: 32, Policy: cache.PolicyLRU, HitTime: 1,
		}),
		{name: "2-Level (L1+L2)", config: hierarchy.DefaultConfig()},
		singleLevel("1-Level 16B Blocks", cache.Config{
			Name: "L1 (16B blocks)", Size: 1024, Associativity: 2,
			BlockSize: 16, Policy: cache.PolicyLRU, HitTime: 1,
		}),
		singleLevel("1-Level 64B Blocks", cache.Config{
			Name: "L1 (64B blocks)", Size: 1024, Associativity: 2,
			BlockSize: 64, Policy: cache.PolicyLRU, HitTime: 1,
		}),
	}
}

func runSweeps() error {
	addrs := trace.NewGenerator(sweepTraceSeed).Synthetic()
	fmt.Printf("Generated memory trace with %d accesses.\n", len(addrs))

	randSource := func() cache.Option {
		return cache.WithRandSource(rand.NewSource(sweepSeed))
	}

	comparisonRows := []experiment.ComparisonRow{}
	for _, exp := range comparisonExperiments() {
		h, err := exp.config.Build(randSource())
		if err != nil {
			return err
		}

		res := experiment.Run(exp.name, h, addrs)
		if sweepVerbose {
			report.Print(os.Stdout, res)
		}
		comparisonRows = append(comparisonRows, res.ComparisonRow())
	}

	assocRows, err := experiment.SweepAssociativity(
		2048, 64, []int{1, 2, 4, 8, 16}, addrs)
	if err != nil {
		return err
	}

	blockRows, err := experiment.SweepBlockSizes(
		1024, 2, []int{8, 16, 32, 64, 128}, addrs)
	if err != nil {
		return err
	}

	sizeRows, err := experiment.SweepCacheSizes(
		32, 2, []int{256, 512, 1024, 2048, 4096}, addrs)
	if err != nil {
		return err
	}

	policyRows, err := experiment.ComparePolicies(1024, 4, 32,
		[]cache.Policy{
			cache.PolicyLRU, cache.PolicyFIFO,
			cache.PolicyRandom, cache.PolicyLFU,
		},
		addrs, randSource())
	if err != nil {
		return err
	}

	csvFiles := []struct {
		name string
		rows any
	}{
		{"simulation_comparison.csv", comparisonRows},
		{"associativity_analysis.csv", assocRows},
		{"blocksize_analysis.csv", blockRows},
		{"cachesize_analysis.csv", sizeRows},
		{"policy_comparison.csv", policyRows},
	}
	for _, f := range csvFiles {
		path := filepath.Join(sweepOutDir, f.name)
		if err := export.WriteCSV(path, f.rows); err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", path)
	}

	if sweepDBPath != "" {
		rec := export.NewRecorder(sweepDBPath)
		rec.RecordTable("comparisons", comparisonRows)
		rec.RecordTable("associativity_sweep", assocRows)
		rec.RecordTable("blocksize_sweep", blockRows)
		rec.RecordTable("cachesize_sweep", sizeRows)
		rec.RecordTable("policy_comparison", policyRows)
		rec.Flush()
	}

	fmt.Println("All experiments finished.")
	return nil
}

func init() {
	sweepCmd.Flags().StringVar(&sweepOutDir, "out", ".",
		"directory for the CSV output files")
	sweepCmd.Flags().StringVar(&sweepDBPath, "db", "",
		"also record all sweep tables to this SQLite database")
	sweepCmd.Flags().Int64Var(&sweepSeed, "seed", 42,
		"seed for the Random replacement policy")
	sweepCmd.Flags().Int64Var(&sweepTraceSeed, "trace-seed", 42,
		"seed for the synthetic trace generator")
	sweepCmd.Flags().BoolVarP(&sweepVerbose, "verbose", "v", false,
		"print the full report of every comparison run")
	rootCmd.AddCommand(sweepCmd)
}
