package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/experiment"
	"github.com/sarchlab/cachesim/export"
	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/report"
	"github.com/sarchlab/cachesim/trace"
)

var (
	runConfigPath string
	runSeed       int64
	runTraceSeed  int64
	runCSVPath    string
	runDBPath     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation over the synthetic trace.",
	Long: `run feeds the synthetic memory trace through the hierarchy ` +
		`described by the config file (or the default two-level hierarchy) ` +
		`and prints per-cache and hierarchy statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := hierarchy.DefaultConfig()
		name := "Default 2-Level (L1+L2)"
		if runConfigPath != "" {
			var err error
			config, err = hierarchy.LoadConfig(runConfigPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			name = runConfigPath
		}

		h, err := config.Build(
			cache.WithRandSource(rand.NewSource(runSeed)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		addrs := trace.NewGenerator(runTraceSeed).Synthetic()
		fmt.Printf("Generated memory trace with %d accesses.\n", len(addrs))

		res := experiment.Run(name, h, addrs)
		report.Print(os.Stdout, res)

		rows := []experiment.ComparisonRow{res.ComparisonRow()}
		if runCSVPath != "" {
			if err := export.WriteCSV(runCSVPath, rows); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		if runDBPath != "" {
			rec := export.NewRecorder(runDBPath)
			rec.RecordTable("runs", rows)
			rec.Flush()
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "",
		"path to a hierarchy config JSON file")
	runCmd.Flags().Int64Var(&runSeed, "seed", 42,
		"seed for the Random replacement policy")
	runCmd.Flags().Int64Var(&runTraceSeed, "trace-seed", 42,
		"seed for the synthetic trace generator")
	runCmd.Flags().StringVar(&runCSVPath, "csv", "",
		"write the run summary to this CSV file")
	runCmd.Flags().StringVar(&runDBPath, "db", "",
		"record the run summary to this SQLite database")
	rootCmd.AddCommand(runCmd)
}
