package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "cachesim",
	Short: "Cachesim models multi-level set-associative cache hierarchies " +
		"over synthetic address traces.",
	Long: `Cachesim feeds synthetic memory traces through configurable ` +
		`set-associative cache hierarchies and reports hits, misses, and ` +
		`average memory access time under the LRU, FIFO, Random, and LFU ` +
		`replacement policies.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It exits through atexit so buffered database writes are
// flushed.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
