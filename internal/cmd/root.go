// Package cmd provides CLI commands for the hv tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deeklead/apiary/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "hv",
	Short:   "Apiary - multi-actor coordination simulator",
	Version: version.Version,
	Long: `Apiary (hv) runs an in-memory simulation of a bee colony: a hive
releases worker bees to hunt, returning bees accumulate honey, and a
bear raids the hive whenever strong honey accumulation coincides with
a weak home guard.

All actors are goroutines coordinated through shared condition
variables; every run streams its activity to a JSONL events file.`,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hv: %v\n", err)
		return 1
	}
	return 0
}
