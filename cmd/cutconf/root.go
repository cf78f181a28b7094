package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile     string
	verbose     bool
	sourceFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "cutconf",
	Short: "Run-period calibration cut lookups",
	Long: `cutconf resolves calibration cuts from YAML documents.

A document maps a group of cuts to a list of run periods. Each period holds
a value and may refine it per dependent key (pid, sector, ...):

  cuts:
    - runs: [6000, 6200]
      vals: [-15.0, 15.0]
      pid:
        - pid: 11
          vals: [-5.0, 5.0]

Lookups name the group, the run and the probe (the pid or sector). When no
period or dependent entry matches, the supplied default is returned.

Documents come from reader.sources in the configuration file or from one or
more --file flags, searched in order.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults and CUTCONF_* environment when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringSliceVarP(&sourceFiles, "file", "f", nil, "calibration document, repeatable (overrides reader.sources)")
}
