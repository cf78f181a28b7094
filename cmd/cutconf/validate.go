package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hadronlab/cutconf/pkg/cli"
	"github.com/hadronlab/cutconf/pkg/node"
)

var validateFlags struct {
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the configuration and calibration documents load",
	Long: `Load the configuration and decode every calibration document it names.

Each document is reported with its top-level keys. The command fails if the
configuration is invalid or any document cannot be read or decoded.

Examples:
  # Validate the documents named in a configuration file
  cutconf validate -c cutconf.yaml

  # Validate documents directly
  cutconf validate -f cuts.yaml -f overrides.yaml --format json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

// documentReport describes one decoded source.
type documentReport struct {
	Path  string   `json:"path"`
	Valid bool     `json:"valid"`
	Keys  []string `json:"keys,omitempty"`
	Error string   `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(validateFlags.format)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reports := make([]documentReport, 0, len(cfg.Reader.Sources))
	failed := 0
	for _, path := range cfg.Reader.Sources {
		report := documentReport{Path: path, Valid: true}
		doc, err := node.DecodeFile(path)
		if err != nil {
			report.Valid = false
			report.Error = err.Error()
			failed++
		} else {
			report.Keys = doc.Keys()
		}
		reports = append(reports, report)
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		if err := cli.NewFormatter(format).FormatTo(out, reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			if r.Valid {
				fmt.Fprintf(out, "✓ %s: %s\n", r.Path, strings.Join(r.Keys, ", "))
			} else {
				fmt.Fprintf(out, "✗ %s: %s\n", r.Path, r.Error)
			}
		}
	}

	if failed > 0 {
		return cli.NewCommandError("validate", fmt.Errorf("%d of %d documents failed to load", failed, len(reports)))
	}
	return nil
}
