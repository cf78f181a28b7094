package main

import (
	"github.com/spf13/cobra"

	"github.com/hadronlab/cutconf/pkg/reader"
)

var getFlags valueFlags

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Read a top-level value",
	Long: `Read a top-level key of the calibration documents, without any run
period resolution.

Examples:
  cutconf get -f cuts.yaml myInt --type int
  cutconf get -f cuts.yaml myDoubleVector --array
  cutconf get -f cuts.yaml myString --type string --default none`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	addValueFlags(getCmd, &getFlags)
}

func runGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	return evaluate(cmd.OutOrStdout(), "get", key, reader.Request{Key: key},
		&getFlags, cmd.Flags().Changed("default"))
}
