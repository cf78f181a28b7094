/*
Package cli provides command-line interface utilities for cutconf.

The cli package includes output formatters, error types and signal handling
used by the cutconf command.

Output Formatting:

Lookup results can be written as text, JSON or CSV:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Text output prints a value on one line; sequences are space separated so
the output can be consumed by shell scripts. CSV output writes a sequence
as a single record.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
*/
package cli
