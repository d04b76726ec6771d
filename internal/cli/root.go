// Package cli provides the Cobra-based commands for the edive data-quality
// tool: validate (full pipeline plus report), detect (header-only source
// classification), and version.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quintile-data/edive/internal/apperrors"
	"github.com/quintile-data/edive/internal/ingest"
	"github.com/quintile-data/edive/internal/progress"
)

var rootCmd = &cobra.Command{
	Use:   "edive",
	Short: "edive data-quality validation",
	Long: `edive data-quality validation

Ingests a tabular export from one of the known upstream feeds (API
transaction logs, tag-based logs, or the Amazon marketplace feed), runs the
feed's battery of data-quality checks, and writes a styled Excel report.`,
	Example: `  # Validate an export and write the report
  edive validate sample_store.csv

  # Run the checks but print the summary instead of writing a report
  edive validate sample_store.csv --no-report

  # Classify a file without running any checks
  edive detect sample_store.csv`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		caps := progress.DetectTerminalCapabilities()
		fmt.Fprintln(os.Stderr, apperrors.Format(err, caps.SupportsColor))
		return exitCode(err)
	}
	return ExitOK
}

// requireFileArg enforces the single <file> positional argument; the usage
// mistake is surfaced with the Argument category so it exits with ExitUsage
// instead of the generic runtime code.
func requireFileArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return apperrors.NewArgumentError(err.Error(),
			fmt.Sprintf("usage: edive %s", cmd.Use))
	}
	return nil
}

// exitCode maps an error onto the documented exit codes so callers can tell
// an unsupported file from a broken one without parsing stderr.
func exitCode(err error) int {
	var unsupported *ingest.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return ExitUnsupportedFormat
	}
	var parse *ingest.ParseError
	if errors.As(err, &parse) {
		return ExitParseFailure
	}
	var cli *apperrors.CLIError
	if errors.As(err, &cli) {
		switch cli.Category {
		case apperrors.Argument:
			return ExitUsage
		case apperrors.Configuration:
			return ExitConfig
		}
	}
	return ExitRuntime
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", ".edive/config.json", "Path to config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.NewArgumentError(err.Error(),
			fmt.Sprintf("run 'edive %s --help' for usage", cmd.Name()))
	})
}
