package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quintile-data/edive/internal/apperrors"
	"github.com/quintile-data/edive/internal/checks"
	"github.com/quintile-data/edive/internal/config"
	"github.com/quintile-data/edive/internal/ingest"
	"github.com/quintile-data/edive/internal/progress"
	"github.com/quintile-data/edive/internal/report"
	"github.com/quintile-data/edive/internal/runner"
	"github.com/quintile-data/edive/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Ingest a data export, run its check battery, and write the report",
	Args:  requireFileArg,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	debug, _ := cmd.Flags().GetBool("debug")
	noReport, _ := cmd.Flags().GetBool("no-report")
	outputDir, _ := cmd.Flags().GetString("output")
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Configuration,
			"check the config file syntax",
			"run with --config pointing at a valid config file")
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	debugLog(debug, "ingesting %s", path)
	res, err := ingest.ReadFile(path)
	if err != nil {
		return err
	}
	debugLog(debug, "ingested %d rows, %d columns, source %s",
		res.Table.NumRows(), res.Table.NumCols(), res.Source)

	if res.Source == schema.SourceUnknown {
		// A valid, non-erroneous outcome: the input is not one of the known
		// feeds, so there is nothing to validate and no report is produced.
		fmt.Printf("Could not assign a technology (API, TAG or Amazon) to %s - no report produced\n",
			filepath.Base(path))
		return nil
	}

	battery := checks.ForSource(res.Source)
	if len(battery) == 0 {
		return apperrors.NewRuntimeError(
			fmt.Sprintf("no check battery registered for source type %s", res.Source))
	}

	var display *progress.Display
	var onCheck runner.Progress
	if cfg.ShowProgress {
		display = progress.NewDisplay(progress.DetectTerminalCapabilities())
		onCheck = func(index, total int, name string) {
			display.Check(index, total, name)
		}
	}

	agg := runner.Run(res.Table, battery, onCheck)
	if display != nil {
		display.Finish(agg.Len(), agg.ErrorCount())
	}

	if noReport {
		printSummary(agg)
		return nil
	}

	meta := report.Meta{
		DatasetName:   datasetName(path),
		User:          cfg.User,
		OutputDir:     cfg.OutputDir,
		Timestamp:     time.Now(),
		MaxSampleRows: cfg.MaxSampleRows,
	}
	out, err := report.Write(agg, meta)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Runtime,
			"check that the output directory is writable")
	}
	fmt.Printf("Report ready: %s\n", out)
	return nil
}

// printSummary writes the aggregate to stdout in place of the workbook.
func printSummary(agg *runner.Aggregate) {
	fmt.Printf("%-6s %-32s %-12s %s\n", "INDEX", "VALIDATION", "OCURRENCES", "TYPE")
	for _, rec := range agg.Records() {
		fmt.Printf("%-6d %-32s %-12d %s\n", rec.Index, rec.Name, rec.Occurrences, rec.Class)
	}
}

// datasetName derives the report's dataset identity from the input filename.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// debugLog prints a debug message when debug mode is enabled.
func debugLog(enabled bool, format string, args ...interface{}) {
	if enabled {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func init() {
	validateCmd.Flags().Bool("no-report", false, "Print the summary instead of writing the Excel report")
	validateCmd.Flags().StringP("output", "o", "", "Report output directory (overrides config)")
	rootCmd.AddCommand(validateCmd)
}
