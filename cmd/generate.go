// =============================================================================
// Back Order Report Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which runs the full report
// pipeline for one input file.
//
// COMMAND USAGE:
//   backorder-report generate [flags]
//
// FLAGS:
//   --input, -i    : Path to the input file (CSV, TXT or XLSX) [required]
//   --output, -o   : Path for the output workbook (default: generated name
//                    next to the input file)
//   --type, -t     : Report tier: standard, detailed or summary
//   --summary-log  : Write a run summary text file next to the workbook
//
// PIPELINE:
//   1. Load configuration
//   2. Read and parse the input file
//   3. Resolve column names, validate and clean the rows
//   4. Aggregate, sort and assemble the requested report tier
//   5. Write the XLSX workbook
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/backorder-report-generator/internal/pipeline"
	"github.com/ginjaninja78/backorder-report-generator/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputPath is the input file to process.
var inputPath string

// outputPath is the destination workbook path.
var outputPath string

// reportType overrides the configured default tier.
var reportType string

// summaryLog writes a run summary text file next to the workbook.
var summaryLog bool

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a back-order report from an input file",
	Long: `The generate command reads a raw back-order export (CSV, TXT or XLSX),
validates and cleans the data, and writes a formatted multi-sheet Excel
report.

Report tiers:
  standard  Summary, By Item, By Customer, Aging Analysis, Charts
  detailed  Standard plus By Supplier, By Date, By Category and Raw Data
  summary   Summary and Charts only

Rows that fail validation are skipped and reported; they never abort the
run. When the input yields no valid rows at all, an empty report is still
produced so scheduled runs always leave an artifact.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the generate command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(
		&inputPath,
		"input",
		"i",
		"",
		"Path to the input file (CSV, TXT or XLSX)",
	)
	generateCmd.MarkFlagRequired("input")

	generateCmd.Flags().StringVarP(
		&outputPath,
		"output",
		"o",
		"",
		"Path for the output workbook (default: generated name next to the input)",
	)

	generateCmd.Flags().StringVarP(
		&reportType,
		"type",
		"t",
		"",
		"Report tier: standard, detailed or summary (default from config)",
	)

	generateCmd.Flags().BoolVar(
		&summaryLog,
		"summary-log",
		false,
		"Write a run summary text file next to the workbook",
	)
}

// =============================================================================
// MAIN GENERATION FUNCTION
// =============================================================================

// runGenerate runs the report pipeline for the given input file.
func runGenerate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = utils.DefaultOutputPath(inputPath)
	}
	if err := utils.EnsureParentDir(out); err != nil {
		return err
	}

	generator := pipeline.NewGenerator(cfg,
		pipeline.WithProgress(newBarProgress()),
	)

	result := generator.Run(pipeline.RunOptions{
		InputPath:  inputPath,
		OutputPath: out,
		ReportType: reportType,
	})
	if !result.Success {
		return result.Error
	}

	printRunStats(result)

	if summaryLog {
		logPath, err := writeSummaryLog(result)
		if err != nil {
			return err
		}
		fmt.Printf("Summary log: %s\n", logPath)
	}

	return nil
}

// printRunStats prints the run statistics to stdout.
func printRunStats(result pipeline.Result) {
	stats := result.Stats

	fmt.Printf("\nReport generated: %s\n", result.OutputFile)
	fmt.Printf("  Report type:        %s\n", result.Tier)
	fmt.Printf("  Rows read:          %d\n", stats.RowsRead)
	fmt.Printf("  Rows skipped:       %d\n", stats.RowsSkipped)
	fmt.Printf("  Duplicates removed: %d\n", stats.DuplicatesRemoved)
	fmt.Printf("  Valid records:      %d\n", stats.ValidRecords)
	fmt.Printf("  Elapsed:            %s\n", stats.Elapsed.Round(time.Millisecond))

	if len(stats.Issues) > 0 {
		fmt.Printf("  Validation issues:  %d (rerun with validate for details)\n", len(stats.Issues))
	}
}

// writeSummaryLog writes the run summary file for a successful run.
func writeSummaryLog(result pipeline.Result) (string, error) {
	stats := result.Stats

	issues := make([]string, len(stats.Issues))
	for i, issue := range stats.Issues {
		issues[i] = issue.String()
	}

	return utils.WriteSummaryLog(utils.RunSummary{
		InputFile:         result.InputFile,
		OutputFile:        result.OutputFile,
		ReportType:        string(result.Tier),
		StartTime:         time.Now().Add(-stats.Elapsed),
		Duration:          stats.Elapsed,
		RowsRead:          stats.RowsRead,
		RowsSkipped:       stats.RowsSkipped,
		DuplicatesRemoved: stats.DuplicatesRemoved,
		ValidRecords:      stats.ValidRecords,
		Issues:            issues,
		BucketCounts:      stats.BucketCounts,
	})
}

// =============================================================================
// PROGRESS BAR
// =============================================================================

// barProgress adapts a terminal progress bar to the pipeline's Progress
// interface. Row-level stages drive the bar; stage-only checkpoints close
// any open bar so staged output stays clean.
type barProgress struct {
	bar *progressbar.ProgressBar
}

// newBarProgress creates a progress reporter writing to stderr.
func newBarProgress() *barProgress {
	return &barProgress{}
}

// Step implements pipeline.Progress.
func (p *barProgress) Step(stage string, done, total int) {
	if total <= 0 {
		if p.bar != nil {
			p.bar.Finish()
			p.bar = nil
		}
		return
	}

	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("validating rows"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	p.bar.Set(done)
	if done >= total {
		p.bar.Finish()
		p.bar = nil
	}
}
