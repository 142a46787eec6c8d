// =============================================================================
// Back Order Report Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which runs the pipeline up to
// aggregation without writing a workbook. It is the dry-run data quality
// check: it reports exactly what a generate run would keep, skip and
// deduplicate, plus every validation issue found.
//
// COMMAND USAGE:
//   backorder-report validate --input orders.csv
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/backorder-report-generator/internal/pipeline"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// validateInput is the input file to inspect.
var validateInput string

// maxIssuesPrinted caps the issue listing so a badly broken file doesn't
// flood the terminal.
const maxIssuesPrinted = 25

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an input file's data quality without generating a report",
	Long: `The validate command reads an input file and runs column resolution,
validation, cleaning and deduplication exactly as a generate run would,
but writes no workbook.

It reports the row counts a generate run would produce and lists the
validation issues found, so data problems can be fixed before the report
is distributed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(
		&validateInput,
		"input",
		"i",
		"",
		"Path to the input file (CSV, TXT or XLSX)",
	)
	validateCmd.MarkFlagRequired("input")
}

// =============================================================================
// VALIDATION FUNCTION
// =============================================================================

// runValidate runs the dry data quality check.
func runValidate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	generator := pipeline.NewGenerator(cfg)

	agg, stats, err := generator.Analyze(validateInput)
	if err != nil {
		return err
	}

	fmt.Printf("Validation results for %s\n", validateInput)
	fmt.Printf("  Rows read:          %d\n", stats.RowsRead)
	fmt.Printf("  Rows skipped:       %d\n", stats.RowsSkipped)
	fmt.Printf("  Duplicates removed: %d\n", stats.DuplicatesRemoved)
	fmt.Printf("  Valid records:      %d\n", stats.ValidRecords)

	if agg.NoData {
		fmt.Println("\nWARNING: no valid records; a generate run would produce an empty report")
	}

	if len(agg.Aging) > 0 && !agg.NoData {
		fmt.Println("\nAging breakdown:")
		for _, bucket := range agg.Aging {
			fmt.Printf("  %-12s %d line(s), %d unit(s)\n",
				bucket.Bucket.Label+":", bucket.Lines, bucket.TotalQuantity)
		}
	}

	if len(stats.Issues) == 0 {
		fmt.Println("\nNo validation issues found")
		return nil
	}

	fmt.Printf("\nValidation issues (%d):\n", len(stats.Issues))
	for i, issue := range stats.Issues {
		if i >= maxIssuesPrinted {
			fmt.Printf("  ... and %d more\n", len(stats.Issues)-maxIssuesPrinted)
			break
		}
		fmt.Printf("  %s\n", issue.String())
	}

	return nil
}
