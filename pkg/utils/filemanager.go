// =============================================================================
// Back Order Report Generator - File Manager Utility
// =============================================================================
//
// File utilities shared by the CLI commands:
//   - Output workbook naming (timestamped, collision-free)
//   - Directory preparation
//   - Run summary log generation
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// defaultOutputFormat is the workbook name pattern used when no explicit
// output path is given. The short UUID keeps repeated runs within the same
// second from colliding.
const defaultOutputFormat = "backorder_report_{timestamp}_{uuid}.xlsx"

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name from a format string.
//
// Placeholders:
//
//	{uuid}      - first 8 characters of a random UUID
//	{timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//	{date}      - current date (YYYYMMDD)
//	{time}      - current time (HHMMSS)
//
// Additional placeholders come from params. The .xlsx extension is appended
// when missing.
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	id := uuid.New().String()[:8]

	replacements := map[string]string{
		"{uuid}":      id,
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".xlsx") {
		result += ".xlsx"
	}

	return result
}

// DefaultOutputPath builds the default workbook path for an input file:
// the standard name pattern, placed in the input file's directory.
func DefaultOutputPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	return filepath.Join(dir, GenerateOutputFileName(defaultOutputFormat, nil))
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureParentDir creates the parent directory of path if it doesn't exist.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// RUN SUMMARY LOG
// =============================================================================

// RunSummary contains summary information about a generation run, written
// next to the workbook when summary logging is requested.
type RunSummary struct {
	InputFile         string
	OutputFile        string
	ReportType        string
	StartTime         time.Time
	Duration          time.Duration
	RowsRead          int
	RowsSkipped       int
	DuplicatesRemoved int
	ValidRecords      int
	Issues            []string
	BucketCounts      map[string]int
}

// WriteSummaryLog writes the run summary to a text file next to the output
// workbook and returns the log path.
func WriteSummaryLog(summary RunSummary) (string, error) {
	base := strings.TrimSuffix(summary.OutputFile, filepath.Ext(summary.OutputFile))
	logPath := base + "_summary.txt"

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	header := fmt.Sprintf("Back Order Report Generator - Run Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Input File:   %s\n"+
		"  Output File:  %s\n"+
		"  Report Type:  %s\n"+
		"  Start Time:   %s\n"+
		"  Duration:     %s\n\n"+
		"Statistics:\n"+
		"  Rows Read:          %d\n"+
		"  Rows Skipped:       %d\n"+
		"  Duplicates Removed: %d\n"+
		"  Valid Records:      %d\n\n",
		summary.InputFile,
		summary.OutputFile,
		summary.ReportType,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.Duration.String(),
		summary.RowsRead,
		summary.RowsSkipped,
		summary.DuplicatesRemoved,
		summary.ValidRecords)
	writer.WriteString(header)

	if len(summary.BucketCounts) > 0 {
		writer.WriteString("Aging Breakdown:\n")
		labels := make([]string, 0, len(summary.BucketCounts))
		for label := range summary.BucketCounts {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			writer.WriteString(fmt.Sprintf("  %-12s %d\n", label+":", summary.BucketCounts[label]))
		}
		writer.WriteString("\n")
	}

	if len(summary.Issues) > 0 {
		writer.WriteString(fmt.Sprintf("Validation Issues (%d):\n", len(summary.Issues)))
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, issue := range summary.Issues {
			writer.WriteString("  " + issue + "\n")
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary log: %w", err)
	}

	return logPath, nil
}
