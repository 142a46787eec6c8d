// =============================================================================
// Back Order Report Generator - Report Model
// =============================================================================
//
// Types describing an assembled report: the tier, the ordered sheets with
// their tabular content, and the chart specs. The assembler produces these;
// the output sink renders them. Nothing in this package touches the
// spreadsheet library.
//
// =============================================================================

package report

import (
	"fmt"
	"time"
)

// =============================================================================
// TIERS
// =============================================================================

// Tier is the named level of report detail.
type Tier string

const (
	// TierStandard: Summary, By Item, By Customer, Aging Analysis, Charts.
	TierStandard Tier = "standard"

	// TierDetailed: everything in standard plus By Supplier, By Date,
	// By Category and Raw Data.
	TierDetailed Tier = "detailed"

	// TierSummary: Summary and Charts only.
	TierSummary Tier = "summary"
)

// UnsupportedTierError indicates an unrecognized tier name was supplied.
// This is a configuration error, not a data error.
type UnsupportedTierError struct {
	// Name is the tier string that failed to parse.
	Name string
}

// Error implements the error interface.
func (e *UnsupportedTierError) Error() string {
	return fmt.Sprintf("unsupported report type %q (expected standard, detailed or summary)", e.Name)
}

// ParseTier validates a tier name.
func ParseTier(name string) (Tier, error) {
	switch Tier(name) {
	case TierStandard, TierDetailed, TierSummary:
		return Tier(name), nil
	default:
		return "", &UnsupportedTierError{Name: name}
	}
}

// =============================================================================
// SHEET CONTENT
// =============================================================================

// Table is one block of tabular content within a sheet.
type Table struct {
	// Heading is an optional bold line above the table.
	Heading string

	// Columns are the header cells.
	Columns []string

	// Rows hold the cell values. Numeric values stay numeric so the sink
	// writes real numbers into the workbook.
	Rows [][]interface{}
}

// Sheet is one worksheet of the assembled report.
type Sheet struct {
	// Name is the worksheet tab name.
	Name string

	// Title is the headline written at the top of the sheet.
	Title string

	// Tables are the content blocks, rendered in order.
	Tables []Table
}

// =============================================================================
// CHARTS
// =============================================================================

// ChartKind selects the chart rendering.
type ChartKind string

const (
	ChartBar ChartKind = "bar"
	ChartPie ChartKind = "pie"
)

// ChartSpec describes one chart on the Charts sheet: the kind, the source
// summary data and its dimension labels. The sink decides layout.
type ChartSpec struct {
	Kind          ChartKind
	Title         string
	CategoryLabel string
	ValueLabel    string
	Categories    []string
	Values        []float64
}

// =============================================================================
// REPORT
// =============================================================================

// Report is the fully assembled output, ready for the sink.
type Report struct {
	// Tier the report was assembled for.
	Tier Tier

	// GeneratedAt is stamped onto every sheet.
	GeneratedAt time.Time

	// Sheets in render order. The Charts sheet, when present, is the sheet
	// named "Charts" and carries no tables of its own.
	Sheets []Sheet

	// Charts to render on the Charts sheet, in order.
	Charts []ChartSpec

	// NoData is set when the run produced zero valid records.
	NoData bool
}

// SheetNames returns the ordered worksheet names, for logs and tests.
func (r *Report) SheetNames() []string {
	names := make([]string, len(r.Sheets))
	for i, sheet := range r.Sheets {
		names[i] = sheet.Name
	}
	return names
}
