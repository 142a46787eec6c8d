// =============================================================================
// Back Order Report Generator - XLSX Output Sink
// =============================================================================
//
// Renders an assembled report into one spreadsheet workbook via excelize.
// The sink is deliberately dumb: it renders exactly the sheets, tables and
// chart specs the assembler produced and makes no content decisions of its
// own. Layout per sheet:
//
//   A1    sheet title (bold, 14pt)
//   A2    "Generated on: ..." stamp
//   A4..  content tables, separated by a blank row; headers styled white
//         bold on the report's blue fill when styling is enabled
//
// The Charts sheet receives a small data block per chart plus the anchored
// chart object, matching the legacy report layout.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/backorder-report-generator/internal/report"
)

// headerFillColor is the legacy report's header blue.
const headerFillColor = "366092"

// maxColumnWidth caps auto-adjusted column widths.
const maxColumnWidth = 50

// =============================================================================
// ERRORS
// =============================================================================

// OutputWriteError indicates the destination workbook could not be written.
type OutputWriteError struct {
	// Path is the destination that failed.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write output workbook %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

// =============================================================================
// WRITER
// =============================================================================

// Options controls workbook rendering.
type Options struct {
	// ApplyStyling enables the header font/fill/border styling.
	ApplyStyling bool

	// FreezeHeaderRow freezes rows above the first table's data.
	FreezeHeaderRow bool

	// AutoAdjustColumns sizes columns to their longest value, capped.
	AutoAdjustColumns bool
}

// Writer renders reports into XLSX workbooks.
type Writer struct {
	opts Options
}

// New creates a Writer.
func New(opts Options) *Writer {
	return &Writer{opts: opts}
}

// Write renders the report and saves it at path.
func (w *Writer) Write(rpt *report.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, titleStyle, headingStyle, err := w.makeStyles(f)
	if err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}

	for _, sheet := range rpt.Sheets {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return &OutputWriteError{Path: path, Err: err}
		}

		if sheet.Name == "Charts" {
			if err := w.renderCharts(f, sheet, rpt, headingStyle, titleStyle); err != nil {
				return &OutputWriteError{Path: path, Err: err}
			}
			continue
		}

		if err := w.renderSheet(f, sheet, rpt, headerStyle, titleStyle, headingStyle); err != nil {
			return &OutputWriteError{Path: path, Err: err}
		}
	}

	// Drop excelize's default sheet so the report's first sheet is first.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}

	if err := f.SaveAs(path); err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}

	return nil
}

// makeStyles builds the shared cell styles. Zero style IDs are returned when
// styling is disabled; excelize treats style 0 as unstyled.
func (w *Writer) makeStyles(f *excelize.File) (header, title, heading int, err error) {
	title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return 0, 0, 0, err
	}

	heading, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return 0, 0, 0, err
	}

	if !w.opts.ApplyStyling {
		return 0, title, heading, nil
	}

	header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return 0, 0, 0, err
	}

	return header, title, heading, nil
}

// =============================================================================
// SHEET RENDERING
// =============================================================================

// renderSheet writes the title block and every table of a data sheet.
func (w *Writer) renderSheet(f *excelize.File, sheet report.Sheet, rpt *report.Report, headerStyle, titleStyle, headingStyle int) error {
	if err := w.writeTitle(f, sheet, rpt, titleStyle); err != nil {
		return err
	}

	row := 4
	maxCols := 0
	firstHeaderRow := 0

	for _, table := range sheet.Tables {
		if table.Heading != "" {
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetCellValue(sheet.Name, cell, table.Heading); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet.Name, cell, cell, headingStyle); err != nil {
				return err
			}
			row++
		}

		if firstHeaderRow == 0 {
			firstHeaderRow = row
		}
		if len(table.Columns) > maxCols {
			maxCols = len(table.Columns)
		}

		headers := make([]interface{}, len(table.Columns))
		for i, col := range table.Columns {
			headers[i] = col
		}
		if err := f.SetSheetRow(sheet.Name, fmt.Sprintf("A%d", row), &headers); err != nil {
			return err
		}

		if headerStyle != 0 {
			last, err := excelize.CoordinatesToCellName(len(table.Columns), row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet.Name, fmt.Sprintf("A%d", row), last, headerStyle); err != nil {
				return err
			}
		}
		row++

		if len(table.Rows) == 0 {
			if err := f.SetCellValue(sheet.Name, fmt.Sprintf("A%d", row), "No data available"); err != nil {
				return err
			}
			row += 2
			continue
		}

		for _, dataRow := range table.Rows {
			values := make([]interface{}, len(dataRow))
			copy(values, dataRow)
			if err := f.SetSheetRow(sheet.Name, fmt.Sprintf("A%d", row), &values); err != nil {
				return err
			}
			row++
		}

		// Blank separator between tables.
		row++
	}

	if w.opts.FreezeHeaderRow && firstHeaderRow > 0 {
		topLeft, err := excelize.CoordinatesToCellName(1, firstHeaderRow+1)
		if err != nil {
			return err
		}
		if err := f.SetPanes(sheet.Name, &excelize.Panes{
			Freeze:      true,
			YSplit:      firstHeaderRow,
			TopLeftCell: topLeft,
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}

	if w.opts.AutoAdjustColumns && maxCols > 0 {
		if err := w.autoAdjustColumns(f, sheet, maxCols); err != nil {
			return err
		}
	}

	return nil
}

// writeTitle writes the sheet headline and the generated-on stamp.
func (w *Writer) writeTitle(f *excelize.File, sheet report.Sheet, rpt *report.Report, titleStyle int) error {
	if err := f.SetCellValue(sheet.Name, "A1", sheet.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", "A1", titleStyle); err != nil {
		return err
	}
	stamp := fmt.Sprintf("Generated on: %s", rpt.GeneratedAt.Format("2006-01-02 15:04:05"))
	return f.SetCellValue(sheet.Name, "A2", stamp)
}

// autoAdjustColumns sizes each used column to its longest rendered value.
func (w *Writer) autoAdjustColumns(f *excelize.File, sheet report.Sheet, maxCols int) error {
	widths := make([]int, maxCols)

	for _, table := range sheet.Tables {
		for i, col := range table.Columns {
			if len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
		for _, row := range table.Rows {
			for i, value := range row {
				if i >= maxCols {
					break
				}
				if n := len(fmt.Sprintf("%v", value)); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		adjusted := float64(width + 2)
		if adjusted > maxColumnWidth {
			adjusted = maxColumnWidth
		}
		if err := f.SetColWidth(sheet.Name, name, name, adjusted); err != nil {
			return err
		}
	}

	return nil
}

// =============================================================================
// CHART RENDERING
// =============================================================================

// renderCharts writes the Charts sheet: a data block plus an anchored chart
// object per chart. A chart that fails to render is skipped rather than
// failing the workbook, matching the legacy report's behavior.
func (w *Writer) renderCharts(f *excelize.File, sheet report.Sheet, rpt *report.Report, headingStyle, titleStyle int) error {
	if err := w.writeTitle(f, sheet, rpt, titleStyle); err != nil {
		return err
	}

	if len(rpt.Charts) == 0 {
		return f.SetCellValue(sheet.Name, "A4", "No data available")
	}

	row := 4
	for _, spec := range rpt.Charts {
		headingCell := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(sheet.Name, headingCell, spec.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, headingCell, headingCell, headingStyle); err != nil {
			return err
		}

		dataStart := row + 1
		header := []interface{}{spec.CategoryLabel, spec.ValueLabel}
		if err := f.SetSheetRow(sheet.Name, fmt.Sprintf("A%d", dataStart), &header); err != nil {
			return err
		}
		for i := range spec.Categories {
			values := []interface{}{spec.Categories[i], spec.Values[i]}
			if err := f.SetSheetRow(sheet.Name, fmt.Sprintf("A%d", dataStart+1+i), &values); err != nil {
				return err
			}
		}

		chart := &excelize.Chart{
			Type: chartType(spec.Kind),
			Series: []excelize.ChartSeries{{
				Name: fmt.Sprintf("'%s'!$B$%d", sheet.Name, dataStart),
				Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d",
					sheet.Name, dataStart+1, dataStart+len(spec.Categories)),
				Values: fmt.Sprintf("'%s'!$B$%d:$B$%d",
					sheet.Name, dataStart+1, dataStart+len(spec.Categories)),
			}},
			Title: []excelize.RichTextRun{{Text: spec.Title}},
		}

		// Chart rendering is best-effort; on failure the data block remains.
		_ = f.AddChart(sheet.Name, fmt.Sprintf("D%d", row), chart)

		block := len(spec.Categories) + 3
		if block < 18 {
			block = 18
		}
		row += block
	}

	return nil
}

// chartType maps a chart spec kind onto the excelize chart type.
func chartType(kind report.ChartKind) excelize.ChartType {
	switch kind {
	case report.ChartPie:
		return excelize.Pie
	default:
		return excelize.Col
	}
}
