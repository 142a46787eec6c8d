package xlsxwriter

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/backorder-report-generator/internal/report"
)

func testReport() *report.Report {
	return &report.Report{
		Tier:        report.TierStandard,
		GeneratedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Sheets: []report.Sheet{
			{
				Name:  "Summary",
				Title: "Back Order Report Summary",
				Tables: []report.Table{
					{
						Columns: []string{"Metric", "Value"},
						Rows: [][]interface{}{
							{"Total Lines", 2},
							{"Total Quantity", 8},
						},
					},
					{
						Heading: "Top Items by Quantity",
						Columns: []string{"Item Code", "Order Lines", "Total Quantity", "Unique Items"},
						Rows: [][]interface{}{
							{"A100", 1, 5, 1},
							{"B200", 1, 3, 1},
						},
					},
				},
			},
			{
				Name:  "Charts",
				Title: "Back Order Analysis Charts",
			},
		},
		Charts: []report.ChartSpec{
			{
				Kind:          report.ChartBar,
				Title:         "Top Items by Quantity",
				CategoryLabel: "Item Code",
				ValueLabel:    "Total Quantity",
				Categories:    []string{"A100", "B200"},
				Values:        []float64{5, 3},
			},
		},
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	w := New(Options{ApplyStyling: true, FreezeHeaderRow: true, AutoAdjustColumns: true})
	require.NoError(t, w.Write(testReport(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// The default Sheet1 is gone; report sheets render in order.
	assert.Equal(t, []string{"Summary", "Charts"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Back Order Report Summary", title)

	stamp, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Generated on: 2026-03-01 12:30:00", stamp)

	// First table: header at row 4, data below.
	header, err := f.GetCellValue("Summary", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Metric", header)

	value, err := f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "2", value)

	// Second table follows after a blank separator: heading, header, rows.
	heading, err := f.GetCellValue("Summary", "A8")
	require.NoError(t, err)
	assert.Equal(t, "Top Items by Quantity", heading)

	item, err := f.GetCellValue("Summary", "A10")
	require.NoError(t, err)
	assert.Equal(t, "A100", item)
}

func TestWriteChartsSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	w := New(Options{})
	require.NoError(t, w.Write(testReport(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// The chart's backing data block is written alongside the chart object.
	label, err := f.GetCellValue("Charts", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Item Code", label)

	category, err := f.GetCellValue("Charts", "A6")
	require.NoError(t, err)
	assert.Equal(t, "A100", category)

	value, err := f.GetCellValue("Charts", "B6")
	require.NoError(t, err)
	assert.Equal(t, "5", value)
}

func TestWriteEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	rpt := &report.Report{
		Tier:        report.TierStandard,
		GeneratedAt: time.Now(),
		NoData:      true,
		Sheets: []report.Sheet{
			{
				Name:   "Aging Analysis",
				Title:  "Back Order Aging Analysis",
				Tables: []report.Table{{Columns: []string{"Age Bucket", "Order Lines"}}},
			},
		},
	}

	w := New(Options{})
	require.NoError(t, w.Write(rpt, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	marker, err := f.GetCellValue("Aging Analysis", "A5")
	require.NoError(t, err)
	assert.Equal(t, "No data available", marker)
}

func TestWriteFailsOnBadPath(t *testing.T) {
	w := New(Options{})

	err := w.Write(testReport(), filepath.Join(t.TempDir(), "missing", "deeper", "report.xlsx"))
	require.Error(t, err)

	var writeErr *OutputWriteError
	assert.True(t, errors.As(err, &writeErr))
}
