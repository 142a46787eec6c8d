// =============================================================================
// Back Order Report Generator - Report Assembler
// =============================================================================
//
// Composes the set of sheets and chart specs for the requested tier from the
// aggregation outputs. The tier -> content mapping is fixed:
//
//   standard: Summary, By Item, By Customer*, Aging Analysis, Charts
//   detailed: standard + By Supplier*, By Date, By Category*, Raw Data
//   summary:  Summary, Charts
//
//   * only when the corresponding optional column resolved; unavailable
//     dimensions are omitted, never an error.
//
// The assembler never fails on data shape. Its only error is an
// UnsupportedTierError for an unrecognized tier name, raised before any
// output is written.
//
// =============================================================================

package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/backorder-report-generator/internal/engine"
)

// Options controls assembly.
type Options struct {
	// IncludeCharts adds the Charts sheet and its chart specs.
	IncludeCharts bool

	// MaxChartItems caps the number of rows fed into each bar chart.
	MaxChartItems int
}

// Assemble builds the report for a tier from the aggregation outputs.
func Assemble(tier Tier, agg *engine.Aggregates, now time.Time, opts Options) (*Report, error) {
	switch tier {
	case TierStandard, TierDetailed, TierSummary:
	default:
		return nil, &UnsupportedTierError{Name: string(tier)}
	}

	if opts.MaxChartItems <= 0 {
		opts.MaxChartItems = 10
	}

	rpt := &Report{
		Tier:        tier,
		GeneratedAt: now,
		NoData:      agg.NoData,
	}

	rpt.Sheets = append(rpt.Sheets, summarySheet(agg, opts))

	if tier != TierSummary {
		rpt.Sheets = append(rpt.Sheets, groupSheet("By Item", "Back Orders by Item", "Item Code", agg.ByItem, agg.NoData))

		if agg.ByCustomer != nil {
			rpt.Sheets = append(rpt.Sheets, groupSheet("By Customer", "Back Orders by Customer", "Customer", agg.ByCustomer, agg.NoData))
		}

		rpt.Sheets = append(rpt.Sheets, agingSheet(agg))
	}

	if tier == TierDetailed {
		if agg.BySupplier != nil {
			rpt.Sheets = append(rpt.Sheets, groupSheet("By Supplier", "Back Orders by Supplier", "Supplier", agg.BySupplier, agg.NoData))
		}

		rpt.Sheets = append(rpt.Sheets, groupSheet("By Date", "Back Orders by Month", "Month", agg.ByMonth, agg.NoData))

		if agg.ByCategory != nil {
			rpt.Sheets = append(rpt.Sheets, groupSheet("By Category", "Back Orders by Category", "Category", agg.ByCategory, agg.NoData))
		}

		rpt.Sheets = append(rpt.Sheets, rawDataSheet(agg))
	}

	if opts.IncludeCharts {
		rpt.Sheets = append(rpt.Sheets, Sheet{
			Name:  "Charts",
			Title: "Back Order Analysis Charts",
		})
		rpt.Charts = buildCharts(agg, opts.MaxChartItems)
	}

	return rpt, nil
}

// =============================================================================
// SHEET BUILDERS
// =============================================================================

// summarySheet builds the Summary sheet: the statistics block plus the top
// items by quantity.
func summarySheet(agg *engine.Aggregates, opts Options) Sheet {
	s := agg.Summary

	metrics := Table{
		Columns: []string{"Metric", "Value"},
	}

	if agg.NoData {
		metrics.Rows = append(metrics.Rows, []interface{}{"Total Lines", 0})
		metrics.Rows = append(metrics.Rows, []interface{}{"Status", "No data available"})
	} else {
		metrics.Rows = append(metrics.Rows,
			[]interface{}{"Total Lines", s.TotalLines},
			[]interface{}{"Unique Items", s.UniqueItems},
			[]interface{}{"Total Quantity", s.TotalQuantity},
			[]interface{}{"Avg Quantity", decimalCell(s.AvgQuantity)},
		)
		if s.HasValue {
			metrics.Rows = append(metrics.Rows,
				[]interface{}{"Total Value", decimalCell(s.TotalValue)},
				[]interface{}{"Avg Value", decimalCell(s.AvgValue)},
			)
		}
		if s.HasCustomers {
			metrics.Rows = append(metrics.Rows, []interface{}{"Unique Customers", s.UniqueCustomers})
		}
	}

	sheet := Sheet{
		Name:   "Summary",
		Title:  "Back Order Report Summary",
		Tables: []Table{metrics},
	}

	if len(agg.ByItem) > 0 {
		top := agg.ByItem
		if len(top) > opts.MaxChartItems {
			top = top[:opts.MaxChartItems]
		}
		table := groupTable("Item Code", top)
		table.Heading = "Top Items by Quantity"
		sheet.Tables = append(sheet.Tables, table)
	}

	return sheet
}

// groupSheet builds a one-table sheet for a grouped dimension.
func groupSheet(name, title, keyLabel string, groups []engine.GroupedSummary, noData bool) Sheet {
	table := groupTable(keyLabel, groups)
	if noData {
		table.Rows = nil
	}
	return Sheet{
		Name:   name,
		Title:  title,
		Tables: []Table{table},
	}
}

// groupTable renders grouped summaries as a table. The Total Value column
// appears only when at least one group carries values.
func groupTable(keyLabel string, groups []engine.GroupedSummary) Table {
	hasValue := false
	for i := range groups {
		if groups[i].HasValue {
			hasValue = true
			break
		}
	}

	table := Table{
		Columns: []string{keyLabel, "Order Lines", "Total Quantity", "Unique Items"},
	}
	if hasValue {
		table.Columns = append(table.Columns, "Total Value")
	}

	for i := range groups {
		g := &groups[i]
		row := []interface{}{g.Key, g.Lines, g.TotalQuantity, g.UniqueItems}
		if hasValue {
			row = append(row, decimalCell(g.TotalValue))
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// agingSheet builds the Aging Analysis sheet. The sheet is always present
// for standard and detailed tiers; on a no-data run it is present but empty.
func agingSheet(agg *engine.Aggregates) Sheet {
	table := Table{
		Columns: []string{"Age Bucket", "Order Lines", "Total Quantity", "Unique Items"},
	}

	if !agg.NoData {
		for _, bucket := range agg.Aging {
			table.Rows = append(table.Rows, []interface{}{
				bucket.Bucket.Label,
				bucket.Lines,
				bucket.TotalQuantity,
				bucket.UniqueItems,
			})
		}
	}

	return Sheet{
		Name:   "Aging Analysis",
		Title:  "Back Order Aging Analysis",
		Tables: []Table{table},
	}
}

// rawDataSheet lists every canonical record in sorted order. Optional
// columns appear only when the corresponding field resolved for the run.
func rawDataSheet(agg *engine.Aggregates) Sheet {
	hasCustomer := agg.ByCustomer != nil
	hasSupplier := agg.BySupplier != nil
	hasCategory := agg.ByCategory != nil
	hasValue := agg.Summary.HasValue

	columns := []string{"Row", "Item Code", "Quantity", "Order Date"}
	if hasCustomer {
		columns = append(columns, "Customer")
	}
	if hasSupplier {
		columns = append(columns, "Supplier")
	}
	if hasCategory {
		columns = append(columns, "Category")
	}
	columns = append(columns, "Expected Date")
	if hasValue {
		columns = append(columns, "Unit Price", "Line Value")
	}

	table := Table{Columns: columns}

	for i := range agg.Records {
		rec := &agg.Records[i]

		row := []interface{}{rec.Row, rec.ItemCode, rec.Quantity, rec.OrderDate.Format("2006-01-02")}
		if hasCustomer {
			row = append(row, rec.Customer)
		}
		if hasSupplier {
			row = append(row, rec.Supplier)
		}
		if hasCategory {
			row = append(row, rec.Category)
		}

		expected := ""
		if rec.ExpectedDate != nil {
			expected = rec.ExpectedDate.Format("2006-01-02")
		}
		row = append(row, expected)

		if hasValue {
			if rec.UnitPrice != nil {
				value, _ := rec.LineValue()
				row = append(row, decimalCell(*rec.UnitPrice), decimalCell(value))
			} else {
				row = append(row, "", "")
			}
		}

		table.Rows = append(table.Rows, row)
	}

	return Sheet{
		Name:   "Raw Data",
		Title:  "Raw Back Order Data",
		Tables: []Table{table},
	}
}

// =============================================================================
// CHART BUILDERS
// =============================================================================

// buildCharts derives the chart specs from the aggregation outputs: top
// items and top customers as bar charts, aging buckets as a pie chart.
// Charts whose source data is empty are omitted.
func buildCharts(agg *engine.Aggregates, maxItems int) []ChartSpec {
	var charts []ChartSpec

	if spec, ok := groupChart(ChartBar, "Top Items by Quantity", "Item Code", agg.ByItem, maxItems); ok {
		charts = append(charts, spec)
	}
	if spec, ok := groupChart(ChartBar, "Top Customers by Quantity", "Customer", agg.ByCustomer, maxItems); ok {
		charts = append(charts, spec)
	}

	var categories []string
	var values []float64
	for _, bucket := range agg.Aging {
		if bucket.Lines == 0 {
			continue
		}
		categories = append(categories, bucket.Bucket.Label)
		values = append(values, float64(bucket.TotalQuantity))
	}
	if len(categories) > 0 {
		charts = append(charts, ChartSpec{
			Kind:          ChartPie,
			Title:         "Back Orders by Age",
			CategoryLabel: "Age Bucket",
			ValueLabel:    "Total Quantity",
			Categories:    categories,
			Values:        values,
		})
	}

	return charts
}

// groupChart turns the top N groups of a dimension into a chart spec.
func groupChart(kind ChartKind, title, categoryLabel string, groups []engine.GroupedSummary, maxItems int) (ChartSpec, bool) {
	if len(groups) == 0 {
		return ChartSpec{}, false
	}
	if len(groups) > maxItems {
		groups = groups[:maxItems]
	}

	spec := ChartSpec{
		Kind:          kind,
		Title:         title,
		CategoryLabel: categoryLabel,
		ValueLabel:    "Total Quantity",
	}
	for i := range groups {
		spec.Categories = append(spec.Categories, groups[i].Key)
		spec.Values = append(spec.Values, float64(groups[i].TotalQuantity))
	}
	return spec, true
}

// decimalCell converts a decimal into a numeric cell value.
func decimalCell(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
