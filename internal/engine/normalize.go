// =============================================================================
// Back Order Report Generator - Record Normalizer
// =============================================================================
//
// Converts validated raw rows into CanonicalRecords: dates to time.Time,
// quantity to int, unit price to decimal with two-place rounding, string
// fields whitespace-trimmed with their casing preserved. Optionally collapses
// duplicates, keeping the first occurrence by input order.
//
// CanonicalRecords are immutable once built and feed the aggregation engine.
//
// =============================================================================

package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/backorder-report-generator/internal/ingest"
)

// =============================================================================
// CANONICAL RECORD
// =============================================================================

// CanonicalRecord is one back-order line in canonical form. Every
// CanonicalRecord has passed validation: Quantity >= 0 and OrderDate is a
// real date.
type CanonicalRecord struct {
	// Seq is the 0-based position in input order, used as the stable
	// tie-break for sorting.
	Seq int

	// Row is the 1-based source row number, headers included.
	Row int

	// Required fields.
	ItemCode  string
	Quantity  int
	OrderDate time.Time

	// Optional fields; zero values mean "not present in the input".
	Customer     string
	Supplier     string
	Category     string
	OrderNumber  string
	Dock         string
	ExpectedDate *time.Time
	UnitPrice    *decimal.Decimal
}

// LineValue returns Quantity x UnitPrice rounded to two places, and whether
// the record carries a price at all.
func (r *CanonicalRecord) LineValue() (decimal.Decimal, bool) {
	if r.UnitPrice == nil {
		return decimal.Zero, false
	}
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity))).Round(2), true
}

// =============================================================================
// NORMALIZER
// =============================================================================

// Normalizer builds CanonicalRecords from validated rows.
type Normalizer struct {
	columns ColumnMap
}

// NewNormalizer creates a Normalizer for one run.
func NewNormalizer(columns ColumnMap) *Normalizer {
	return &Normalizer{columns: columns}
}

// Normalize converts a validated raw row into a CanonicalRecord.
//
// The row must already have passed the Validator for the same mode; values
// that fail to parse here are optional ones the lenient mode agreed to drop.
// Negative quantities (lenient mode only) are clamped to zero.
func (n *Normalizer) Normalize(row ingest.RawRecord, seq int) CanonicalRecord {
	rec := CanonicalRecord{
		Seq:      seq,
		Row:      row.Number,
		ItemCode: strings.TrimSpace(n.columns.Value(row.Values, FieldItemCode)),
	}

	if qty, ok := parseQuantity(n.columns.Value(row.Values, FieldQuantity)); ok {
		if qty < 0 {
			qty = 0
		}
		rec.Quantity = qty
	}

	if date, ok := parseDate(n.columns.Value(row.Values, FieldOrderDate)); ok {
		rec.OrderDate = date
	}

	rec.Customer = strings.TrimSpace(n.columns.Value(row.Values, FieldCustomer))
	rec.Supplier = strings.TrimSpace(n.columns.Value(row.Values, FieldSupplier))
	rec.Category = strings.TrimSpace(n.columns.Value(row.Values, FieldCategory))
	rec.OrderNumber = strings.TrimSpace(n.columns.Value(row.Values, FieldOrderNumber))
	rec.Dock = strings.TrimSpace(n.columns.Value(row.Values, FieldDock))

	if value := n.columns.Value(row.Values, FieldExpectedDate); value != "" {
		if date, ok := parseDate(value); ok {
			rec.ExpectedDate = &date
		}
	}

	if value := n.columns.Value(row.Values, FieldUnitPrice); value != "" {
		if price, ok := parsePrice(value); ok && !price.IsNegative() {
			rounded := price.Round(2)
			rec.UnitPrice = &rounded
		}
	}

	return rec
}

// =============================================================================
// DUPLICATE REMOVAL
// =============================================================================

// Dedupe removes duplicate records, keeping the first occurrence by input
// order. Two records are duplicates when item code, order date, customer and
// quantity are all equal. Returns the surviving records and the number
// dropped.
//
// Dedupe is idempotent: running it on already-deduplicated records drops
// nothing.
func Dedupe(records []CanonicalRecord) ([]CanonicalRecord, int) {
	seen := make(map[string]bool, len(records))
	kept := make([]CanonicalRecord, 0, len(records))
	dropped := 0

	for _, rec := range records {
		key := strings.Join([]string{
			rec.ItemCode,
			rec.OrderDate.Format("2006-01-02"),
			rec.Customer,
			strconv.Itoa(rec.Quantity),
		}, "\x1f")

		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true
		kept = append(kept, rec)
	}

	return kept, dropped
}
