package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/backorder-report-generator/internal/ingest"
)

func TestNormalizeFullRow(t *testing.T) {
	columns := ColumnMap{
		FieldItemCode:     "Item Code",
		FieldQuantity:     "Qty",
		FieldOrderDate:    "Order Date",
		FieldCustomer:     "Customer",
		FieldUnitPrice:    "Unit Price",
		FieldExpectedDate: "Expected Date",
		FieldOrderNumber:  "Order #",
	}
	n := NewNormalizer(columns)

	rec := n.Normalize(ingest.RawRecord{
		Number: 5,
		Values: map[string]string{
			"Item Code":     "  A100  ",
			"Qty":           "5.0",
			"Order Date":    "01/15/2026",
			"Customer":      "Acme Corp",
			"Unit Price":    "$1,234.567",
			"Expected Date": "2026-02-01",
			"Order #":       "10042",
		},
	}, 3)

	assert.Equal(t, 3, rec.Seq)
	assert.Equal(t, 5, rec.Row)
	assert.Equal(t, "A100", rec.ItemCode)
	assert.Equal(t, 5, rec.Quantity)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), rec.OrderDate)
	assert.Equal(t, "Acme Corp", rec.Customer)
	assert.Equal(t, "10042", rec.OrderNumber)

	require.NotNil(t, rec.ExpectedDate)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *rec.ExpectedDate)

	// Prices round to two places on the way in.
	require.NotNil(t, rec.UnitPrice)
	assert.Equal(t, "1234.57", rec.UnitPrice.String())
}

func TestNormalizeClampsAndDrops(t *testing.T) {
	columns := ColumnMap{
		FieldItemCode:     "Item",
		FieldQuantity:     "Qty",
		FieldOrderDate:    "Date",
		FieldUnitPrice:    "Price",
		FieldExpectedDate: "Due",
	}
	n := NewNormalizer(columns)

	rec := n.Normalize(ingest.RawRecord{
		Number: 2,
		Values: map[string]string{
			"Item":  "A100",
			"Qty":   "-4",
			"Date":  "2026-01-15",
			"Price": "not a price",
			"Due":   "whenever",
		},
	}, 0)

	assert.Equal(t, 0, rec.Quantity)
	assert.Nil(t, rec.UnitPrice)
	assert.Nil(t, rec.ExpectedDate)
}

func TestLineValue(t *testing.T) {
	price := decimal.RequireFromString("2.50")
	rec := CanonicalRecord{Quantity: 3, UnitPrice: &price}

	value, ok := rec.LineValue()
	assert.True(t, ok)
	assert.Equal(t, "7.5", value.String())

	_, ok = (&CanonicalRecord{Quantity: 3}).LineValue()
	assert.False(t, ok)
}

func TestDedupe(t *testing.T) {
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	records := []CanonicalRecord{
		{Seq: 0, ItemCode: "A100", Quantity: 5, OrderDate: date, Customer: "Acme"},
		{Seq: 1, ItemCode: "A100", Quantity: 5, OrderDate: date, Customer: "Acme"},
		{Seq: 2, ItemCode: "A100", Quantity: 3, OrderDate: date, Customer: "Acme"},
		{Seq: 3, ItemCode: "A100", Quantity: 5, OrderDate: date, Customer: "Beta"},
		{Seq: 4, ItemCode: "a100", Quantity: 5, OrderDate: date, Customer: "Acme"},
	}

	kept, dropped := Dedupe(records)

	// Only the exact repeat collapses; quantity, customer and casing
	// differences all keep records distinct.
	assert.Equal(t, 1, dropped)
	require.Len(t, kept, 4)
	assert.Equal(t, []int{0, 2, 3, 4}, keptSeqs(kept))
}

func TestDedupeIsIdempotent(t *testing.T) {
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	records := []CanonicalRecord{
		{Seq: 0, ItemCode: "A100", Quantity: 5, OrderDate: date},
		{Seq: 1, ItemCode: "A100", Quantity: 5, OrderDate: date},
		{Seq: 2, ItemCode: "B200", Quantity: 2, OrderDate: date},
	}

	once, dropped := Dedupe(records)
	assert.Equal(t, 1, dropped)

	twice, dropped := Dedupe(once)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, once, twice)
}

func keptSeqs(records []CanonicalRecord) []int {
	seqs := make([]int, len(records))
	for i, rec := range records {
		seqs[i] = rec.Seq
	}
	return seqs
}
