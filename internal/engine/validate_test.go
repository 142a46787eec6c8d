package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/backorder-report-generator/internal/ingest"
)

var testColumns = ColumnMap{
	FieldItemCode:     "Item Code",
	FieldQuantity:     "Qty",
	FieldOrderDate:    "Order Date",
	FieldCustomer:     "Customer",
	FieldUnitPrice:    "Unit Price",
	FieldExpectedDate: "Expected Date",
}

func testRow(number int, values map[string]string) ingest.RawRecord {
	return ingest.RawRecord{Number: number, Values: values}
}

func TestValidatorAcceptsCleanRow(t *testing.T) {
	v := NewValidator(testColumns, true, NopLogger{})

	issues, ok := v.Check(testRow(2, map[string]string{
		"Item Code":  "A100",
		"Qty":        "5",
		"Order Date": "2026-01-15",
		"Unit Price": "$1,234.56",
	}))

	assert.True(t, ok)
	assert.Empty(t, issues)
}

func TestValidatorAcceptedDateFormats(t *testing.T) {
	v := NewValidator(testColumns, true, NopLogger{})

	dates := []string{
		"2026-01-15",
		"01/15/2026",
		"2026/01/15",
		"Jan 15, 2026",
		"January 15, 2026",
		"20260115",
	}

	for _, date := range dates {
		t.Run(date, func(t *testing.T) {
			issues, ok := v.Check(testRow(2, map[string]string{
				"Item Code":  "A100",
				"Qty":        "5",
				"Order Date": date,
			}))
			assert.True(t, ok)
			assert.Empty(t, issues)
		})
	}
}

func TestValidatorRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		kind   IssueKind
		field  Field
	}{
		{
			name:   "missing item code",
			values: map[string]string{"Qty": "5", "Order Date": "2026-01-15"},
			kind:   MissingValue,
			field:  FieldItemCode,
		},
		{
			name:   "missing quantity",
			values: map[string]string{"Item Code": "A100", "Order Date": "2026-01-15"},
			kind:   MissingValue,
			field:  FieldQuantity,
		},
		{
			name:   "missing order date",
			values: map[string]string{"Item Code": "A100", "Qty": "5"},
			kind:   MissingValue,
			field:  FieldOrderDate,
		},
		{
			name:   "garbage quantity",
			values: map[string]string{"Item Code": "A100", "Qty": "lots", "Order Date": "2026-01-15"},
			kind:   TypeMismatch,
			field:  FieldQuantity,
		},
		{
			name:   "garbage order date",
			values: map[string]string{"Item Code": "A100", "Qty": "5", "Order Date": "someday"},
			kind:   TypeMismatch,
			field:  FieldOrderDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Required-field failures skip the row in both modes.
			for _, strict := range []bool{true, false} {
				v := NewValidator(testColumns, strict, NopLogger{})

				issues, ok := v.Check(testRow(3, tt.values))
				assert.False(t, ok, "strict=%v", strict)
				require.NotEmpty(t, issues)
				assert.Equal(t, tt.kind, issues[0].Kind)
				assert.Equal(t, tt.field, issues[0].Field)
				assert.Equal(t, 3, issues[0].Row)
			}
		})
	}
}

func TestValidatorNegativeQuantity(t *testing.T) {
	values := map[string]string{
		"Item Code":  "A100",
		"Qty":        "-5",
		"Order Date": "2026-01-15",
	}

	strict := NewValidator(testColumns, true, NopLogger{})
	issues, ok := strict.Check(testRow(2, values))
	assert.False(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, OutOfRange, issues[0].Kind)

	// Lenient mode keeps the row; the normalizer clamps the quantity.
	lenient := NewValidator(testColumns, false, NopLogger{})
	issues, ok = lenient.Check(testRow(2, values))
	assert.True(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, OutOfRange, issues[0].Kind)
}

func TestValidatorOptionalFields(t *testing.T) {
	values := map[string]string{
		"Item Code":     "A100",
		"Qty":           "5",
		"Order Date":    "2026-01-15",
		"Unit Price":    "cheap",
		"Expected Date": "whenever",
	}

	// Strict mode rejects the row on optional garbage.
	strict := NewValidator(testColumns, true, NopLogger{})
	issues, ok := strict.Check(testRow(2, values))
	assert.False(t, ok)
	assert.Len(t, issues, 2)

	// Lenient mode records the issues but keeps the row.
	lenient := NewValidator(testColumns, false, NopLogger{})
	issues, ok = lenient.Check(testRow(2, values))
	assert.True(t, ok)
	assert.Len(t, issues, 2)
}

func TestParseQuantityForms(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"5", 5, true},
		{" 12 ", 12, true},
		{"5.0", 5, true},
		{"1,200", 1200, true},
		{"-3", -3, true},
		{"5.5", 0, false},
		{"many", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseQuantity(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParsePriceForms(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"10.50", "10.5", true},
		{"$10.50", "10.5", true},
		{"$1,234.56", "1234.56", true},
		{"free", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parsePrice(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}
