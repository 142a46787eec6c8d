// =============================================================================
// Back Order Report Generator - Data Validator
// =============================================================================
//
// Row-level validation of ingested data against the resolved column mapping.
//
// ERROR HANDLING:
//   - Issues are collected, not thrown. The validator never fails the whole
//     file; invalid rows are excluded and counted by the caller.
//   - Each issue carries the originating row number, the canonical field and
//     a human-readable message.
//
// MODES:
//   Strict (validate_data=true): any issue skips the row.
//   Lenient: type/format issues on optional values are demoted to best-effort
//   coercion with a logged warning. A missing required value still skips the
//   row in both modes, as does a required value no coercion can save - a
//   record without a parsable order date or quantity can never satisfy the
//   canonical invariants.
//
// =============================================================================

package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/backorder-report-generator/internal/ingest"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// IssueKind classifies a validation issue.
type IssueKind string

const (
	// MissingValue: a required field is empty.
	MissingValue IssueKind = "missing_value"

	// TypeMismatch: a value could not be parsed as its field's type.
	TypeMismatch IssueKind = "type_mismatch"

	// OutOfRange: a value parsed but violates a range constraint
	// (negative quantity, negative unit price).
	OutOfRange IssueKind = "out_of_range"
)

// ValidationIssue describes one problem found in one row. Issues are data,
// not errors: they are collected into the run statistics.
type ValidationIssue struct {
	// Kind classifies the issue.
	Kind IssueKind

	// Row is the 1-based source row number, headers included.
	Row int

	// Field is the canonical field the issue concerns.
	Field Field

	// Message is a human-readable description.
	Message string
}

// String renders the issue for logs and summary output.
func (i ValidationIssue) String() string {
	return fmt.Sprintf("row %d, field %s: %s", i.Row, i.Field, i.Message)
}

// =============================================================================
// ACCEPTED DATE FORMATS
// =============================================================================

// dateFormats are the accepted input date layouts: ISO, US slash dates, and
// text month forms.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"20060102",
}

// parseDate tries each accepted format in order.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks raw rows against the resolved column mapping.
type Validator struct {
	columns ColumnMap
	strict  bool
	logger  Logger
}

// NewValidator creates a Validator for one run.
func NewValidator(columns ColumnMap, strict bool, logger Logger) *Validator {
	return &Validator{columns: columns, strict: strict, logger: logger}
}

// Check validates a single raw row. It returns the issues found and whether
// the row survives into normalization under the validator's mode.
func (v *Validator) Check(row ingest.RawRecord) ([]ValidationIssue, bool) {
	var issues []ValidationIssue
	fatal := false

	issue := func(kind IssueKind, field Field, format string, args ...interface{}) {
		issues = append(issues, ValidationIssue{
			Kind:    kind,
			Row:     row.Number,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	// =========================================================================
	// REQUIRED FIELDS
	// =========================================================================

	itemCode := v.columns.Value(row.Values, FieldItemCode)
	if itemCode == "" {
		issue(MissingValue, FieldItemCode, "required field is empty")
		fatal = true
	}

	quantity := v.columns.Value(row.Values, FieldQuantity)
	switch {
	case quantity == "":
		issue(MissingValue, FieldQuantity, "required field is empty")
		fatal = true
	default:
		if qty, ok := parseQuantity(quantity); !ok {
			issue(TypeMismatch, FieldQuantity, "value %q is not a valid integer", quantity)
			// Lenient mode cannot manufacture a quantity out of garbage.
			fatal = true
		} else if qty < 0 {
			issue(OutOfRange, FieldQuantity, "quantity %d is negative", qty)
			if v.strict {
				fatal = true
			} else {
				v.logger.Warn("row %d: clamping negative quantity %d to 0", row.Number, qty)
			}
		}
	}

	orderDate := v.columns.Value(row.Values, FieldOrderDate)
	switch {
	case orderDate == "":
		issue(MissingValue, FieldOrderDate, "required field is empty")
		fatal = true
	default:
		if _, ok := parseDate(orderDate); !ok {
			issue(TypeMismatch, FieldOrderDate, "value %q is not a valid date", orderDate)
			fatal = true
		}
	}

	// =========================================================================
	// OPTIONAL FIELDS
	// =========================================================================
	// Bad optional values never skip a row on their own in lenient mode;
	// the normalizer simply drops them.

	if price := v.columns.Value(row.Values, FieldUnitPrice); price != "" {
		if parsed, ok := parsePrice(price); !ok {
			issue(TypeMismatch, FieldUnitPrice, "value %q is not a valid decimal", price)
			if !v.strict {
				v.logger.Warn("row %d: dropping unparsable unit price %q", row.Number, price)
			}
		} else if parsed.IsNegative() {
			issue(OutOfRange, FieldUnitPrice, "unit price %s is negative", parsed)
			if !v.strict {
				v.logger.Warn("row %d: dropping negative unit price %s", row.Number, parsed)
			}
		}
	}

	if expected := v.columns.Value(row.Values, FieldExpectedDate); expected != "" {
		if _, ok := parseDate(expected); !ok {
			issue(TypeMismatch, FieldExpectedDate, "value %q is not a valid date", expected)
			if !v.strict {
				v.logger.Warn("row %d: dropping unparsable expected date %q", row.Number, expected)
			}
		}
	}

	if v.strict {
		return issues, len(issues) == 0
	}
	return issues, !fatal
}

// =============================================================================
// PARSE HELPERS (shared with the normalizer)
// =============================================================================

// parseQuantity parses an integer quantity. Exports sometimes write
// quantities with a decimal point ("5.0") or thousands separators; both are
// accepted when the value is still a whole number.
func parseQuantity(value string) (int, bool) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")

	if n, err := strconv.Atoi(value); err == nil {
		return n, true
	}

	d, err := decimal.NewFromString(value)
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

// parsePrice parses a decimal unit price, tolerating a leading currency
// symbol and thousands separators.
func parsePrice(value string) (decimal.Decimal, bool) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
