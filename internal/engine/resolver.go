// =============================================================================
// Back Order Report Generator - Column Resolver
// =============================================================================
//
// Input exports name their columns inconsistently ("SKU", "Item No",
// "product_code", ...). The resolver maps that free-form header row onto the
// fixed canonical fields the engine understands, using a static alias table:
// canonical field -> accepted header keywords. Matching is case-insensitive
// substring matching against the header, first match wins, and each header
// binds at most one canonical field.
//
// Resolution happens exactly once per run and is a pure function of the
// header row plus the alias table.
//
// =============================================================================

package engine

import (
	"fmt"
	"strings"
)

// =============================================================================
// CANONICAL FIELDS
// =============================================================================

// Field identifies one of the canonical semantic columns.
type Field string

const (
	FieldItemCode     Field = "item_code"
	FieldQuantity     Field = "quantity"
	FieldOrderDate    Field = "order_date"
	FieldCustomer     Field = "customer"
	FieldSupplier     Field = "supplier"
	FieldExpectedDate Field = "expected_date"
	FieldUnitPrice    Field = "unit_price"
	FieldCategory     Field = "category"
	FieldOrderNumber  Field = "order_number"
	FieldDock         Field = "dock"
)

// requiredFields must resolve for a run to proceed.
var requiredFields = []Field{FieldItemCode, FieldQuantity, FieldOrderDate}

// optionalFields enrich the report when present but are never mandatory.
var optionalFields = []Field{
	FieldCustomer,
	FieldSupplier,
	FieldExpectedDate,
	FieldUnitPrice,
	FieldCategory,
	FieldOrderNumber,
	FieldDock,
}

// fieldAliases is the static alias table: keywords recognized, in priority
// order, within an input header for each canonical field. Matching is
// case-insensitive substring matching.
var fieldAliases = map[Field][]string{
	FieldItemCode:     {"item", "product", "sku", "part", "code", "id"},
	FieldQuantity:     {"quantity", "qty", "count"},
	FieldOrderDate:    {"order date", "order_date", "date", "created", "timestamp"},
	FieldCustomer:     {"customer", "client", "buyer", "salesman"},
	FieldSupplier:     {"supplier", "vendor", "manufacturer", "mfg"},
	FieldExpectedDate: {"expected", "due", "delivery", "eta"},
	FieldUnitPrice:    {"price", "cost", "value"},
	FieldCategory:     {"category", "type", "class", "group"},
	FieldOrderNumber:  {"order #", "order no", "order_no", "order number"},
	FieldDock:         {"dock", "routing"},
}

// =============================================================================
// ERRORS
// =============================================================================

// MissingRequiredColumnError indicates a required canonical field could not
// be matched against any input header.
type MissingRequiredColumnError struct {
	// Field is the canonical field that failed to resolve.
	Field Field

	// Headers are the input headers that were searched.
	Headers []string
}

// Error implements the error interface.
func (e *MissingRequiredColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in input data (available columns: %s)",
		e.Field, strings.Join(e.Headers, ", "))
}

// =============================================================================
// COLUMN MAP
// =============================================================================

// ColumnMap is the result of resolution: canonical field -> source header.
type ColumnMap map[Field]string

// Has reports whether a canonical field resolved to an input column.
func (m ColumnMap) Has(field Field) bool {
	_, ok := m[field]
	return ok
}

// Value extracts the raw value of a canonical field from an input row.
// Unresolved fields read as the empty string.
func (m ColumnMap) Value(values map[string]string, field Field) string {
	header, ok := m[field]
	if !ok {
		return ""
	}
	return values[header]
}

// =============================================================================
// RESOLUTION
// =============================================================================

// ResolveColumns maps the raw header row onto the canonical fields.
//
// Required fields that cannot be matched produce a
// MissingRequiredColumnError naming the field. Optional fields that cannot
// be matched are simply absent from the returned ColumnMap.
//
// The function is pure: same headers in, same mapping out, regardless of
// header order (each field scans its aliases in priority order).
func ResolveColumns(headers []string) (ColumnMap, error) {
	columns := make(ColumnMap)
	claimed := make(map[string]bool, len(headers))

	resolve := func(field Field) bool {
		for _, alias := range fieldAliases[field] {
			for _, header := range headers {
				if claimed[header] {
					continue
				}
				if strings.Contains(strings.ToLower(header), alias) {
					columns[field] = header
					claimed[header] = true
					return true
				}
			}
		}
		return false
	}

	// Required fields resolve first so an ambiguous header (e.g. "Order
	// Date" containing both "order" and "date") is claimed by the field
	// that cannot do without it.
	for _, field := range requiredFields {
		if !resolve(field) {
			return nil, &MissingRequiredColumnError{Field: field, Headers: headers}
		}
	}

	for _, field := range optionalFields {
		resolve(field)
	}

	return columns, nil
}
