// =============================================================================
// Back Order Report Generator - Sort Resolver
// =============================================================================
//
// The user interface exposes four sort checkboxes: ORDER #, DOCK, SALESMAN
// and DUE DATE. Exactly one active option determines the sort key; any other
// combination (none or several) falls back to ORDER #. Resolution is a pure,
// total function - it always returns a valid field and has no error path.
//
// =============================================================================

package engine

import (
	"sort"
	"strconv"
	"strings"
)

// =============================================================================
// SORT PREFERENCE
// =============================================================================

// SortField is the effective canonical field the record listing is sorted by.
type SortField string

const (
	// SortByOrderNumber orders by order number, numerically where possible.
	// Records without an order number keep their input order.
	SortByOrderNumber SortField = "order_number"

	// SortByDock orders by the dock / routing field.
	SortByDock SortField = "dock"

	// SortBySalesman orders by the customer / salesman field.
	SortBySalesman SortField = "customer"

	// SortByDueDate orders by the expected (due) date.
	SortByDueDate SortField = "expected_date"
)

// SortPreference is the set of user-selected sort options.
type SortPreference struct {
	OrderNumber bool
	Dock        bool
	Salesman    bool
	DueDate     bool
}

// Resolve returns the single effective sort field. Exactly one active option
// selects its field; zero or multiple active options default to ORDER #.
func (p SortPreference) Resolve() SortField {
	active := 0
	choice := SortByOrderNumber

	if p.OrderNumber {
		active++
		choice = SortByOrderNumber
	}
	if p.Dock {
		active++
		choice = SortByDock
	}
	if p.Salesman {
		active++
		choice = SortBySalesman
	}
	if p.DueDate {
		active++
		choice = SortByDueDate
	}

	if active != 1 {
		return SortByOrderNumber
	}
	return choice
}

// =============================================================================
// RECORD SORTING
// =============================================================================

// SortRecords stably sorts records on the effective field. Ties and records
// missing the field keep their original input order. Order numbers compare
// numerically when both sides are numeric; non-numeric order numbers sort
// after numeric ones, matching the legacy report.
func SortRecords(records []CanonicalRecord, field SortField) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]

		switch field {
		case SortByOrderNumber:
			return lessOrderNumber(a.OrderNumber, b.OrderNumber)

		case SortByDock:
			return lessString(a.Dock, b.Dock)

		case SortBySalesman:
			return lessString(a.Customer, b.Customer)

		case SortByDueDate:
			switch {
			case a.ExpectedDate == nil:
				return false
			case b.ExpectedDate == nil:
				return true
			default:
				return a.ExpectedDate.Before(*b.ExpectedDate)
			}

		default:
			return false
		}
	})
}

// lessString compares case-insensitively; empty values sort last.
func lessString(a, b string) bool {
	switch {
	case a == "":
		return false
	case b == "":
		return true
	default:
		return strings.ToLower(a) < strings.ToLower(b)
	}
}

// lessOrderNumber compares numerically when both values parse as integers,
// otherwise numerics before non-numerics, otherwise plain string order.
// Empty values sort last.
func lessOrderNumber(a, b string) bool {
	if a == "" || b == "" {
		return a != "" && b == ""
	}

	va, errA := strconv.ParseInt(a, 10, 64)
	vb, errB := strconv.ParseInt(b, 10, 64)

	switch {
	case errA == nil && errB == nil:
		return va < vb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
