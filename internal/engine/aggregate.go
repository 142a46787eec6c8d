// =============================================================================
// Back Order Report Generator - Aggregation Engine
// =============================================================================
//
// Computes everything the report sheets are built from:
//
//   - the full record listing, stably sorted on the effective sort field
//   - grouped summaries per dimension (item, customer, supplier, category,
//     order month)
//   - overall summary statistics
//   - aging buckets over days outstanding
//
// NUMERIC SEMANTICS:
//   Quantities are integers; monetary totals are summed as decimals so no
//   binary floating point error accumulates across large files.
//
// GROUPING SEMANTICS:
//   Keys are case-insensitive; the first-seen casing is preserved for
//   display. Item/customer/supplier/category groups are ordered by total
//   quantity descending, months chronologically.
//
// Empty input is not an error: it produces empty summaries and sets the
// NoData marker the report assembler consumes.
//
// =============================================================================

package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// GroupedSummary is the aggregate for one distinct key within a dimension.
type GroupedSummary struct {
	// Key is the grouping key in its first-seen casing.
	Key string

	// Lines is the number of back-order lines in the group.
	Lines int

	// TotalQuantity is the summed quantity across the group.
	TotalQuantity int

	// UniqueItems is the number of distinct item codes in the group.
	UniqueItems int

	// TotalValue is the summed line value (quantity x unit price); only
	// meaningful when HasValue is true.
	TotalValue decimal.Decimal

	// HasValue reports whether any line in the group carried a unit price.
	HasValue bool
}

// OverallSummary is the Summary sheet's statistics block.
type OverallSummary struct {
	TotalLines    int
	UniqueItems   int
	TotalQuantity int
	AvgQuantity   decimal.Decimal

	TotalValue decimal.Decimal
	AvgValue   decimal.Decimal
	HasValue   bool

	UniqueCustomers int
	HasCustomers    bool
}

// AgingBucket is a fixed, named range of days outstanding. Bounds are
// inclusive on both ends; MaxDays of -1 means unbounded. The bucket set
// partitions the non-negative integers.
type AgingBucket struct {
	Label   string
	MinDays int
	MaxDays int
}

// agingBuckets is the fixed bucket set.
var agingBuckets = []AgingBucket{
	{Label: "0-7 days", MinDays: 0, MaxDays: 7},
	{Label: "8-14 days", MinDays: 8, MaxDays: 14},
	{Label: "15-30 days", MinDays: 15, MaxDays: 30},
	{Label: "31-60 days", MinDays: 31, MaxDays: 60},
	{Label: "61-90 days", MinDays: 61, MaxDays: 90},
	{Label: "90+ days", MinDays: 91, MaxDays: -1},
}

// Contains reports whether a day count falls in this bucket.
func (b AgingBucket) Contains(days int) bool {
	if days < b.MinDays {
		return false
	}
	return b.MaxDays < 0 || days <= b.MaxDays
}

// AgingSummary is the aggregate for one aging bucket.
type AgingSummary struct {
	Bucket        AgingBucket
	Lines         int
	TotalQuantity int
	UniqueItems   int
}

// Aggregates is the full output of the aggregation engine.
type Aggregates struct {
	// Records is the record listing, sorted on the effective sort field.
	Records []CanonicalRecord

	// SortField is the field Records are sorted by.
	SortField SortField

	// Summary holds the overall statistics.
	Summary OverallSummary

	// Per-dimension groupings. Optional dimensions are nil when the input
	// had no corresponding column.
	ByItem     []GroupedSummary
	ByCustomer []GroupedSummary
	BySupplier []GroupedSummary
	ByCategory []GroupedSummary
	ByMonth    []GroupedSummary

	// Aging holds one entry per bucket, in bucket order, including empty
	// buckets.
	Aging []AgingSummary

	// RunDate is the date aging was computed against.
	RunDate time.Time

	// NoData is set when zero valid records reached aggregation.
	NoData bool
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Aggregate computes all groupings, summary statistics and aging buckets for
// the given records. The columns map decides which optional dimensions exist
// at all: a dimension whose column never resolved is nil in the result even
// if that distinction matters only to the detailed tier.
func Aggregate(records []CanonicalRecord, columns ColumnMap, sortField SortField, runDate time.Time) *Aggregates {
	sorted := make([]CanonicalRecord, len(records))
	copy(sorted, records)
	SortRecords(sorted, sortField)

	agg := &Aggregates{
		Records:   sorted,
		SortField: sortField,
		RunDate:   runDate,
		NoData:    len(records) == 0,
	}

	agg.Summary = summarize(records, columns)

	agg.ByItem = groupBy(records, func(r *CanonicalRecord) string { return r.ItemCode })
	if columns.Has(FieldCustomer) {
		agg.ByCustomer = groupBy(records, func(r *CanonicalRecord) string { return r.Customer })
	}
	if columns.Has(FieldSupplier) {
		agg.BySupplier = groupBy(records, func(r *CanonicalRecord) string { return r.Supplier })
	}
	if columns.Has(FieldCategory) {
		agg.ByCategory = groupBy(records, func(r *CanonicalRecord) string { return r.Category })
	}

	agg.ByMonth = groupBy(records, func(r *CanonicalRecord) string { return r.OrderDate.Format("2006-01") })
	sort.Slice(agg.ByMonth, func(i, j int) bool { return agg.ByMonth[i].Key < agg.ByMonth[j].Key })

	agg.Aging = ageRecords(records, runDate)

	return agg
}

// summarize computes the overall statistics block.
func summarize(records []CanonicalRecord, columns ColumnMap) OverallSummary {
	s := OverallSummary{
		TotalLines:   len(records),
		HasValue:     columns.Has(FieldUnitPrice),
		HasCustomers: columns.Has(FieldCustomer),
	}

	items := make(map[string]bool)
	customers := make(map[string]bool)
	total := decimal.Zero

	for i := range records {
		rec := &records[i]
		s.TotalQuantity += rec.Quantity
		items[strings.ToLower(rec.ItemCode)] = true

		if rec.Customer != "" {
			customers[strings.ToLower(rec.Customer)] = true
		}

		if value, ok := rec.LineValue(); ok {
			total = total.Add(value)
		}
	}

	s.UniqueItems = len(items)
	s.UniqueCustomers = len(customers)
	s.TotalValue = total

	if s.TotalLines > 0 {
		lines := decimal.NewFromInt(int64(s.TotalLines))
		s.AvgQuantity = decimal.NewFromInt(int64(s.TotalQuantity)).DivRound(lines, 2)
		if s.HasValue {
			s.AvgValue = total.DivRound(lines, 2)
		}
	}

	return s
}

// groupBy aggregates records by a key function. Records whose key is empty
// are grouped under "(blank)" so totals still reconcile with the overall
// summary. Groups are ordered by total quantity descending, then key.
func groupBy(records []CanonicalRecord, keyFn func(*CanonicalRecord) string) []GroupedSummary {
	type groupState struct {
		summary GroupedSummary
		items   map[string]bool
	}

	groups := make(map[string]*groupState)
	order := make([]string, 0)

	for i := range records {
		rec := &records[i]

		display := keyFn(rec)
		if display == "" {
			display = "(blank)"
		}
		key := strings.ToLower(display)

		state, ok := groups[key]
		if !ok {
			state = &groupState{
				summary: GroupedSummary{Key: display, TotalValue: decimal.Zero},
				items:   make(map[string]bool),
			}
			groups[key] = state
			order = append(order, key)
		}

		state.summary.Lines++
		state.summary.TotalQuantity += rec.Quantity
		state.items[strings.ToLower(rec.ItemCode)] = true

		if value, ok := rec.LineValue(); ok {
			state.summary.TotalValue = state.summary.TotalValue.Add(value)
			state.summary.HasValue = true
		}
	}

	result := make([]GroupedSummary, 0, len(order))
	for _, key := range order {
		state := groups[key]
		state.summary.UniqueItems = len(state.items)
		result = append(result, state.summary)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TotalQuantity != result[j].TotalQuantity {
			return result[i].TotalQuantity > result[j].TotalQuantity
		}
		return strings.ToLower(result[i].Key) < strings.ToLower(result[j].Key)
	})

	return result
}

// ageRecords assigns every record to exactly one aging bucket. Orders dated
// in the future clamp to zero days outstanding.
func ageRecords(records []CanonicalRecord, runDate time.Time) []AgingSummary {
	type bucketState struct {
		summary AgingSummary
		items   map[string]bool
	}

	states := make([]bucketState, len(agingBuckets))
	for i, bucket := range agingBuckets {
		states[i] = bucketState{
			summary: AgingSummary{Bucket: bucket},
			items:   make(map[string]bool),
		}
	}

	for i := range records {
		rec := &records[i]

		days := int(runDate.Sub(rec.OrderDate).Hours() / 24)
		if days < 0 {
			days = 0
		}

		for j := range states {
			if states[j].summary.Bucket.Contains(days) {
				states[j].summary.Lines++
				states[j].summary.TotalQuantity += rec.Quantity
				states[j].items[strings.ToLower(rec.ItemCode)] = true
				break
			}
		}
	}

	result := make([]AgingSummary, len(states))
	for i := range states {
		states[i].summary.UniqueItems = len(states[i].items)
		result[i] = states[i].summary
	}
	return result
}
