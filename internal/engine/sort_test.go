package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortPreferenceResolve(t *testing.T) {
	tests := []struct {
		name string
		pref SortPreference
		want SortField
	}{
		{"none selected defaults to order number", SortPreference{}, SortByOrderNumber},
		{"order number", SortPreference{OrderNumber: true}, SortByOrderNumber},
		{"dock", SortPreference{Dock: true}, SortByDock},
		{"salesman", SortPreference{Salesman: true}, SortBySalesman},
		{"due date", SortPreference{DueDate: true}, SortByDueDate},
		{"two selected falls back", SortPreference{Dock: true, DueDate: true}, SortByOrderNumber},
		{"all selected falls back", SortPreference{OrderNumber: true, Dock: true, Salesman: true, DueDate: true}, SortByOrderNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pref.Resolve())
		})
	}
}

func TestSortRecordsByOrderNumber(t *testing.T) {
	records := []CanonicalRecord{
		{Seq: 0, OrderNumber: "ALPHA-2"},
		{Seq: 1, OrderNumber: "100"},
		{Seq: 2, OrderNumber: ""},
		{Seq: 3, OrderNumber: "9"},
		{Seq: 4, OrderNumber: "ALPHA-1"},
	}

	SortRecords(records, SortByOrderNumber)

	// Numerics first in numeric order, then non-numerics, empties last.
	assert.Equal(t, []int{3, 1, 4, 0, 2}, seqOrder(records))
}

func TestSortRecordsByDueDate(t *testing.T) {
	d := func(day int) *time.Time {
		t := time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC)
		return &t
	}

	records := []CanonicalRecord{
		{Seq: 0, ExpectedDate: d(20)},
		{Seq: 1, ExpectedDate: nil},
		{Seq: 2, ExpectedDate: d(5)},
		{Seq: 3, ExpectedDate: d(20)},
	}

	SortRecords(records, SortByDueDate)

	// Earliest first, ties keep input order, missing dates last.
	assert.Equal(t, []int{2, 0, 3, 1}, seqOrder(records))
}

func TestSortRecordsByDockCaseInsensitive(t *testing.T) {
	records := []CanonicalRecord{
		{Seq: 0, Dock: "west"},
		{Seq: 1, Dock: "East"},
		{Seq: 2, Dock: ""},
		{Seq: 3, Dock: "NORTH"},
	}

	SortRecords(records, SortByDock)

	assert.Equal(t, []int{1, 3, 0, 2}, seqOrder(records))
}

func TestSortRecordsIsStable(t *testing.T) {
	records := []CanonicalRecord{
		{Seq: 0, Customer: "Acme"},
		{Seq: 1, Customer: "acme"},
		{Seq: 2, Customer: "ACME"},
	}

	SortRecords(records, SortBySalesman)

	assert.Equal(t, []int{0, 1, 2}, seqOrder(records))
}

func seqOrder(records []CanonicalRecord) []int {
	order := make([]int, len(records))
	for i, rec := range records {
		order[i] = rec.Seq
	}
	return order
}
