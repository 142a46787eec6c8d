package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumnsAliasVariations(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    map[Field]string
	}{
		{
			name:    "exact names",
			headers: []string{"Item Code", "Quantity", "Order Date"},
			want: map[Field]string{
				FieldItemCode:  "Item Code",
				FieldQuantity:  "Quantity",
				FieldOrderDate: "Order Date",
			},
		},
		{
			name:    "sku and qty shorthand",
			headers: []string{"SKU", "Qty", "Created"},
			want: map[Field]string{
				FieldItemCode:  "SKU",
				FieldQuantity:  "Qty",
				FieldOrderDate: "Created",
			},
		},
		{
			name:    "snake case export",
			headers: []string{"product_code", "order_qty", "order_date", "unit_cost"},
			want: map[Field]string{
				FieldItemCode:  "product_code",
				FieldQuantity:  "order_qty",
				FieldOrderDate: "order_date",
				FieldUnitPrice: "unit_cost",
			},
		},
		{
			name:    "mixed case headers",
			headers: []string{"ITEM NO", "COUNT", "TIMESTAMP", "SALESMAN", "DOCK"},
			want: map[Field]string{
				FieldItemCode:  "ITEM NO",
				FieldQuantity:  "COUNT",
				FieldOrderDate: "TIMESTAMP",
				FieldCustomer:  "SALESMAN",
				FieldDock:      "DOCK",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns, err := ResolveColumns(tt.headers)
			require.NoError(t, err)

			for field, header := range tt.want {
				assert.Equal(t, header, columns[field], "field %s", field)
			}
		})
	}
}

func TestResolveColumnsFullExport(t *testing.T) {
	headers := []string{
		"Order #", "Item Code", "Qty", "Order Date", "Customer",
		"Supplier", "Expected Date", "Unit Price", "Category", "Dock",
	}

	columns, err := ResolveColumns(headers)
	require.NoError(t, err)

	assert.Equal(t, "Item Code", columns[FieldItemCode])
	assert.Equal(t, "Qty", columns[FieldQuantity])
	assert.Equal(t, "Order Date", columns[FieldOrderDate])
	assert.Equal(t, "Customer", columns[FieldCustomer])
	assert.Equal(t, "Supplier", columns[FieldSupplier])
	assert.Equal(t, "Expected Date", columns[FieldExpectedDate])
	assert.Equal(t, "Unit Price", columns[FieldUnitPrice])
	assert.Equal(t, "Category", columns[FieldCategory])
	assert.Equal(t, "Order #", columns[FieldOrderNumber])
	assert.Equal(t, "Dock", columns[FieldDock])
}

func TestResolveColumnsHeaderOrderIndependent(t *testing.T) {
	headers := []string{"Item Code", "Qty", "Order Date", "Customer", "Unit Price"}
	reversed := []string{"Unit Price", "Customer", "Order Date", "Qty", "Item Code"}

	forward, err := ResolveColumns(headers)
	require.NoError(t, err)

	backward, err := ResolveColumns(reversed)
	require.NoError(t, err)

	assert.Equal(t, forward, backward)
}

func TestResolveColumnsEachHeaderBindsOnce(t *testing.T) {
	// "Order Date" contains both "order" keywords and "date"; the required
	// order-date field must claim it, leaving order number unresolved.
	columns, err := ResolveColumns([]string{"Item", "Qty", "Order Date"})
	require.NoError(t, err)

	assert.Equal(t, "Order Date", columns[FieldOrderDate])
	assert.False(t, columns.Has(FieldOrderNumber))
}

func TestResolveColumnsMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		missing Field
	}{
		{
			name:    "no quantity column",
			headers: []string{"Item Code", "Order Date"},
			missing: FieldQuantity,
		},
		{
			name:    "no date column",
			headers: []string{"Item Code", "Qty", "Customer"},
			missing: FieldOrderDate,
		},
		{
			name:    "nothing matches",
			headers: []string{"Foo", "Bar"},
			missing: FieldItemCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveColumns(tt.headers)
			require.Error(t, err)

			var missing *MissingRequiredColumnError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.missing, missing.Field)
		})
	}
}

func TestColumnMapValue(t *testing.T) {
	columns := ColumnMap{FieldItemCode: "Item Code"}
	values := map[string]string{"Item Code": "A100"}

	assert.Equal(t, "A100", columns.Value(values, FieldItemCode))
	assert.Equal(t, "", columns.Value(values, FieldCustomer))
}
