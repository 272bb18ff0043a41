package core_test

import (
	"testing"

	"supply-console/internal/core"
)

func TestResolveUnitPrice(t *testing.T) {
	slabs := []core.QuantitySlab{
		{MinQty: 1, MaxQty: 9, UnitPrice: mustDecimal(t, "115")},
		{MinQty: 10, MaxQty: 49, UnitPrice: mustDecimal(t, "105")},
		{MinQty: 50, MaxQty: 999, UnitPrice: mustDecimal(t, "95")},
	}
	basePrice := mustDecimal(t, "120")

	tests := []struct {
		name     string
		quantity int
		want     string
	}{
		{"mid slab", 20, "105"},
		{"first slab", 5, "115"},
		{"lower boundary inclusive", 10, "105"},
		{"upper boundary inclusive", 49, "105"},
		{"beyond all slabs falls back to base price", 1000, "120"},
		{"below all slabs falls back to base price", 0, "120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ResolveUnitPrice(slabs, tt.quantity, basePrice)
			assertDecimal(t, "unitPrice", got, tt.want)
		})
	}
}

func TestResolveUnitPrice_OverlapHighestWins(t *testing.T) {
	slabs := []core.QuantitySlab{
		{MinQty: 1, MaxQty: 50, UnitPrice: mustDecimal(t, "80")},
		{MinQty: 1, MaxQty: 50, UnitPrice: mustDecimal(t, "120")},
	}
	got := core.ResolveUnitPrice(slabs, 10, mustDecimal(t, "100"))
	assertDecimal(t, "unitPrice", got, "120")
}

func TestResolveUnitPrice_TieStableByInputOrder(t *testing.T) {
	slabs := []core.QuantitySlab{
		{MinQty: 1, MaxQty: 50, UnitPrice: mustDecimal(t, "99")},
		{MinQty: 5, MaxQty: 20, UnitPrice: mustDecimal(t, "99")},
	}
	got := core.ResolveUnitPrice(slabs, 10, mustDecimal(t, "100"))
	assertDecimal(t, "unitPrice", got, "99")
}

func TestResolveUnitPrice_EmptySlabSet(t *testing.T) {
	got := core.ResolveUnitPrice(nil, 7, mustDecimal(t, "42.50"))
	assertDecimal(t, "unitPrice", got, "42.50")
}
