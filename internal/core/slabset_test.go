package core_test

import (
	"errors"
	"testing"

	"supply-console/internal/core"
)

func validRawDiscount() core.RawDiscountSlab {
	return core.RawDiscountSlab{
		MinAmount:     "500",
		MaxAmount:     "1000",
		DiscountType:  "percentage",
		DiscountValue: "10",
	}
}

func TestAddDiscountSlab_CapEnforced(t *testing.T) {
	var slabs []core.DiscountSlab
	var err error
	for i := 0; i < core.DeliveryChargeSlabCap; i++ {
		slabs, err = core.AddDiscountSlab(slabs, validRawDiscount(), core.DeliveryChargeSlabCap)
		if err != nil {
			t.Fatalf("add %d: unexpected error: %v", i+1, err)
		}
	}

	rejected, err := core.AddDiscountSlab(slabs, validRawDiscount(), core.DeliveryChargeSlabCap)
	if !errors.Is(err, core.ErrSlabCapExceeded) {
		t.Fatalf("expected ErrSlabCapExceeded, got %v", err)
	}
	if rejected != nil {
		t.Error("rejected insertion must not return a collection")
	}
	if len(slabs) != core.DeliveryChargeSlabCap {
		t.Errorf("existing collection must be unchanged, got %d slabs", len(slabs))
	}
}

func TestAddDiscountSlab_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.RawDiscountSlab)
	}{
		{"missing minAmount", func(r *core.RawDiscountSlab) { r.MinAmount = "" }},
		{"non-numeric minAmount", func(r *core.RawDiscountSlab) { r.MinAmount = "five hundred" }},
		{"missing discountValue", func(r *core.RawDiscountSlab) { r.DiscountValue = "" }},
		{"negative discountValue", func(r *core.RawDiscountSlab) { r.DiscountValue = "-5" }},
		{"maxAmount below minAmount", func(r *core.RawDiscountSlab) { r.MaxAmount = "400" }},
		{"garbage validity dates", func(r *core.RawDiscountSlab) { r.StartDate = "soon"; r.EndDate = "later" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRawDiscount()
			tt.mutate(&raw)
			_, err := core.AddDiscountSlab(nil, raw, core.BulkPricingSlabCap)
			if !errors.Is(err, core.ErrMalformedSlab) {
				t.Errorf("expected ErrMalformedSlab, got %v", err)
			}
		})
	}
}

func TestAddDiscountSlab_BlankMaxAmountIsUnbounded(t *testing.T) {
	raw := validRawDiscount()
	raw.MaxAmount = ""
	slabs, err := core.AddDiscountSlab(nil, raw, core.BulkPricingSlabCap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slabs[0].MaxAmount != nil {
		t.Error("blank maxAmount should map to nil (unbounded above)")
	}
}

func TestAddDiscountSlab_PercentOver100Accepted(t *testing.T) {
	raw := validRawDiscount()
	raw.DiscountValue = "120"
	if _, err := core.AddDiscountSlab(nil, raw, core.BulkPricingSlabCap); err != nil {
		t.Fatalf("values over 100%% are accepted, resolver clamps the charge: %v", err)
	}
}

func TestUpdateDiscountSlab(t *testing.T) {
	slabs, err := core.AddDiscountSlab(nil, validRawDiscount(), core.DeliveryChargeSlabCap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := validRawDiscount()
	second.MinAmount = "2000"
	second.MaxAmount = ""
	slabs, err = core.AddDiscountSlab(slabs, second, core.DeliveryChargeSlabCap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edited := validRawDiscount()
	edited.DiscountValue = "12"
	updated, err := core.UpdateDiscountSlab(slabs, 0, edited)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "updated value", updated[0].Value, "12")
	assertDecimal(t, "order preserved", updated[1].MinAmount, "2000")
	// Original snapshot untouched.
	assertDecimal(t, "snapshot value", slabs[0].Value, "10")

	if _, err := core.UpdateDiscountSlab(slabs, 5, edited); !errors.Is(err, core.ErrSlabIndex) {
		t.Errorf("expected ErrSlabIndex for out-of-range edit, got %v", err)
	}
}

func TestRemoveDiscountSlab(t *testing.T) {
	var slabs []core.DiscountSlab
	for _, minAmount := range []string{"100", "500", "2000"} {
		raw := validRawDiscount()
		raw.MinAmount = minAmount
		raw.MaxAmount = ""
		var err error
		slabs, err = core.AddDiscountSlab(slabs, raw, core.DeliveryChargeSlabCap)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	removed, err := core.RemoveDiscountSlab(slabs, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 slabs after removal, got %d", len(removed))
	}
	assertDecimal(t, "first survives", removed[0].MinAmount, "100")
	assertDecimal(t, "third survives", removed[1].MinAmount, "2000")
	if len(slabs) != 3 {
		t.Error("removal must not mutate the input snapshot")
	}

	if _, err := core.RemoveDiscountSlab(removed, -1); !errors.Is(err, core.ErrSlabIndex) {
		t.Errorf("expected ErrSlabIndex for negative index, got %v", err)
	}
}

func TestQuantitySlabEditor(t *testing.T) {
	raw := core.RawQuantitySlab{MinQty: "1", MaxQty: "9", UnitPrice: "115"}
	slabs, err := core.AddQuantitySlab(nil, raw, core.BulkPricingSlabCap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slabs[0].MinQty != 1 || slabs[0].MaxQty != 9 {
		t.Errorf("unexpected range %d..%d", slabs[0].MinQty, slabs[0].MaxQty)
	}

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := core.AddQuantitySlab(slabs, core.RawQuantitySlab{MinQty: "50", MaxQty: "10", UnitPrice: "95"}, core.BulkPricingSlabCap)
		if !errors.Is(err, core.ErrMalformedSlab) {
			t.Errorf("expected ErrMalformedSlab, got %v", err)
		}
	})

	t.Run("non-integer quantity rejected", func(t *testing.T) {
		_, err := core.AddQuantitySlab(slabs, core.RawQuantitySlab{MinQty: "1.5", MaxQty: "10", UnitPrice: "95"}, core.BulkPricingSlabCap)
		if !errors.Is(err, core.ErrMalformedSlab) {
			t.Errorf("expected ErrMalformedSlab, got %v", err)
		}
	})

	t.Run("cap enforced", func(t *testing.T) {
		full := slabs
		var err error
		for i := len(full); i < core.BulkPricingSlabCap; i++ {
			full, err = core.AddQuantitySlab(full, raw, core.BulkPricingSlabCap)
			if err != nil {
				t.Fatalf("unexpected error at %d: %v", i, err)
			}
		}
		if _, err := core.AddQuantitySlab(full, raw, core.BulkPricingSlabCap); !errors.Is(err, core.ErrSlabCapExceeded) {
			t.Errorf("expected ErrSlabCapExceeded, got %v", err)
		}
	})

	t.Run("update and remove by index", func(t *testing.T) {
		updated, err := core.UpdateQuantitySlab(slabs, 0, core.RawQuantitySlab{MinQty: "1", MaxQty: "9", UnitPrice: "110"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, "updated price", updated[0].UnitPrice, "110")

		removed, err := core.RemoveQuantitySlab(updated, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(removed) != 0 {
			t.Errorf("expected empty collection, got %d", len(removed))
		}
	})
}
