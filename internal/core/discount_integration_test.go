package core_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"supply-console/internal/core"
)

func TestDiscountConfigService(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewDiscountConfigService(pool)

	slabs := []core.RawDiscountSlab{
		{MinAmount: "500", MaxAmount: "1000", DiscountType: "percentage", DiscountValue: "10"},
		{MinAmount: "1000", DiscountType: "fixed", DiscountValue: "150",
			StartDate: "2025-01-01", EndDate: "2025-01-31"},
	}

	saved, err := svc.SaveConfig(ctx, core.ScopeDeliveryCharge, "bengaluru-south", "roadways", slabs)
	if err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if len(saved.Slabs) != 2 {
		t.Fatalf("expected 2 slabs, got %d", len(saved.Slabs))
	}
	if saved.Slabs[1].Validity == nil {
		t.Fatal("validity window not persisted")
	}
	if saved.Slabs[1].Validity.EndDate != "2025-01-31" {
		t.Errorf("unexpected end date %q", saved.Slabs[1].Validity.EndDate)
	}

	t.Run("delivery cap of three enforced on save", func(t *testing.T) {
		four := append([]core.RawDiscountSlab{}, slabs...)
		four = append(four,
			core.RawDiscountSlab{MinAmount: "2000", DiscountType: "fixed", DiscountValue: "200"},
			core.RawDiscountSlab{MinAmount: "3000", DiscountType: "fixed", DiscountValue: "250"},
		)
		_, err := svc.SaveConfig(ctx, core.ScopeDeliveryCharge, "bengaluru-south", "roadways", four)
		if !errors.Is(err, core.ErrSlabCapExceeded) {
			t.Errorf("expected ErrSlabCapExceeded, got %v", err)
		}
		// Stored configuration untouched by the rejected save.
		cfg, err := svc.GetConfig(ctx, core.ScopeDeliveryCharge, "bengaluru-south", "roadways")
		if err != nil {
			t.Fatalf("GetConfig failed: %v", err)
		}
		if len(cfg.Slabs) != 2 {
			t.Errorf("expected stored set unchanged at 2 slabs, got %d", len(cfg.Slabs))
		}
	})

	t.Run("resolution applies the active slab only", func(t *testing.T) {
		during, _ := time.Parse(time.RFC3339, "2025-01-15T10:00:00Z")
		match, ok, err := svc.ResolveConfigDiscount(ctx, core.ScopeDeliveryCharge, "bengaluru-south", "roadways", "1500", during)
		if err != nil || !ok {
			t.Fatalf("expected a match during the window: ok=%v err=%v", ok, err)
		}
		assertDecimal(t, "fixed discount", match.DiscountAmount, "150")

		after, _ := time.Parse(time.RFC3339, "2025-02-01T10:00:00Z")
		_, ok, err = svc.ResolveConfigDiscount(ctx, core.ScopeDeliveryCharge, "bengaluru-south", "roadways", "1500", after)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expired slab must still list but never apply")
		}
	})

	t.Run("missing config resolves to no discount", func(t *testing.T) {
		_, ok, err := svc.ResolveConfigDiscount(ctx, core.ScopeDeliveryCharge, "mysuru", "rail", "900", time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected no discount for an unconfigured pair")
		}
	})

	t.Run("product scope allows up to ten slabs", func(t *testing.T) {
		many := make([]core.RawDiscountSlab, core.BulkPricingSlabCap)
		for i := range many {
			many[i] = core.RawDiscountSlab{MinAmount: "100", DiscountType: "fixed", DiscountValue: "5"}
		}
		cfg, err := svc.SaveConfig(ctx, core.ScopeProductDiscount, "RICE-BASMATI", "Grains", many)
		if err != nil {
			t.Fatalf("SaveConfig failed at product cap: %v", err)
		}
		if len(cfg.Slabs) != core.BulkPricingSlabCap {
			t.Errorf("expected %d slabs, got %d", core.BulkPricingSlabCap, len(cfg.Slabs))
		}
	})

	t.Run("delete removes the configuration", func(t *testing.T) {
		if err := svc.DeleteConfig(ctx, core.ScopeProductDiscount, "RICE-BASMATI", "Grains"); err != nil {
			t.Fatalf("DeleteConfig failed: %v", err)
		}
		if _, err := svc.GetConfig(ctx, core.ScopeProductDiscount, "RICE-BASMATI", "Grains"); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestPriceSlabService(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewPriceSlabService(pool)

	added, err := svc.AddSlab(ctx, "", core.RawQuantitySlab{MinQty: "1", MaxQty: "9", UnitPrice: "115"})
	if err != nil {
		t.Fatalf("AddSlab failed: %v", err)
	}
	if _, err := svc.AddSlab(ctx, "", core.RawQuantitySlab{MinQty: "10", MaxQty: "49", UnitPrice: "105"}); err != nil {
		t.Fatalf("AddSlab failed: %v", err)
	}

	t.Run("resolution against stored list", func(t *testing.T) {
		price, err := svc.ResolveQuantityPrice(ctx, "", 20, mustDecimal(t, "120"))
		if err != nil {
			t.Fatalf("ResolveQuantityPrice failed: %v", err)
		}
		assertDecimal(t, "resolved price", price, "105")

		price, err = svc.ResolveQuantityPrice(ctx, "", 1000, mustDecimal(t, "120"))
		if err != nil {
			t.Fatalf("ResolveQuantityPrice failed: %v", err)
		}
		assertDecimal(t, "fallback to base", price, "120")
	})

	t.Run("update by id", func(t *testing.T) {
		updated, err := svc.UpdateSlab(ctx, added.ID, core.RawQuantitySlab{MinQty: "1", MaxQty: "9", UnitPrice: "110"})
		if err != nil {
			t.Fatalf("UpdateSlab failed: %v", err)
		}
		assertDecimal(t, "updated unit price", updated.Slab.UnitPrice, "110")
	})

	t.Run("malformed candidate rejected", func(t *testing.T) {
		_, err := svc.AddSlab(ctx, "", core.RawQuantitySlab{MinQty: "9", MaxQty: "1", UnitPrice: "95"})
		if !errors.Is(err, core.ErrMalformedSlab) {
			t.Errorf("expected ErrMalformedSlab, got %v", err)
		}
	})

	t.Run("product slabs shadow the global list", func(t *testing.T) {
		_, err := svc.ReplaceProductSlabs(ctx, "FLOUR-MAIDA", []core.RawQuantitySlab{
			{MinQty: "1", MaxQty: "99", UnitPrice: "42"},
		})
		if err != nil {
			t.Fatalf("ReplaceProductSlabs failed: %v", err)
		}

		price, err := svc.ResolveQuantityPrice(ctx, "FLOUR-MAIDA", 20, mustDecimal(t, "120"))
		if err != nil {
			t.Fatalf("ResolveQuantityPrice failed: %v", err)
		}
		assertDecimal(t, "product-owned price", price, "42")

		// A product without its own list falls through to the global slabs.
		price, err = svc.ResolveQuantityPrice(ctx, "RICE-BASMATI", 20, mustDecimal(t, "120"))
		if err != nil {
			t.Fatalf("ResolveQuantityPrice failed: %v", err)
		}
		assertDecimal(t, "global fallback price", price, "105")

		// Replacement is wholesale: a second import discards the first list.
		replaced, err := svc.ReplaceProductSlabs(ctx, "FLOUR-MAIDA", []core.RawQuantitySlab{
			{MinQty: "1", MaxQty: "49", UnitPrice: "45"},
			{MinQty: "50", MaxQty: "999", UnitPrice: "40"},
		})
		if err != nil {
			t.Fatalf("ReplaceProductSlabs failed: %v", err)
		}
		if len(replaced) != 2 {
			t.Fatalf("expected 2 slabs after replacement, got %d", len(replaced))
		}
	})

	t.Run("add into a full list rejected", func(t *testing.T) {
		full := make([]core.RawQuantitySlab, 0, core.BulkPricingSlabCap)
		for i := 0; i < core.BulkPricingSlabCap; i++ {
			full = append(full, core.RawQuantitySlab{
				MinQty:    strconv.Itoa(i*10 + 1),
				MaxQty:    strconv.Itoa(i*10 + 10),
				UnitPrice: "95",
			})
		}
		if _, err := svc.ReplaceProductSlabs(ctx, "OIL-SUNFLOWER", full); err != nil {
			t.Fatalf("ReplaceProductSlabs failed: %v", err)
		}

		_, err := svc.AddSlab(ctx, "OIL-SUNFLOWER", core.RawQuantitySlab{MinQty: "200", MaxQty: "299", UnitPrice: "90"})
		if !errors.Is(err, core.ErrSlabCapExceeded) {
			t.Fatalf("expected ErrSlabCapExceeded, got %v", err)
		}
		stored, err := svc.ListSlabs(ctx, "OIL-SUNFLOWER")
		if err != nil {
			t.Fatalf("ListSlabs failed: %v", err)
		}
		if len(stored) != core.BulkPricingSlabCap {
			t.Errorf("rejected add must leave the list at %d slabs, got %d", core.BulkPricingSlabCap, len(stored))
		}
	})

	t.Run("delete by id", func(t *testing.T) {
		if err := svc.DeleteSlab(ctx, added.ID); err != nil {
			t.Fatalf("DeleteSlab failed: %v", err)
		}
		if err := svc.DeleteSlab(ctx, added.ID); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound for double delete, got %v", err)
		}
	})
}
