package core_test

import (
	"testing"
	"time"

	"supply-console/internal/core"

	"github.com/shopspring/decimal"
)

func TestResolveDiscount_Percentage(t *testing.T) {
	maxAmount := mustDecimal(t, "1000")
	slabs := []core.DiscountSlab{
		{MinAmount: mustDecimal(t, "500"), MaxAmount: &maxAmount,
			Type: core.DiscountPercentage, Value: mustDecimal(t, "10")},
	}

	match, ok := core.ResolveDiscount(slabs, mustDecimal(t, "700"), time.Now())
	if !ok {
		t.Fatal("expected a match, got none")
	}
	assertDecimal(t, "discountAmount", match.DiscountAmount, "70")
	assertDecimal(t, "finalAmount", match.FinalAmount, "630")
}

func TestResolveDiscount_OpenEndedFixed(t *testing.T) {
	slabs := []core.DiscountSlab{
		{MinAmount: mustDecimal(t, "1000"), MaxAmount: nil,
			Type: core.DiscountFixed, Value: mustDecimal(t, "150")},
	}

	match, ok := core.ResolveDiscount(slabs, mustDecimal(t, "5000"), time.Now())
	if !ok {
		t.Fatal("expected a match, got none")
	}
	assertDecimal(t, "discountAmount", match.DiscountAmount, "150")
	assertDecimal(t, "finalAmount", match.FinalAmount, "4850")
}

func TestResolveDiscount_FixedClampedToAmount(t *testing.T) {
	slabs := []core.DiscountSlab{
		{MinAmount: mustDecimal(t, "0"), MaxAmount: nil,
			Type: core.DiscountFixed, Value: mustDecimal(t, "150")},
	}

	match, ok := core.ResolveDiscount(slabs, mustDecimal(t, "90"), time.Now())
	if !ok {
		t.Fatal("expected a match, got none")
	}
	assertDecimal(t, "discountAmount", match.DiscountAmount, "90")
	assertDecimal(t, "finalAmount", match.FinalAmount, "0")
}

func TestResolveDiscount_TightestLowerBoundWins(t *testing.T) {
	slabs := []core.DiscountSlab{
		{MinAmount: mustDecimal(t, "100"), Type: core.DiscountPercentage, Value: mustDecimal(t, "5")},
		{MinAmount: mustDecimal(t, "500"), Type: core.DiscountPercentage, Value: mustDecimal(t, "10")},
		{MinAmount: mustDecimal(t, "2000"), Type: core.DiscountPercentage, Value: mustDecimal(t, "15")},
	}

	match, ok := core.ResolveDiscount(slabs, mustDecimal(t, "700"), time.Now())
	if !ok {
		t.Fatal("expected a match, got none")
	}
	assertDecimal(t, "selected minAmount", match.Slab.MinAmount, "500")
	assertDecimal(t, "discountAmount", match.DiscountAmount, "70")
}

func TestResolveDiscount_NoCandidate(t *testing.T) {
	maxAmount := mustDecimal(t, "400")
	slabs := []core.DiscountSlab{
		{MinAmount: mustDecimal(t, "100"), MaxAmount: &maxAmount,
			Type: core.DiscountPercentage, Value: mustDecimal(t, "5")},
	}

	if _, ok := core.ResolveDiscount(slabs, mustDecimal(t, "700"), time.Now()); ok {
		t.Error("expected no match for amount above all slabs")
	}
	if _, ok := core.ResolveDiscount(slabs, mustDecimal(t, "50"), time.Now()); ok {
		t.Error("expected no match for amount below all slabs")
	}
	if _, ok := core.ResolveDiscount(nil, mustDecimal(t, "700"), time.Now()); ok {
		t.Error("expected no match for empty slab set")
	}
}

func TestResolveDiscount_ValidityWindow(t *testing.T) {
	slab := core.DiscountSlab{
		MinAmount: mustDecimal(t, "500"),
		Type:      core.DiscountPercentage,
		Value:     mustDecimal(t, "10"),
		Validity:  &core.ValidityWindow{StartDate: "2025-01-01", EndDate: "2025-01-31"},
	}
	amount := mustDecimal(t, "700")

	tests := []struct {
		name      string
		now       string
		wantMatch bool
	}{
		{"inside window", "2025-01-15T12:00:00Z", true},
		{"start day inclusive", "2025-01-01T00:00:00Z", true},
		{"end day inclusive whole day", "2025-01-31T23:59:00Z", true},
		{"day after end excluded despite amount match", "2025-02-01T00:00:00Z", false},
		{"day before start excluded", "2024-12-31T23:59:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := time.Parse(time.RFC3339, tt.now)
			if err != nil {
				t.Fatalf("bad instant %q: %v", tt.now, err)
			}
			_, ok := core.ResolveDiscount([]core.DiscountSlab{slab}, amount, now)
			if ok != tt.wantMatch {
				t.Errorf("expected match=%v at %s, got %v", tt.wantMatch, tt.now, ok)
			}
		})
	}
}

func TestResolveDiscount_TimeSpecificWindow(t *testing.T) {
	slab := core.DiscountSlab{
		MinAmount: mustDecimal(t, "0"),
		Type:      core.DiscountFixed,
		Value:     mustDecimal(t, "50"),
		Validity: &core.ValidityWindow{
			StartDate: "2025-03-10", EndDate: "2025-03-10",
			StartTime: "09:00", EndTime: "17:30",
		},
	}
	amount := mustDecimal(t, "300")

	inside, _ := time.Parse(time.RFC3339, "2025-03-10T12:00:00Z")
	if _, ok := core.ResolveDiscount([]core.DiscountSlab{slab}, amount, inside); !ok {
		t.Error("expected match inside the time-specific window")
	}

	after, _ := time.Parse(time.RFC3339, "2025-03-10T18:00:00Z")
	if _, ok := core.ResolveDiscount([]core.DiscountSlab{slab}, amount, after); ok {
		t.Error("expected no match after the end time on the end date")
	}
}

func TestResolveDiscount_WindowlessAlwaysEligible(t *testing.T) {
	slabs := []core.DiscountSlab{
		{MinAmount: decimal.Zero, Type: core.DiscountFixed, Value: mustDecimal(t, "25")},
	}
	farFuture, _ := time.Parse(time.RFC3339, "2099-12-31T00:00:00Z")
	if _, ok := core.ResolveDiscount(slabs, mustDecimal(t, "100"), farFuture); !ok {
		t.Error("windowless slab should be eligible at any instant")
	}
}
