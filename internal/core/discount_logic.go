package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResolveDiscount selects the discount slab applicable to the subject amount
// at the evaluation instant and computes the discounted amount.
//
// Eligibility: amount >= minAmount, amount <= maxAmount when bounded, and now
// inside the validity window when the slab carries one (a windowless slab is
// always time-eligible). Among eligible slabs the tightest matching lower
// bound wins — the largest minAmount not exceeding the amount — ties resolved
// stably by input order.
//
// The discount is value% of the amount for percentage slabs, or the fixed
// value clamped to not exceed the amount. No eligible slab means no discount:
// the second return is false and the full amount is charged.
func ResolveDiscount(slabs []DiscountSlab, amount decimal.Decimal, now time.Time) (*DiscountMatch, bool) {
	var best *DiscountSlab
	for i := range slabs {
		s := &slabs[i]
		if amount.LessThan(s.MinAmount) {
			continue
		}
		if s.MaxAmount != nil && amount.GreaterThan(*s.MaxAmount) {
			continue
		}
		if s.Validity != nil && !s.Validity.Contains(now) {
			continue
		}
		if best == nil || s.MinAmount.GreaterThan(best.MinAmount) {
			best = s
		}
	}
	if best == nil {
		return nil, false
	}

	discount := discountFor(*best, amount)
	return &DiscountMatch{
		Slab:           *best,
		DiscountAmount: discount,
		FinalAmount:    amount.Sub(discount).Round(2),
	}, true
}

func discountFor(slab DiscountSlab, amount decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch slab.Type {
	case DiscountPercentage:
		d = amount.Mul(slab.Value).Div(decimal.NewFromInt(100))
	default:
		d = slab.Value
	}
	if d.GreaterThan(amount) {
		d = amount
	}
	return d.Round(2)
}
