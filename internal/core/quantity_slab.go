package core

import "github.com/shopspring/decimal"

// QuantitySlab maps an inclusive quantity range to a unit price. A slab
// collection is logically a partition of the quantity axis, but overlapping
// ranges do occur in practice and resolution must stay deterministic.
type QuantitySlab struct {
	MinQty    int             `json:"min_qty"`
	MaxQty    int             `json:"max_qty"`
	UnitPrice decimal.Decimal `json:"price_per_unit"`
}

// ResolveUnitPrice selects the unit price applicable to the requested
// quantity. Slabs whose range does not cover the quantity are ignored; if no
// slab matches, basePrice is returned unchanged. Zero matches and overlapping
// matches are both well-defined, never errors.
func ResolveUnitPrice(slabs []QuantitySlab, quantity int, basePrice decimal.Decimal) decimal.Decimal {
	var matches []QuantitySlab
	for _, s := range slabs {
		if s.MinQty <= quantity && quantity <= s.MaxQty {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return basePrice
	}
	return selectByHighestUnitPrice(matches).UnitPrice
}

// selectByHighestUnitPrice is the resolution policy for overlapping slabs:
// the matching slab with the highest unit price wins, ties resolved stably by
// input order. Counter-intuitive for a bulk-discount system, but it is the
// compatible behavior; swapping the policy is a change to this one function.
func selectByHighestUnitPrice(matches []QuantitySlab) QuantitySlab {
	best := matches[0]
	for _, s := range matches[1:] {
		if s.UnitPrice.GreaterThan(best.UnitPrice) {
			best = s
		}
	}
	return best
}
