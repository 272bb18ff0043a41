package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rejected-operation sentinels. The editor never panics: a caller branches on
// these to show a message and keeps its existing collection untouched.
var (
	ErrSlabCapExceeded = errors.New("slab cap exceeded")
	ErrMalformedSlab   = errors.New("malformed slab")
	ErrSlabIndex       = errors.New("slab index out of range")
)

// RawDiscountSlab is a discount slab as collected by a form: string-valued
// numerics plus the optional validity window fields. IsTimeSpecific marks
// whether StartTime/EndTime were deliberately set.
type RawDiscountSlab struct {
	MinAmount      string `json:"minAmount"`
	MaxAmount      string `json:"maxAmount"`
	DiscountType   string `json:"discountType"`
	DiscountValue  string `json:"discountValue"`
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
	StartTime      string `json:"startTime,omitempty"`
	EndTime        string `json:"endTime,omitempty"`
	IsTimeSpecific bool   `json:"isTimeSpecific,omitempty"`
}

// Validate coerces and checks the candidate. Required numeric fields
// (minAmount, discountValue) must parse; a present maxAmount must be >= the
// minimum. The percentage value is not capped at 100 — the resolver's clamp
// bounds the charge regardless.
func (r RawDiscountSlab) Validate() (DiscountSlab, error) {
	minAmount, err := requireDecimal(r.MinAmount, "minAmount")
	if err != nil {
		return DiscountSlab{}, err
	}
	value, err := requireDecimal(r.DiscountValue, "discountValue")
	if err != nil {
		return DiscountSlab{}, err
	}
	if value.IsNegative() {
		return DiscountSlab{}, fmt.Errorf("%w: discountValue cannot be negative", ErrMalformedSlab)
	}

	slab := DiscountSlab{
		MinAmount: minAmount,
		Value:     value,
		Type:      DiscountFixed,
	}
	if strings.TrimSpace(r.DiscountType) == string(DiscountPercentage) {
		slab.Type = DiscountPercentage
	}

	if strings.TrimSpace(r.MaxAmount) != "" {
		maxAmount, err := requireDecimal(r.MaxAmount, "maxAmount")
		if err != nil {
			return DiscountSlab{}, err
		}
		if maxAmount.LessThan(minAmount) {
			return DiscountSlab{}, fmt.Errorf("%w: maxAmount %s is below minAmount %s",
				ErrMalformedSlab, maxAmount, minAmount)
		}
		slab.MaxAmount = &maxAmount
	}

	if r.StartDate != "" || r.EndDate != "" {
		w := ValidityWindow{StartDate: r.StartDate, EndDate: r.EndDate}
		if r.IsTimeSpecific {
			w.StartTime = r.StartTime
			w.EndTime = r.EndTime
		}
		if _, _, ok := w.Bounds(); !ok {
			return DiscountSlab{}, fmt.Errorf("%w: invalid validity dates %q..%q",
				ErrMalformedSlab, r.StartDate, r.EndDate)
		}
		slab.Validity = &w
	}
	return slab, nil
}

// RawQuantitySlab is a quantity price slab as collected by a form.
type RawQuantitySlab struct {
	MinQty    string `json:"min_qty"`
	MaxQty    string `json:"max_qty"`
	UnitPrice string `json:"price_per_unit"`
}

// Validate coerces and checks the candidate quantity slab. Both bounds and
// the unit price must parse, and the range must not be inverted.
func (r RawQuantitySlab) Validate() (QuantitySlab, error) {
	minQty, err := requireInt(r.MinQty, "min_qty")
	if err != nil {
		return QuantitySlab{}, err
	}
	maxQty, err := requireInt(r.MaxQty, "max_qty")
	if err != nil {
		return QuantitySlab{}, err
	}
	unitPrice, err := requireDecimal(r.UnitPrice, "price_per_unit")
	if err != nil {
		return QuantitySlab{}, err
	}
	if maxQty < minQty {
		return QuantitySlab{}, fmt.Errorf("%w: max_qty %d is below min_qty %d", ErrMalformedSlab, maxQty, minQty)
	}
	if unitPrice.IsNegative() {
		return QuantitySlab{}, fmt.Errorf("%w: price_per_unit cannot be negative", ErrMalformedSlab)
	}
	return QuantitySlab{MinQty: minQty, MaxQty: maxQty, UnitPrice: unitPrice}, nil
}

// AddDiscountSlab validates the candidate and appends it, returning a fresh
// slice. Insertion beyond the cap is rejected with the existing collection
// unchanged.
func AddDiscountSlab(existing []DiscountSlab, candidate RawDiscountSlab, cap int) ([]DiscountSlab, error) {
	if len(existing) >= cap {
		return nil, fmt.Errorf("%w: configuration already holds %d slabs (cap %d)", ErrSlabCapExceeded, len(existing), cap)
	}
	slab, err := candidate.Validate()
	if err != nil {
		return nil, err
	}
	out := make([]DiscountSlab, len(existing), len(existing)+1)
	copy(out, existing)
	return append(out, slab), nil
}

// UpdateDiscountSlab replaces the slab at index in place, preserving order.
func UpdateDiscountSlab(existing []DiscountSlab, index int, candidate RawDiscountSlab) ([]DiscountSlab, error) {
	if index < 0 || index >= len(existing) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrSlabIndex, index, len(existing))
	}
	slab, err := candidate.Validate()
	if err != nil {
		return nil, err
	}
	out := make([]DiscountSlab, len(existing))
	copy(out, existing)
	out[index] = slab
	return out, nil
}

// RemoveDiscountSlab removes the slab at index. No cascading effects.
func RemoveDiscountSlab(existing []DiscountSlab, index int) ([]DiscountSlab, error) {
	if index < 0 || index >= len(existing) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrSlabIndex, index, len(existing))
	}
	out := make([]DiscountSlab, 0, len(existing)-1)
	out = append(out, existing[:index]...)
	return append(out, existing[index+1:]...), nil
}

// AddQuantitySlab validates the candidate and appends it, enforcing the cap.
func AddQuantitySlab(existing []QuantitySlab, candidate RawQuantitySlab, cap int) ([]QuantitySlab, error) {
	if len(existing) >= cap {
		return nil, fmt.Errorf("%w: configuration already holds %d slabs (cap %d)", ErrSlabCapExceeded, len(existing), cap)
	}
	slab, err := candidate.Validate()
	if err != nil {
		return nil, err
	}
	out := make([]QuantitySlab, len(existing), len(existing)+1)
	copy(out, existing)
	return append(out, slab), nil
}

// UpdateQuantitySlab replaces the slab at index in place, preserving order.
func UpdateQuantitySlab(existing []QuantitySlab, index int, candidate RawQuantitySlab) ([]QuantitySlab, error) {
	if index < 0 || index >= len(existing) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrSlabIndex, index, len(existing))
	}
	slab, err := candidate.Validate()
	if err != nil {
		return nil, err
	}
	out := make([]QuantitySlab, len(existing))
	copy(out, existing)
	out[index] = slab
	return out, nil
}

// RemoveQuantitySlab removes the slab at index.
func RemoveQuantitySlab(existing []QuantitySlab, index int) ([]QuantitySlab, error) {
	if index < 0 || index >= len(existing) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrSlabIndex, index, len(existing))
	}
	out := make([]QuantitySlab, 0, len(existing)-1)
	out = append(out, existing[:index]...)
	return append(out, existing[index+1:]...), nil
}

func requireDecimal(raw, field string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %s is required", ErrMalformedSlab, field)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %q is not numeric", ErrMalformedSlab, field, raw)
	}
	return d, nil
}

func requireInt(raw, field string) (int, error) {
	d, err := requireDecimal(raw, field)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrMalformedSlab, field, raw)
	}
	return int(d.IntPart()), nil
}
