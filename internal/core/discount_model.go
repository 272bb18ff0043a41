package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType distinguishes percentage discounts from fixed-amount ones.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ValidityWindow restricts when a discount slab is eligible to apply.
// Dates are YYYY-MM-DD; times, when present, are HH:MM on the respective
// date. A window with dates only covers the whole of both boundary days.
type ValidityWindow struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// DiscountSlab maps an inclusive order-amount range to a discount.
// MaxAmount nil means unbounded above. The optional validity window is
// stored with the slab and checked at resolution time — an expired slab
// still lists in configuration history but never applies.
type DiscountSlab struct {
	MinAmount decimal.Decimal  `json:"minAmount"`
	MaxAmount *decimal.Decimal `json:"maxAmount"`
	Type      DiscountType     `json:"discountType"`
	Value     decimal.Decimal  `json:"discountValue"`
	Validity  *ValidityWindow  `json:"validity,omitempty"`
}

// DiscountMatch is the outcome of a successful discount resolution.
type DiscountMatch struct {
	Slab           DiscountSlab
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

// Slab-set cardinality caps per parent configuration kind.
const (
	DeliveryChargeSlabCap = 3
	BulkPricingSlabCap    = 10
)

// Bounds returns the window as a concrete [start, end] instant pair.
// Missing times widen the window to whole days; unparseable dates yield
// ok=false and the window is treated as never eligible.
func (w ValidityWindow) Bounds() (start, end time.Time, ok bool) {
	startDay, err := time.Parse("2006-01-02", w.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	endDay, err := time.Parse("2006-01-02", w.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	start = startDay
	if w.StartTime != "" {
		if t, err := time.Parse("15:04", w.StartTime); err == nil {
			start = startDay.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		}
	}

	// Whole-day inclusive when no explicit end time.
	end = endDay.Add(24*time.Hour - time.Nanosecond)
	if w.EndTime != "" {
		if t, err := time.Parse("15:04", w.EndTime); err == nil {
			end = endDay.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		}
	}
	return start, end, true
}

// Contains reports whether now falls inside the window, boundaries inclusive.
func (w ValidityWindow) Contains(now time.Time) bool {
	start, end, ok := w.Bounds()
	if !ok {
		return false
	}
	return !now.Before(start) && !now.After(end)
}
