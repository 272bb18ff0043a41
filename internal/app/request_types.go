package app

import (
	"supply-console/internal/core"
)

// PricingRequest carries the raw form fields for a calculator run.
type PricingRequest struct {
	Inputs core.RawCostInputs `json:"inputs"`
}

// UnitPriceRequest is the input for quantity slab resolution. When Slabs is
// non-empty the resolution runs against them; otherwise the stored list for
// ProductCode (or the global list) is used.
type UnitPriceRequest struct {
	Slabs       []core.RawQuantitySlab `json:"slabs,omitempty"`
	ProductCode string                 `json:"productCode,omitempty"`
	Quantity    int                    `json:"quantity"`
	BasePrice   string                 `json:"basePrice"`
}

// DiscountRequest is the input for discount resolution. Exactly one source of
// slabs applies: inline Slabs, or a stored configuration addressed by
// Scope+KeyA+KeyB.
type DiscountRequest struct {
	Slabs  []core.RawDiscountSlab `json:"slabs,omitempty"`
	Scope  core.DiscountScope     `json:"scope,omitempty"`
	KeyA   string                 `json:"keyA,omitempty"`
	KeyB   string                 `json:"keyB,omitempty"`
	Amount string                 `json:"amount"`
	// At is an RFC 3339 instant for validity window checks; empty means now.
	At string `json:"at,omitempty"`
}
