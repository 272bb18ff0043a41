package app

import (
	"github.com/shopspring/decimal"

	"supply-console/internal/core"
)

// PricingResult is returned by DerivePricing.
type PricingResult struct {
	Inputs  core.CostInputs     `json:"inputs"`
	Derived core.DerivedPricing `json:"derived"`
}

// UnitPriceResult is returned by ResolveUnitPrice.
type UnitPriceResult struct {
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// DiscountResult is returned by ResolveDiscount. Applied is false when no
// slab matched; Match is nil in that case and the amount stands in full.
type DiscountResult struct {
	Applied bool                `json:"applied"`
	Match   *core.DiscountMatch `json:"match,omitempty"`
}

// ProductResult is returned by GetProduct and SaveProduct.
type ProductResult struct {
	Product *core.Product `json:"product"`
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// ImportResult summarizes a spreadsheet import: how many products had their
// slab lists replaced and how many slabs were written in total.
type ImportResult struct {
	Products int      `json:"products"`
	Slabs    int      `json:"slabs"`
	Codes    []string `json:"codes"`
}

// DiscountConfigResult is returned by the delivery charge operations.
type DiscountConfigResult struct {
	Config *core.DiscountConfig `json:"config"`
}

// PriceSlabListResult is returned by ListPriceSlabs.
type PriceSlabListResult struct {
	Slabs []core.StoredQuantitySlab `json:"slabs"`
}

// PriceSlabResult is returned by single-slab mutations.
type PriceSlabResult struct {
	Slab *core.StoredQuantitySlab `json:"slab"`
}
