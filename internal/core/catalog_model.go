package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by lookups for configurations that do not exist.
var ErrNotFound = errors.New("not found")

// Product is a catalog item with per-size pricing. The derived values on each
// size and bulk slab are recomputed through the one canonical calculator
// whenever the product is saved, never trusted from the client.
type Product struct {
	ID          int             `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Unit        string          `json:"unit"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	IsActive    bool            `json:"isActive"`
	Sizes       []ProductSize   `json:"sizes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductSize is one sellable pack size of a product: its own cost inputs,
// the derived pricing, stock quantity, and optional bulk price slabs (cap 10).
type ProductSize struct {
	ID        int              `json:"id"`
	ProductID int              `json:"productId"`
	Label     string           `json:"label"`
	Quantity  int              `json:"quantity"`
	Inputs    CostInputs       `json:"inputs"`
	Derived   DerivedPricing   `json:"derived"`
	Slabs     []PriceSlabPayload `json:"priceSlabs"`
}

// ProductInput is the save request for a product: raw string-valued inputs
// from the form layer, coerced and derived server-side.
type ProductInput struct {
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Subcategory string             `json:"subcategory"`
	Unit        string             `json:"unit"`
	BasePrice   string             `json:"basePrice"`
	Sizes       []ProductSizeInput `json:"sizes"`
}

// ProductSizeInput is one size in a product save request.
type ProductSizeInput struct {
	Label    string          `json:"label"`
	Quantity int             `json:"quantity"`
	Inputs   RawCostInputs   `json:"inputs"`
	Slabs    []BulkSlabInput `json:"priceSlabs"`
}

// BulkSlabInput is one bulk pricing tier in a save request. Each tier carries
// its own cost inputs; the derived record is computed per tier.
type BulkSlabInput struct {
	Inputs  RawCostInputs `json:"inputs"`
	PackOff int           `json:"packOff"`
	MinPack int           `json:"minPack"`
}

// DiscountScope identifies the parent kind a discount configuration is
// attached to, which in turn fixes its slab cap.
type DiscountScope string

const (
	ScopeDeliveryCharge  DiscountScope = "delivery_charge"  // location+carrier, cap 3
	ScopeProductDiscount DiscountScope = "product_discount" // product+subcategory, cap 10
)

// SlabCap returns the cardinality cap for the scope.
func (s DiscountScope) SlabCap() int {
	if s == ScopeDeliveryCharge {
		return DeliveryChargeSlabCap
	}
	return BulkPricingSlabCap
}

// DiscountConfig is a persisted discount slab set attached to a parent pair:
// location+carrier for delivery charges, product+subcategory for product
// discounts. KeyA/KeyB hold the pair in that order.
type DiscountConfig struct {
	ID        int            `json:"id"`
	Scope     DiscountScope  `json:"scope"`
	KeyA      string         `json:"keyA"`
	KeyB      string         `json:"keyB"`
	Slabs     []DiscountSlab `json:"slabs"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// StoredQuantitySlab is one persisted quantity price slab. ProductCode is
// empty for slabs on the global list.
type StoredQuantitySlab struct {
	ID          int          `json:"id"`
	ProductCode string       `json:"productCode,omitempty"`
	Slab        QuantitySlab `json:"slab"`
	CreatedAt   time.Time    `json:"createdAt"`
}
