package app

import (
	"context"
	"io"

	"supply-console/internal/core"
)

// ApplicationService is the single interface all adapters (Web, CLI) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// DerivePricing runs the calculator over raw form fields. It never fails:
	// unparseable fields coerce to zero and the derived record is returned
	// regardless.
	DerivePricing(req PricingRequest) *PricingResult

	// ResolveUnitPrice resolves the unit price for a quantity, either against
	// slabs supplied inline or, when none are given, against the stored slab
	// list for the product (falling back to the global list).
	ResolveUnitPrice(ctx context.Context, req UnitPriceRequest) (*UnitPriceResult, error)

	// ResolveDiscount resolves the applicable discount for an order amount,
	// either against slabs supplied inline or against a stored configuration
	// addressed by scope and key pair.
	ResolveDiscount(ctx context.Context, req DiscountRequest) (*DiscountResult, error)

	// ListProducts returns the full catalog.
	ListProducts(ctx context.Context) (*ProductListResult, error)

	// GetProduct returns a single product by code.
	GetProduct(ctx context.Context, code string) (*ProductResult, error)

	// SaveProduct creates or replaces a product. All derived pricing is
	// recomputed server-side from the raw inputs.
	SaveProduct(ctx context.Context, input core.ProductInput) (*ProductResult, error)

	// ImportSlabSheet parses an uploaded spreadsheet of quantity price slabs
	// and replaces each listed product's slab list wholesale.
	ImportSlabSheet(ctx context.Context, fileName string, file io.Reader) (*ImportResult, error)

	// GetDeliveryCharges returns the delivery charge slab set for a
	// location+carrier pair.
	GetDeliveryCharges(ctx context.Context, location, carrier string) (*DiscountConfigResult, error)

	// SaveDeliveryCharges validates and replaces the delivery charge slab set
	// for a location+carrier pair (cap 3).
	SaveDeliveryCharges(ctx context.Context, location, carrier string, slabs []core.RawDiscountSlab) (*DiscountConfigResult, error)

	// GetProductDiscounts returns the discount slab set for a
	// product+subcategory pair.
	GetProductDiscounts(ctx context.Context, product, subcategory string) (*DiscountConfigResult, error)

	// SaveProductDiscounts validates and replaces the discount slab set for a
	// product+subcategory pair (cap 10).
	SaveProductDiscounts(ctx context.Context, product, subcategory string, slabs []core.RawDiscountSlab) (*DiscountConfigResult, error)

	// ListPriceSlabs returns the stored quantity slab list for a product, or
	// the global list when code is empty.
	ListPriceSlabs(ctx context.Context, productCode string) (*PriceSlabListResult, error)

	// AddPriceSlab appends one validated slab to a stored list (cap 10).
	AddPriceSlab(ctx context.Context, productCode string, slab core.RawQuantitySlab) (*PriceSlabResult, error)

	// UpdatePriceSlab replaces a stored slab by id.
	UpdatePriceSlab(ctx context.Context, id int, slab core.RawQuantitySlab) (*PriceSlabResult, error)

	// DeletePriceSlab removes a stored slab by id.
	DeletePriceSlab(ctx context.Context, id int) error
}
