package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"supply-console/internal/core"
	"supply-console/internal/excel"
)

// ErrInvalidRequest marks request-shape problems the adapter should report as
// a client error rather than a failure.
var ErrInvalidRequest = errors.New("invalid request")

type appService struct {
	catalog   core.CatalogService
	discounts core.DiscountConfigService
	slabs     core.PriceSlabService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	catalog core.CatalogService,
	discounts core.DiscountConfigService,
	slabs core.PriceSlabService,
) ApplicationService {
	return &appService{
		catalog:   catalog,
		discounts: discounts,
		slabs:     slabs,
	}
}

// DerivePricing runs the calculator over raw form fields.
func (s *appService) DerivePricing(req PricingRequest) *PricingResult {
	inputs := req.Inputs.Normalize()
	return &PricingResult{
		Inputs:  inputs,
		Derived: core.DerivePricing(inputs),
	}
}

// ResolveUnitPrice resolves a unit price against inline or stored slabs.
func (s *appService) ResolveUnitPrice(ctx context.Context, req UnitPriceRequest) (*UnitPriceResult, error) {
	basePrice := core.CoerceAmount(req.BasePrice)

	if len(req.Slabs) > 0 {
		slabs := make([]core.QuantitySlab, 0, len(req.Slabs))
		for i, raw := range req.Slabs {
			slab, err := raw.Validate()
			if err != nil {
				return nil, fmt.Errorf("slab %d: %w", i+1, err)
			}
			slabs = append(slabs, slab)
		}
		return &UnitPriceResult{
			Quantity:  req.Quantity,
			UnitPrice: core.ResolveUnitPrice(slabs, req.Quantity, basePrice),
		}, nil
	}

	price, err := s.slabs.ResolveQuantityPrice(ctx, req.ProductCode, req.Quantity, basePrice)
	if err != nil {
		return nil, err
	}
	return &UnitPriceResult{Quantity: req.Quantity, UnitPrice: price}, nil
}

// ResolveDiscount resolves a discount against inline slabs or a stored
// configuration.
func (s *appService) ResolveDiscount(ctx context.Context, req DiscountRequest) (*DiscountResult, error) {
	at := time.Now()
	if req.At != "" {
		parsed, err := time.Parse(time.RFC3339, req.At)
		if err != nil {
			return nil, fmt.Errorf("%w: at instant %q is not RFC 3339", ErrInvalidRequest, req.At)
		}
		at = parsed
	}

	if len(req.Slabs) > 0 {
		slabs := make([]core.DiscountSlab, 0, len(req.Slabs))
		for i, raw := range req.Slabs {
			slab, err := raw.Validate()
			if err != nil {
				return nil, fmt.Errorf("slab %d: %w", i+1, err)
			}
			slabs = append(slabs, slab)
		}
		match, ok := core.ResolveDiscount(slabs, core.CoerceAmount(req.Amount), at)
		return &DiscountResult{Applied: ok, Match: match}, nil
	}

	switch req.Scope {
	case core.ScopeDeliveryCharge, core.ScopeProductDiscount:
	default:
		return nil, fmt.Errorf("%w: either inline slabs or a known scope is required, got scope %q", ErrInvalidRequest, req.Scope)
	}

	match, ok, err := s.discounts.ResolveConfigDiscount(ctx, req.Scope, req.KeyA, req.KeyB, req.Amount, at)
	if err != nil {
		return nil, err
	}
	return &DiscountResult{Applied: ok, Match: match}, nil
}

// ListProducts returns the full catalog.
func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

// GetProduct returns a single product by code.
func (s *appService) GetProduct(ctx context.Context, code string) (*ProductResult, error) {
	product, err := s.catalog.GetProduct(ctx, code)
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

// SaveProduct creates or replaces a product with server-side derivation.
func (s *appService) SaveProduct(ctx context.Context, input core.ProductInput) (*ProductResult, error) {
	product, err := s.catalog.SaveProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

// ImportSlabSheet parses an uploaded spreadsheet and replaces each listed
// product's slab list. Rows are grouped by product code; the first failing
// product aborts the import with its code in the error.
func (s *appService) ImportSlabSheet(ctx context.Context, fileName string, file io.Reader) (*ImportResult, error) {
	rows, err := excel.ParseSlabRows(fileName, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s contains no slab rows", ErrInvalidRequest, fileName)
	}

	// Group by product code, preserving first-seen order.
	var codes []string
	grouped := make(map[string][]core.RawQuantitySlab)
	for _, row := range rows {
		if _, seen := grouped[row.ProductCode]; !seen {
			codes = append(codes, row.ProductCode)
		}
		grouped[row.ProductCode] = append(grouped[row.ProductCode], row.Slab)
	}

	result := &ImportResult{Codes: codes}
	for _, code := range codes {
		stored, err := s.slabs.ReplaceProductSlabs(ctx, code, grouped[code])
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", code, err)
		}
		result.Products++
		result.Slabs += len(stored)
	}
	return result, nil
}

// GetDeliveryCharges returns the slab set for a location+carrier pair.
func (s *appService) GetDeliveryCharges(ctx context.Context, location, carrier string) (*DiscountConfigResult, error) {
	config, err := s.discounts.GetConfig(ctx, core.ScopeDeliveryCharge, location, carrier)
	if err != nil {
		return nil, err
	}
	return &DiscountConfigResult{Config: config}, nil
}

// SaveDeliveryCharges validates and replaces the slab set for a
// location+carrier pair.
func (s *appService) SaveDeliveryCharges(ctx context.Context, location, carrier string, slabs []core.RawDiscountSlab) (*DiscountConfigResult, error) {
	config, err := s.discounts.SaveConfig(ctx, core.ScopeDeliveryCharge, location, carrier, slabs)
	if err != nil {
		return nil, err
	}
	return &DiscountConfigResult{Config: config}, nil
}

// GetProductDiscounts returns the slab set for a product+subcategory pair.
func (s *appService) GetProductDiscounts(ctx context.Context, product, subcategory string) (*DiscountConfigResult, error) {
	config, err := s.discounts.GetConfig(ctx, core.ScopeProductDiscount, product, subcategory)
	if err != nil {
		return nil, err
	}
	return &DiscountConfigResult{Config: config}, nil
}

// SaveProductDiscounts validates and replaces the slab set for a
// product+subcategory pair.
func (s *appService) SaveProductDiscounts(ctx context.Context, product, subcategory string, slabs []core.RawDiscountSlab) (*DiscountConfigResult, error) {
	config, err := s.discounts.SaveConfig(ctx, core.ScopeProductDiscount, product, subcategory, slabs)
	if err != nil {
		return nil, err
	}
	return &DiscountConfigResult{Config: config}, nil
}

// ListPriceSlabs returns the stored slab list for a product or the global list.
func (s *appService) ListPriceSlabs(ctx context.Context, productCode string) (*PriceSlabListResult, error) {
	slabs, err := s.slabs.ListSlabs(ctx, productCode)
	if err != nil {
		return nil, err
	}
	return &PriceSlabListResult{Slabs: slabs}, nil
}

// AddPriceSlab appends one validated slab to a stored list.
func (s *appService) AddPriceSlab(ctx context.Context, productCode string, slab core.RawQuantitySlab) (*PriceSlabResult, error) {
	stored, err := s.slabs.AddSlab(ctx, productCode, slab)
	if err != nil {
		return nil, err
	}
	return &PriceSlabResult{Slab: stored}, nil
}

// UpdatePriceSlab replaces a stored slab by id.
func (s *appService) UpdatePriceSlab(ctx context.Context, id int, slab core.RawQuantitySlab) (*PriceSlabResult, error) {
	stored, err := s.slabs.UpdateSlab(ctx, id, slab)
	if err != nil {
		return nil, err
	}
	return &PriceSlabResult{Slab: stored}, nil
}

// DeletePriceSlab removes a stored slab by id.
func (s *appService) DeletePriceSlab(ctx context.Context, id int) error {
	return s.slabs.DeleteSlab(ctx, id)
}
