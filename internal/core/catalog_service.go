package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogService manages the product catalog and its per-size pricing.
// Derived values are recomputed through DerivePricing on every save so that
// one canonical formula reaches the database regardless of which screen
// submitted the record.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, code string) (*Product, error)
	// SaveProduct upserts the product and replaces its sizes and bulk slabs
	// atomically. Slab sets beyond BulkPricingSlabCap are rejected.
	SaveProduct(ctx context.Context, input ProductInput) (*Product, error)
}

type catalogService struct {
	pool *pgxpool.Pool
}

func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, code, name, category, subcategory, unit, base_price, is_active, created_at, updated_at
		FROM products
		WHERE is_active = true
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.Subcategory,
			&p.Unit, &p.BasePrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *catalogService) GetProduct(ctx context.Context, code string) (*Product, error) {
	var p Product
	err := s.pool.QueryRow(ctx, `
		SELECT id, code, name, category, subcategory, unit, base_price, is_active, created_at, updated_at
		FROM products
		WHERE code = $1
	`, code).Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.Subcategory,
		&p.Unit, &p.BasePrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product %s: %w", code, err)
	}

	sizes, err := s.fetchSizes(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Sizes = sizes
	return &p, nil
}

func (s *catalogService) SaveProduct(ctx context.Context, input ProductInput) (*Product, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, fmt.Errorf("product code is required")
	}
	for _, size := range input.Sizes {
		if len(size.Slabs) > BulkPricingSlabCap {
			return nil, fmt.Errorf("%w: size %q has %d price slabs (cap %d)",
				ErrSlabCapExceeded, size.Label, len(size.Slabs), BulkPricingSlabCap)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	basePrice := coerceDecimal(input.BasePrice)
	var productID int
	err = tx.QueryRow(ctx, `
		INSERT INTO products (code, name, category, subcategory, unit, base_price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		ON CONFLICT (code) DO UPDATE
		  SET name = EXCLUDED.name,
		      category = EXCLUDED.category,
		      subcategory = EXCLUDED.subcategory,
		      unit = EXCLUDED.unit,
		      base_price = EXCLUDED.base_price,
		      updated_at = NOW()
		RETURNING id
	`, code, input.Name, input.Category, input.Subcategory, input.Unit, basePrice).Scan(&productID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product %s: %w", code, err)
	}

	// Replace sizes and slabs wholesale: the form submits the full set.
	if _, err := tx.Exec(ctx,
		"DELETE FROM product_price_slabs WHERE size_id IN (SELECT id FROM product_sizes WHERE product_id = $1)",
		productID); err != nil {
		return nil, fmt.Errorf("failed to clear price slabs for product %s: %w", code, err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM product_sizes WHERE product_id = $1", productID); err != nil {
		return nil, fmt.Errorf("failed to clear sizes for product %s: %w", code, err)
	}

	for _, sizeInput := range input.Sizes {
		inputs := sizeInput.Inputs.Normalize()
		derived := DerivePricing(inputs)

		var sizeID int
		err = tx.QueryRow(ctx, `
			INSERT INTO product_sizes
			  (product_id, label, quantity, cost_price, markup, gst, pack_quantity,
			   sell_price, gross_profit, gst_amount, price_with_gst, payable_gst, net_profit)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id
		`, productID, sizeInput.Label, sizeInput.Quantity,
			inputs.CostPrice, inputs.MarkupPercent, inputs.TaxPercent, inputs.PackQuantity,
			derived.SellPrice, derived.GrossProfit, derived.TaxAmount,
			derived.PriceWithTax, derived.TaxPayable, derived.NetProfit).Scan(&sizeID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert size %q for product %s: %w", sizeInput.Label, code, err)
		}

		for i, slabInput := range sizeInput.Slabs {
			slabInputs := slabInput.Inputs.Normalize()
			slabDerived := DerivePricing(slabInputs)
			_, err = tx.Exec(ctx, `
				INSERT INTO product_price_slabs
				  (size_id, position, cost_price, markup, gst,
				   sell_price, gross_profit, gst_amount, price_with_gst, payable_gst, net_profit,
				   pack_off, min_pack)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			`, sizeID, i,
				slabInputs.CostPrice, slabInputs.MarkupPercent, slabInputs.TaxPercent,
				slabDerived.SellPrice, slabDerived.GrossProfit, slabDerived.TaxAmount,
				slabDerived.PriceWithTax, slabDerived.TaxPayable, slabDerived.NetProfit,
				slabInput.PackOff, slabInput.MinPack)
			if err != nil {
				return nil, fmt.Errorf("failed to insert price slab %d for product %s: %w", i, code, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product %s: %w", code, err)
	}
	return s.GetProduct(ctx, code)
}

func (s *catalogService) fetchSizes(ctx context.Context, productID int) ([]ProductSize, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, product_id, label, quantity, cost_price, markup, gst, pack_quantity,
		       sell_price, gross_profit, gst_amount, price_with_gst, payable_gst, net_profit
		FROM product_sizes
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sizes: %w", err)
	}
	defer rows.Close()

	var sizes []ProductSize
	for rows.Next() {
		var sz ProductSize
		if err := rows.Scan(&sz.ID, &sz.ProductID, &sz.Label, &sz.Quantity,
			&sz.Inputs.CostPrice, &sz.Inputs.MarkupPercent, &sz.Inputs.TaxPercent, &sz.Inputs.PackQuantity,
			&sz.Derived.SellPrice, &sz.Derived.GrossProfit, &sz.Derived.TaxAmount,
			&sz.Derived.PriceWithTax, &sz.Derived.TaxPayable, &sz.Derived.NetProfit); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		sizes = append(sizes, sz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sizes: %w", err)
	}

	for i := range sizes {
		slabs, err := s.fetchSlabs(ctx, sizes[i].ID)
		if err != nil {
			return nil, err
		}
		sizes[i].Slabs = slabs
	}
	return sizes, nil
}

func (s *catalogService) fetchSlabs(ctx context.Context, sizeID int) ([]PriceSlabPayload, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT cost_price, markup, sell_price, gross_profit, gst, gst_amount,
		       price_with_gst, payable_gst, net_profit, pack_off, min_pack
		FROM product_price_slabs
		WHERE size_id = $1
		ORDER BY position
	`, sizeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query price slabs: %w", err)
	}
	defer rows.Close()

	var slabs []PriceSlabPayload
	for rows.Next() {
		var sl PriceSlabPayload
		if err := rows.Scan(&sl.CostPrice, &sl.MarkupPrice, &sl.SellPrice, &sl.GrossProfit,
			&sl.Gst, &sl.GstAmount, &sl.PriceWithGst, &sl.PayableGst, &sl.NetProfit,
			&sl.PackOff, &sl.MinPack); err != nil {
			return nil, fmt.Errorf("failed to scan price slab: %w", err)
		}
		slabs = append(slabs, sl)
	}
	return slabs, rows.Err()
}
