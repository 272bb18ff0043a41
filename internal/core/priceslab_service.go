package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PriceSlabService manages quantity price slabs. A slab list is owned either
// by a product or by the global list (empty product code). Individual slabs
// are submitted via dedicated add/update/delete calls (the {min_qty, max_qty,
// price_per_unit} wire shape); bulk import replaces a product's list
// wholesale. Resolution prefers the owning product's slabs and falls back to
// the global list, then to the base price.
type PriceSlabService interface {
	ListSlabs(ctx context.Context, productCode string) ([]StoredQuantitySlab, error)
	AddSlab(ctx context.Context, productCode string, candidate RawQuantitySlab) (*StoredQuantitySlab, error)
	UpdateSlab(ctx context.Context, id int, candidate RawQuantitySlab) (*StoredQuantitySlab, error)
	DeleteSlab(ctx context.Context, id int) error
	// ReplaceProductSlabs swaps a product's entire slab list in one
	// transaction. Used by the spreadsheet bulk import.
	ReplaceProductSlabs(ctx context.Context, productCode string, candidates []RawQuantitySlab) ([]StoredQuantitySlab, error)
	// ResolveQuantityPrice resolves the applicable unit price for a quantity.
	ResolveQuantityPrice(ctx context.Context, productCode string, quantity int, basePrice decimal.Decimal) (decimal.Decimal, error)
}

type priceSlabService struct {
	pool *pgxpool.Pool
}

func NewPriceSlabService(pool *pgxpool.Pool) PriceSlabService {
	return &priceSlabService{pool: pool}
}

func (s *priceSlabService) ListSlabs(ctx context.Context, productCode string) ([]StoredQuantitySlab, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, min_qty, max_qty, price_per_unit, created_at
		FROM quantity_price_slabs
		WHERE COALESCE(product_code, '') = $1
		ORDER BY id
	`, productCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query price slabs: %w", err)
	}
	defer rows.Close()

	var slabs []StoredQuantitySlab
	for rows.Next() {
		var g StoredQuantitySlab
		g.ProductCode = productCode
		if err := rows.Scan(&g.ID, &g.Slab.MinQty, &g.Slab.MaxQty, &g.Slab.UnitPrice, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan price slab: %w", err)
		}
		slabs = append(slabs, g)
	}
	return slabs, rows.Err()
}

func (s *priceSlabService) AddSlab(ctx context.Context, productCode string, candidate RawQuantitySlab) (*StoredQuantitySlab, error) {
	slab, err := candidate.Validate()
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize adds to the same list so concurrent inserts cannot race past
	// the cap between the count and the insert.
	if _, err := tx.Exec(ctx,
		"SELECT pg_advisory_xact_lock(hashtext('quantity_price_slabs'), hashtext($1))",
		productCode); err != nil {
		return nil, fmt.Errorf("failed to lock slab list: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM quantity_price_slabs WHERE COALESCE(product_code, '') = $1",
		productCode).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count price slabs: %w", err)
	}
	if count >= BulkPricingSlabCap {
		return nil, fmt.Errorf("%w: list already holds %d slabs (cap %d)", ErrSlabCapExceeded, count, BulkPricingSlabCap)
	}

	var g StoredQuantitySlab
	g.ProductCode = productCode
	g.Slab = slab
	err = tx.QueryRow(ctx, `
		INSERT INTO quantity_price_slabs (product_code, min_qty, max_qty, price_per_unit)
		VALUES (NULLIF($1, ''), $2, $3, $4)
		RETURNING id, created_at
	`, productCode, slab.MinQty, slab.MaxQty, slab.UnitPrice).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert price slab: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit price slab: %w", err)
	}
	return &g, nil
}

func (s *priceSlabService) UpdateSlab(ctx context.Context, id int, candidate RawQuantitySlab) (*StoredQuantitySlab, error) {
	slab, err := candidate.Validate()
	if err != nil {
		return nil, err
	}

	var g StoredQuantitySlab
	g.Slab = slab
	err = s.pool.QueryRow(ctx, `
		UPDATE quantity_price_slabs
		SET min_qty = $1, max_qty = $2, price_per_unit = $3
		WHERE id = $4
		RETURNING id, created_at
	`, slab.MinQty, slab.MaxQty, slab.UnitPrice, id).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("price slab %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update price slab %d: %w", id, err)
	}
	return &g, nil
}

func (s *priceSlabService) DeleteSlab(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM quantity_price_slabs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete price slab %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("price slab %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *priceSlabService) ReplaceProductSlabs(ctx context.Context, productCode string, candidates []RawQuantitySlab) ([]StoredQuantitySlab, error) {
	if productCode == "" {
		return nil, fmt.Errorf("product code is required for slab replacement")
	}

	// Validate the full set through the editor before touching storage.
	var slabs []QuantitySlab
	var err error
	for _, candidate := range candidates {
		slabs, err = AddQuantitySlab(slabs, candidate, BulkPricingSlabCap)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM quantity_price_slabs WHERE product_code = $1", productCode); err != nil {
		return nil, fmt.Errorf("failed to clear slabs for product %s: %w", productCode, err)
	}
	for _, slab := range slabs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO quantity_price_slabs (product_code, min_qty, max_qty, price_per_unit)
			VALUES ($1, $2, $3, $4)
		`, productCode, slab.MinQty, slab.MaxQty, slab.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to insert slab for product %s: %w", productCode, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit slabs for product %s: %w", productCode, err)
	}
	return s.ListSlabs(ctx, productCode)
}

func (s *priceSlabService) ResolveQuantityPrice(ctx context.Context, productCode string, quantity int, basePrice decimal.Decimal) (decimal.Decimal, error) {
	if productCode != "" {
		owned, err := s.ListSlabs(ctx, productCode)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if len(owned) > 0 {
			return ResolveUnitPrice(toQuantitySlabs(owned), quantity, basePrice), nil
		}
	}

	global, err := s.ListSlabs(ctx, "")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return ResolveUnitPrice(toQuantitySlabs(global), quantity, basePrice), nil
}

func toQuantitySlabs(stored []StoredQuantitySlab) []QuantitySlab {
	slabs := make([]QuantitySlab, len(stored))
	for i, g := range stored {
		slabs[i] = g.Slab
	}
	return slabs
}
