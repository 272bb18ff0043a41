package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DiscountConfigService persists discount slab sets for both parent kinds:
// delivery charges (location+carrier, cap 3) and product discounts
// (product+subcategory, cap 10). Saving replaces the set atomically; reads
// return slabs in stored order so index-based edits stay stable.
type DiscountConfigService interface {
	ListConfigs(ctx context.Context, scope DiscountScope) ([]DiscountConfig, error)
	GetConfig(ctx context.Context, scope DiscountScope, keyA, keyB string) (*DiscountConfig, error)
	// SaveConfig validates every candidate slab and replaces the stored set.
	// Each raw slab goes through the same validator the editor uses; the
	// scope's cap applies to the whole set.
	SaveConfig(ctx context.Context, scope DiscountScope, keyA, keyB string, slabs []RawDiscountSlab) (*DiscountConfig, error)
	DeleteConfig(ctx context.Context, scope DiscountScope, keyA, keyB string) error
	// ResolveConfigDiscount loads the configuration and resolves it against
	// the amount at the given instant. A missing configuration is not an
	// error: the charge applies in full.
	ResolveConfigDiscount(ctx context.Context, scope DiscountScope, keyA, keyB, amount string, now time.Time) (*DiscountMatch, bool, error)
}

type discountConfigService struct {
	pool *pgxpool.Pool
}

func NewDiscountConfigService(pool *pgxpool.Pool) DiscountConfigService {
	return &discountConfigService{pool: pool}
}

func (s *discountConfigService) ListConfigs(ctx context.Context, scope DiscountScope) ([]DiscountConfig, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, scope, key_a, key_b, updated_at
		FROM discount_configs
		WHERE scope = $1
		ORDER BY key_a, key_b
	`, string(scope))
	if err != nil {
		return nil, fmt.Errorf("failed to query discount configs: %w", err)
	}
	defer rows.Close()

	var configs []DiscountConfig
	for rows.Next() {
		var c DiscountConfig
		if err := rows.Scan(&c.ID, &c.Scope, &c.KeyA, &c.KeyB, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan discount config: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating discount configs: %w", err)
	}

	for i := range configs {
		slabs, err := s.fetchSlabs(ctx, configs[i].ID)
		if err != nil {
			return nil, err
		}
		configs[i].Slabs = slabs
	}
	return configs, nil
}

func (s *discountConfigService) GetConfig(ctx context.Context, scope DiscountScope, keyA, keyB string) (*DiscountConfig, error) {
	var c DiscountConfig
	err := s.pool.QueryRow(ctx, `
		SELECT id, scope, key_a, key_b, updated_at
		FROM discount_configs
		WHERE scope = $1 AND key_a = $2 AND key_b = $3
	`, string(scope), keyA, keyB).Scan(&c.ID, &c.Scope, &c.KeyA, &c.KeyB, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("discount config %s/%s/%s: %w", scope, keyA, keyB, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch discount config %s/%s/%s: %w", scope, keyA, keyB, err)
	}

	slabs, err := s.fetchSlabs(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Slabs = slabs
	return &c, nil
}

func (s *discountConfigService) SaveConfig(ctx context.Context, scope DiscountScope, keyA, keyB string, raw []RawDiscountSlab) (*DiscountConfig, error) {
	keyA, keyB = strings.TrimSpace(keyA), strings.TrimSpace(keyB)
	if keyA == "" || keyB == "" {
		return nil, fmt.Errorf("both configuration keys are required")
	}

	// Run the whole set through the editor so persistence enforces exactly
	// the client-side rules (no separate server-side variant to drift).
	var slabs []DiscountSlab
	var err error
	for _, candidate := range raw {
		slabs, err = AddDiscountSlab(slabs, candidate, scope.SlabCap())
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var configID int
	err = tx.QueryRow(ctx, `
		INSERT INTO discount_configs (scope, key_a, key_b)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope, key_a, key_b) DO UPDATE SET updated_at = NOW()
		RETURNING id
	`, string(scope), keyA, keyB).Scan(&configID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert discount config: %w", err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM discount_slabs WHERE config_id = $1", configID); err != nil {
		return nil, fmt.Errorf("failed to clear discount slabs: %w", err)
	}

	for i, slab := range slabs {
		var startDate, endDate, startTime, endTime *string
		timeSpecific := false
		if slab.Validity != nil {
			startDate, endDate = &slab.Validity.StartDate, &slab.Validity.EndDate
			if slab.Validity.StartTime != "" || slab.Validity.EndTime != "" {
				timeSpecific = true
				startTime, endTime = &slab.Validity.StartTime, &slab.Validity.EndTime
			}
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO discount_slabs
			  (config_id, position, min_amount, max_amount, discount_type, discount_value,
			   start_date, end_date, start_time, end_time, is_time_specific)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, configID, i, slab.MinAmount, slab.MaxAmount, string(slab.Type), slab.Value,
			startDate, endDate, startTime, endTime, timeSpecific)
		if err != nil {
			return nil, fmt.Errorf("failed to insert discount slab %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit discount config: %w", err)
	}
	return s.GetConfig(ctx, scope, keyA, keyB)
}

func (s *discountConfigService) DeleteConfig(ctx context.Context, scope DiscountScope, keyA, keyB string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM discount_configs WHERE scope = $1 AND key_a = $2 AND key_b = $3
	`, string(scope), keyA, keyB)
	if err != nil {
		return fmt.Errorf("failed to delete discount config %s/%s/%s: %w", scope, keyA, keyB, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("discount config %s/%s/%s: %w", scope, keyA, keyB, ErrNotFound)
	}
	return nil
}

// ResolveConfigDiscount loads a configuration and resolves it against the
// amount at the given instant. A missing configuration resolves to no
// discount rather than an error — the charge simply applies in full.
func (s *discountConfigService) ResolveConfigDiscount(ctx context.Context, scope DiscountScope, keyA, keyB string, amount string, now time.Time) (*DiscountMatch, bool, error) {
	config, err := s.GetConfig(ctx, scope, keyA, keyB)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	match, ok := ResolveDiscount(config.Slabs, coerceDecimal(amount), now)
	return match, ok, nil
}

func (s *discountConfigService) fetchSlabs(ctx context.Context, configID int) ([]DiscountSlab, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT min_amount, max_amount, discount_type, discount_value,
		       start_date, end_date, start_time, end_time, is_time_specific
		FROM discount_slabs
		WHERE config_id = $1
		ORDER BY position
	`, configID)
	if err != nil {
		return nil, fmt.Errorf("failed to query discount slabs: %w", err)
	}
	defer rows.Close()

	var slabs []DiscountSlab
	for rows.Next() {
		var sl DiscountSlab
		var discountType string
		var startDate, endDate, startTime, endTime *string
		var timeSpecific bool
		if err := rows.Scan(&sl.MinAmount, &sl.MaxAmount, &discountType, &sl.Value,
			&startDate, &endDate, &startTime, &endTime, &timeSpecific); err != nil {
			return nil, fmt.Errorf("failed to scan discount slab: %w", err)
		}
		sl.Type = DiscountType(discountType)
		if startDate != nil && endDate != nil {
			w := ValidityWindow{StartDate: *startDate, EndDate: *endDate}
			if timeSpecific {
				if startTime != nil {
					w.StartTime = *startTime
				}
				if endTime != nil {
					w.EndTime = *endTime
				}
			}
			sl.Validity = &w
		}
		slabs = append(slabs, sl)
	}
	return slabs, rows.Err()
}
