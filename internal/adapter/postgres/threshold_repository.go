package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adforge/internal/core/domain"
)

// ThresholdRepository stores the single process-wide threshold row. The
// migration seeds a default row, so Get falls back to defaults only when
// someone has truncated the table.
type ThresholdRepository struct {
	pool     *pgxpool.Pool
	defaults domain.Thresholds
}

// NewThresholdRepository returns a new repository with fallback defaults.
func NewThresholdRepository(pool *pgxpool.Pool, defaults domain.Thresholds) *ThresholdRepository {
	return &ThresholdRepository{pool: pool, defaults: defaults}
}

// Get returns the current thresholds.
func (r *ThresholdRepository) Get(ctx context.Context) (domain.Thresholds, error) {
	var th domain.Thresholds
	err := r.pool.QueryRow(ctx, `SELECT green, yellow FROM thresholds WHERE id = 1`).Scan(&th.Green, &th.Yellow)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.defaults, nil
	}
	if err != nil {
		return domain.Thresholds{}, err
	}
	return th, nil
}

// Put replaces the thresholds.
func (r *ThresholdRepository) Put(ctx context.Context, th domain.Thresholds) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO thresholds (id, green, yellow, updated_at)
VALUES (1, $1, $2, now())
ON CONFLICT (id) DO UPDATE SET green = $1, yellow = $2, updated_at = now()`, th.Green, th.Yellow)
	return err
}
