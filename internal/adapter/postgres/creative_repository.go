package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adforge/internal/core/domain"
	"adforge/internal/core/port"
)

// CreativeRepository implements port.CreativeRepository over PostgreSQL.
// Creatives are stored as a jsonb document plus a few indexed scalar
// columns; the document is the source of truth and the columns exist for
// queries and referential integrity on lineage.
type CreativeRepository struct {
	pool *pgxpool.Pool
}

// NewCreativeRepository returns a new repository instance.
func NewCreativeRepository(pool *pgxpool.Pool) *CreativeRepository {
	return &CreativeRepository{pool: pool}
}

// Get returns one creative by id, or port.ErrNotFound.
func (r *CreativeRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Creative, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM creatives WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var c domain.Creative
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("decode creative %s: %w", id, err)
	}
	return &c, nil
}

// List returns the full collection ordered by creation time.
func (r *CreativeRepository) List(ctx context.Context) ([]domain.Creative, error) {
	rows, err := r.pool.Query(ctx, `SELECT doc FROM creatives ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Creative
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var c domain.Creative
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("decode creative: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Save upserts one creative, keeping the scalar columns in step with the
// document.
func (r *CreativeRepository) Save(ctx context.Context, c *domain.Creative) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode creative %s: %w", c.ID, err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO creatives (id, name, stage, parent_id, doc, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET name = $2, stage = $3, parent_id = $4, doc = $5, updated_at = $7`,
		c.ID, c.Name, string(c.Stage), c.ParentID, doc, c.CreatedAt, c.UpdatedAt)
	return err
}

// Count returns the number of stored creatives.
func (r *CreativeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM creatives`).Scan(&n)
	return n, err
}
