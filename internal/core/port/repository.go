package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
)

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// CreativeRepository is the persistence boundary for creatives. The engine
// itself never touches storage; usecases load a snapshot, apply commands and
// save what changed. Implementations must be safe for concurrent use.
type CreativeRepository interface {
	// Get returns one creative by id, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.Creative, error)
	// List returns the full collection ordered by creation time.
	List(ctx context.Context) ([]domain.Creative, error)
	// Save upserts one creative.
	Save(ctx context.Context, c *domain.Creative) error
	// Count returns how many creatives exist; used to decide whether to seed.
	Count(ctx context.Context) (int64, error)
}

// ThresholdRepository stores the single process-wide threshold pair.
type ThresholdRepository interface {
	Get(ctx context.Context) (domain.Thresholds, error)
	Put(ctx context.Context, th domain.Thresholds) error
}
