package port

import (
	"context"
	"time"

	"adforge/internal/core/domain"
)

// MetricsProvider pulls externally attributed daily ad-set rows for a date
// range. Calls are cancelable and at-least-once; the sync usecase feeds
// results back into the engine as wholesale sequence replacements, so
// re-running a pull is idempotent.
type MetricsProvider interface {
	FetchAdSetRows(ctx context.Context, from, to string) ([]domain.ChannelRow, error)
}

// AnalysisRequest is the serialized snapshot of one creative handed to the
// analysis provider.
type AnalysisRequest struct {
	Name             string
	Type             string
	Brief            string
	Thresholds       domain.Thresholds
	Metrics          []domain.MetricRecord
	Comments         []domain.Comment
	IterationHistory []domain.IterationEntry
}

// AnalysisResult is what the provider returns. NextIterationPlan is empty
// for winning creatives.
type AnalysisResult struct {
	Summary            string            `json:"summary"`
	Findings           []domain.Finding  `json:"findings"`
	NextIterationPlan  string            `json:"nextIterationPlan"`
	SuggestedLearnings []domain.Learning `json:"suggestedLearnings"`
}

// AnalysisProvider runs a generative analysis over one creative's snapshot.
type AnalysisProvider interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
}

// CommentScraper fetches audience comments for an external video reference.
type CommentScraper interface {
	Scrape(ctx context.Context, videoURL string, maxComments int) ([]domain.Comment, error)
}

// Notification is one entry in the transient feed.
type Notification struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Notifier is the best-effort transient notification feed (sync toasts,
// external-service failures). Publish must never fail an operation: a dead
// feed degrades to logging.
type Notifier interface {
	Publish(ctx context.Context, text string)
	Recent(ctx context.Context, limit int64) ([]Notification, error)
}
