package port

import (
	"context"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
	"adforge/internal/core/engine"
)

// CreativeView is a creative decorated with everything the engine derives
// from current metrics and thresholds. It is a DTO for the HTTP layer and
// carries no behaviour.
type CreativeView struct {
	domain.Creative

	Tier        engine.Tier     `json:"tier"`
	GreenStreak int             `json:"greenStreak"`
	Winner      bool            `json:"winner"`
	Totals      *engine.Summary `json:"totals,omitempty"`
	BestChannel domain.Channel  `json:"bestChannel,omitempty"`

	// IterateDenied and KillDenied are empty when the action is currently
	// eligible, otherwise they explain why not. Eligibility is always
	// surfaced before the action, never auto-triggered.
	IterateDenied string `json:"iterateDenied,omitempty"`
	KillDenied    string `json:"killDenied,omitempty"`
}

// ActionResult reports a command dispatch. Denied carries the gate or
// policy reason when the command was rejected; Creative is the post-command
// view of the affected (or created) creative.
type ActionResult struct {
	Denied   string        `json:"denied,omitempty"`
	Creative *CreativeView `json:"creative,omitempty"`
}

// PipelineUseCase is the primary port into the lifecycle engine. Every
// mutating action from the action table goes through Execute as an engine
// command; reads go through List and Get.
type PipelineUseCase interface {
	Execute(ctx context.Context, cmd engine.Command) (*ActionResult, error)
	List(ctx context.Context) ([]CreativeView, error)
	Get(ctx context.Context, id uuid.UUID) (*CreativeView, error)
	Thresholds(ctx context.Context) (domain.Thresholds, error)
	SetThresholds(ctx context.Context, th domain.Thresholds) error
}

// SyncReport summarises one channel-metrics pull.
type SyncReport struct {
	Rows    int `json:"rows"`
	Matched int `json:"matched"`
}

// SyncUseCase pulls provider rows and reconciles them onto creatives.
type SyncUseCase interface {
	Run(ctx context.Context, from, to string) (*SyncReport, error)
}

// AnalysisUseCase runs the analysis provider over one creative and records
// the result. Provider failures are recorded as failed analyses, never
// returned as errors.
type AnalysisUseCase interface {
	Analyze(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
}

// ScrapeUseCase pulls audience comments for a creative's video URL and
// appends them.
type ScrapeUseCase interface {
	Scrape(ctx context.Context, id uuid.UUID, videoURL string) (int, error)
}
