package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"adforge/internal/core/engine"
	"adforge/internal/core/port"
)

// Sync pulls attributed daily rows from the metrics provider and reconciles
// them onto the creative set through the channel matcher. Each channel
// sequence is replaced wholesale, so re-running a pull over the same source
// window cannot accumulate duplicates.
type Sync struct {
	provider  port.MetricsProvider
	pipeline  port.PipelineUseCase
	creatives port.CreativeRepository
	notifier  port.Notifier
	logger    *slog.Logger
}

// NewSync wires the sync usecase.
func NewSync(provider port.MetricsProvider, pipeline port.PipelineUseCase, creatives port.CreativeRepository, notifier port.Notifier, logger *slog.Logger) *Sync {
	return &Sync{provider: provider, pipeline: pipeline, creatives: creatives, notifier: notifier, logger: logger}
}

// Run fetches rows for the date range and attaches matched sequences. A
// provider failure is surfaced as a notification and an error; it never
// touches existing creative state.
func (s *Sync) Run(ctx context.Context, from, to string) (*port.SyncReport, error) {
	rows, err := s.provider.FetchAdSetRows(ctx, from, to)
	if err != nil {
		s.logger.Error("channel metrics pull failed", slog.Any("error", err))
		s.notifier.Publish(ctx, "Channel metrics sync failed: "+err.Error())
		return nil, err
	}

	creatives, err := s.creatives.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load creatives: %w", err)
	}

	matches := engine.MatchRows(rows, creatives)
	for _, m := range matches {
		for ch, cm := range m.Channels {
			_, err := s.pipeline.Execute(ctx, engine.SetChannelMetrics{
				ID:      m.CreativeID,
				Channel: ch,
				Records: cm.Records,
			})
			if err != nil {
				return nil, fmt.Errorf("attach %s metrics to %s: %w", ch, m.CreativeID, err)
			}
		}
	}

	report := &port.SyncReport{Rows: len(rows), Matched: len(matches)}
	s.logger.Info("channel metrics synced",
		slog.Int("rows", report.Rows), slog.Int("matched", report.Matched))
	s.notifier.Publish(ctx, fmt.Sprintf("Channel sync complete: %d rows, %d creatives matched", report.Rows, report.Matched))
	return report, nil
}
