package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
	"adforge/internal/core/engine"
	"adforge/internal/core/port"
)

// Analysis runs the generative-analysis provider over one creative's
// snapshot and records the result. Provider failures become a stored
// analysis with an error summary and no findings, so one broken integration
// never blocks anything else.
type Analysis struct {
	provider port.AnalysisProvider
	pipeline port.PipelineUseCase
	notifier port.Notifier
	logger   *slog.Logger
	timeout  time.Duration
}

// NewAnalysis wires the analysis usecase. timeout bounds one provider call.
func NewAnalysis(provider port.AnalysisProvider, pipeline port.PipelineUseCase, notifier port.Notifier, logger *slog.Logger, timeout time.Duration) *Analysis {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Analysis{provider: provider, pipeline: pipeline, notifier: notifier, logger: logger, timeout: timeout}
}

// Analyze snapshots the creative, calls the provider, and appends the
// resulting analysis plus any suggested learnings.
func (a *Analysis) Analyze(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	view, err := a.pipeline.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	th, err := a.pipeline.Thresholds(ctx)
	if err != nil {
		return nil, err
	}

	req := port.AnalysisRequest{
		Name:             view.Name,
		Type:             view.Type,
		Brief:            view.Brief,
		Thresholds:       th,
		Metrics:          view.Metrics,
		Comments:         view.Comments,
		IterationHistory: view.IterationLog,
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	res, callErr := a.provider.Analyze(callCtx, req)

	record := domain.Analysis{ID: uuid.New(), CreatedAt: time.Now().UTC()}
	if callErr != nil {
		a.logger.Error("analysis provider failed", slog.String("creative", id.String()), slog.Any("error", callErr))
		a.notifier.Publish(ctx, "Analysis failed for "+view.Name+": "+callErr.Error())
		record.Summary = "analysis failed: " + callErr.Error()
		record.Failed = true
	} else {
		record.Summary = res.Summary
		record.Findings = res.Findings
		record.NextIterationPlan = res.NextIterationPlan
	}

	if _, err := a.pipeline.Execute(ctx, engine.AppendAnalysis{ID: id, Analysis: record}); err != nil {
		return nil, err
	}

	if callErr == nil {
		for _, l := range res.SuggestedLearnings {
			if l.Type == "" || l.Text == "" {
				continue
			}
			if _, err := a.pipeline.Execute(ctx, engine.AppendLearning{ID: id, Learning: l}); err != nil {
				return nil, err
			}
		}
	}
	return &record, nil
}
