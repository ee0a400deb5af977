package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"adforge/internal/core/engine"
	"adforge/internal/core/port"
)

// Scrape pulls audience comments for a creative's external video reference
// and appends them, stamping a notification entry on the creative.
type Scrape struct {
	scraper     port.CommentScraper
	pipeline    port.PipelineUseCase
	notifier    port.Notifier
	logger      *slog.Logger
	maxComments int
}

// NewScrape wires the scrape usecase.
func NewScrape(scraper port.CommentScraper, pipeline port.PipelineUseCase, notifier port.Notifier, logger *slog.Logger, maxComments int) *Scrape {
	if maxComments <= 0 {
		maxComments = 100
	}
	return &Scrape{scraper: scraper, pipeline: pipeline, notifier: notifier, logger: logger, maxComments: maxComments}
}

// Scrape fetches comments for videoURL and appends them to the creative. It
// returns how many comments were added.
func (s *Scrape) Scrape(ctx context.Context, id uuid.UUID, videoURL string) (int, error) {
	if _, err := s.pipeline.Get(ctx, id); err != nil {
		return 0, err
	}

	comments, err := s.scraper.Scrape(ctx, videoURL, s.maxComments)
	if err != nil {
		s.logger.Error("comment scrape failed", slog.String("creative", id.String()), slog.Any("error", err))
		s.notifier.Publish(ctx, "Comment scrape failed: "+err.Error())
		return 0, err
	}

	suppressed := 0
	for _, c := range comments {
		if c.Suppressed {
			suppressed++
		}
		if _, err := s.pipeline.Execute(ctx, engine.AppendComment{ID: id, Comment: c}); err != nil {
			return 0, err
		}
	}

	note := fmt.Sprintf("Scraped %d new comments (%d suppressed)", len(comments), suppressed)
	if _, err := s.pipeline.Execute(ctx, engine.AppendEvent{ID: id, Text: note}); err != nil {
		return 0, err
	}
	return len(comments), nil
}
