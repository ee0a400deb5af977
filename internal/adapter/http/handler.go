package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adforge/internal/core/port"
)

// Handler is the inbound HTTP adapter. It maps the engine's action table
// onto REST routes, holds the usecases that execute them, and a logger for
// structured logging. Routes are registered on a chi.Router.
type Handler struct {
	pipeline port.PipelineUseCase
	sync     port.SyncUseCase
	analysis port.AnalysisUseCase
	scrape   port.ScrapeUseCase
	notifier port.Notifier
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(pipeline port.PipelineUseCase, sync port.SyncUseCase, analysis port.AnalysisUseCase, scrape port.ScrapeUseCase, notifier port.Notifier, logger *slog.Logger) *Handler {
	h := &Handler{
		pipeline: pipeline,
		sync:     sync,
		analysis: analysis,
		scrape:   scrape,
		notifier: notifier,
		logger:   logger,
	}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/creatives", func(r chi.Router) {
			r.Post("/", h.handleCreateCreative)
			r.Get("/", h.handleListCreatives)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetCreative)
				r.Patch("/", h.handleUpdateCreative)

				r.Post("/stage", h.handleMoveStage)
				r.Post("/flags/{flag}", h.handleToggleFlag)
				r.Post("/iterate", h.handleIterate)
				r.Post("/kill", h.handleKill)
				r.Post("/variants", h.handleCreateVariant)

				r.Post("/metrics", h.handleAppendMetric)
				r.Put("/channels/{channel}/adset", h.handleSetAdSet)

				r.Post("/comments", h.handleAppendComment)
				r.Delete("/comments/{commentID}", h.handleRemoveComment)
				r.Post("/learnings", h.handleAppendLearning)
				r.Delete("/learnings/{learningID}", h.handleRemoveLearning)
				r.Post("/drafts", h.handleSubmitDraft)
				r.Post("/drafts/{draftID}/approve", h.handleApproveDraft)
				r.Post("/revisions", h.handleRequestRevision)
				r.Post("/revisions/{revisionID}/resolve", h.handleResolveRevision)
				r.Post("/messages", h.handleAppendMessage)

				r.Post("/analyze", h.handleAnalyze)
				r.Post("/scrape", h.handleScrape)
			})
		})

		r.Post("/sync/metrics", h.handleSyncMetrics)
		r.Get("/thresholds", h.handleGetThresholds)
		r.Put("/thresholds", h.handlePutThresholds)
		r.Get("/notifications", h.handleNotifications)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
