package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"adforge/internal/core/domain"
	"adforge/internal/core/port"
)

// handleSyncMetrics pulls provider rows and reconciles them onto creatives.
// from/to default to the trailing 30 days.
func (h *Handler) handleSyncMetrics(w http.ResponseWriter, r *http.Request) {
	var body struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if body.To == "" {
		body.To = time.Now().UTC().Format("2006-01-02")
	}
	if body.From == "" {
		body.From = time.Now().UTC().AddDate(0, 0, -30).Format("2006-01-02")
	}
	report, err := h.sync.Run(r.Context(), body.From, body.To)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	analysis, err := h.analysis.Analyze(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, analysis)
}

func (h *Handler) handleScrape(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		VideoURL string `json:"videoUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if body.VideoURL == "" {
		http.Error(w, "videoUrl is required", http.StatusBadRequest)
		return
	}
	added, err := h.scrape.Scrape(r.Context(), id, body.VideoURL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"comments": added})
}

func (h *Handler) handleGetThresholds(w http.ResponseWriter, r *http.Request) {
	th, err := h.pipeline.Thresholds(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, th)
}

func (h *Handler) handlePutThresholds(w http.ResponseWriter, r *http.Request) {
	var th domain.Thresholds
	if err := json.NewDecoder(r.Body).Decode(&th); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.pipeline.SetThresholds(r.Context(), th); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, th)
}

func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notifier.Recent(r.Context(), 50)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if notes == nil {
		notes = []port.Notification{}
	}
	h.writeJSON(w, http.StatusOK, notes)
}
