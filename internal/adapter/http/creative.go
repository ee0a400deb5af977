package httpadapter

import (
	"encoding/json"
	"net/http"

	"adforge/internal/core/engine"
)

// handleCreateCreative adds a fresh creative in the drafting stage. The
// body carries name (required), type, editor, deadline, brief and notes.
func (h *Handler) handleCreateCreative(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Editor   string `json:"editor"`
		Deadline string `json:"deadline"`
		Brief    string `json:"brief"`
		Notes    string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.CreateCreative{
		Name:     body.Name,
		Type:     body.Type,
		Editor:   body.Editor,
		Deadline: body.Deadline,
		Brief:    body.Brief,
		Notes:    body.Notes,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}

// handleListCreatives returns the whole pipeline, each creative decorated
// with its current tier, streak, totals and eligibility.
func (h *Handler) handleListCreatives(w http.ResponseWriter, r *http.Request) {
	views, err := h.pipeline.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

// handleGetCreative returns one decorated creative.
func (h *Handler) handleGetCreative(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	view, err := h.pipeline.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// handleUpdateCreative edits free-form fields. Absent fields are left
// untouched, so a PATCH with only {"notes": ...} changes nothing else.
func (h *Handler) handleUpdateCreative(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		Brief    *string `json:"brief"`
		Notes    *string `json:"notes"`
		Editor   *string `json:"editor"`
		Deadline *string `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.UpdateDetails{
		ID:       id,
		Brief:    body.Brief,
		Notes:    body.Notes,
		Editor:   body.Editor,
		Deadline: body.Deadline,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}
