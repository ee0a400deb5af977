package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adforge/internal/core/domain"
	"adforge/internal/core/engine"
)

// handleMoveStage runs the stage gate. A blocked move answers 409 with the
// specific unmet precondition; it is never silently dropped.
func (h *Handler) handleMoveStage(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		Target string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.MoveStage{ID: id, To: domain.Stage(body.Target)})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

// handleToggleFlag flips one gate boolean named in the path.
func (h *Handler) handleToggleFlag(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.ToggleFlag{ID: id, Flag: chi.URLParam(r, "flag")})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

// handleIterate sends a red creative back to drafting. The engine checks
// eligibility itself; out-of-policy calls answer 409.
func (h *Handler) handleIterate(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.Iterate{ID: id, Reason: body.Reason})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

// handleKill archives a kill-eligible creative.
func (h *Handler) handleKill(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.Kill{ID: id})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

// handleCreateVariant branches a new creative off a live, green parent.
func (h *Handler) handleCreateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		Name  string `json:"name"`
		Brief string `json:"brief"`
		Type  string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.CreateVariant{
		ParentID: id,
		Name:     body.Name,
		Brief:    body.Brief,
		Type:     body.Type,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	if res.Denied != "" {
		h.writeAction(w, res)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}
