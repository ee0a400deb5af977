package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"adforge/internal/core/engine"
	"adforge/internal/core/port"
)

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps the error taxonomy onto status codes: invalid input is
// 400, unknown ids are 404, everything else is an internal error.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, port.ErrNotFound):
		http.Error(w, "creative not found", http.StatusNotFound)
	default:
		h.logger.Error("request failed", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeAction reports a command dispatch: denials are 409 with the reason,
// so a blocked stage move always explains which precondition is unmet.
func (h *Handler) writeAction(w http.ResponseWriter, res *port.ActionResult) {
	if res.Denied != "" {
		h.writeJSON(w, http.StatusConflict, res)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func creativeID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
