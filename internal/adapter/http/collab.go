package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"adforge/internal/core/domain"
	"adforge/internal/core/engine"
)

func (h *Handler) handleAppendMetric(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var record domain.MetricRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.AppendMetric{ID: id, Record: record})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

// handleSetAdSet configures the external ad-set id for one channel. An
// empty id in the body clears the link.
func (h *Handler) handleSetAdSet(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		AdSetID string `json:"adSetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.SetChannelAdSet{
		ID:      id,
		Channel: domain.Channel(chi.URLParam(r, "channel")),
		AdSetID: body.AdSetID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

func (h *Handler) handleAppendComment(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		Text       string           `json:"text"`
		Sentiment  domain.Sentiment `json:"sentiment"`
		Suppressed bool             `json:"suppressed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.AppendComment{
		ID: id,
		Comment: domain.Comment{
			Text:       body.Text,
			Sentiment:  body.Sentiment,
			Suppressed: body.Suppressed,
		},
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

func (h *Handler) handleRemoveComment(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		http.Error(w, "invalid comment id", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.RemoveComment{ID: id, CommentID: commentID})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

func (h *Handler) handleAppendLearning(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.AppendLearning{
		ID:       id,
		Learning: domain.Learning{Type: body.Type, Text: body.Text},
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

func (h *Handler) handleRemoveLearning(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	learningID, err := uuid.Parse(chi.URLParam(r, "learningID"))
	if err != nil {
		http.Error(w, "invalid learning id", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.RemoveLearning{ID: id, LearningID: learningID})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

func (h *Handler) handleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.SubmitDraft{ID: id, Name: body.Name})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

func (h *Handler) handleApproveDraft(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	draftID, err := uuid.Parse(chi.URLParam(r, "draftID"))
	if err != nil {
		http.Error(w, "invalid draft id", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.ApproveDraft{ID: id, DraftID: draftID})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

func (h *Handler) handleRequestRevision(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		From string `json:"from"`
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.RequestRevision{ID: id, From: body.From, Text: body.Text})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

func (h *Handler) handleResolveRevision(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	revisionID, err := uuid.Parse(chi.URLParam(r, "revisionID"))
	if err != nil {
		http.Error(w, "invalid revision id", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.ResolveRevision{ID: id, RevisionID: revisionID})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}

func (h *Handler) handleAppendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := creativeID(r)
	if err != nil {
		http.Error(w, "invalid creative id", http.StatusBadRequest)
		return
	}
	var body struct {
		From string `json:"from"`
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.pipeline.Execute(r.Context(), engine.AppendMessage{ID: id, From: body.From, Text: body.Text})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, res)
}
