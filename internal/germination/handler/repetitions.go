package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	germinationModel "seedlab/internal/germination/models"
	"seedlab/internal/platform/middleware"
	"seedlab/internal/transport/http/shared"
	dErrors "seedlab/pkg/domain-errors"
)

// handleExpandRepetition creates a repetition and materializes its value-0
// cells under every existing count.
func (h *Handler) handleExpandRepetition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := testID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req germinationModel.AddRepetitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid expand repetition request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.TestID = id

	expansion, err := h.germination.ExpandRepetition(ctx, chi.URLParam(r, "tabla"), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, expansion)
}

func (h *Handler) handleRemoveRepetition(w http.ResponseWriter, r *http.Request) {
	id, err := testID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	number, err := countNumber(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.germination.RemoveRepetition(r.Context(), chi.URLParam(r, "tabla"), id, number); err != nil {
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
