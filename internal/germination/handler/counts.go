package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	germinationModel "seedlab/internal/germination/models"
	"seedlab/internal/platform/middleware"
	"seedlab/internal/transport/http/shared"
	dErrors "seedlab/pkg/domain-errors"
)

// handleAddCount creates an inspection count, auto-numbering it when the body
// omits numero.
func (h *Handler) handleAddCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := testID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req germinationModel.AddCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid add count request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.TestID = id

	count, err := h.germination.AddCount(ctx, req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, count)
}

func (h *Handler) handleListCounts(w http.ResponseWriter, r *http.Request) {
	id, err := testID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	counts, err := h.germination.ListCounts(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, counts)
}

type updateCountDateRequest struct {
	Date time.Time `json:"fecha"`
}

func (h *Handler) handleUpdateCountDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

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

	var req updateCountDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Date.IsZero() {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "fecha is required"))
		return
	}

	if err := h.germination.UpdateCountDate(ctx, id, number, req.Date); err != nil {
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveCount(w http.ResponseWriter, r *http.Request) {
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

	if err := h.germination.RemoveCount(r.Context(), id, number); err != nil {
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveAllCounts(w http.ResponseWriter, r *http.Request) {
	id, err := testID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.germination.RemoveAllCounts(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// countNumber extracts the numero path parameter.
func countNumber(r *http.Request) (int, error) {
	number, err := strconv.Atoi(chi.URLParam(r, "numero"))
	if err != nil || number <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid numero")
	}
	return number, nil
}
