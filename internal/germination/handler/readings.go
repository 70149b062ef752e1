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

func (h *Handler) handleUpsertNormal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := testID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req germinationModel.UpsertNormalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid upsert normal request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.TestID = id

	reading, err := h.germination.UpsertNormal(ctx, chi.URLParam(r, "tabla"), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, reading)
}

func (h *Handler) handleListNormals(w http.ResponseWriter, r *http.Request) {
	id, err := testID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	readings, err := h.germination.ListNormals(r.Context(), id, chi.URLParam(r, "tabla"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, readings)
}

func (h *Handler) handleUpsertFinal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := testID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req germinationModel.UpsertFinalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid upsert final request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.TestID = id

	reading, err := h.germination.UpsertFinal(ctx, chi.URLParam(r, "tabla"), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, reading)
}

func (h *Handler) handleListMatrix(w http.ResponseWriter, r *http.Request) {
	id, err := testID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	matrix, err := h.germination.ListMatrix(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, matrix)
}
