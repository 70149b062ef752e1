package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	germinationModel "seedlab/internal/germination/models"
	"seedlab/internal/germination/service"
	"seedlab/internal/platform/metrics"
	"seedlab/internal/platform/middleware"
	dErrors "seedlab/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/mock_service.go -package=mocks

// Service defines the interface for germination grid operations.
type Service interface {
	AddCount(ctx context.Context, req germinationModel.AddCountRequest) (*germinationModel.Count, error)
	ListCounts(ctx context.Context, testID uuid.UUID) ([]*germinationModel.Count, error)
	UpdateCountDate(ctx context.Context, testID uuid.UUID, number int, date time.Time) error
	RemoveCount(ctx context.Context, testID uuid.UUID, number int) error
	RemoveAllCounts(ctx context.Context, testID uuid.UUID) error
	ExpandRepetition(ctx context.Context, table string, req germinationModel.AddRepetitionRequest) (*service.Expansion, error)
	RemoveRepetition(ctx context.Context, table string, testID uuid.UUID, number int) error
	UpsertNormal(ctx context.Context, table string, req germinationModel.UpsertNormalRequest) (*germinationModel.NormalReading, error)
	ListNormals(ctx context.Context, testID uuid.UUID, table string) ([]*germinationModel.NormalReading, error)
	UpsertFinal(ctx context.Context, table string, req germinationModel.UpsertFinalRequest) (*germinationModel.FinalReading, error)
	ListMatrix(ctx context.Context, testID uuid.UUID) (*germinationModel.MatrixSummary, error)
}

// Handler handles germination grid endpoints.
type Handler struct {
	logger      *slog.Logger
	germination Service
	metrics     *metrics.Metrics
}

// New creates a new germination Handler.
func New(germination Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:      logger,
		germination: germination,
		metrics:     metrics,
	}
}

// Register registers the germination routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	gridRouter := chi.NewRouter()
	gridRouter.Use(middleware.Recovery(h.logger))
	gridRouter.Use(middleware.RequestID)
	gridRouter.Use(middleware.Logger(h.logger))
	gridRouter.Use(middleware.Timeout(30 * time.Second))
	gridRouter.Use(middleware.ContentTypeJSON)
	gridRouter.Use(middleware.Latency(h.metrics))

	gridRouter.Route("/germinacion/{ensayoID}", func(r chi.Router) {
		r.Post("/conteos", h.handleAddCount)
		r.Get("/conteos", h.handleListCounts)
		r.Delete("/conteos", h.handleRemoveAllCounts)
		r.Patch("/conteos/{numero}", h.handleUpdateCountDate)
		r.Delete("/conteos/{numero}", h.handleRemoveCount)
		r.Get("/matriz", h.handleListMatrix)

		r.Route("/tablas/{tabla}", func(r chi.Router) {
			r.Post("/repeticiones", h.handleExpandRepetition)
			r.Delete("/repeticiones/{numero}", h.handleRemoveRepetition)
			r.Put("/normales", h.handleUpsertNormal)
			r.Get("/normales", h.handleListNormals)
			r.Put("/finales", h.handleUpsertFinal)
		})
	})

	r.Mount("/", gridRouter)
}

// testID extracts the ensayoID path parameter.
func testID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "ensayoID"))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid ensayo id")
	}
	return id, nil
}
