package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/dto"
	"github.com/nazimov/vmrecon/internal/metrics"
	"github.com/nazimov/vmrecon/internal/schema"
	"github.com/nazimov/vmrecon/pkg/utils"
)

type IngestService interface {
	Ingest(ctx context.Context, batchID string, hint domain.SourceKind, headers []string, rows []domain.Row) (*domain.IngestResult, error)
}

type ReconcileService interface {
	Reconcile(ctx context.Context, batchID string) (*domain.ReconciliationStats, error)
}

type IngestHandler struct {
	ingestService    IngestService
	reconcileService ReconcileService
	metrics          *metrics.Registry
}

func New(ingestService IngestService, reconcileService ReconcileService, registry *metrics.Registry) *IngestHandler {
	return &IngestHandler{
		ingestService:    ingestService,
		reconcileService: reconcileService,
		metrics:          registry,
	}
}

// UploadFile godoc
//
//	@Summary		Ingest one decoded tabular file into a batch
//	@Description	Accepts already-parsed rows with an optional source kind hint, detects the schema and runs the matching stage for that kind.
//	@Tags			Batches
//	@Accept			json
//	@Produce		json
//	@Param			batchID	path		string					true	"Upload batch identifier"
//	@Param			file	body		dto.IngestRequestDTO	true	"Decoded file content"
//	@Success		200		{object}	dto.IngestResponseDTO
//	@Failure		400		{object}	utils.Response	"Malformed request body"
//	@Failure		422		{object}	utils.Response	"File headers match no known source kind"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/batches/{batchID}/files [post]
func (h *IngestHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	if batchID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Batch ID is required")
		return
	}

	var req dto.IngestRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Headers) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "File headers are required")
		return
	}

	hint := domain.SourceUnknown
	if req.Kind != "" {
		hint = domain.SourceKind(req.Kind)
	}
	rows := make([]domain.Row, len(req.Rows))
	for i, row := range req.Rows {
		rows[i] = domain.Row(row)
	}

	result, err := h.ingestService.Ingest(r.Context(), batchID, hint, req.Headers, rows)
	if err != nil {
		if errors.Is(err, schema.ErrUnrecognized) {
			h.metrics.FilesUnrecognized.Inc()
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "File headers match no known source kind")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	kind := string(result.DetectedKind)
	h.metrics.RowsProcessed.WithLabelValues(kind).Add(float64(result.Processed))
	h.metrics.RowsSkipped.WithLabelValues(kind).Add(float64(result.Skipped))

	utils.RespondWithJSON(w, http.StatusOK, dto.IngestResponseDTO{
		DetectedKind: string(result.DetectedKind),
		Processed:    result.Processed,
		Skipped:      result.Skipped,
	})
}

// ReconcileBatch godoc
//
//	@Summary		Classify every order touched by a batch
//	@Description	Runs the status classifier over the batch and returns the resulting status histogram.
//	@Tags			Batches
//	@Produce		json
//	@Param			batchID	path		string	true	"Upload batch identifier"
//	@Success		200		{object}	dto.StatsResponseDTO
//	@Failure		400		{object}	utils.Response	"Batch ID missing"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/batches/{batchID}/reconcile [post]
func (h *IngestHandler) ReconcileBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	if batchID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Batch ID is required")
		return
	}

	started := time.Now()
	stats, err := h.reconcileService.Reconcile(r.Context(), batchID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.metrics.ReconcileDuration.Observe(time.Since(started).Seconds())
	h.metrics.ObserveStats(stats.ByStatus)

	utils.RespondWithJSON(w, http.StatusOK, dto.StatsResponseDTO{
		ByStatus: stats.ByStatus,
		Total:    stats.Total,
	})
}
