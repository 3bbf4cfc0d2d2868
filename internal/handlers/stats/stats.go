package stats

import (
	"context"
	"net/http"

	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/dto"
	"github.com/nazimov/vmrecon/pkg/utils"
)

type Service interface {
	Stats(ctx context.Context) (*domain.ReconciliationStats, error)
}

type StatsHandler struct {
	statsService Service
}

func New(statsService Service) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats godoc
//
//	@Summary		Reconciliation status histogram
//	@Description	Returns per-status order counts over the whole store.
//	@Tags			Stats
//	@Produce		json
//	@Success		200	{object}	dto.StatsResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/stats [get]
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Stats(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.StatsResponseDTO{
		ByStatus: stats.ByStatus,
		Total:    stats.Total,
	})
}
