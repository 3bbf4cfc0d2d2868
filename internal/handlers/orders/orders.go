package orders

import (
	"context"
	"net/http"
	"time"

	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/dto"
	"github.com/nazimov/vmrecon/pkg/utils"
)

type Service interface {
	GetOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

type OrderHandler struct {
	queryService Service
}

func New(queryService Service) *OrderHandler {
	return &OrderHandler{
		queryService: queryService,
	}
}

// GetOrders godoc
//
//	@Summary		Query reconciled orders
//	@Description	Read access for reporting. Supports filtering by match status, machine code and a creation-time range.
//	@Tags			Orders
//	@Produce		json
//	@Param			status			query		string	false	"Match status filter"	example(FISCAL_MISMATCH)
//	@Param			machine_code	query		string	false	"Machine code filter"	example(M1)
//	@Param			from			query		string	false	"Creation time lower bound (RFC 3339)"
//	@Param			to				query		string	false	"Creation time upper bound (RFC 3339)"
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		400	{object}	utils.Response	"Malformed date bound"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{
		MatchStatus: r.URL.Query().Get("status"),
		MachineCode: r.URL.Query().Get("machine_code"),
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid 'from' date")
			return
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid 'to' date")
			return
		}
		filter.To = &to
	}

	orders, err := h.queryService.GetOrders(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(orders) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	response := make([]dto.OrderResponseDTO, 0, len(orders))
	for _, order := range orders {
		item := dto.OrderResponseDTO{
			OrderNumber:     order.OrderNumber,
			MachineCode:     order.MachineCode,
			GoodsName:       order.GoodsName,
			PaymentType:     string(order.PaymentType),
			PaymentGateway:  order.PaymentGateway,
			OrderPrice:      order.OrderPrice.String(),
			MatchStatus:     order.MatchStatus,
			MismatchDetails: order.MismatchDetails,
			MatchedSources:  order.MatchedSources,
		}
		if !order.FiscalAmount.IsZero() {
			item.FiscalAmount = order.FiscalAmount.String()
		}
		if !order.GatewayAmount.IsZero() {
			item.GatewayAmount = order.GatewayAmount.String()
		}
		if order.CreationTime != nil {
			item.CreationTime = order.CreationTime.Format(time.RFC3339)
		}
		response = append(response, item)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
