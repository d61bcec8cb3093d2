package monthly_payouts

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/payouts"
	"github.com/m04kA/SMC-ParkingService/internal/service/payouts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type PayoutService interface {
	RunMonthlyPayouts(ctx context.Context, req *models.RunPayoutsRequest) (*models.RunPayoutsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service PayoutService
	logger  Logger
}

func NewHandler(service PayoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/jobs/monthly-payouts
// Внутренний эндпоинт, дергается планировщиком раз в месяц
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RunPayoutsRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /jobs/monthly-payouts - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.RunMonthlyPayouts(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payouts.ErrInvalidInput):
			h.logger.Warn("POST /jobs/monthly-payouts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /jobs/monthly-payouts - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /jobs/monthly-payouts - Paid %d commissions, %d cents", result.PaidCount, result.NetPaidCents)
	handlers.RespondJSON(w, http.StatusOK, result)
}
