package calculate_discount

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/coupons"
	"github.com/m04kA/SMC-ParkingService/internal/service/coupons/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCouponNotFound     = "купон не найден"
	msgCouponInactive     = "купон деактивирован"
	msgCouponExpired      = "срок действия купона истек"
	msgMaxUsageReached    = "лимит использований купона исчерпан"
)

type Handler struct {
	service CouponService
	logger  Logger
}

func NewHandler(service CouponService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/coupons/calculate-discount
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CalculateDiscountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons/calculate-discount - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	discount, err := h.service.CalculateDiscount(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, coupons.ErrInvalidInput):
			h.logger.Warn("POST /coupons/calculate-discount - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, coupons.ErrCouponNotFound):
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, coupons.ErrCouponInactive):
			handlers.RespondError(w, http.StatusConflict, msgCouponInactive)

		case errors.Is(err, coupons.ErrCouponExpired):
			handlers.RespondError(w, http.StatusConflict, msgCouponExpired)

		case errors.Is(err, coupons.ErrMaxUsageReached):
			handlers.RespondError(w, http.StatusConflict, msgMaxUsageReached)

		default:
			h.logger.Error("POST /coupons/calculate-discount - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, discount)
}
