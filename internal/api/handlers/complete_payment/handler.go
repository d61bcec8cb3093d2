package complete_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	completePayment "github.com/m04kA/SMC-ParkingService/internal/usecase/complete_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotPayable         = "оплатить можно только подтвержденное бронирование"
	msgAlreadyPaid        = "бронирование уже оплачено"
	msgCouponNotFound     = "купон не найден"
	msgCouponInactive     = "купон деактивирован"
	msgCouponExpired      = "срок действия купона истек"
	msgCouponMaxUsage     = "лимит использований купона исчерпан"
)

// CompletePaymentRequest HTTP request model
type CompletePaymentRequest struct {
	BookingID  int64   `json:"bookingId"`
	CouponCode *string `json:"couponCode,omitempty"`
}

type Handler struct {
	useCase CompletePaymentUseCase
	logger  Logger
}

func NewHandler(useCase CompletePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payments/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CompletePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &completePayment.Request{
		BookingID:  req.BookingID,
		UserID:     userID,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, completePayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/complete - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, completePayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/complete - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completePayment.ErrAccessDenied):
			h.logger.Warn("POST /payments/complete - Access denied: booking_id=%d, user_id=%d", req.BookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, completePayment.ErrNotPayable):
			h.logger.Warn("POST /payments/complete - Not payable: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotPayable)

		case errors.Is(err, completePayment.ErrAlreadyPaid):
			h.logger.Warn("POST /payments/complete - Already paid: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyPaid)

		case errors.Is(err, completePayment.ErrCouponNotFound):
			h.logger.Warn("POST /payments/complete - Coupon not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, completePayment.ErrCouponInactive):
			h.logger.Warn("POST /payments/complete - Coupon inactive: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgCouponInactive)

		case errors.Is(err, completePayment.ErrCouponExpired):
			h.logger.Warn("POST /payments/complete - Coupon expired: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgCouponExpired)

		case errors.Is(err, completePayment.ErrCouponMaxUsage):
			h.logger.Warn("POST /payments/complete - Coupon exhausted: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgCouponMaxUsage)

		default:
			h.logger.Error("POST /payments/complete - Failed: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/complete - Payment completed: booking_id=%d, user_id=%d, paid=%d",
		result.BookingID, userID, result.PaidCents)
	handlers.RespondJSON(w, http.StatusOK, result)
}
