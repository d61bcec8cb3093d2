package execute_extension

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	extendBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/extend_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotExtendable      = "бронирование нельзя продлить"
	msgBufferTooSmall     = "до конца бронирования осталось слишком мало времени"
	msgSlotOccupied       = "время после окончания уже занято"
	msgOwnerUnavailable   = "владелец недоступен во время продления"
	msgPricingUnavailable = "для парковки не настроен тариф"
)

type Handler struct {
	useCase ExtendBookingUseCase
	logger  Logger
}

func NewHandler(useCase ExtendBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/extensions/execute
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /extensions/execute - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ExecuteExtensionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /extensions/execute - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &extendBooking.Request{
		BookingID:  req.BookingID,
		UserID:     userID,
		PaymentRef: req.PaymentRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, extendBooking.ErrInvalidInput):
			h.logger.Warn("POST /extensions/execute - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, extendBooking.ErrBookingNotFound):
			h.logger.Warn("POST /extensions/execute - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, extendBooking.ErrAccessDenied):
			h.logger.Warn("POST /extensions/execute - Access denied: booking_id=%d, user_id=%d", req.BookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, extendBooking.ErrNotExtendable):
			h.logger.Warn("POST /extensions/execute - Not extendable: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotExtendable)

		case errors.Is(err, extendBooking.ErrBufferTooSmall):
			h.logger.Warn("POST /extensions/execute - Buffer too small: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgBufferTooSmall)

		case errors.Is(err, extendBooking.ErrSlotOccupied):
			h.logger.Warn("POST /extensions/execute - Slot occupied: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotOccupied)

		case errors.Is(err, extendBooking.ErrOwnerUnavailable):
			h.logger.Warn("POST /extensions/execute - Owner unavailable: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgOwnerUnavailable)

		case errors.Is(err, extendBooking.ErrPricingUnavailable):
			h.logger.Warn("POST /extensions/execute - Pricing unavailable: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPricingUnavailable)

		default:
			h.logger.Error("POST /extensions/execute - Failed: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /extensions/execute - Booking extended: booking_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
