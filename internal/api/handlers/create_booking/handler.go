package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgParkingNotFound    = "парковка не найдена"
	msgParkingInactive    = "парковка временно недоступна"
	msgOwnerUnavailable   = "владелец недоступен в выбранное время"
	msgParkingOccupied    = "парковка занята в выбранное время"
	msgPricingUnavailable = "для парковки не настроен тариф"
	msgDurationTooLong    = "длительность бронирования превышает 12 часов"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
	metrics *metrics.Metrics
}

// NewHandler создает handler; collector может быть nil, если метрики выключены
func NewHandler(useCase CreateBookingUseCase, logger Logger, collector *metrics.Metrics) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		metrics: collector,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrParkingNotFound):
			h.logger.Warn("POST /bookings - Parking not found: parking_id=%d", req.ParkingID)
			handlers.RespondNotFound(w, msgParkingNotFound)

		case errors.Is(err, createBooking.ErrParkingInactive):
			h.logger.Warn("POST /bookings - Parking inactive: parking_id=%d", req.ParkingID)
			handlers.RespondError(w, http.StatusConflict, msgParkingInactive)

		case errors.Is(err, createBooking.ErrOwnerUnavailable):
			h.logger.Warn("POST /bookings - Owner unavailable: parking_id=%d", req.ParkingID)
			handlers.RespondError(w, http.StatusConflict, msgOwnerUnavailable)

		case errors.Is(err, createBooking.ErrParkingOccupied):
			h.logger.Warn("POST /bookings - Parking occupied: user_id=%d, parking_id=%d", userID, req.ParkingID)
			handlers.RespondError(w, http.StatusConflict, msgParkingOccupied)

		case errors.Is(err, createBooking.ErrPricingUnavailable):
			h.logger.Warn("POST /bookings - Pricing unavailable: parking_id=%d", req.ParkingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPricingUnavailable)

		case errors.Is(err, createBooking.ErrDurationTooLong):
			h.logger.Warn("POST /bookings - Duration too long: user_id=%d, parking_id=%d", userID, req.ParkingID)
			handlers.RespondBadRequest(w, msgDurationTooLong)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, parking_id=%d, error=%v",
				userID, req.ParkingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, parking_id=%d",
		result.ID, userID, req.ParkingID)
	if h.metrics != nil {
		h.metrics.BookingsCreatedTotal.WithLabelValues(result.Status).Inc()
	}
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
