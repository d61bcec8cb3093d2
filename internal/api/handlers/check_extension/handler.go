package check_extension

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	checkExtension "github.com/m04kA/SMC-ParkingService/internal/usecase/check_extension"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

// CheckResponse HTTP модель результата проверки продления
type CheckResponse struct {
	Eligible            bool    `json:"eligible"`
	Reason              string  `json:"reason,omitempty"`
	CurrentEndTime      string  `json:"currentEndTime"`
	NewEndTime          *string `json:"newEndTime,omitempty"`
	ExtensionMinutes    int     `json:"extensionMinutes,omitempty"`
	ExtensionPriceCents int64   `json:"extensionPriceCents,omitempty"`
}

type Handler struct {
	useCase CheckExtensionUseCase
	logger  Logger
}

func NewHandler(useCase CheckExtensionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/extensions/check/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /extensions/check/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /extensions/check/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkExtension.Request{
		BookingID: bookingID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkExtension.ErrBookingNotFound):
			h.logger.Warn("GET /extensions/check/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkExtension.ErrAccessDenied):
			h.logger.Warn("GET /extensions/check/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkExtension.ErrInvalidInput):
			h.logger.Warn("GET /extensions/check/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("GET /extensions/check/{id} - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := &CheckResponse{
		Eligible:            result.Eligible,
		Reason:              result.Reason,
		CurrentEndTime:      result.CurrentEndTime.Format(time.RFC3339),
		ExtensionMinutes:    result.ExtensionMinutes,
		ExtensionPriceCents: result.ExtensionPriceCents,
	}
	if result.NewEndTime != nil {
		formatted := result.NewEndTime.Format(time.RFC3339)
		resp.NewEndTime = &formatted
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
