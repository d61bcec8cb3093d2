package approve_booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgNotPendingApproval   = "бронирование не ожидает подтверждения"
	msgApprovalWindowPassed = "срок подтверждения истек"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleApprove PATCH /api/v1/bookings/{bookingId}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "approve", h.service.Approve)
}

// HandleReject PATCH /api/v1/bookings/{bookingId}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "reject", h.service.Reject)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(ctx context.Context, req *models.ApprovalRequest) (*models.BookingResponse, error),
) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid booking ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/%s - Missing user ID", action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := fn(r.Context(), &models.ApprovalRequest{BookingID: bookingID, UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/%s - Booking not found: booking_id=%d", action, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/%s - Access denied: booking_id=%d, user_id=%d", action, bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrNotPendingApproval):
			h.logger.Warn("PATCH /bookings/{id}/%s - Not pending approval: booking_id=%d", action, bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotPendingApproval)

		case errors.Is(err, bookings.ErrApprovalWindowPassed):
			h.logger.Warn("PATCH /bookings/{id}/%s - Approval window passed: booking_id=%d", action, bookingID)
			handlers.RespondError(w, http.StatusConflict, msgApprovalWindowPassed)

		default:
			h.logger.Error("PATCH /bookings/{id}/%s - Failed: booking_id=%d, error=%v", action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/%s - Done: booking_id=%d, owner_id=%d", action, bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
