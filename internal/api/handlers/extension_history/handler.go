package extension_history

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
)

// HistoryResponse HTTP модель истории продлений
type HistoryResponse struct {
	BookingID  int64         `json:"bookingId"`
	Extensions []interface{} `json:"extensions"`
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/extensions/history/{bookingId}
// Продления не versioned: бронирование хранит только итоговый endTime,
// поэтому история всегда пуста. Эндпоинт оставлен для совместимости
// с мобильным клиентом
// TODO: наполнить, когда продления начнут писаться отдельными записями
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /extensions/history/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("GET /extensions/history/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &HistoryResponse{
		BookingID:  bookingID,
		Extensions: []interface{}{},
	})
}
