package create_booking

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
// Ошибки формы отклоняются на границе и не доходят до движков
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ParkingID <= 0 {
		return fmt.Errorf("%w: parkingID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.StartTime.Before(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return nil
}

// isSuspiciouslyLong проверяет, длиннее ли интервал суток
// Это предупреждение для логов, а не причина отказа
func isSuspiciouslyLong(start, end time.Time) bool {
	return end.Sub(start) > 24*time.Hour
}
