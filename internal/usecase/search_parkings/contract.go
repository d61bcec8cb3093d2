package search_parkings

import (
	"context"
	"time"

	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
)

// ParkingRepository интерфейс репозитория парковок
type ParkingRepository interface {
	SearchInRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*parkingRepo.SpotWithDistance, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	HasConflict(ctx context.Context, parkingID int64, start, end time.Time, excludeID *int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
