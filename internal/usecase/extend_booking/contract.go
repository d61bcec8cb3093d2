package extend_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	HasConflict(ctx context.Context, parkingID int64, start, end time.Time, excludeID *int64) (bool, error)
	Extend(ctx context.Context, id int64, newEnd time.Time, newTotalCents int64) error
}

// ParkingRepository интерфейс репозитория парковок
type ParkingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingSpot, error)
}

// LedgerRepository интерфейс репозитория финансовых записей
type LedgerRepository interface {
	GetCommissionByBookingID(ctx context.Context, bookingID int64) (*domain.Commission, error)
	UpdateCommission(ctx context.Context, c *domain.Commission) error
	GetOperationalFeeByBookingID(ctx context.Context, bookingID int64) (*domain.OperationalFee, error)
	UpdateOperationalFee(ctx context.Context, f *domain.OperationalFee) error
}

// NotifierClient интерфейс публикатора событий
type NotifierClient interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
