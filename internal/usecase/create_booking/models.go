package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64
	ParkingID int64
	StartTime time.Time // UTC
	EndTime   time.Time // UTC
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                int64
	UserID            int64
	ParkingID         int64
	StartTime         time.Time
	EndTime           time.Time
	Status            string
	ApprovalExpiresAt *time.Time

	// Стоимость парковки и расчет по ней
	TotalPriceCents int64
	HourlyBreakdown []domain.HourPrice

	// Комиссия владельца
	CommissionCents int64
	NetOwnerCents   int64
	CommissionRate  float64

	// Операционный сбор арендатора
	OperationalFeeCents int64
	TotalPaymentCents   int64

	CreatedAt time.Time
}
