package extend_booking

import "time"

// Request запрос на продление бронирования
// PaymentRef - необязательная ссылка на платеж за продление во внешней системе
type Request struct {
	BookingID  int64
	UserID     int64
	PaymentRef *string
}

// Response модель ответа с продленным бронированием
type Response struct {
	ID                  int64
	NewEndTime          time.Time
	ExtensionMinutes    int
	ExtensionPriceCents int64

	TotalPriceCents     int64
	CommissionCents     int64
	NetOwnerCents       int64
	OperationalFeeCents int64
	TotalPaymentCents   int64
}
