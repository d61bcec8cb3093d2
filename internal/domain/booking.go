package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusPendingApproval BookingStatus = "pending_approval"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusCancelled       BookingStatus = "cancelled"
	StatusExpired         BookingStatus = "expired"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Booking represents a parking reservation in the system
// StartTime/EndTime хранятся и сравниваются в UTC, интервал полуоткрытый [start, end)
type Booking struct {
	ID        int64
	UserID    int64
	ParkingID int64
	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus

	// ApprovalExpiresAt заполнено только для status = pending_approval
	ApprovalExpiresAt *time.Time

	// TotalPriceCents стоимость парковки без операционного сбора
	TotalPriceCents int64
	PaymentStatus   PaymentStatus
	PaymentRef      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking occupies its slot
func (b *Booking) IsBlocking() bool {
	return b.Status == StatusPending ||
		b.Status == StatusPendingApproval ||
		b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending ||
		b.Status == StatusPendingApproval ||
		b.Status == StatusConfirmed
}

// IsActiveAt returns true if the booking is in progress at the given instant
func (b *Booking) IsActiveAt(now time.Time) bool {
	return b.Status == StatusConfirmed && !now.Before(b.StartTime) && now.Before(b.EndTime)
}

// IsUpcomingAt returns true if the booking has not started yet
func (b *Booking) IsUpcomingAt(now time.Time) bool {
	return b.Status == StatusConfirmed && now.Before(b.StartTime)
}

// Overlaps проверяет пересечение с интервалом [start, end)
// Граничащие интервалы (конец одного = начало другого) не пересекаются
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// DurationHours длительность бронирования, округленная вверх до целых часов
func (b *Booking) DurationHours() int {
	return CeilHours(b.EndTime.Sub(b.StartTime))
}

// CeilHours округляет длительность вверх до целых часов
func CeilHours(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	hours := int(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}
