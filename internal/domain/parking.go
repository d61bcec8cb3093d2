package domain

import "time"

// ApprovalMode режим подтверждения бронирований владельцем
type ApprovalMode string

const (
	// ApprovalAuto бронирование подтверждается сразу
	ApprovalAuto ApprovalMode = "auto"
	// ApprovalManual владелец подтверждает вручную в пределах тайм-аута
	ApprovalManual ApprovalMode = "manual"
)

// ParkingSpot represents a parking spot listed on the marketplace
// Поля PricingJSON/AvailabilityJSON хранятся как jsonb и парсятся при чтении
// (см. PricingTable и WeeklySchedule)
type ParkingSpot struct {
	ID      int64
	OwnerID int64
	Lat     float64
	Lng     float64

	// PriceHrCents legacy плоский тариф, fallback при отсутствии сетки
	PriceHrCents int64

	// PricingJSON тарифная сетка hour 1..12 (nullable)
	PricingJSON []byte

	// AvailabilityJSON недельное расписание владельца (nullable)
	// Отсутствие расписания означает "всегда доступно"
	AvailabilityJSON []byte

	IsActive     bool
	ApprovalMode ApprovalMode

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiresApproval returns true if bookings need manual owner approval
func (p *ParkingSpot) RequiresApproval() bool {
	return p.ApprovalMode == ApprovalManual
}
