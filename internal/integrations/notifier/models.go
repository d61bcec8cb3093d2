package notifier

import "time"

// EventType тип события жизненного цикла бронирования
type EventType string

const (
	EventBookingCreated  EventType = "booking.created"
	EventBookingExtended EventType = "booking.extended"
	EventBookingExpired  EventType = "booking.expired"
	EventBookingApproved EventType = "booking.approved"
	EventBookingRejected EventType = "booking.rejected"
)

// Event событие, публикуемое в сервис уведомлений
// Контракт событий фиксирован; механика доставки (push, in-app, websocket)
// принадлежит сервису уведомлений
type Event struct {
	Type       EventType `json:"type"`
	BookingID  int64     `json:"bookingId"`
	UserID     int64     `json:"userId"`
	ParkingID  int64     `json:"parkingId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
