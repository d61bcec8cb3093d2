package check_extension

import "time"

// Коды причин отказа в продлении
// Порядок проверок фиксирован: статус -> буфер -> конфликт -> расписание
const (
	ReasonNotConfirmed     = "NOT_CONFIRMED"
	ReasonAlreadyEnded     = "ALREADY_ENDED"
	ReasonBufferTooSmall   = "BUFFER_TOO_SMALL"
	ReasonSlotOccupied     = "SLOT_OCCUPIED"
	ReasonOwnerUnavailable = "OWNER_UNAVAILABLE"
	ReasonPricingMissing   = "PRICING_UNAVAILABLE"
)

// Request запрос проверки возможности продления
type Request struct {
	BookingID int64
	UserID    int64
}

// Response результат проверки
// При Eligible=false заполнен Reason, ценовые поля нулевые
type Response struct {
	Eligible            bool
	Reason              string
	CurrentEndTime      time.Time
	NewEndTime          *time.Time
	ExtensionMinutes    int
	ExtensionPriceCents int64
}
