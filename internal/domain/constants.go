package domain

// Ставки платформы
// Фиксируются в строках Commission/OperationalFee на момент расчета,
// поэтому изменение констант не переписывает историю
const (
	// CommissionRate комиссия платформы с владельца (15%)
	CommissionRate = 0.15

	// OperationalFeeRate операционный сбор с арендатора (10%)
	OperationalFeeRate = 0.1
)

// Тарифная сетка
const (
	// PricingTableHours количество часовых тарифов в полной сетке
	PricingTableHours = 12

	// MaxBookingHours максимальная длительность бронирования
	// Тарифная сетка определена только для 12 порядковых часов,
	// бронирования длиннее отклоняются
	MaxBookingHours = 12
)

// Расписание владельца
const (
	// ScheduleBlockHours длина блока доступности в часах
	ScheduleBlockHours = 4
)

// ScheduleBlockStarts допустимые начала блоков доступности (гражданское время)
var ScheduleBlockStarts = []int{0, 4, 8, 12, 16, 20}

// Default configuration values
const (
	DefaultApprovalTimeoutMinutes = 5
	DefaultExtensionMinutes       = 30
	DefaultExtensionBufferMinutes = 10
)

// Business validation constants
const (
	MaxCouponCodeLength = 64
	// LongBookingWarnHours длительность, начиная с которой бронирование
	// логируется как подозрительно длинное (но не отклоняется)
	LongBookingWarnHours = 24
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы бронирований, которые занимают слот
// Используются детектором конфликтов
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusPendingApproval,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых бронирование не переходит дальше
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusExpired,
}
