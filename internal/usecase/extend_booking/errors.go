package extend_booking

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("extend_booking: booking not found")
	// ErrAccessDenied бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("extend_booking: access denied")
	// ErrNotExtendable бронирование не подтверждено или уже завершилось
	ErrNotExtendable = errors.New("extend_booking: booking is not extendable")
	// ErrBufferTooSmall до конца активного бронирования осталось меньше буфера
	ErrBufferTooSmall = errors.New("extend_booking: too close to booking end")
	// ErrSlotOccupied слот после конца бронирования занят другим бронированием
	ErrSlotOccupied = errors.New("extend_booking: slot after end is occupied")
	// ErrOwnerUnavailable расписание владельца не покрывает продление
	ErrOwnerUnavailable = errors.New("extend_booking: owner is unavailable for extension window")
	// ErrPricingUnavailable у парковки нет ни тарифа, ни базовой цены
	ErrPricingUnavailable = errors.New("extend_booking: pricing unavailable")
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("extend_booking: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("extend_booking: internal error")
)
