package check_extension

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("check_extension: booking not found")
	// ErrAccessDenied бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("check_extension: access denied")
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("check_extension: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("check_extension: internal error")
)
