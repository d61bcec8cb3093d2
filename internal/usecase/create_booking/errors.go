package create_booking

import "errors"

var (
	// ErrParkingNotFound возвращается, когда парковка не найдена
	ErrParkingNotFound = errors.New("create_booking: parking not found")

	// ErrParkingInactive возвращается, когда парковка отключена владельцем или админом
	ErrParkingInactive = errors.New("create_booking: parking is not active")

	// ErrOwnerUnavailable возвращается, когда расписание владельца
	// не покрывает запрошенный интервал целиком
	ErrOwnerUnavailable = errors.New("create_booking: owner schedule does not cover the interval")

	// ErrParkingOccupied возвращается при пересечении с другим блокирующим бронированием
	ErrParkingOccupied = errors.New("create_booking: parking is occupied for the interval")

	// ErrPricingUnavailable возвращается, когда у парковки нет тарифа
	ErrPricingUnavailable = errors.New("create_booking: pricing is not configured")

	// ErrDurationTooLong возвращается для бронирований длиннее 12 часов
	ErrDurationTooLong = errors.New("create_booking: duration exceeds pricing table")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
