package complete_payment

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("complete_payment: booking not found")
	// ErrAccessDenied бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("complete_payment: access denied")
	// ErrNotPayable оплатить можно только подтвержденное бронирование
	ErrNotPayable = errors.New("complete_payment: booking is not payable")
	// ErrAlreadyPaid бронирование уже оплачено
	ErrAlreadyPaid = errors.New("complete_payment: booking is already paid")
	// ErrCouponNotFound купон не найден
	ErrCouponNotFound = errors.New("complete_payment: coupon not found")
	// ErrCouponInactive купон деактивирован
	ErrCouponInactive = errors.New("complete_payment: coupon is inactive")
	// ErrCouponExpired срок действия купона истек
	ErrCouponExpired = errors.New("complete_payment: coupon is expired")
	// ErrCouponMaxUsage лимит использований купона исчерпан
	ErrCouponMaxUsage = errors.New("complete_payment: coupon usage limit reached")
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("complete_payment: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("complete_payment: internal error")
)
