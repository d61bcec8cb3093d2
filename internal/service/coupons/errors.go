package coupons

import "errors"

// Порядок проверки купона фиксирован, каждая ступень дает свою ошибку:
// не найден -> деактивирован -> истек -> исчерпан лимит
var (
	// ErrCouponNotFound купон с таким кодом не существует
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrCouponInactive купон деактивирован администратором
	ErrCouponInactive = errors.New("coupon is inactive")

	// ErrCouponExpired срок действия купона истек
	ErrCouponExpired = errors.New("coupon is expired")

	// ErrMaxUsageReached лимит использований купона исчерпан
	ErrMaxUsageReached = errors.New("coupon usage limit reached")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
