package domain

import (
	"math"
	"strings"
	"time"
)

// DiscountType тип скидки купона
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// DiscountScope к какой базе применяется скидка
type DiscountScope string

const (
	// ScopeServiceFee скидка только на операционный сбор
	ScopeServiceFee DiscountScope = "service_fee"
	// ScopeTotal скидка на парковку + сбор
	ScopeTotal DiscountScope = "total"
)

// Coupon купон на скидку
// Код уникален без учета регистра и хранится в верхнем регистре
type Coupon struct {
	ID           int64
	Code         string
	DiscountType DiscountType
	// DiscountValue проценты для percentage, центы для fixed
	DiscountValue int64
	ApplyTo       DiscountScope
	ValidUntil    time.Time
	// MaxUsage nil = без ограничений
	MaxUsage   *int64
	UsageCount int64
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeCouponCode приводит код купона к канонической форме
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExpired проверяет, истек ли срок действия купона
// Купон с истекшим сроком инертен независимо от IsActive
func (c *Coupon) IsExpired(now time.Time) bool {
	return now.After(c.ValidUntil)
}

// IsExhausted проверяет, исчерпан ли лимит использований
func (c *Coupon) IsExhausted() bool {
	return c.MaxUsage != nil && c.UsageCount >= *c.MaxUsage
}

// CouponUsage неизменяемая запись о применении купона
// Пишется атомарно с инкрементом счетчика использований
type CouponUsage struct {
	ID                  int64
	CouponID            int64
	BookingID           int64
	UserID              int64
	DiscountCents       int64
	OriginalAmountCents int64
	FinalAmountCents    int64
	CreatedAt           time.Time
}

// DiscountResult результат расчета скидки
type DiscountResult struct {
	DiscountAmountCents int64
	OriginalAmountCents int64
	FinalAmountCents    int64
	DiscountPercentage  float64
}

// CalculateDiscount считает скидку купона
//
// База скидки зависит от ApplyTo: только операционный сбор (service_fee)
// или парковка + сбор (total). Фиксированная скидка ограничена базой -
// итог никогда не уходит в минус. Но итоговая сумма К ОПЛАТЕ для
// service_fee купона = парковка + (сбор - скидка)
func (c *Coupon) CalculateDiscount(parkingCostCents, operationalFeeCents int64) DiscountResult {
	total := parkingCostCents + operationalFeeCents

	var base int64
	switch c.ApplyTo {
	case ScopeServiceFee:
		base = operationalFeeCents
	default:
		base = total
	}

	var discount int64
	switch c.DiscountType {
	case DiscountPercentage:
		discount = int64(math.Round(float64(base) * float64(c.DiscountValue) / 100))
	case DiscountFixed:
		discount = c.DiscountValue
		if discount > base {
			discount = base
		}
	}
	if discount < 0 {
		discount = 0
	}

	final := total - discount

	var pct float64
	if total > 0 {
		pct = float64(discount) / float64(total) * 100
	}

	return DiscountResult{
		DiscountAmountCents: discount,
		OriginalAmountCents: total,
		FinalAmountCents:    final,
		DiscountPercentage:  pct,
	}
}
