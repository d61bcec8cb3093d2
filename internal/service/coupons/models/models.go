package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// CalculateDiscountRequest запрос на расчет скидки без погашения купона
type CalculateDiscountRequest struct {
	Code                string `json:"code"`
	ParkingCostCents    int64  `json:"parkingCostCents"`
	OperationalFeeCents int64  `json:"operationalFeeCents"`
}

// Response модели

// CouponResponse публичные данные купона
// Счетчик использований наружу не отдаем
type CouponResponse struct {
	Code          string    `json:"code"`
	DiscountType  string    `json:"discountType"`
	DiscountValue int64     `json:"discountValue"`
	ApplyTo       string    `json:"applyTo"`
	ValidUntil    time.Time `json:"validUntil"`
}

// DiscountResponse результат расчета скидки
type DiscountResponse struct {
	Code                string  `json:"code"`
	DiscountAmountCents int64   `json:"discountAmountCents"`
	OriginalAmountCents int64   `json:"originalAmountCents"`
	FinalAmountCents    int64   `json:"finalAmountCents"`
	DiscountPercentage  float64 `json:"discountPercentage"`
}

// FromDomainCoupon конвертирует domain.Coupon в response модель
func FromDomainCoupon(c *domain.Coupon) *CouponResponse {
	return &CouponResponse{
		Code:          c.Code,
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
		ApplyTo:       string(c.ApplyTo),
		ValidUntil:    c.ValidUntil,
	}
}
