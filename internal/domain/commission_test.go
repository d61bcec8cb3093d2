package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCommission_NoBreakdown(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		wantCommission int64
	}{
		{"simple booking 2100", 2100, 315},
		{"zero total", 0, 0},
		{"rounding half-up", 10, 2}, // 10 * 0.15 = 1.5 -> 2
		{"one cent", 1, 0},          // 0.15 -> 0
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := CalculateCommission(tc.total, nil)

			assert.Equal(t, tc.wantCommission, c.CommissionCents)
			assert.Equal(t, CommissionRate, c.CommissionRate)
			// Округление не теряет и не создает ни цента
			assert.Equal(t, tc.total, c.CommissionCents+c.NetOwnerCents)
		})
	}
}

func TestCalculateCommission_WithBreakdown(t *testing.T) {
	// Сетка [1000, 700, 400, 0(free)], итог 2100:
	// комиссия = round(150) + round(105) + round(60) + 0 = 315
	hours := []HourPrice{
		{Ordinal: 1, PriceCents: 1000},
		{Ordinal: 2, PriceCents: 700},
		{Ordinal: 3, PriceCents: 400},
		{Ordinal: 4, PriceCents: 0, IsFree: true},
	}

	c := CalculateCommission(2100, hours)

	assert.Equal(t, int64(315), c.CommissionCents)
	assert.Equal(t, int64(1785), c.NetOwnerCents)
	assert.Equal(t, int64(2100), c.CommissionCents+c.NetOwnerCents)
}

func TestCalculateCommission_PerHourRoundingDiffersFromTotal(t *testing.T) {
	// Оба пути обязаны существовать: почасовое округление с суммированием
	// дает другой результат, чем единое округление на итог
	hours := []HourPrice{
		{Ordinal: 1, PriceCents: 10}, // 1.5 -> 2
		{Ordinal: 2, PriceCents: 10}, // 1.5 -> 2
	}

	withBreakdown := CalculateCommission(20, hours)
	withoutBreakdown := CalculateCommission(20, nil)

	assert.Equal(t, int64(4), withBreakdown.CommissionCents)
	assert.Equal(t, int64(3), withoutBreakdown.CommissionCents) // 20 * 0.15 = 3
}

func TestCalculateCommission_AllHoursFree(t *testing.T) {
	hours := []HourPrice{
		{Ordinal: 1, PriceCents: 1000, IsFree: true},
		{Ordinal: 2, PriceCents: 700, IsFree: true},
	}

	c := CalculateCommission(1700, hours)

	// Бесплатные часы не дают комиссии независимо от номинальной цены
	assert.Equal(t, int64(0), c.CommissionCents)
	assert.Equal(t, int64(1700), c.NetOwnerCents)
}

func TestCalculateCommission_NoMinimumFloor(t *testing.T) {
	// Историческое правило "минимум 1 цент за платный час" заменено
	// плоскими 15% без нижнего порога
	hours := []HourPrice{
		{Ordinal: 1, PriceCents: 2}, // 0.3 -> 0, без порога остается 0
		{Ordinal: 2, PriceCents: 2},
	}

	c := CalculateCommission(4, hours)
	assert.Equal(t, int64(0), c.CommissionCents)
	assert.Equal(t, int64(4), c.NetOwnerCents)
}

func TestCommission_AddExtension(t *testing.T) {
	c := CalculateCommission(2100, nil)
	prevCommission := c.CommissionCents
	prevNet := c.NetOwnerCents

	// Продление на 500: комиссия round(75) = 75 добавляется к итогам
	c.AddExtension(500)

	assert.Equal(t, int64(2600), c.TotalPriceCents)
	assert.Equal(t, prevCommission+75, c.CommissionCents)
	assert.Equal(t, prevNet+425, c.NetOwnerCents)
	assert.Equal(t, c.TotalPriceCents, c.CommissionCents+c.NetOwnerCents)
}
