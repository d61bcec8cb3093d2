package domain

import (
	"math"
	"time"
)

// Commission расчет комиссии платформы по бронированию (1:1 с Booking)
// Ставка фиксируется на момент расчета и не пересчитывается задним числом
type Commission struct {
	ID              int64
	BookingID       int64
	TotalPriceCents int64
	CommissionCents int64
	NetOwnerCents   int64
	CommissionRate  float64

	// HourlyBreakdown почасовая детализация, по которой считалась комиссия
	// Пустая для расчета без детализации (единое округление на всю сумму)
	HourlyBreakdown []HourPrice

	// Paid выставляется процессом месячных выплат владельцам
	Paid   bool
	PaidAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// roundRateCents округление half-up до целых центов
func roundRateCents(cents int64, rate float64) int64 {
	return int64(math.Round(float64(cents) * rate))
}

// CalculateCommission считает комиссию платформы (15%) и нетто владельца
//
// Два пути расчета, оба обязательны:
//   - без детализации (hours == nil): одно округление на всю сумму
//   - с детализацией: округление на каждый платный час, затем сумма
//
// Суммы путей могут отличаться - это ожидаемо. Бесплатные часы (IsFree)
// не дают комиссии независимо от их номинальной цены. Минимального порога
// комиссии нет: историческое правило "минимум 1 цент за платный час"
// из старых фикстур заменено плоскими 15%
//
// Инвариант: CommissionCents + NetOwnerCents == TotalPriceCents
func CalculateCommission(totalPriceCents int64, hours []HourPrice) *Commission {
	c := &Commission{
		TotalPriceCents: totalPriceCents,
		CommissionRate:  CommissionRate,
		HourlyBreakdown: hours,
	}

	if len(hours) == 0 {
		c.CommissionCents = roundRateCents(totalPriceCents, CommissionRate)
	} else {
		for _, h := range hours {
			if h.IsFree {
				continue
			}
			c.CommissionCents += roundRateCents(h.PriceCents, CommissionRate)
		}
	}

	c.NetOwnerCents = totalPriceCents - c.CommissionCents
	return c
}

// AddExtension добавляет комиссию продления к существующему расчету
// Комиссия продления считается отдельно по стоимости самого продления
// и ДОБАВЛЯЕТСЯ к итогам, а не пересчитывается с нуля
func (c *Commission) AddExtension(extensionCents int64) {
	extCommission := roundRateCents(extensionCents, CommissionRate)

	c.TotalPriceCents += extensionCents
	c.CommissionCents += extCommission
	c.NetOwnerCents += extensionCents - extCommission
}
