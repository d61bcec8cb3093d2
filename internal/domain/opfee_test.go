package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOperationalFee(t *testing.T) {
	tests := []struct {
		name        string
		parkingCost int64
		wantFee     int64
	}{
		{"parking 1000 -> fee 100", 1000, 100},
		{"rounding half-up", 1005, 101}, // 100.5 -> 101
		{"zero cost", 0, 0},
		{"small amount", 4, 0}, // 0.4 -> 0
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := CalculateOperationalFee(tc.parkingCost)

			assert.Equal(t, tc.wantFee, f.OperationalFeeCents)
			assert.Equal(t, OperationalFeeRate, f.OperationalFeeRate)
			// Аддитивность: итог к оплате = парковка + сбор
			assert.Equal(t, tc.parkingCost+tc.wantFee, f.TotalPaymentCents)
		})
	}
}

func TestOperationalFee_ReplaceOnExtension(t *testing.T) {
	f := CalculateOperationalFee(1000)

	// Продление заменяет поля расчетом от новой полной стоимости,
	// а не добавляет к старым
	f.Replace(1500)

	assert.Equal(t, int64(1500), f.ParkingCostCents)
	assert.Equal(t, int64(150), f.OperationalFeeCents)
	assert.Equal(t, int64(1650), f.TotalPaymentCents)
}

func TestOperationalFee_AdjustForDiscount(t *testing.T) {
	f := CalculateOperationalFee(1000) // fee 100, total 1100

	// Скидка 50 с общей суммы: фактически собрано 1050,
	// сбор переопределяется как 1050 - 1000 = 50
	f.AdjustForDiscount(1050)

	assert.Equal(t, int64(1000), f.ParkingCostCents)
	assert.Equal(t, int64(50), f.OperationalFeeCents)
	assert.Equal(t, int64(1050), f.TotalPaymentCents)
}

func TestOperationalFee_AdjustForDiscount_BelowParkingCost(t *testing.T) {
	f := CalculateOperationalFee(1000)

	// Глубокая скидка на общую сумму может увести фактический сбор в минус
	f.AdjustForDiscount(550)

	assert.Equal(t, int64(-450), f.OperationalFeeCents)
	assert.Equal(t, int64(550), f.TotalPaymentCents)
}
