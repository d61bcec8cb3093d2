package domain

import "time"

// OperationalFee операционный сбор с арендатора (1:1 с Booking)
// Сбор строго аддитивен к стоимости парковки и никогда не попадает
// под комиссию владельца
type OperationalFee struct {
	ID                  int64
	BookingID           int64
	ParkingCostCents    int64
	OperationalFeeCents int64
	TotalPaymentCents   int64
	OperationalFeeRate  float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalculateOperationalFee считает операционный сбор (10% от стоимости
// парковки, округление half-up)
//
// Инвариант: TotalPaymentCents == ParkingCostCents + OperationalFeeCents
func CalculateOperationalFee(parkingCostCents int64) *OperationalFee {
	fee := roundRateCents(parkingCostCents, OperationalFeeRate)
	return &OperationalFee{
		ParkingCostCents:    parkingCostCents,
		OperationalFeeCents: fee,
		TotalPaymentCents:   parkingCostCents + fee,
		OperationalFeeRate:  OperationalFeeRate,
	}
}

// Replace пересчитывает сбор по новой стоимости парковки
// Используется при продлении: в отличие от аддитивной комиссии,
// поля сбора ЗАМЕНЯЮТСЯ расчетом от новой полной стоимости
func (f *OperationalFee) Replace(parkingCostCents int64) {
	fee := roundRateCents(parkingCostCents, OperationalFeeRate)
	f.ParkingCostCents = parkingCostCents
	f.OperationalFeeCents = fee
	f.TotalPaymentCents = parkingCostCents + fee
	f.OperationalFeeRate = OperationalFeeRate
}

// AdjustForDiscount сверяет сбор с фактически собранной суммой после купона
// "Фактический сбор" переопределяется как finalPaid - стоимость парковки:
// если скидка съела часть сбора, он может стать меньше номинальных 10%
// и даже отрицательным (скидка на общую сумму глубже сбора)
func (f *OperationalFee) AdjustForDiscount(finalPaidCents int64) {
	f.OperationalFeeCents = finalPaidCents - f.ParkingCostCents
	f.TotalPaymentCents = finalPaidCents
}
