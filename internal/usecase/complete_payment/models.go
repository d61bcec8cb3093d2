package complete_payment

// Request запрос на оплату бронирования
// CouponCode - необязательный код купона, регистр не важен
type Request struct {
	BookingID  int64
	UserID     int64
	CouponCode *string
}

// Response результат оплаты
type Response struct {
	BookingID     int64
	PaymentRef    string
	PaymentStatus string

	ParkingCostCents    int64
	OperationalFeeCents int64
	DiscountCents       int64
	PaidCents           int64
}
