package execute_extension

import (
	"time"

	extendBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/extend_booking"
)

// ExecuteExtensionRequest HTTP request model
type ExecuteExtensionRequest struct {
	BookingID  int64   `json:"bookingId"`
	PaymentRef *string `json:"paymentRef,omitempty"`
}

// ExtensionResponse HTTP response model
type ExtensionResponse struct {
	BookingID           int64  `json:"bookingId"`
	NewEndTime          string `json:"newEndTime"`
	ExtensionMinutes    int    `json:"extensionMinutes"`
	ExtensionPriceCents int64  `json:"extensionPriceCents"`

	TotalPriceCents     int64 `json:"totalPriceCents"`
	CommissionCents     int64 `json:"commissionCents"`
	NetOwnerCents       int64 `json:"netOwnerCents"`
	OperationalFeeCents int64 `json:"operationalFeeCents"`
	TotalPaymentCents   int64 `json:"totalPaymentCents"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *extendBooking.Response) *ExtensionResponse {
	return &ExtensionResponse{
		BookingID:           resp.ID,
		NewEndTime:          resp.NewEndTime.Format(time.RFC3339),
		ExtensionMinutes:    resp.ExtensionMinutes,
		ExtensionPriceCents: resp.ExtensionPriceCents,
		TotalPriceCents:     resp.TotalPriceCents,
		CommissionCents:     resp.CommissionCents,
		NetOwnerCents:       resp.NetOwnerCents,
		OperationalFeeCents: resp.OperationalFeeCents,
		TotalPaymentCents:   resp.TotalPaymentCents,
	}
}
