package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Времена принимаются в RFC3339 и приводятся к UTC
type CreateBookingRequest struct {
	ParkingID int64     `json:"parkingId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// HourPriceResponse элемент почасовой разбивки
type HourPriceResponse struct {
	Hour       int   `json:"hour"`
	PriceCents int64 `json:"priceCents"`
	IsFree     bool  `json:"isFree"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"userId"`
	ParkingID         int64   `json:"parkingId"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	Status            string  `json:"status"`
	ApprovalExpiresAt *string `json:"approvalExpiresAt,omitempty"`

	TotalPriceCents int64               `json:"totalPriceCents"`
	HourlyBreakdown []HourPriceResponse `json:"hourlyBreakdown"`

	CommissionCents     int64   `json:"commissionCents"`
	NetOwnerCents       int64   `json:"netOwnerCents"`
	CommissionRate      float64 `json:"commissionRate"`
	OperationalFeeCents int64   `json:"operationalFeeCents"`
	TotalPaymentCents   int64   `json:"totalPaymentCents"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:    userID,
		ParkingID: r.ParkingID,
		StartTime: r.StartTime.UTC(),
		EndTime:   r.EndTime.UTC(),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:                  resp.ID,
		UserID:              resp.UserID,
		ParkingID:           resp.ParkingID,
		StartTime:           resp.StartTime.Format(time.RFC3339),
		EndTime:             resp.EndTime.Format(time.RFC3339),
		Status:              resp.Status,
		TotalPriceCents:     resp.TotalPriceCents,
		HourlyBreakdown:     fromHourPrices(resp.HourlyBreakdown),
		CommissionCents:     resp.CommissionCents,
		NetOwnerCents:       resp.NetOwnerCents,
		CommissionRate:      resp.CommissionRate,
		OperationalFeeCents: resp.OperationalFeeCents,
		TotalPaymentCents:   resp.TotalPaymentCents,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.ApprovalExpiresAt != nil {
		formatted := resp.ApprovalExpiresAt.Format(time.RFC3339)
		out.ApprovalExpiresAt = &formatted
	}
	return out
}

func fromHourPrices(hours []domain.HourPrice) []HourPriceResponse {
	out := make([]HourPriceResponse, 0, len(hours))
	for _, h := range hours {
		out = append(out, HourPriceResponse{
			Hour:       h.Ordinal,
			PriceCents: h.PriceCents,
			IsFree:     h.IsFree,
		})
	}
	return out
}
