package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ApprovalRequest запрос владельца на подтверждение или отклонение
type ApprovalRequest struct {
	BookingID int64 `json:"bookingId"`
	// UserID должен совпадать с владельцем парковки
	UserID int64 `json:"userId"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"userId"`
	ParkingID          int64      `json:"parkingId"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	Status             string     `json:"status"`
	ApprovalExpiresAt  *time.Time `json:"approvalExpiresAt,omitempty"`
	TotalPriceCents    int64      `json:"totalPriceCents"`
	PaymentStatus      string     `json:"paymentStatus"`
	PaymentRef         *string    `json:"paymentRef,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending, domain.StatusPendingApproval, domain.StatusConfirmed,
		domain.StatusCancelled, domain.StatusExpired:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainBooking конвертирует domain.Booking в response модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		ParkingID:          b.ParkingID,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             string(b.Status),
		ApprovalExpiresAt:  b.ApprovalExpiresAt,
		TotalPriceCents:    b.TotalPriceCents,
		PaymentStatus:      string(b.PaymentStatus),
		PaymentRef:         b.PaymentRef,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain.Booking в response модель
func FromDomainBookingList(list []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(list)),
		Total:    len(list),
	}
	for _, b := range list {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
