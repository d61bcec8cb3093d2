package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const rejectedByOwnerReason = "rejected_by_owner"

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	parkingRepo  ParkingRepository
	notifier     NotifierClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	parkingRepo ParkingRepository,
	notifierClient NotifierClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		parkingRepo:  parkingRepo,
		notifier:     notifierClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - бронирование видят только арендатор
// и владелец парковки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if booking.UserID != userID {
		spot, err := s.getParking(ctx, "GetByID", booking.ParkingID)
		if err != nil {
			return nil, err
		}
		if spot.OwnerID != userID {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, ErrAccessDenied
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	list, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(list), req.UserID)
	return models.FromDomainBookingList(list), nil
}

// Cancel отменяет бронирование
// Отменить может только арендатор и только до перехода в терминальный статус
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	var reason *string
	if req.CancellationReason != "" {
		reason = &req.CancellationReason
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCancelled, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Approve подтверждает бронирование владельцем парковки
// Допустимо только для pending_approval до истечения срока подтверждения
func (s *Service) Approve(ctx context.Context, req *models.ApprovalRequest) (*models.BookingResponse, error) {
	s.logger.Info("Approve: approving booking id=%d by user=%d", req.BookingID, req.UserID)

	booking, err := s.checkApprovalPreconditions(ctx, "Approve", req)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusConfirmed, nil); err != nil {
		s.logger.Error("Approve: repository error for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Approve: booking id=%d confirmed by owner=%d", booking.ID, req.UserID)
	s.publish(ctx, notifier.EventBookingApproved, booking)

	booking.Status = domain.StatusConfirmed
	booking.ApprovalExpiresAt = nil
	return models.FromDomainBooking(booking), nil
}

// Reject отклоняет бронирование владельцем парковки
// Бронирование переводится в cancelled с причиной rejected_by_owner
func (s *Service) Reject(ctx context.Context, req *models.ApprovalRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reject: rejecting booking id=%d by user=%d", req.BookingID, req.UserID)

	booking, err := s.checkApprovalPreconditions(ctx, "Reject", req)
	if err != nil {
		return nil, err
	}

	reason := rejectedByOwnerReason
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusCancelled, &reason); err != nil {
		s.logger.Error("Reject: repository error for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reject: booking id=%d rejected by owner=%d", booking.ID, req.UserID)
	s.publish(ctx, notifier.EventBookingRejected, booking)

	booking.Status = domain.StatusCancelled
	booking.CancellationReason = &reason
	return models.FromDomainBooking(booking), nil
}

// checkApprovalPreconditions общие проверки для Approve/Reject:
// бронирование существует, запрашивает владелец парковки, статус
// pending_approval, срок подтверждения не истек
func (s *Service) checkApprovalPreconditions(ctx context.Context, op string, req *models.ApprovalRequest) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, op, req.BookingID)
	if err != nil {
		return nil, err
	}

	spot, err := s.getParking(ctx, op, booking.ParkingID)
	if err != nil {
		return nil, err
	}
	if spot.OwnerID != req.UserID {
		s.logger.Warn("%s: user=%d is not the owner of parking=%d", op, req.UserID, spot.ID)
		return nil, ErrAccessDenied
	}

	if booking.Status != domain.StatusPendingApproval {
		s.logger.Warn("%s: booking id=%d has status=%s", op, booking.ID, booking.Status)
		return nil, ErrNotPendingApproval
	}

	// Просроченное подтверждение - дело sweep-задачи, владельцу отказываем
	now := s.timeProvider.Now()
	if booking.ApprovalExpiresAt != nil && now.After(*booking.ApprovalExpiresAt) {
		s.logger.Warn("%s: approval window passed for booking id=%d", op, booking.ID)
		return nil, ErrApprovalWindowPassed
	}

	return booking, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getParking(ctx context.Context, op string, id int64) (*domain.ParkingSpot, error) {
	spot, err := s.parkingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, parkingRepo.ErrParkingNotFound) {
			s.logger.Error("%s: parking id=%d not found", op, id)
			return nil, fmt.Errorf("%w: %s - parking not found", ErrInternal, op)
		}
		s.logger.Error("%s: repository error for parking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return spot, nil
}

func (s *Service) publish(ctx context.Context, eventType notifier.EventType, booking *domain.Booking) {
	if err := s.notifier.Publish(ctx, notifier.Event{
		Type:      eventType,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		ParkingID: booking.ParkingID,
	}); err != nil {
		s.logger.Warn("publish: failed to publish %s for booking=%d: %v", eventType, booking.ID, err)
	}
}
