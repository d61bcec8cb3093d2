package check_extension

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
)

// UseCase use case проверки возможности продления бронирования
//
// Только чтение: положительный ответ здесь не резервирует слот, продление
// перепроверяет все условия заново в момент выполнения
type UseCase struct {
	bookingRepo  BookingRepository
	parkingRepo  ParkingRepository
	timeProvider TimeProvider
	logger       Logger

	location        *time.Location
	extension       time.Duration
	extensionBuffer time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	parkingRepo ParkingRepository,
	logger Logger,
	location *time.Location,
	extension time.Duration,
	extensionBuffer time.Duration,
) *UseCase {
	if extension <= 0 {
		extension = domain.DefaultExtensionMinutes * time.Minute
	}
	if extensionBuffer <= 0 {
		extensionBuffer = domain.DefaultExtensionBufferMinutes * time.Minute
	}

	return &UseCase{
		bookingRepo:     bookingRepo,
		parkingRepo:     parkingRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		location:        location,
		extension:       extension,
		extensionBuffer: extensionBuffer,
	}
}

// Execute проверяет пять условий продления в фиксированном порядке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: bookingId and userId must be positive", ErrInvalidInput)
	}

	// 1. Существование и принадлежность
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CheckExtension: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if booking.UserID != req.UserID {
		uc.logger.Warn("CheckExtension: user=%d is not the renter of booking=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	now := uc.timeProvider.Now()
	newEnd := booking.EndTime.Add(uc.extension)

	ineligible := func(reason string) *Response {
		return &Response{
			Eligible:       false,
			Reason:         reason,
			CurrentEndTime: booking.EndTime,
		}
	}

	// 2. Статус confirmed и бронирование активно либо предстоит
	if booking.Status != domain.StatusConfirmed {
		return ineligible(ReasonNotConfirmed), nil
	}
	if !booking.IsActiveAt(now) && !booking.IsUpcomingAt(now) {
		return ineligible(ReasonAlreadyEnded), nil
	}

	// 3. Для активного бронирования до конца должен оставаться буфер
	if booking.IsActiveAt(now) && booking.EndTime.Sub(now) < uc.extensionBuffer {
		return ineligible(ReasonBufferTooSmall), nil
	}

	// 4. Хвост [end, end+extension) не должен пересекаться с чужими бронированиями
	conflict, err := uc.bookingRepo.HasConflict(ctx, booking.ParkingID, booking.EndTime, newEnd, &booking.ID)
	if err != nil {
		uc.logger.Error("CheckExtension: conflict check failed for booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
	}
	if conflict {
		return ineligible(ReasonSlotOccupied), nil
	}

	// 5. Расписание владельца должно покрывать хвост
	spot, err := uc.parkingRepo.GetByID(ctx, booking.ParkingID)
	if err != nil {
		if errors.Is(err, parkingRepo.ErrParkingNotFound) {
			uc.logger.Error("CheckExtension: parking id=%d missing for booking=%d", booking.ParkingID, booking.ID)
			return nil, fmt.Errorf("%w: parking not found", ErrInternal)
		}
		uc.logger.Error("CheckExtension: failed to get parking id=%d: %v", booking.ParkingID, err)
		return nil, fmt.Errorf("%w: failed to get parking: %v", ErrInternal, err)
	}

	schedule := domain.ParseWeeklySchedule(spot.AvailabilityJSON)
	if !schedule.Covers(booking.EndTime, newEnd, uc.location) {
		return ineligible(ReasonOwnerUnavailable), nil
	}

	// Цена продления: половина первого часа действующего тарифа, округление вверх
	table, err := domain.ParsePricingTable(spot.PricingJSON, spot.PriceHrCents)
	if err != nil {
		return ineligible(ReasonPricingMissing), nil
	}

	return &Response{
		Eligible:            true,
		CurrentEndTime:      booking.EndTime,
		NewEndTime:          &newEnd,
		ExtensionMinutes:    int(uc.extension / time.Minute),
		ExtensionPriceCents: table.ExtensionPriceCents(),
	}, nil
}
