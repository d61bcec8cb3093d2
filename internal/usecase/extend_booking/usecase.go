package extend_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
)

// UseCase use case продления бронирования на фиксированный интервал
//
// Не доверяет предшествующей проверке check_extension: все пять условий
// перепроверяются внутри сериализуемой транзакции в момент выполнения.
// Порядок проверок фиксирован - от дешевых к дорогим:
// существование/принадлежность -> статус и окно активности -> буфер ->
// конфликты на хвосте -> расписание владельца
type UseCase struct {
	bookingRepo  BookingRepository
	parkingRepo  ParkingRepository
	ledgerRepo   LedgerRepository
	notifier     NotifierClient
	txManager    TransactionManager
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
	ledgerRepo LedgerRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
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
		ledgerRepo:      ledgerRepo,
		notifier:        notifierClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		location:        location,
		extension:       extension,
		extensionBuffer: extensionBuffer,
	}
}

// Execute выполняет use case продления бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExtendBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: bookingId and userId must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		resp      *Response
		parkingID int64
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Существование и принадлежность
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ExtendBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ExtendBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if booking.UserID != req.UserID {
			uc.logger.Warn("ExtendBooking: user=%d is not the renter of booking=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		// 3. Статус confirmed, бронирование активно либо предстоит
		if booking.Status != domain.StatusConfirmed {
			return ErrNotExtendable
		}
		if !booking.IsActiveAt(now) && !booking.IsUpcomingAt(now) {
			return ErrNotExtendable
		}

		// 4. Для активного бронирования до конца должен оставаться буфер
		if booking.IsActiveAt(now) && booking.EndTime.Sub(now) < uc.extensionBuffer {
			return ErrBufferTooSmall
		}

		newEnd := booking.EndTime.Add(uc.extension)

		// 5. Хвост [end, newEnd) свободен от чужих бронирований
		conflict, err := uc.bookingRepo.HasConflict(txCtx, booking.ParkingID, booking.EndTime, newEnd, &booking.ID)
		if err != nil {
			uc.logger.Error("ExtendBooking: conflict check failed for booking=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			return ErrSlotOccupied
		}

		// 6. Расписание владельца покрывает хвост
		spot, err := uc.parkingRepo.GetByID(txCtx, booking.ParkingID)
		if err != nil {
			if errors.Is(err, parkingRepo.ErrParkingNotFound) {
				uc.logger.Error("ExtendBooking: parking id=%d missing for booking=%d", booking.ParkingID, booking.ID)
				return fmt.Errorf("%w: parking not found", ErrInternal)
			}
			uc.logger.Error("ExtendBooking: failed to get parking id=%d: %v", booking.ParkingID, err)
			return fmt.Errorf("%w: failed to get parking: %v", ErrInternal, err)
		}

		schedule := domain.ParseWeeklySchedule(spot.AvailabilityJSON)
		if !schedule.Covers(booking.EndTime, newEnd, uc.location) {
			return ErrOwnerUnavailable
		}

		// 7. Цена продления: половина первого часа живого тарифа
		table, err := domain.ParsePricingTable(spot.PricingJSON, spot.PriceHrCents)
		if err != nil {
			return ErrPricingUnavailable
		}
		extensionCents := table.ExtensionPriceCents()
		newTotal := booking.TotalPriceCents + extensionCents

		// 8. Обновляем бронирование и финансовые записи в одной транзакции
		// Commission дополняется, OperationalFee пересчитывается с нуля
		// от новой полной стоимости парковки
		if err := uc.bookingRepo.Extend(txCtx, booking.ID, newEnd, newTotal); err != nil {
			uc.logger.Error("ExtendBooking: failed to extend booking=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to extend booking: %v", ErrInternal, err)
		}

		commission, err := uc.ledgerRepo.GetCommissionByBookingID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("ExtendBooking: failed to get commission for booking=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to get commission: %v", ErrInternal, err)
		}
		commission.AddExtension(extensionCents)
		if err := uc.ledgerRepo.UpdateCommission(txCtx, commission); err != nil {
			uc.logger.Error("ExtendBooking: failed to update commission for booking=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update commission: %v", ErrInternal, err)
		}

		opFee, err := uc.ledgerRepo.GetOperationalFeeByBookingID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("ExtendBooking: failed to get operational fee for booking=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to get operational fee: %v", ErrInternal, err)
		}
		opFee.Replace(newTotal)
		if err := uc.ledgerRepo.UpdateOperationalFee(txCtx, opFee); err != nil {
			uc.logger.Error("ExtendBooking: failed to update operational fee for booking=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update operational fee: %v", ErrInternal, err)
		}

		parkingID = booking.ParkingID
		resp = &Response{
			ID:                  booking.ID,
			NewEndTime:          newEnd,
			ExtensionMinutes:    int(uc.extension / time.Minute),
			ExtensionPriceCents: extensionCents,
			TotalPriceCents:     newTotal,
			CommissionCents:     commission.CommissionCents,
			NetOwnerCents:       commission.NetOwnerCents,
			OperationalFeeCents: opFee.OperationalFeeCents,
			TotalPaymentCents:   opFee.TotalPaymentCents,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	if req.PaymentRef != nil {
		uc.logger.Info("ExtendBooking: booking=%d extension payment ref=%s", resp.ID, *req.PaymentRef)
	}
	uc.logger.Info("ExtendBooking: booking=%d extended to %s, +%d cents",
		resp.ID, resp.NewEndTime.Format(time.RFC3339), resp.ExtensionPriceCents)

	// 9. Публикуем событие после коммита, best-effort
	if err := uc.notifier.Publish(ctx, notifier.Event{
		Type:      notifier.EventBookingExtended,
		BookingID: resp.ID,
		UserID:    req.UserID,
		ParkingID: parkingID,
	}); err != nil {
		uc.logger.Warn("ExtendBooking: failed to publish event for booking=%d: %v", resp.ID, err)
	}

	return resp, nil
}
