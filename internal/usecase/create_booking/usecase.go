package create_booking

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

// UseCase use case для создания бронирования
//
// Порядок внутри транзакции фиксирован: доступность -> конфликты -> цена ->
// запись. Одна SERIALIZABLE транзакция создает бронирование вместе со
// строками Commission и OperationalFee - падение между шагами не оставит
// бронирование без финансовых записей
type UseCase struct {
	bookingRepo  BookingRepository
	parkingRepo  ParkingRepository
	ledgerRepo   LedgerRepository
	notifier     NotifierClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	location        *time.Location
	approvalTimeout time.Duration
}

// NewUseCase создает новый экземпляр use case
// location - гражданская таймзона расписаний владельцев
func NewUseCase(
	bookingRepo BookingRepository,
	parkingRepo ParkingRepository,
	ledgerRepo LedgerRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
	location *time.Location,
	approvalTimeout time.Duration,
) *UseCase {
	if approvalTimeout <= 0 {
		approvalTimeout = domain.DefaultApprovalTimeoutMinutes * time.Minute
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
		approvalTimeout: approvalTimeout,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, parking=%d, start=%s, end=%s",
		req.UserID, req.ParkingID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if isSuspiciouslyLong(req.StartTime, req.EndTime) {
		uc.logger.Warn("CreateBooking: interval longer than 24h for user=%d, parking=%d",
			req.UserID, req.ParkingID)
	}

	now := uc.timeProvider.Now()

	var (
		result     *domain.Booking
		price      *domain.BookingPrice
		commission *domain.Commission
		opFee      *domain.OperationalFee
	)

	// 2. Выполняем проверки и запись в одной сериализуемой транзакции
	// Read-then-decide проверка конфликтов сама по себе гоночна;
	// SERIALIZABLE изоляция плюс exclusion constraint в хранилище
	// гарантируют не больше одного подтвержденного бронирования на слот
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем парковку
		spot, err := uc.parkingRepo.GetByID(txCtx, req.ParkingID)
		if err != nil {
			if errors.Is(err, parkingRepo.ErrParkingNotFound) {
				uc.logger.Warn("CreateBooking: parking id=%d not found", req.ParkingID)
				return ErrParkingNotFound
			}
			uc.logger.Error("CreateBooking: failed to get parking id=%d: %v", req.ParkingID, err)
			return fmt.Errorf("%w: failed to get parking: %v", ErrInternal, err)
		}

		if !spot.IsActive {
			uc.logger.Warn("CreateBooking: parking id=%d is inactive", req.ParkingID)
			return ErrParkingInactive
		}

		// 2.2. Расписание владельца должно покрывать ВЕСЬ интервал
		// Нечитаемое расписание трактуется как отсутствующее (fail-open)
		schedule := domain.ParseWeeklySchedule(spot.AvailabilityJSON)
		if !schedule.Covers(req.StartTime, req.EndTime, uc.location) {
			uc.logger.Warn("CreateBooking: owner schedule does not cover interval, parking=%d", req.ParkingID)
			return ErrOwnerUnavailable
		}

		// 2.3. Проверяем пересечения с блокирующими бронированиями
		conflict, err := uc.bookingRepo.HasConflict(txCtx, req.ParkingID, req.StartTime, req.EndTime, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: conflict check failed for parking=%d: %v", req.ParkingID, err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateBooking: parking=%d occupied for requested interval", req.ParkingID)
			return ErrParkingOccupied
		}

		// 2.4. Считаем цену по живому тарифу - он станет снапшотом
		// В отличие от расписания, ценообразование fail-closed
		table, err := domain.ParsePricingTable(spot.PricingJSON, spot.PriceHrCents)
		if err != nil {
			uc.logger.Error("CreateBooking: pricing unavailable for parking=%d: %v", req.ParkingID, err)
			return ErrPricingUnavailable
		}

		price, err = table.PriceForDuration(req.StartTime, req.EndTime)
		if err != nil {
			if errors.Is(err, domain.ErrDurationTooLong) {
				uc.logger.Warn("CreateBooking: duration too long for parking=%d", req.ParkingID)
				return ErrDurationTooLong
			}
			uc.logger.Error("CreateBooking: price calculation failed: %v", err)
			return fmt.Errorf("%w: price calculation failed: %v", ErrInternal, err)
		}

		// 2.5. Определяем статус по режиму подтверждения парковки
		booking := &domain.Booking{
			UserID:          req.UserID,
			ParkingID:       req.ParkingID,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			Status:          domain.StatusConfirmed,
			TotalPriceCents: price.TotalCents,
			PaymentStatus:   domain.PaymentPending,
		}

		if spot.RequiresApproval() {
			expiresAt := now.Add(uc.approvalTimeout)
			booking.Status = domain.StatusPendingApproval
			booking.ApprovalExpiresAt = &expiresAt
		}

		// 2.6. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrConflict) {
				// Проигравший гонку запрос: constraint сработал после
				// успешной проверки конфликтов
				uc.logger.Warn("CreateBooking: storage conflict for parking=%d", req.ParkingID)
				return ErrParkingOccupied
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 2.7. Финансовые записи - снапшот цены на момент создания
		commission = domain.CalculateCommission(price.TotalCents, price.Hours)
		commission.BookingID = created.ID
		if _, err := uc.ledgerRepo.CreateCommission(txCtx, commission); err != nil {
			uc.logger.Error("CreateBooking: failed to create commission: %v", err)
			return fmt.Errorf("%w: failed to create commission: %v", ErrInternal, err)
		}

		opFee = domain.CalculateOperationalFee(price.TotalCents)
		opFee.BookingID = created.ID
		if _, err := uc.ledgerRepo.CreateOperationalFee(txCtx, opFee); err != nil {
			uc.logger.Error("CreateBooking: failed to create operational fee: %v", err)
			return fmt.Errorf("%w: failed to create operational fee: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, status=%s, total=%d",
		result.ID, result.Status, result.TotalPriceCents)

	// 3. Публикуем событие после коммита, best-effort
	if err := uc.notifier.Publish(ctx, notifier.Event{
		Type:      notifier.EventBookingCreated,
		BookingID: result.ID,
		UserID:    result.UserID,
		ParkingID: result.ParkingID,
	}); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking=%d: %v", result.ID, err)
	}

	return &Response{
		ID:                  result.ID,
		UserID:              result.UserID,
		ParkingID:           result.ParkingID,
		StartTime:           result.StartTime,
		EndTime:             result.EndTime,
		Status:              string(result.Status),
		ApprovalExpiresAt:   result.ApprovalExpiresAt,
		TotalPriceCents:     result.TotalPriceCents,
		HourlyBreakdown:     price.Hours,
		CommissionCents:     commission.CommissionCents,
		NetOwnerCents:       commission.NetOwnerCents,
		CommissionRate:      commission.CommissionRate,
		OperationalFeeCents: opFee.OperationalFeeCents,
		TotalPaymentCents:   opFee.TotalPaymentCents,
		CreatedAt:           result.CreatedAt,
	}, nil
}
