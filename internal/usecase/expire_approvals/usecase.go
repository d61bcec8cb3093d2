package expire_approvals

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
)

// UseCase use case перевода просроченных pending_approval в expired
//
// Проход идемпотентен: UPDATE с условием по статусу не тронет уже
// обработанные строки. От конкурирующих инстансов защищает advisory lock
// уровня транзакции - проигравший пропускает проход целиком, не ждет
type UseCase struct {
	bookingRepo  BookingRepository
	notifier     NotifierClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		notifier:     notifierClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один проход по просроченным подтверждениям
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	resp := &Response{}

	// Лок транзакционный (pg_try_advisory_xact_lock), поэтому захват и
	// UPDATE обязаны жить в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		acquired, err := uc.bookingRepo.TryAcquireSweepLock(txCtx)
		if err != nil {
			uc.logger.Error("ExpireApprovals: failed to acquire sweep lock: %v", err)
			return fmt.Errorf("%w: failed to acquire sweep lock: %v", ErrInternal, err)
		}
		if !acquired {
			resp.Skipped = true
			return nil
		}

		ids, err := uc.bookingRepo.ExpireApprovals(txCtx, now)
		if err != nil {
			uc.logger.Error("ExpireApprovals: bulk expire failed: %v", err)
			return fmt.Errorf("%w: bulk expire failed: %v", ErrInternal, err)
		}
		resp.ExpiredIDs = ids
		return nil
	})

	if err != nil {
		return nil, err
	}

	if resp.Skipped {
		uc.logger.Info("ExpireApprovals: sweep lock held elsewhere, skipping run")
		return resp, nil
	}

	if len(resp.ExpiredIDs) > 0 {
		uc.logger.Info("ExpireApprovals: expired %d bookings: %v", len(resp.ExpiredIDs), resp.ExpiredIDs)
	}

	// События после коммита, best-effort
	for _, id := range resp.ExpiredIDs {
		if err := uc.notifier.Publish(ctx, notifier.Event{
			Type:      notifier.EventBookingExpired,
			BookingID: id,
		}); err != nil {
			uc.logger.Warn("ExpireApprovals: failed to publish event for booking=%d: %v", id, err)
		}
	}

	return resp, nil
}
