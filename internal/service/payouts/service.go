package payouts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/payouts/models"
)

// Service сервис выплат владельцам парковок
//
// MarkCommissionsPaid идемпотентен (помечает только неоплаченные строки),
// поэтому повторный запуск за тот же период безопасен
type Service struct {
	ledgerRepo   LedgerRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса выплат
func NewService(ledgerRepo LedgerRepository, logger Logger) *Service {
	return &Service{
		ledgerRepo:   ledgerRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Status возвращает сводку по невыплаченным комиссиям
func (s *Service) Status(ctx context.Context) (*models.StatusResponse, error) {
	count, owed, err := s.ledgerRepo.UnpaidStats(ctx)
	if err != nil {
		s.logger.Error("Status: repository error: %v", err)
		return nil, fmt.Errorf("%w: Status - repository error: %v", ErrInternal, err)
	}

	return &models.StatusResponse{
		UnpaidCount:  count,
		NetOwedCents: owed,
	}, nil
}

// RunMonthlyPayouts помечает выплаченными комиссии по бронированиям,
// завершившимся до границы периода (по умолчанию - до начала текущего месяца)
func (s *Service) RunMonthlyPayouts(ctx context.Context, req *models.RunPayoutsRequest) (*models.RunPayoutsResponse, error) {
	now := s.timeProvider.Now()

	endedBefore := monthStart(now)
	if req != nil && req.EndedBefore != nil {
		if req.EndedBefore.After(now) {
			return nil, fmt.Errorf("%w: endedBefore must not be in the future", ErrInvalidInput)
		}
		endedBefore = *req.EndedBefore
	}

	s.logger.Info("RunMonthlyPayouts: paying out commissions for bookings ended before %s",
		endedBefore.Format(time.RFC3339))

	count, paid, err := s.ledgerRepo.MarkCommissionsPaid(ctx, endedBefore, now)
	if err != nil {
		s.logger.Error("RunMonthlyPayouts: repository error: %v", err)
		return nil, fmt.Errorf("%w: RunMonthlyPayouts - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RunMonthlyPayouts: paid %d commissions, %d cents total", count, paid)

	return &models.RunPayoutsResponse{
		PaidCount:    count,
		NetPaidCents: paid,
		EndedBefore:  endedBefore,
		PaidAt:       now,
	}, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
