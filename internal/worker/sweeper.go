package worker

import (
	"context"
	"sync/atomic"
	"time"

	expireApprovals "github.com/m04kA/SMC-ParkingService/internal/usecase/expire_approvals"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

// ExpireApprovalsUseCase интерфейс use case обработки просроченных подтверждений
type ExpireApprovalsUseCase interface {
	Execute(ctx context.Context) (*expireApprovals.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ApprovalSweeper периодически переводит просроченные pending_approval
// в expired
//
// Двухуровневая защита от конкурентных проходов: атомарный флаг running
// внутри процесса плюс advisory lock в use case между инстансами
type ApprovalSweeper struct {
	useCase  ExpireApprovalsUseCase
	logger   Logger
	interval time.Duration
	metrics  *metrics.Metrics

	running atomic.Bool
}

// NewApprovalSweeper создает новый sweeper
// collector может быть nil, если метрики выключены
func NewApprovalSweeper(useCase ExpireApprovalsUseCase, logger Logger, interval time.Duration, collector *metrics.Metrics) *ApprovalSweeper {
	return &ApprovalSweeper{
		useCase:  useCase,
		logger:   logger,
		interval: interval,
		metrics:  collector,
	}
}

// Run запускает цикл до отмены контекста
// Вызывается в отдельной горутине из main
func (s *ApprovalSweeper) Run(ctx context.Context) {
	s.logger.Info("ApprovalSweeper: starting with interval %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("ApprovalSweeper: stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ApprovalSweeper) sweep(ctx context.Context) {
	// Затянувшийся проход не должен накладываться на следующий тик
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("ApprovalSweeper: previous run still in progress, skipping tick")
		return
	}
	defer s.running.Store(false)

	resp, err := s.useCase.Execute(ctx)
	if err != nil {
		s.logger.Error("ApprovalSweeper: run failed: %v", err)
		if s.metrics != nil {
			s.metrics.SweepRunsTotal.WithLabelValues("error").Inc()
		}
		return
	}

	if s.metrics != nil {
		outcome := "ok"
		if resp.Skipped {
			outcome = "skipped"
		}
		s.metrics.SweepRunsTotal.WithLabelValues(outcome).Inc()
		s.metrics.BookingsExpiredTotal.Add(float64(len(resp.ExpiredIDs)))
	}

	if !resp.Skipped {
		s.logger.Info("ApprovalSweeper: run complete, expired %d bookings", len(resp.ExpiredIDs))
	}
}
