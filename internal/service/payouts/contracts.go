package payouts

import (
	"context"
	"time"
)

// LedgerRepository интерфейс репозитория финансовых записей
type LedgerRepository interface {
	UnpaidStats(ctx context.Context) (count int64, netOwedCents int64, err error)
	MarkCommissionsPaid(ctx context.Context, endedBefore time.Time, paidAt time.Time) (count int64, netPaidCents int64, err error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
