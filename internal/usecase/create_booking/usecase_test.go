package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
)

// --- фейки контрактов ---

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	conflict    bool
	conflictErr error
	createErr   error

	created *domain.Booking // последнее созданное бронирование
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *b
	created.ID = 42
	created.CreatedAt = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) HasConflict(_ context.Context, _ int64, _, _ time.Time, _ *int64) (bool, error) {
	return f.conflict, f.conflictErr
}

type fakeParkingRepo struct {
	spot *domain.ParkingSpot
	err  error
}

func (f *fakeParkingRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingSpot, error) {
	return f.spot, f.err
}

type fakeLedgerRepo struct {
	commission *domain.Commission
	opFee      *domain.OperationalFee

	commissionErr error
	opFeeErr      error
}

func (f *fakeLedgerRepo) CreateCommission(_ context.Context, c *domain.Commission) (*domain.Commission, error) {
	if f.commissionErr != nil {
		return nil, f.commissionErr
	}
	f.commission = c
	return c, nil
}

func (f *fakeLedgerRepo) CreateOperationalFee(_ context.Context, fee *domain.OperationalFee) (*domain.OperationalFee, error) {
	if f.opFeeErr != nil {
		return nil, f.opFeeErr
	}
	f.opFee = fee
	return fee, nil
}

type fakeNotifier struct {
	events []notifier.Event
	err    error
}

func (f *fakeNotifier) Publish(_ context.Context, e notifier.Event) error {
	f.events = append(f.events, e)
	return f.err
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- вспомогательные конструкторы ---

// fullPricingJSON полная сетка с одинаковой ценой каждого часа
func fullPricingJSON(hrCents int64) []byte {
	raw := "{"
	for i := 1; i <= domain.PricingTableHours; i++ {
		if i > 1 {
			raw += ","
		}
		raw += fmt.Sprintf(`"hour%d": %d`, i, hrCents)
	}
	return []byte(raw + "}")
}

func activeSpot(mode domain.ApprovalMode) *domain.ParkingSpot {
	return &domain.ParkingSpot{
		ID:           7,
		OwnerID:      100,
		IsActive:     true,
		ApprovalMode: mode,
		PricingJSON:  fullPricingJSON(1000),
	}
}

type env struct {
	bookings *fakeBookingRepo
	parkings *fakeParkingRepo
	ledger   *fakeLedgerRepo
	events   *fakeNotifier
	clock    *fixedClock
	uc       *UseCase
}

func newEnv(spot *domain.ParkingSpot) *env {
	e := &env{
		bookings: &fakeBookingRepo{},
		parkings: &fakeParkingRepo{spot: spot},
		ledger:   &fakeLedgerRepo{},
		events:   &fakeNotifier{},
		clock:    &fixedClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
	}
	e.uc = NewUseCase(e.bookings, e.parkings, e.ledger, e.events, &fakeTxManager{}, nopLogger{}, time.UTC, 5*time.Minute)
	e.uc.timeProvider = e.clock
	return e
}

// Понедельник 10:00-12:00 UTC
func validRequest() *Request {
	return &Request{
		UserID:    1,
		ParkingID: 7,
		StartTime: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}
}

// --- тесты ---

func TestExecute_AutoApproval(t *testing.T) {
	e := newEnv(activeSpot(domain.ApprovalAuto))

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Авто-режим подтверждает сразу, без окна подтверждения
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Nil(t, resp.ApprovalExpiresAt)

	// 2 часа по 1000: цена, комиссия 15%, сбор 10%
	assert.Equal(t, int64(2000), resp.TotalPriceCents)
	assert.Equal(t, int64(300), resp.CommissionCents)
	assert.Equal(t, int64(1700), resp.NetOwnerCents)
	assert.Equal(t, int64(200), resp.OperationalFeeCents)
	assert.Equal(t, int64(2200), resp.TotalPaymentCents)
	assert.Len(t, resp.HourlyBreakdown, 2)

	// Финансовые записи созданы в той же транзакции и привязаны к бронированию
	require.NotNil(t, e.ledger.commission)
	require.NotNil(t, e.ledger.opFee)
	assert.Equal(t, resp.ID, e.ledger.commission.BookingID)
	assert.Equal(t, resp.ID, e.ledger.opFee.BookingID)

	// Событие опубликовано после коммита
	require.Len(t, e.events.events, 1)
	assert.Equal(t, notifier.EventBookingCreated, e.events.events[0].Type)
	assert.Equal(t, resp.ID, e.events.events[0].BookingID)
}

func TestExecute_ManualApproval(t *testing.T) {
	e := newEnv(activeSpot(domain.ApprovalManual))

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPendingApproval), resp.Status)

	// Окно подтверждения отсчитывается от времени запроса, не от начала брони
	require.NotNil(t, resp.ApprovalExpiresAt)
	assert.Equal(t, e.clock.now.Add(5*time.Minute), *resp.ApprovalExpiresAt)
}

func TestExecute_ParkingNotFound(t *testing.T) {
	e := newEnv(nil)
	e.parkings.err = parkingRepo.ErrParkingNotFound

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrParkingNotFound)
}

func TestExecute_ParkingInactive(t *testing.T) {
	spot := activeSpot(domain.ApprovalAuto)
	spot.IsActive = false
	e := newEnv(spot)

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrParkingInactive)
}

func TestExecute_OwnerScheduleDoesNotCover(t *testing.T) {
	spot := activeSpot(domain.ApprovalAuto)
	// Открыто только воскресенье, запрос на понедельник
	spot.AvailabilityJSON = []byte(`{"sunday": [8, 12]}`)
	e := newEnv(spot)

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOwnerUnavailable)

	// До проверки конфликтов и записи дело не дошло
	assert.Nil(t, e.bookings.created)
}

func TestExecute_ParkingOccupied(t *testing.T) {
	e := newEnv(activeSpot(domain.ApprovalAuto))
	e.bookings.conflict = true

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrParkingOccupied)
	assert.Nil(t, e.bookings.created)
}

func TestExecute_StorageConflictOnCreate(t *testing.T) {
	// Проигравший гонку запрос: проверка конфликтов прошла,
	// но constraint хранилища сработал при вставке
	e := newEnv(activeSpot(domain.ApprovalAuto))
	e.bookings.createErr = bookingRepo.ErrConflict

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrParkingOccupied)
}

func TestExecute_PricingUnavailable(t *testing.T) {
	spot := activeSpot(domain.ApprovalAuto)
	// Ни сетки, ни legacy тарифа
	spot.PricingJSON = nil
	spot.PriceHrCents = 0
	e := newEnv(spot)

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPricingUnavailable)
}

func TestExecute_DurationTooLong(t *testing.T) {
	e := newEnv(activeSpot(domain.ApprovalAuto))

	req := validRequest()
	req.EndTime = req.StartTime.Add(13 * time.Hour)

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDurationTooLong)
}

func TestExecute_Validation(t *testing.T) {
	e := newEnv(activeSpot(domain.ApprovalAuto))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"нулевой userID", func(r *Request) { r.UserID = 0 }},
		{"отрицательный parkingID", func(r *Request) { r.ParkingID = -1 }},
		{"пустое время начала", func(r *Request) { r.StartTime = time.Time{} }},
		{"start после end", func(r *Request) { r.StartTime, r.EndTime = r.EndTime, r.StartTime }},
		{"start равен end", func(r *Request) { r.EndTime = r.StartTime }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_NotifierFailureIsNotFatal(t *testing.T) {
	// Доставка события best-effort: бронирование уже закоммичено
	e := newEnv(activeSpot(domain.ApprovalAuto))
	e.events.err = errors.New("notifier down")

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}
