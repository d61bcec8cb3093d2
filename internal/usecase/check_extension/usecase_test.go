package check_extension

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	booking  *domain.Booking
	getErr   error
	conflict bool
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) HasConflict(_ context.Context, _ int64, _, _ time.Time, _ *int64) (bool, error) {
	return f.conflict, nil
}

type fakeParkingRepo struct {
	spot *domain.ParkingSpot
}

func (f *fakeParkingRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingSpot, error) {
	return f.spot, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	bookingStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	bookingEnd   = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
)

type env struct {
	bookings *fakeBookingRepo
	parkings *fakeParkingRepo
	clock    *fixedClock
	uc       *UseCase
}

func newEnv() *env {
	e := &env{
		bookings: &fakeBookingRepo{
			booking: &domain.Booking{
				ID:        42,
				UserID:    1,
				ParkingID: 7,
				StartTime: bookingStart,
				EndTime:   bookingEnd,
				Status:    domain.StatusConfirmed,
			},
		},
		parkings: &fakeParkingRepo{
			spot: &domain.ParkingSpot{ID: 7, IsActive: true, PriceHrCents: 1000},
		},
		clock: &fixedClock{now: bookingStart.Add(-time.Hour)},
	}
	e.uc = NewUseCase(e.bookings, e.parkings, nopLogger{}, time.UTC, 30*time.Minute, 10*time.Minute)
	e.uc.timeProvider = e.clock
	return e
}

func check(e *env) (*Response, error) {
	return e.uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})
}

func TestExecute_Eligible(t *testing.T) {
	e := newEnv()

	resp, err := check(e)
	require.NoError(t, err)

	assert.True(t, resp.Eligible)
	assert.Empty(t, resp.Reason)
	assert.Equal(t, bookingEnd, resp.CurrentEndTime)
	require.NotNil(t, resp.NewEndTime)
	assert.Equal(t, bookingEnd.Add(30*time.Minute), *resp.NewEndTime)
	assert.Equal(t, 30, resp.ExtensionMinutes)
	assert.Equal(t, int64(500), resp.ExtensionPriceCents)
}

func TestExecute_IneligibleReasons(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*env)
		wantReason string
	}{
		{
			"не подтверждено",
			func(e *env) { e.bookings.booking.Status = domain.StatusPendingApproval },
			ReasonNotConfirmed,
		},
		{
			"уже закончилось",
			func(e *env) { e.clock.now = bookingEnd.Add(time.Minute) },
			ReasonAlreadyEnded,
		},
		{
			"до конца меньше буфера",
			func(e *env) { e.clock.now = bookingEnd.Add(-5 * time.Minute) },
			ReasonBufferTooSmall,
		},
		{
			"хвост занят",
			func(e *env) { e.bookings.conflict = true },
			ReasonSlotOccupied,
		},
		{
			"расписание не покрывает хвост",
			func(e *env) { e.parkings.spot.AvailabilityJSON = []byte(`{"monday": [8]}`) },
			ReasonOwnerUnavailable,
		},
		{
			"тариф не настроен",
			func(e *env) { e.parkings.spot.PriceHrCents = 0 },
			ReasonPricingMissing,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			tc.mutate(e)

			resp, err := check(e)
			require.NoError(t, err)

			// Невозможность продления - обычный ответ, не ошибка
			assert.False(t, resp.Eligible)
			assert.Equal(t, tc.wantReason, resp.Reason)
			assert.Equal(t, bookingEnd, resp.CurrentEndTime)
			assert.Nil(t, resp.NewEndTime)
			assert.Zero(t, resp.ExtensionPriceCents)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	t.Run("бронирование не найдено", func(t *testing.T) {
		e := newEnv()
		e.bookings.getErr = bookingRepo.ErrBookingNotFound

		_, err := check(e)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("чужое бронирование", func(t *testing.T) {
		e := newEnv()

		_, err := e.uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 2})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("некорректный запрос", func(t *testing.T) {
		e := newEnv()

		_, err := e.uc.Execute(context.Background(), &Request{BookingID: 0, UserID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
