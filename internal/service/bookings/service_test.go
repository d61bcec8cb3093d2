package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// --- фейки контрактов ---

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error
	list    []*domain.Booking

	updatedStatus *domain.BookingStatus
	updatedReason *string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus, reason *string) error {
	f.updatedStatus = &status
	f.updatedReason = reason
	return nil
}

type fakeParkingRepo struct {
	spot *domain.ParkingSpot
}

func (f *fakeParkingRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingSpot, error) {
	return f.spot, nil
}

type fakeNotifier struct {
	events []notifier.Event
}

func (f *fakeNotifier) Publish(_ context.Context, e notifier.Event) error {
	f.events = append(f.events, e)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- окружение ---

var testNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

const (
	renterID = int64(1)
	ownerID  = int64(100)
)

type env struct {
	bookings *fakeBookingRepo
	parkings *fakeParkingRepo
	events   *fakeNotifier
	clock    *fixedClock
	svc      *Service
}

func newEnv() *env {
	e := &env{
		bookings: &fakeBookingRepo{
			booking: &domain.Booking{
				ID:                42,
				UserID:            renterID,
				ParkingID:         7,
				StartTime:         testNow.Add(time.Hour),
				EndTime:           testNow.Add(3 * time.Hour),
				Status:            domain.StatusPendingApproval,
				ApprovalExpiresAt: ptr.Ptr(testNow.Add(5 * time.Minute)),
			},
		},
		parkings: &fakeParkingRepo{
			spot: &domain.ParkingSpot{ID: 7, OwnerID: ownerID, IsActive: true},
		},
		events: &fakeNotifier{},
		clock:  &fixedClock{now: testNow},
	}
	e.svc = NewService(e.bookings, e.parkings, e.events, nopLogger{})
	e.svc.timeProvider = e.clock
	return e
}

// --- тесты ---

func TestGetByID_Access(t *testing.T) {
	t.Run("арендатор видит свое бронирование", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.GetByID(context.Background(), 42, renterID)
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
	})

	t.Run("владелец парковки видит бронирование", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.GetByID(context.Background(), 42, ownerID)
		assert.NoError(t, err)
	})

	t.Run("постороннему отказано", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.GetByID(context.Background(), 42, 999)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("бронирование не найдено", func(t *testing.T) {
		e := newEnv()
		e.bookings.getErr = bookingRepo.ErrBookingNotFound

		_, err := e.svc.GetByID(context.Background(), 42, renterID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetUserBookings(t *testing.T) {
	e := newEnv()
	e.bookings.list = []*domain.Booking{
		{ID: 1, UserID: renterID, Status: domain.StatusConfirmed},
		{ID: 2, UserID: renterID, Status: domain.StatusCancelled},
	}

	resp, err := e.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: renterID})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	e := newEnv()

	_, err := e.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: renterID,
		Status: ptr.Ptr("paused"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	t.Run("арендатор отменяет с причиной", func(t *testing.T) {
		e := newEnv()

		err := e.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
			UserID:             renterID,
			CancellationReason: "планы изменились",
		})
		require.NoError(t, err)

		require.NotNil(t, e.bookings.updatedStatus)
		assert.Equal(t, domain.StatusCancelled, *e.bookings.updatedStatus)
		require.NotNil(t, e.bookings.updatedReason)
		assert.Equal(t, "планы изменились", *e.bookings.updatedReason)
	})

	t.Run("причина необязательна", func(t *testing.T) {
		e := newEnv()

		err := e.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: renterID})
		require.NoError(t, err)
		assert.Nil(t, e.bookings.updatedReason)
	})

	t.Run("владелец парковки отменить не может", func(t *testing.T) {
		e := newEnv()

		err := e.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: ownerID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("терминальный статус не отменяется", func(t *testing.T) {
		e := newEnv()
		e.bookings.booking.Status = domain.StatusExpired

		err := e.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: renterID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestApprove(t *testing.T) {
	e := newEnv()

	resp, err := e.svc.Approve(context.Background(), &models.ApprovalRequest{BookingID: 42, UserID: ownerID})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Nil(t, resp.ApprovalExpiresAt)

	require.NotNil(t, e.bookings.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *e.bookings.updatedStatus)

	require.Len(t, e.events.events, 1)
	assert.Equal(t, notifier.EventBookingApproved, e.events.events[0].Type)
}

func TestReject(t *testing.T) {
	e := newEnv()

	resp, err := e.svc.Reject(context.Background(), &models.ApprovalRequest{BookingID: 42, UserID: ownerID})
	require.NoError(t, err)

	// Отклонение - это отмена с фиксированной причиной
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, e.bookings.updatedReason)
	assert.Equal(t, rejectedByOwnerReason, *e.bookings.updatedReason)

	require.Len(t, e.events.events, 1)
	assert.Equal(t, notifier.EventBookingRejected, e.events.events[0].Type)
}

func TestApprovalPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*env)
		userID  int64
		wantErr error
	}{
		{
			"только владелец парковки",
			func(*env) {},
			renterID, ErrAccessDenied,
		},
		{
			"статус не pending_approval",
			func(e *env) { e.bookings.booking.Status = domain.StatusConfirmed },
			ownerID, ErrNotPendingApproval,
		},
		{
			"окно подтверждения истекло",
			func(e *env) { e.clock.now = testNow.Add(10 * time.Minute) },
			ownerID, ErrApprovalWindowPassed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			tc.mutate(e)

			req := &models.ApprovalRequest{BookingID: 42, UserID: tc.userID}

			_, err := e.svc.Approve(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)

			// Reject проверяет те же предусловия
			_, err = e.svc.Reject(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)

			assert.Nil(t, e.bookings.updatedStatus)
			assert.Empty(t, e.events.events)
		})
	}
}
