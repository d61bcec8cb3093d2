package expire_approvals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
)

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	lockAcquired bool
	lockErr      error
	expiredIDs   []int64
	expireErr    error

	expireCalled bool
}

func (f *fakeBookingRepo) TryAcquireSweepLock(_ context.Context) (bool, error) {
	return f.lockAcquired, f.lockErr
}

func (f *fakeBookingRepo) ExpireApprovals(_ context.Context, _ time.Time) ([]int64, error) {
	f.expireCalled = true
	return f.expiredIDs, f.expireErr
}

type fakeNotifier struct {
	events []notifier.Event
	err    error
}

func (f *fakeNotifier) Publish(_ context.Context, e notifier.Event) error {
	f.events = append(f.events, e)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_ExpiresAndPublishes(t *testing.T) {
	repo := &fakeBookingRepo{lockAcquired: true, expiredIDs: []int64{11, 12}}
	events := &fakeNotifier{}
	uc := NewUseCase(repo, events, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.False(t, resp.Skipped)
	assert.Equal(t, []int64{11, 12}, resp.ExpiredIDs)

	// По событию на каждое истекшее бронирование
	require.Len(t, events.events, 2)
	assert.Equal(t, notifier.EventBookingExpired, events.events[0].Type)
	assert.Equal(t, int64(11), events.events[0].BookingID)
	assert.Equal(t, int64(12), events.events[1].BookingID)
}

func TestExecute_LockHeldElsewhere(t *testing.T) {
	// Проигравший лок инстанс пропускает проход, не ждет
	repo := &fakeBookingRepo{lockAcquired: false}
	events := &fakeNotifier{}
	uc := NewUseCase(repo, events, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.Skipped)
	assert.False(t, repo.expireCalled)
	assert.Empty(t, events.events)
}

func TestExecute_NothingExpired(t *testing.T) {
	repo := &fakeBookingRepo{lockAcquired: true}
	events := &fakeNotifier{}
	uc := NewUseCase(repo, events, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.False(t, resp.Skipped)
	assert.Empty(t, resp.ExpiredIDs)
	assert.Empty(t, events.events)
}

func TestExecute_NotifierFailureIsNotFatal(t *testing.T) {
	repo := &fakeBookingRepo{lockAcquired: true, expiredIDs: []int64{11}}
	uc := NewUseCase(repo, &fakeNotifier{err: errors.New("notifier down")}, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, resp.ExpiredIDs)
}

func TestExecute_ExpireError(t *testing.T) {
	repo := &fakeBookingRepo{lockAcquired: true, expireErr: errors.New("db down")}
	uc := NewUseCase(repo, &fakeNotifier{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
