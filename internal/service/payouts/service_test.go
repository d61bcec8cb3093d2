package payouts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/service/payouts/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type fakeLedgerRepo struct {
	unpaidCount int64
	unpaidOwed  int64

	paidCount int64
	paidCents int64

	gotEndedBefore *time.Time
	gotPaidAt      *time.Time
}

func (f *fakeLedgerRepo) UnpaidStats(_ context.Context) (int64, int64, error) {
	return f.unpaidCount, f.unpaidOwed, nil
}

func (f *fakeLedgerRepo) MarkCommissionsPaid(_ context.Context, endedBefore, paidAt time.Time) (int64, int64, error) {
	f.gotEndedBefore = &endedBefore
	f.gotPaidAt = &paidAt
	return f.paidCount, f.paidCents, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 6, 17, 15, 30, 0, 0, time.UTC)

func newService(repo *fakeLedgerRepo) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fixedClock{now: testNow}
	return svc
}

func TestStatus(t *testing.T) {
	repo := &fakeLedgerRepo{unpaidCount: 7, unpaidOwed: 123400}

	resp, err := newService(repo).Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.UnpaidCount)
	assert.Equal(t, int64(123400), resp.NetOwedCents)
}

func TestRunMonthlyPayouts_DefaultBoundary(t *testing.T) {
	repo := &fakeLedgerRepo{paidCount: 3, paidCents: 51000}

	resp, err := newService(repo).RunMonthlyPayouts(context.Background(), nil)
	require.NoError(t, err)

	// Без явной границы выплачиваем по завершившимся до начала текущего месяца
	wantBoundary := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, repo.gotEndedBefore)
	assert.Equal(t, wantBoundary, *repo.gotEndedBefore)
	assert.Equal(t, testNow, *repo.gotPaidAt)

	assert.Equal(t, int64(3), resp.PaidCount)
	assert.Equal(t, int64(51000), resp.NetPaidCents)
	assert.Equal(t, wantBoundary, resp.EndedBefore)
	assert.Equal(t, testNow, resp.PaidAt)
}

func TestRunMonthlyPayouts_ExplicitBoundary(t *testing.T) {
	repo := &fakeLedgerRepo{}
	boundary := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

	_, err := newService(repo).RunMonthlyPayouts(context.Background(), &models.RunPayoutsRequest{
		EndedBefore: &boundary,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.gotEndedBefore)
	assert.Equal(t, boundary, *repo.gotEndedBefore)
}

func TestRunMonthlyPayouts_FutureBoundaryRejected(t *testing.T) {
	repo := &fakeLedgerRepo{}

	_, err := newService(repo).RunMonthlyPayouts(context.Background(), &models.RunPayoutsRequest{
		EndedBefore: ptr.Ptr(testNow.Add(time.Hour)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.gotEndedBefore)
}
