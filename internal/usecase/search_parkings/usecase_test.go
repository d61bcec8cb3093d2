package search_parkings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
)

type fakeParkingRepo struct {
	spots []*parkingRepo.SpotWithDistance
	err   error
}

func (f *fakeParkingRepo) SearchInRadius(_ context.Context, _, _, _ float64) ([]*parkingRepo.SpotWithDistance, error) {
	return f.spots, f.err
}

type fakeBookingRepo struct {
	// occupied парковки, занятые на интервале запроса
	occupied map[int64]bool
}

func (f *fakeBookingRepo) HasConflict(_ context.Context, parkingID int64, _, _ time.Time, _ *int64) (bool, error) {
	return f.occupied[parkingID], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

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

func candidate(id int64, distanceKm float64) *parkingRepo.SpotWithDistance {
	return &parkingRepo.SpotWithDistance{
		ParkingSpot: domain.ParkingSpot{
			ID:           id,
			OwnerID:      100,
			IsActive:     true,
			ApprovalMode: domain.ApprovalAuto,
			PricingJSON:  fullPricingJSON(1000),
		},
		DistanceKm: distanceKm,
	}
}

// Понедельник 10:00-12:00 UTC
func validRequest() *Request {
	return &Request{
		Lat:       55.75,
		Lng:       37.62,
		RadiusKm:  2,
		StartTime: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}
}

func newUseCase(parkings *fakeParkingRepo, bookings *fakeBookingRepo) *UseCase {
	if bookings.occupied == nil {
		bookings.occupied = map[int64]bool{}
	}
	return NewUseCase(parkings, bookings, nopLogger{}, time.UTC)
}

func TestExecute_ReturnsAvailableSpots(t *testing.T) {
	parkings := &fakeParkingRepo{spots: []*parkingRepo.SpotWithDistance{
		candidate(1, 0.3),
		candidate(2, 1.1),
	}}
	uc := newUseCase(parkings, &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Spots, 2)
	// Порядок репозитория (по расстоянию) сохраняется
	assert.Equal(t, int64(1), resp.Spots[0].ID)
	assert.InDelta(t, 0.3, resp.Spots[0].DistanceKm, 1e-9)
	assert.Equal(t, int64(1000), resp.Spots[0].FirstHourCents)
	assert.False(t, resp.Spots[0].RequiresApproval)
}

func TestExecute_FiltersCandidates(t *testing.T) {
	legacy := candidate(2, 0.5)
	legacy.PricingJSON = nil // только плоский legacy тариф
	legacy.PriceHrCents = 800

	partial := candidate(3, 0.6)
	partial.PricingJSON = []byte(`{"hour1": 1000}`) // неполная сетка
	partial.PriceHrCents = 800

	closedMonday := candidate(4, 0.7)
	closedMonday.AvailabilityJSON = []byte(`{"sunday": [8, 12]}`)

	occupied := candidate(5, 0.8)

	parkings := &fakeParkingRepo{spots: []*parkingRepo.SpotWithDistance{
		candidate(1, 0.3), legacy, partial, closedMonday, occupied,
	}}
	uc := newUseCase(parkings, &fakeBookingRepo{occupied: map[int64]bool{5: true}})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Парковки без полной сетки, с закрытым расписанием и занятые
	// выпадают из выдачи
	require.Len(t, resp.Spots, 1)
	assert.Equal(t, int64(1), resp.Spots[0].ID)
}

func TestExecute_ManualApprovalSpotIsMarked(t *testing.T) {
	manual := candidate(1, 0.3)
	manual.ApprovalMode = domain.ApprovalManual

	uc := newUseCase(&fakeParkingRepo{spots: []*parkingRepo.SpotWithDistance{manual}}, &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Spots, 1)
	assert.Equal(t, string(domain.ApprovalManual), resp.Spots[0].ApprovalMode)
	assert.True(t, resp.Spots[0].RequiresApproval)
}

func TestExecute_EmptyResult(t *testing.T) {
	uc := newUseCase(&fakeParkingRepo{}, &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Spots)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(&fakeParkingRepo{}, &fakeBookingRepo{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"широта вне диапазона", func(r *Request) { r.Lat = 91 }},
		{"долгота вне диапазона", func(r *Request) { r.Lng = -181 }},
		{"нулевой радиус", func(r *Request) { r.RadiusKm = 0 }},
		{"радиус больше максимума", func(r *Request) { r.RadiusKm = 51 }},
		{"start после end", func(r *Request) { r.StartTime, r.EndTime = r.EndTime, r.StartTime }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
