package search_parkings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// UseCase use case поиска свободных парковок вокруг точки
//
// Геофильтр и сортировка по расстоянию выполняются в SQL, остальные
// фильтры (полнота тарифа, расписание, занятость) - здесь: они требуют
// разбора jsonb-снапшотов и проверки пересечений на интервале запроса
type UseCase struct {
	parkingRepo ParkingRepository
	bookingRepo BookingRepository
	logger      Logger

	location *time.Location
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	parkingRepo ParkingRepository,
	bookingRepo BookingRepository,
	logger Logger,
	location *time.Location,
) *UseCase {
	return &UseCase{
		parkingRepo: parkingRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		location:    location,
	}
}

// Execute возвращает парковки, доступные на весь запрошенный интервал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchParkings: validation failed: %v", err)
		return nil, err
	}

	// 2. Геопоиск активных парковок в радиусе
	candidates, err := uc.parkingRepo.SearchInRadius(ctx, req.Lat, req.Lng, req.RadiusKm)
	if err != nil {
		uc.logger.Error("SearchParkings: radius search failed: %v", err)
		return nil, fmt.Errorf("%w: radius search failed: %v", ErrInternal, err)
	}

	spots := make([]Spot, 0, len(candidates))
	for _, candidate := range candidates {
		// 3. Только парковки с полной 12-часовой тарифной сеткой
		// Площадки на устаревшем плоском тарифе не показываем в поиске,
		// но прямое бронирование по id для них остается доступным
		table, err := domain.ParsePricingTable(candidate.PricingJSON, candidate.PriceHrCents)
		if err != nil || !table.IsComplete() {
			continue
		}

		// 4. Расписание владельца должно покрывать весь интервал
		schedule := domain.ParseWeeklySchedule(candidate.AvailabilityJSON)
		if !schedule.Covers(req.StartTime, req.EndTime, uc.location) {
			continue
		}

		// 5. Отсекаем занятые на интервале
		conflict, err := uc.bookingRepo.HasConflict(ctx, candidate.ID, req.StartTime, req.EndTime, nil)
		if err != nil {
			uc.logger.Error("SearchParkings: conflict check failed for parking=%d: %v", candidate.ID, err)
			return nil, fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			continue
		}

		spots = append(spots, Spot{
			ID:               candidate.ID,
			OwnerID:          candidate.OwnerID,
			Lat:              candidate.Lat,
			Lng:              candidate.Lng,
			DistanceKm:       candidate.DistanceKm,
			FirstHourCents:   table.FirstHourCents(),
			ApprovalMode:     string(candidate.ApprovalMode),
			RequiresApproval: candidate.RequiresApproval(),
		})
	}

	uc.logger.Info("SearchParkings: lat=%.5f, lng=%.5f, radius=%.1f: %d of %d candidates available",
		req.Lat, req.Lng, req.RadiusKm, len(spots), len(candidates))

	return &Response{Spots: spots}, nil
}
