package parking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var parkingColumns = []string{
	"id",
	"owner_id",
	"lat",
	"lng",
	"price_hr_cents",
	"pricing",
	"availability",
	"is_active",
	"approval_mode",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с парковками
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает парковку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(parkingColumns...).
		From("parking_spots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	spot, err := scanParking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrParkingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan parking: %v", ErrScanRow, err)
	}

	return spot, nil
}

// SearchInRadius возвращает активные парковки в радиусе radiusKm от точки
// Расстояние считается формулой haversine прямо в запросе
// Фильтр полноты тарифной сетки применяется выше (в use case),
// здесь отсекаются только неактивные площадки
func (r *Repository) SearchInRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*SpotWithDistance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	distanceExpr := "(6371 * acos(least(1.0, " +
		"cos(radians(?)) * cos(radians(lat)) * cos(radians(lng) - radians(?)) + " +
		"sin(radians(?)) * sin(radians(lat)))))"

	query, args, err := psqlbuilder.Select(parkingColumns...).
		Column(squirrel.Alias(squirrel.Expr(distanceExpr, lat, lng, lat), "distance_km")).
		From("parking_spots").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Expr(distanceExpr+" <= ?", lat, lng, lat, radiusKm)).
		OrderBy("distance_km ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SearchInRadius - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SearchInRadius - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spots := make([]*SpotWithDistance, 0)
	for rows.Next() {
		spot, err := scanParkingWithDistance(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: SearchInRadius - scan parking: %v", ErrScanRow, err)
		}
		spots = append(spots, spot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SearchInRadius - iterate rows: %v", ErrScanRow, err)
	}

	return spots, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanParking(row rowScanner) (*domain.ParkingSpot, error) {
	var spot domain.ParkingSpot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&spot.ID,
		&spot.OwnerID,
		&spot.Lat,
		&spot.Lng,
		&spot.PriceHrCents,
		&spot.PricingJSON,
		&spot.AvailabilityJSON,
		&spot.IsActive,
		&spot.ApprovalMode,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	spot.CreatedAt = createdAt.Time
	spot.UpdatedAt = updatedAt.Time

	return &spot, nil
}

// SpotWithDistance парковка с расстоянием до точки поиска
type SpotWithDistance struct {
	domain.ParkingSpot
	DistanceKm float64
}

func scanParkingWithDistance(row rowScanner) (*SpotWithDistance, error) {
	var spot SpotWithDistance
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&spot.ID,
		&spot.OwnerID,
		&spot.Lat,
		&spot.Lng,
		&spot.PriceHrCents,
		&spot.PricingJSON,
		&spot.AvailabilityJSON,
		&spot.IsActive,
		&spot.ApprovalMode,
		&createdAt,
		&updatedAt,
		&spot.DistanceKm,
	)
	if err != nil {
		return nil, err
	}

	spot.CreatedAt = createdAt.Time
	spot.UpdatedAt = updatedAt.Time

	return &spot, nil
}
