package coupon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с купонами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория купонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode получает купон по коду (код нормализуется к верхнему регистру)
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"discount_type",
		"discount_value",
		"apply_to",
		"valid_until",
		"max_usage",
		"usage_count",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("coupons").
		Where(squirrel.Eq{"code": domain.NormalizeCouponCode(code)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Coupon
	var maxUsage sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&c.DiscountValue,
		&c.ApplyTo,
		&c.ValidUntil,
		&maxUsage,
		&c.UsageCount,
		&c.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan coupon: %v", ErrScanRow, err)
	}

	if maxUsage.Valid {
		c.MaxUsage = &maxUsage.Int64
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// Redeem атомарно инкрементирует счетчик использований и пишет
// неизменяемую запись о применении купона
//
// Инкремент условный (WHERE usage_count < max_usage), поэтому два
// конкурентных применения у последнего слота не пройдут оба:
// проигравший получает ErrUsageLimitReached. Вызывается только внутри
// транзакции оплаты - запись использования и инкремент неразделимы
func (r *Repository) Redeem(ctx context.Context, couponID int64, usage *domain.CouponUsage) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("usage_count", squirrel.Expr("usage_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": couponID}).
		Where(squirrel.Expr("(max_usage IS NULL OR usage_count < max_usage)")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Redeem - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Redeem - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Redeem - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrUsageLimitReached
	}

	insertQuery, insertArgs, err := psqlbuilder.Insert("coupon_usages").
		Columns(
			"coupon_id",
			"booking_id",
			"user_id",
			"discount_cents",
			"original_amount_cents",
			"final_amount_cents",
		).
		Values(
			usage.CouponID,
			usage.BookingID,
			usage.UserID,
			usage.DiscountCents,
			usage.OriginalAmountCents,
			usage.FinalAmountCents,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Redeem - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&usage.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("%w: Redeem - insert usage record: %v", ErrExecQuery, err)
	}
	usage.CreatedAt = createdAt.Time

	return nil
}
