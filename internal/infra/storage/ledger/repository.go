// Package ledger хранит финансовые записи бронирований:
// комиссии платформы (commissions) и операционные сборы (operational_fees)
// Строки пишутся в одной транзакции с бронированием и служат снапшотом
// цены - смена тарифов владельцем не переписывает историю
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository репозиторий финансовых записей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateCommission создает запись комиссии для бронирования
func (r *Repository) CreateCommission(ctx context.Context, c *domain.Commission) (*domain.Commission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	breakdown, err := json.Marshal(c.HourlyBreakdown)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCommission - marshal breakdown: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("commissions").
		Columns(
			"booking_id",
			"total_price_cents",
			"commission_cents",
			"net_owner_cents",
			"commission_rate",
			"hourly_breakdown",
			"paid",
		).
		Values(
			c.BookingID,
			c.TotalPriceCents,
			c.CommissionCents,
			c.NetOwnerCents,
			c.CommissionRate,
			breakdown,
			c.Paid,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCommission - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCommission - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetCommissionByBookingID получает запись комиссии бронирования
func (r *Repository) GetCommissionByBookingID(ctx context.Context, bookingID int64) (*domain.Commission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"total_price_cents",
		"commission_cents",
		"net_owner_cents",
		"commission_rate",
		"hourly_breakdown",
		"paid",
		"paid_at",
		"created_at",
		"updated_at",
	).
		From("commissions").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCommissionByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Commission
	var breakdown []byte
	var paidAt, createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.BookingID,
		&c.TotalPriceCents,
		&c.CommissionCents,
		&c.NetOwnerCents,
		&c.CommissionRate,
		&breakdown,
		&c.Paid,
		&paidAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCommissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCommissionByBookingID - scan commission: %v", ErrScanRow, err)
	}

	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &c.HourlyBreakdown); err != nil {
			return nil, fmt.Errorf("%w: GetCommissionByBookingID - unmarshal breakdown: %v", ErrScanRow, err)
		}
	}
	if paidAt.Valid {
		c.PaidAt = &paidAt.Time
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// UpdateCommission перезаписывает итоги комиссии
// Используется аддитивным обновлением при продлении бронирования
func (r *Repository) UpdateCommission(ctx context.Context, c *domain.Commission) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	breakdown, err := json.Marshal(c.HourlyBreakdown)
	if err != nil {
		return fmt.Errorf("%w: UpdateCommission - marshal breakdown: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("commissions").
		Set("total_price_cents", c.TotalPriceCents).
		Set("commission_cents", c.CommissionCents).
		Set("net_owner_cents", c.NetOwnerCents).
		Set("hourly_breakdown", breakdown).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCommission - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCommission - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCommission - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCommissionNotFound
	}

	return nil
}

// CreateOperationalFee создает запись операционного сбора для бронирования
func (r *Repository) CreateOperationalFee(ctx context.Context, f *domain.OperationalFee) (*domain.OperationalFee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("operational_fees").
		Columns(
			"booking_id",
			"parking_cost_cents",
			"operational_fee_cents",
			"total_payment_cents",
			"operational_fee_rate",
		).
		Values(
			f.BookingID,
			f.ParkingCostCents,
			f.OperationalFeeCents,
			f.TotalPaymentCents,
			f.OperationalFeeRate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOperationalFee - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOperationalFee - execute insert: %v", ErrExecQuery, err)
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return f, nil
}

// GetOperationalFeeByBookingID получает запись сбора бронирования
func (r *Repository) GetOperationalFeeByBookingID(ctx context.Context, bookingID int64) (*domain.OperationalFee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"parking_cost_cents",
		"operational_fee_cents",
		"total_payment_cents",
		"operational_fee_rate",
		"created_at",
		"updated_at",
	).
		From("operational_fees").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperationalFeeByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var f domain.OperationalFee
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&f.ID,
		&f.BookingID,
		&f.ParkingCostCents,
		&f.OperationalFeeCents,
		&f.TotalPaymentCents,
		&f.OperationalFeeRate,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOperationalFeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperationalFeeByBookingID - scan fee: %v", ErrScanRow, err)
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}

// UpdateOperationalFee перезаписывает поля сбора
// Продление и купонная сверка ЗАМЕНЯЮТ расчет, а не добавляют к нему
func (r *Repository) UpdateOperationalFee(ctx context.Context, f *domain.OperationalFee) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("operational_fees").
		Set("parking_cost_cents", f.ParkingCostCents).
		Set("operational_fee_cents", f.OperationalFeeCents).
		Set("total_payment_cents", f.TotalPaymentCents).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": f.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateOperationalFee - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateOperationalFee - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateOperationalFee - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrOperationalFeeNotFound
	}

	return nil
}

// UnpaidStats возвращает количество невыплаченных комиссий и суммарное
// нетто, причитающееся владельцам. Используется эндпоинтом статуса джобов
func (r *Repository) UnpaidStats(ctx context.Context) (count int64, netOwedCents int64, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(net_owner_cents), 0)",
	).
		From("commissions").
		Where(squirrel.Eq{"paid": false}).
		ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("%w: UnpaidStats - build select query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&count, &netOwedCents)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: UnpaidStats - execute query: %v", ErrExecQuery, err)
	}

	return count, netOwedCents, nil
}

// MarkCommissionsPaid помечает выплаченными комиссии по бронированиям,
// завершившимся до указанной даты. Возвращает количество строк и
// суммарное выплаченное нетто
func (r *Repository) MarkCommissionsPaid(ctx context.Context, endedBefore time.Time, paidAt time.Time) (count int64, netPaidCents int64, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("commissions").
		Set("paid", true).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"paid": false}).
		Where(squirrel.Expr(
			"booking_id IN (SELECT id FROM bookings WHERE end_time < ? AND status = ?)",
			endedBefore, domain.StatusConfirmed,
		)).
		Suffix("RETURNING net_owner_cents").
		ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("%w: MarkCommissionsPaid - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: MarkCommissionsPaid - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var net int64
		if err := rows.Scan(&net); err != nil {
			return 0, 0, fmt.Errorf("%w: MarkCommissionsPaid - scan row: %v", ErrScanRow, err)
		}
		count++
		netPaidCents += net
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("%w: MarkCommissionsPaid - iterate rows: %v", ErrScanRow, err)
	}

	return count, netPaidCents, nil
}
