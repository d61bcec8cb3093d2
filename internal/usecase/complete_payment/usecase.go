package complete_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	couponRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/coupon"
)

// UseCase use case оплаты бронирования через симулированный шлюз
//
// Реального списания денег нет: успешная "оплата" выставляет paymentStatus
// и генерирует uuid-ссылку транзакции. Применение купона, инкремент его
// счетчика, запись использования и сверка ledger выполняются в одной
// сериализуемой транзакции с отметкой об оплате
type UseCase struct {
	bookingRepo  BookingRepository
	ledgerRepo   LedgerRepository
	couponRepo   CouponRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ledgerRepo LedgerRepository,
	couponRepo CouponRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledgerRepo:   ledgerRepo,
		couponRepo:   couponRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case оплаты бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompletePayment: booking=%d, user=%d, coupon=%v",
		req.BookingID, req.UserID, req.CouponCode != nil)

	// 1. Валидация входных данных
	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: bookingId and userId must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	paymentRef := uuid.NewString()

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Бронирование существует, принадлежит плательщику,
		// подтверждено и еще не оплачено
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CompletePayment: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if booking.UserID != req.UserID {
			uc.logger.Warn("CompletePayment: user=%d is not the renter of booking=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}
		if booking.Status != domain.StatusConfirmed {
			return ErrNotPayable
		}
		if booking.PaymentStatus == domain.PaymentPaid {
			return ErrAlreadyPaid
		}

		opFee, err := uc.ledgerRepo.GetOperationalFeeByBookingID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("CompletePayment: failed to get operational fee for booking=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to get operational fee: %v", ErrInternal, err)
		}

		paid := opFee.TotalPaymentCents
		var discountCents int64

		// 3. Необязательный купон: цепочка валидации, расчет скидки,
		// атомарное погашение и сверка операционного сбора
		if req.CouponCode != nil {
			coupon, err := uc.couponRepo.GetByCode(txCtx, *req.CouponCode)
			if err != nil {
				if errors.Is(err, couponRepo.ErrCouponNotFound) {
					return ErrCouponNotFound
				}
				uc.logger.Error("CompletePayment: failed to get coupon: %v", err)
				return fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
			}
			if !coupon.IsActive {
				return ErrCouponInactive
			}
			if coupon.IsExpired(now) {
				return ErrCouponExpired
			}
			if coupon.IsExhausted() {
				return ErrCouponMaxUsage
			}

			discount := coupon.CalculateDiscount(opFee.ParkingCostCents, opFee.OperationalFeeCents)
			discountCents = discount.DiscountAmountCents
			paid = discount.FinalAmountCents

			// Условный инкремент в хранилище отсекает гонку за последний
			// слот использования
			usage := &domain.CouponUsage{
				CouponID:            coupon.ID,
				BookingID:           booking.ID,
				UserID:              req.UserID,
				DiscountCents:       discountCents,
				OriginalAmountCents: discount.OriginalAmountCents,
				FinalAmountCents:    paid,
			}
			if err := uc.couponRepo.Redeem(txCtx, coupon.ID, usage); err != nil {
				if errors.Is(err, couponRepo.ErrUsageLimitReached) {
					return ErrCouponMaxUsage
				}
				uc.logger.Error("CompletePayment: failed to redeem coupon id=%d: %v", coupon.ID, err)
				return fmt.Errorf("%w: failed to redeem coupon: %v", ErrInternal, err)
			}

			// Фактически собранный сбор = оплачено - стоимость парковки;
			// скидка может увести его ниже номинальных 10% и даже в минус
			opFee.AdjustForDiscount(paid)
			if err := uc.ledgerRepo.UpdateOperationalFee(txCtx, opFee); err != nil {
				uc.logger.Error("CompletePayment: failed to update operational fee for booking=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update operational fee: %v", ErrInternal, err)
			}
		}

		// 4. Отмечаем оплату
		if err := uc.bookingRepo.MarkPaid(txCtx, booking.ID, paymentRef); err != nil {
			uc.logger.Error("CompletePayment: failed to mark booking=%d paid: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to mark paid: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingID:           booking.ID,
			PaymentRef:          paymentRef,
			PaymentStatus:       string(domain.PaymentPaid),
			ParkingCostCents:    opFee.ParkingCostCents,
			OperationalFeeCents: opFee.OperationalFeeCents,
			DiscountCents:       discountCents,
			PaidCents:           paid,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompletePayment: booking=%d paid %d cents, ref=%s",
		resp.BookingID, resp.PaidCents, resp.PaymentRef)

	return resp, nil
}
