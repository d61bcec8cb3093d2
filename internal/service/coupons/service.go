package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	couponRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-ParkingService/internal/service/coupons/models"
)

// Service сервис для работы с купонами
// Только чтение и расчет: погашение купона делает usecase оплаты,
// атомарно с записью использования
type Service struct {
	couponRepo   CouponRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса купонов
func NewService(couponRepo CouponRepository, logger Logger) *Service {
	return &Service{
		couponRepo:   couponRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Validate проверяет купон по цепочке условий
// Первая непройденная ступень определяет ошибку - клиенты различают их
// для пользовательских сообщений
func (s *Service) Validate(ctx context.Context, code string) (*models.CouponResponse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	coupon, err := s.getValidCoupon(ctx, code)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Validate: coupon %s is valid", coupon.Code)
	return models.FromDomainCoupon(coupon), nil
}

// CalculateDiscount считает скидку купона для заданных сумм
// Купон не погашается - это предварительный расчет для UI
func (s *Service) CalculateDiscount(ctx context.Context, req *models.CalculateDiscountRequest) (*models.DiscountResponse, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if req.ParkingCostCents < 0 || req.OperationalFeeCents < 0 {
		return nil, fmt.Errorf("%w: amounts must be non-negative", ErrInvalidInput)
	}

	coupon, err := s.getValidCoupon(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	discount := coupon.CalculateDiscount(req.ParkingCostCents, req.OperationalFeeCents)

	s.logger.Info("CalculateDiscount: coupon %s gives %d cents off %d",
		coupon.Code, discount.DiscountAmountCents, discount.OriginalAmountCents)

	return &models.DiscountResponse{
		Code:                coupon.Code,
		DiscountAmountCents: discount.DiscountAmountCents,
		OriginalAmountCents: discount.OriginalAmountCents,
		FinalAmountCents:    discount.FinalAmountCents,
		DiscountPercentage:  discount.DiscountPercentage,
	}, nil
}

func (s *Service) getValidCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("coupon %s not found", domain.NormalizeCouponCode(code))
			return nil, ErrCouponNotFound
		}
		s.logger.Error("repository error for coupon %s: %v", code, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if coupon.IsExpired(s.timeProvider.Now()) {
		return nil, ErrCouponExpired
	}
	if coupon.IsExhausted() {
		return nil, ErrMaxUsageReached
	}

	return coupon, nil
}
