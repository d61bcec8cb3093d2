package calculate_discount

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/coupons/models"
)

type CouponService interface {
	CalculateDiscount(ctx context.Context, req *models.CalculateDiscountRequest) (*models.DiscountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
