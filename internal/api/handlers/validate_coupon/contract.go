package validate_coupon

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/coupons/models"
)

type CouponService interface {
	Validate(ctx context.Context, code string) (*models.CouponResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
