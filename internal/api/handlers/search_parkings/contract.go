package search_parkings

import (
	"context"

	searchParkings "github.com/m04kA/SMC-ParkingService/internal/usecase/search_parkings"
)

type SearchParkingsUseCase interface {
	Execute(ctx context.Context, req *searchParkings.Request) (*searchParkings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
