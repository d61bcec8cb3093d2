package search_parkings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	searchParkings "github.com/m04kA/SMC-ParkingService/internal/usecase/search_parkings"
)

const (
	msgInvalidQuery = "некорректные параметры поиска"
)

type Handler struct {
	useCase SearchParkingsUseCase
	logger  Logger
}

func NewHandler(useCase SearchParkingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/parkings/search?lat=..&lng=..&radiusKm=..&startTime=..&endTime=..
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /parkings/search - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, searchParkings.ErrInvalidInput):
			h.logger.Warn("GET /parkings/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /parkings/search - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func parseQuery(r *http.Request) (*searchParkings.Request, error) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		return nil, err
	}
	radius, err := strconv.ParseFloat(q.Get("radiusKm"), 64)
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(time.RFC3339, q.Get("startTime"))
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, q.Get("endTime"))
	if err != nil {
		return nil, err
	}

	return &searchParkings.Request{
		Lat:       lat,
		Lng:       lng,
		RadiusKm:  radius,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	}, nil
}
