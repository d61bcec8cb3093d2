package search_parkings

import "fmt"

const maxRadiusKm = 50.0

func validateRequest(req *Request) error {
	if req.Lat < -90 || req.Lat > 90 {
		return fmt.Errorf("%w: lat must be in [-90, 90]", ErrInvalidInput)
	}
	if req.Lng < -180 || req.Lng > 180 {
		return fmt.Errorf("%w: lng must be in [-180, 180]", ErrInvalidInput)
	}
	if req.RadiusKm <= 0 || req.RadiusKm > maxRadiusKm {
		return fmt.Errorf("%w: radiusKm must be in (0, %.0f]", ErrInvalidInput, maxRadiusKm)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !req.StartTime.Before(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}
