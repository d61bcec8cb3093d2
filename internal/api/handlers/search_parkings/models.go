package search_parkings

import (
	searchParkings "github.com/m04kA/SMC-ParkingService/internal/usecase/search_parkings"
)

// SpotResponse HTTP модель найденной парковки
type SpotResponse struct {
	ID               int64   `json:"id"`
	OwnerID          int64   `json:"ownerId"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	DistanceKm       float64 `json:"distanceKm"`
	FirstHourCents   int64   `json:"firstHourCents"`
	ApprovalMode     string  `json:"approvalMode"`
	RequiresApproval bool    `json:"requiresApproval"`
}

// SearchResponse HTTP модель результата поиска
type SearchResponse struct {
	Spots []SpotResponse `json:"spots"`
	Total int            `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchParkings.Response) *SearchResponse {
	out := &SearchResponse{
		Spots: make([]SpotResponse, 0, len(resp.Spots)),
		Total: len(resp.Spots),
	}
	for _, s := range resp.Spots {
		out.Spots = append(out.Spots, SpotResponse{
			ID:               s.ID,
			OwnerID:          s.OwnerID,
			Lat:              s.Lat,
			Lng:              s.Lng,
			DistanceKm:       s.DistanceKm,
			FirstHourCents:   s.FirstHourCents,
			ApprovalMode:     s.ApprovalMode,
			RequiresApproval: s.RequiresApproval,
		})
	}
	return out
}
