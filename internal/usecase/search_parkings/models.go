package search_parkings

import "time"

// Request параметры поиска свободных парковок
type Request struct {
	Lat       float64
	Lng       float64
	RadiusKm  float64
	StartTime time.Time // UTC
	EndTime   time.Time // UTC
}

// Spot найденная парковка
type Spot struct {
	ID               int64
	OwnerID          int64
	Lat              float64
	Lng              float64
	DistanceKm       float64
	FirstHourCents   int64
	ApprovalMode     string
	RequiresApproval bool
}

// Response результат поиска, отсортирован по расстоянию
type Response struct {
	Spots []Spot
}
