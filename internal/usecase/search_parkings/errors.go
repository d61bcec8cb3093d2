package search_parkings

import "errors"

var (
	// ErrInvalidInput невалидные параметры поиска
	ErrInvalidInput = errors.New("search_parkings: invalid input")
	// ErrInternal внутренняя ошибка при поиске
	ErrInternal = errors.New("search_parkings: internal error")
)
