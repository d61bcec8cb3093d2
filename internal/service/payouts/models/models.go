package models

import "time"

// StatusResponse сводка по невыплаченным комиссиям владельцев
type StatusResponse struct {
	UnpaidCount  int64 `json:"unpaidCount"`
	NetOwedCents int64 `json:"netOwedCents"`
}

// RunPayoutsRequest запрос на выплату владельцам
// EndedBefore - выплачиваем по бронированиям, завершившимся до этой даты;
// nil = начало текущего месяца
type RunPayoutsRequest struct {
	EndedBefore *time.Time `json:"endedBefore,omitempty"`
}

// RunPayoutsResponse результат выплаты
type RunPayoutsResponse struct {
	PaidCount    int64     `json:"paidCount"`
	NetPaidCents int64     `json:"netPaidCents"`
	EndedBefore  time.Time `json:"endedBefore"`
	PaidAt       time.Time `json:"paidAt"`
}
