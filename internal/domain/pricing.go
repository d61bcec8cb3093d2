package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPricingUnavailable возвращается, когда у парковки нет ни тарифной
	// сетки, ни legacy тарифа. Ценообразование fail-closed: недосчитать
	// стоимость хуже, чем отклонить запрос
	ErrPricingUnavailable = errors.New("domain: pricing is not configured for this parking")

	// ErrDurationTooLong возвращается для бронирований длиннее 12 часов
	// Тарифная сетка определяет только 12 порядковых часов
	ErrDurationTooLong = errors.New("domain: booking duration exceeds pricing table")

	// ErrInvalidInterval возвращается для инвертированного или пустого интервала
	ErrInvalidInterval = errors.New("domain: invalid time interval")
)

// PricingTable тарифная сетка парковки: цена для каждого порядкового часа
// бронирования (1..12). Порядковый час - это номер часа ЭТОГО бронирования,
// а не час суток. Нулевая цена часа означает бесплатный час
type PricingTable struct {
	hours [PricingTableHours]int64
	// complete true, если сетка пришла из jsonb со всеми 12 часами
	// Только парковки с полной сеткой участвуют в поиске
	complete bool
}

// ParsePricingTable парсит jsonb поле pricing ({"hour1": 1000, ...})
// fallbackHrCents - legacy плоский тариф, используется для всех часов,
// когда сетки нет
//
// В отличие от расписания, ценообразование fail-closed: нечитаемая сетка
// при отсутствии fallback дает ошибку, а не нулевую цену
func ParsePricingTable(raw []byte, fallbackHrCents int64) (*PricingTable, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return flatTable(fallbackHrCents)
	}

	var parsed map[string]int64
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed pricing json: %v", ErrPricingUnavailable, err)
	}

	t := &PricingTable{complete: true}
	for i := 0; i < PricingTableHours; i++ {
		price, ok := parsed[fmt.Sprintf("hour%d", i+1)]
		if !ok || price < 0 {
			t.complete = false
			break
		}
		t.hours[i] = price
	}

	if !t.complete {
		// Неполная сетка равнозначна отсутствующей
		return flatTable(fallbackHrCents)
	}

	return t, nil
}

func flatTable(fallbackHrCents int64) (*PricingTable, error) {
	if fallbackHrCents <= 0 {
		return nil, ErrPricingUnavailable
	}
	t := &PricingTable{}
	for i := range t.hours {
		t.hours[i] = fallbackHrCents
	}
	return t, nil
}

// IsComplete returns true if the table came from a full 12-hour pricing json
// Legacy парковки с плоским тарифом не проходят фильтр поиска
func (t *PricingTable) IsComplete() bool {
	return t.complete
}

// PriceForOrdinal возвращает цену порядкового часа бронирования (1..12)
func (t *PricingTable) PriceForOrdinal(ordinal int) (int64, error) {
	if ordinal < 1 || ordinal > PricingTableHours {
		return 0, fmt.Errorf("%w: hour ordinal %d", ErrDurationTooLong, ordinal)
	}
	return t.hours[ordinal-1], nil
}

// FirstHourCents цена первого часа - используется в выдаче поиска
func (t *PricingTable) FirstHourCents() int64 {
	return t.hours[0]
}

// HourPrice цена одного порядкового часа бронирования
// Сериализуется в jsonb поле hourly_breakdown таблицы commissions
type HourPrice struct {
	Ordinal    int   `json:"hour"`
	PriceCents int64 `json:"priceCents"`
	// IsFree помечает бесплатный час: он не дает ни выручки, ни комиссии
	IsFree bool `json:"isFree"`
}

// BookingPrice результат расчета стоимости бронирования
type BookingPrice struct {
	TotalCents int64
	Hours      []HourPrice
}

// PriceForDuration считает стоимость бронирования [start, end)
// Длительность округляется ВВЕРХ до целых часов, каждый порядковый час
// берется из сетки. Бронирования длиннее 12 часов отклоняются
func (t *PricingTable) PriceForDuration(start, end time.Time) (*BookingPrice, error) {
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	hours := CeilHours(end.Sub(start))
	if hours > MaxBookingHours {
		return nil, fmt.Errorf("%w: %d hours requested, max %d", ErrDurationTooLong, hours, MaxBookingHours)
	}

	price := &BookingPrice{Hours: make([]HourPrice, 0, hours)}
	for ordinal := 1; ordinal <= hours; ordinal++ {
		cents, err := t.PriceForOrdinal(ordinal)
		if err != nil {
			return nil, err
		}
		price.Hours = append(price.Hours, HourPrice{
			Ordinal:    ordinal,
			PriceCents: cents,
			IsFree:     cents == 0,
		})
		price.TotalCents += cents
	}

	return price, nil
}

// ExtensionPriceCents цена продления: половина цены первого часа,
// округленная вверх, независимо от текущей длительности бронирования
func (t *PricingTable) ExtensionPriceCents() int64 {
	hour1 := t.hours[0]
	return (hour1 + 1) / 2
}
