package domain

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullPricingJSON(prices ...int64) []byte {
	// Заполняет сетку до 12 часов последней указанной ценой
	parts := make([]string, 0, PricingTableHours)
	last := int64(0)
	for i := 0; i < PricingTableHours; i++ {
		if i < len(prices) {
			last = prices[i]
		}
		parts = append(parts, fmt.Sprintf("%q: %d", fmt.Sprintf("hour%d", i+1), last))
	}
	return []byte("{" + strings.Join(parts, ",") + "}")
}

func TestParsePricingTable_Complete(t *testing.T) {
	table, err := ParsePricingTable(fullPricingJSON(1000, 700, 400), 0)
	require.NoError(t, err)

	assert.True(t, table.IsComplete())
	assert.Equal(t, int64(1000), table.FirstHourCents())

	p, err := table.PriceForOrdinal(2)
	require.NoError(t, err)
	assert.Equal(t, int64(700), p)
}

func TestParsePricingTable_MissingFallsBackToFlatRate(t *testing.T) {
	table, err := ParsePricingTable(nil, 500)
	require.NoError(t, err)

	// Legacy парковки не проходят фильтр поиска
	assert.False(t, table.IsComplete())
	for ordinal := 1; ordinal <= PricingTableHours; ordinal++ {
		p, err := table.PriceForOrdinal(ordinal)
		require.NoError(t, err)
		assert.Equal(t, int64(500), p)
	}
}

func TestParsePricingTable_IncompleteTableFallsBack(t *testing.T) {
	raw := []byte(`{"hour1": 1000, "hour2": 700}`)
	table, err := ParsePricingTable(raw, 300)
	require.NoError(t, err)

	assert.False(t, table.IsComplete())
	assert.Equal(t, int64(300), table.FirstHourCents())
}

func TestParsePricingTable_NoTableNoFallbackFailsClosed(t *testing.T) {
	_, err := ParsePricingTable(nil, 0)
	assert.ErrorIs(t, err, ErrPricingUnavailable)

	_, err = ParsePricingTable([]byte(`{broken`), 0)
	assert.ErrorIs(t, err, ErrPricingUnavailable)
}

func TestPriceForDuration_CeilRounding(t *testing.T) {
	table, err := ParsePricingTable(fullPricingJSON(1000, 700, 400), 0)
	require.NoError(t, err)

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		duration  time.Duration
		wantTotal int64
		wantHours int
	}{
		{"exactly one hour", time.Hour, 1000, 1},
		{"90 minutes rounds up to 2h", 90 * time.Minute, 1700, 2},
		{"one minute counts as 1h", time.Minute, 1000, 1},
		{"three hours", 3 * time.Hour, 2100, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			price, err := table.PriceForDuration(start, start.Add(tc.duration))
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, price.TotalCents)
			assert.Len(t, price.Hours, tc.wantHours)
		})
	}
}

func TestPriceForDuration_FreeHoursFlagged(t *testing.T) {
	table, err := ParsePricingTable(fullPricingJSON(1000, 700, 400, 0), 0)
	require.NoError(t, err)

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	price, err := table.PriceForDuration(start, start.Add(4*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(2100), price.TotalCents)
	require.Len(t, price.Hours, 4)
	assert.False(t, price.Hours[0].IsFree)
	assert.True(t, price.Hours[3].IsFree)
}

func TestPriceForDuration_RejectsOverTwelveHours(t *testing.T) {
	table, err := ParsePricingTable(fullPricingJSON(1000), 0)
	require.NoError(t, err)

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err = table.PriceForDuration(start, start.Add(13*time.Hour))
	assert.ErrorIs(t, err, ErrDurationTooLong)

	// Ровно 12 часов - допустимо
	_, err = table.PriceForDuration(start, start.Add(12*time.Hour))
	assert.NoError(t, err)
}

func TestPriceForDuration_InvalidInterval(t *testing.T) {
	table, err := ParsePricingTable(fullPricingJSON(1000), 0)
	require.NoError(t, err)

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	_, err = table.PriceForDuration(start, start)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExtensionPriceCents_HalfOfFirstHourRoundedUp(t *testing.T) {
	tests := []struct {
		hour1 int64
		want  int64
	}{
		{1000, 500},
		{999, 500},
		{1, 1},
		{0, 0},
	}

	for _, tc := range tests {
		table, err := ParsePricingTable(fullPricingJSON(tc.hour1, 100), 0)
		require.NoError(t, err)
		assert.Equal(t, tc.want, table.ExtensionPriceCents(), "hour1=%d", tc.hour1)
	}
}
