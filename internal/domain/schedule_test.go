package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тесты используют UTC как гражданскую таймзону, чтобы инстанты
// совпадали с гражданским временем
func utcDate(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestParseWeeklySchedule_Absent(t *testing.T) {
	assert.Nil(t, ParseWeeklySchedule(nil))
	assert.Nil(t, ParseWeeklySchedule([]byte{}))
	assert.Nil(t, ParseWeeklySchedule([]byte("null")))
}

func TestParseWeeklySchedule_MalformedFailsOpen(t *testing.T) {
	// Нечитаемое расписание не должно блокировать бронирования
	s := ParseWeeklySchedule([]byte(`{"monday": "not-a-list"`))
	assert.Nil(t, s)
	assert.True(t, s.Covers(utcDate(2025, 6, 2, 10, 0), utcDate(2025, 6, 2, 12, 0), time.UTC))
}

func TestParseWeeklySchedule_IgnoresInvalidBlockStarts(t *testing.T) {
	s := ParseWeeklySchedule([]byte(`{"monday": [8, 9, 13]}`))
	require.NotNil(t, s)

	// 9 и 13 не являются началами блоков и отбрасываются
	assert.True(t, s.OpenAt(time.Monday, 8))
	assert.False(t, s.OpenAt(time.Monday, 13))
}

func TestCovers_NilScheduleAlwaysAvailable(t *testing.T) {
	var s *WeeklySchedule
	assert.True(t, s.Covers(utcDate(2025, 6, 2, 0, 0), utcDate(2025, 6, 3, 0, 0), time.UTC))
}

func TestCovers_InvertedIntervalUnavailable(t *testing.T) {
	s := ParseWeeklySchedule([]byte(`{"monday": [0, 4, 8, 12, 16, 20]}`))
	require.NotNil(t, s)

	start := utcDate(2025, 6, 2, 12, 0)
	assert.False(t, s.Covers(start, start, time.UTC))
	assert.False(t, s.Covers(start, start.Add(-time.Hour), time.UTC))
}

func TestCovers_WithinOpenBlocks(t *testing.T) {
	// Понедельник открыт 08:00-16:00 (блоки 8 и 12)
	s := ParseWeeklySchedule([]byte(`{"monday": [8, 12]}`))
	require.NotNil(t, s)

	// 2025-06-02 - понедельник
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"inside single block", utcDate(2025, 6, 2, 10, 0), utcDate(2025, 6, 2, 11, 0), true},
		{"spanning two open blocks", utcDate(2025, 6, 2, 9, 0), utcDate(2025, 6, 2, 14, 0), true},
		{"up to closing boundary", utcDate(2025, 6, 2, 13, 0), utcDate(2025, 6, 2, 16, 0), true},
		{"past closing time", utcDate(2025, 6, 2, 13, 0), utcDate(2025, 6, 2, 17, 0), false},
		{"before opening", utcDate(2025, 6, 2, 7, 0), utcDate(2025, 6, 2, 9, 0), false},
		{"fully closed day", utcDate(2025, 6, 3, 10, 0), utcDate(2025, 6, 3, 11, 0), false},
		{"partial hour inside block", utcDate(2025, 6, 2, 15, 0), utcDate(2025, 6, 2, 15, 30), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Covers(tc.start, tc.end, time.UTC))
		})
	}
}

func TestCovers_MultiDaySpan(t *testing.T) {
	// Каждый затронутый гражданский день проверяется независимо
	s := ParseWeeklySchedule([]byte(`{
		"monday":  [20],
		"tuesday": [0, 4]
	}`))
	require.NotNil(t, s)

	// Понедельник 20:00 - вторник 08:00: все блоки открыты
	assert.True(t, s.Covers(utcDate(2025, 6, 2, 20, 0), utcDate(2025, 6, 3, 8, 0), time.UTC))

	// Понедельник 20:00 - вторник 09:00: блок 8 вторника закрыт
	assert.False(t, s.Covers(utcDate(2025, 6, 2, 20, 0), utcDate(2025, 6, 3, 9, 0), time.UTC))

	// Воскресенье затронуто - закрыт целиком
	assert.False(t, s.Covers(utcDate(2025, 6, 1, 23, 0), utcDate(2025, 6, 2, 21, 0), time.UTC))
}

func TestCovers_SingleClosedHourAnywhereFails(t *testing.T) {
	// Один закрытый час в любом месте интервала делает его недоступным
	s := ParseWeeklySchedule([]byte(`{"monday": [0, 4, 12, 16, 20]}`)) // блок 8 закрыт
	require.NotNil(t, s)

	assert.False(t, s.Covers(utcDate(2025, 6, 2, 4, 0), utcDate(2025, 6, 2, 13, 0), time.UTC))
	assert.True(t, s.Covers(utcDate(2025, 6, 2, 4, 0), utcDate(2025, 6, 2, 8, 0), time.UTC))
}

func TestCovers_CivilTimezoneConversion(t *testing.T) {
	// Расписание задано в гражданском времени площадки, запрос - в UTC
	loc := time.FixedZone("UTC+3", 3*60*60)
	s := ParseWeeklySchedule([]byte(`{"monday": [8, 12]}`))
	require.NotNil(t, s)

	// 07:00 UTC = 10:00 местного понедельника - внутри блока 8
	start := utcDate(2025, 6, 2, 7, 0)
	assert.True(t, s.Covers(start, start.Add(time.Hour), loc))

	// 13:30 UTC = 16:30 местного - блок 16 закрыт
	closed := utcDate(2025, 6, 2, 13, 30)
	assert.False(t, s.Covers(closed, closed.Add(time.Hour), loc))
}
