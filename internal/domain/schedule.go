package domain

import (
	"encoding/json"
	"time"
)

// WeeklySchedule недельное расписание доступности парковки
// Неделя гражданская (в таймзоне площадки), ключи дней с воскресенья
// День хранит набор начал открытых 4-часовых блоков из {0,4,8,12,16,20}
// Блок либо полностью открыт, либо полностью закрыт - частичной доступности нет
type WeeklySchedule struct {
	days [7]map[int]bool // индекс = time.Weekday (Sunday = 0)
}

// scheduleJSON промежуточная форма для парсинга jsonb поля availability
type scheduleJSON struct {
	Sunday    []int `json:"sunday"`
	Monday    []int `json:"monday"`
	Tuesday   []int `json:"tuesday"`
	Wednesday []int `json:"wednesday"`
	Thursday  []int `json:"thursday"`
	Friday    []int `json:"friday"`
	Saturday  []int `json:"saturday"`
}

// ParseWeeklySchedule парсит jsonb поле availability
// Возвращает nil для отсутствующего расписания (nil/пустой jsonb/JSON null) -
// это означает "всегда доступно"
//
// Нечитаемые данные тоже дают nil без ошибки: ошибка данных расписания
// не должна блокировать легитимные бронирования (осознанное fail-open решение)
func ParseWeeklySchedule(raw []byte) *WeeklySchedule {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var sj scheduleJSON
	if err := json.Unmarshal(raw, &sj); err != nil {
		return nil
	}

	s := &WeeklySchedule{}
	s.setDay(time.Sunday, sj.Sunday)
	s.setDay(time.Monday, sj.Monday)
	s.setDay(time.Tuesday, sj.Tuesday)
	s.setDay(time.Wednesday, sj.Wednesday)
	s.setDay(time.Thursday, sj.Thursday)
	s.setDay(time.Friday, sj.Friday)
	s.setDay(time.Saturday, sj.Saturday)
	return s
}

func (s *WeeklySchedule) setDay(day time.Weekday, blocks []int) {
	set := make(map[int]bool, len(blocks))
	for _, b := range blocks {
		if isValidBlockStart(b) {
			set[b] = true
		}
	}
	s.days[day] = set
}

func isValidBlockStart(b int) bool {
	for _, start := range ScheduleBlockStarts {
		if b == start {
			return true
		}
	}
	return false
}

// OpenAt проверяет, открыт ли блок, содержащий указанный гражданский час
func (s *WeeklySchedule) OpenAt(day time.Weekday, hour int) bool {
	blocks := s.days[day]
	if len(blocks) == 0 {
		// День без открытых блоков недоступен целиком
		return false
	}
	blockStart := (hour / ScheduleBlockHours) * ScheduleBlockHours
	return blocks[blockStart]
}

// Covers проверяет, что парковка открыта на ВЕСЬ интервал [start, end)
//
// nil расписание покрывает любой интервал (владелец ничего не ограничивал)
// Инвертированный интервал считается недоступным
//
// Проверка идет по границам 4-часовых блоков в гражданском времени площадки:
// для каждого затронутого блока достаточно одной проверки членства,
// перебирать каждый час не нужно. Интервал через несколько суток проверяется
// независимо для каждого затронутого гражданского дня.
func (s *WeeklySchedule) Covers(start, end time.Time, loc *time.Location) bool {
	if s == nil {
		return true
	}
	if !start.Before(end) {
		return false
	}

	cur := start.In(loc)
	for cur.Before(end) {
		if !s.OpenAt(cur.Weekday(), cur.Hour()) {
			return false
		}
		// Переходим к началу следующего блока в гражданском времени
		blockStart := (cur.Hour() / ScheduleBlockHours) * ScheduleBlockHours
		cur = time.Date(cur.Year(), cur.Month(), cur.Day(), blockStart, 0, 0, 0, loc).
			Add(ScheduleBlockHours * time.Hour).In(loc)
	}

	return true
}
