package timerange

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// clockLayouts принимаемые форматы времени, после приведения к верхнему регистру
var clockLayouts = []string{"15:04", "3:04PM", "3:04 PM", "3PM", "3 PM"}

const expectedFormat = "date YYYY-MM-DD, time HH:MM or H[:MM] AM/PM"

// Parse разбирает дату и время начала/окончания в диапазон в зоне зала
// Диапазон не может переходить через полночь
func Parse(date, start, end string, loc *time.Location) (domain.TimeRange, error) {
	day, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(date), loc)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: date %q, expected %s", domain.ErrParse, date, expectedFormat)
	}

	startClock, err := parseClock(start)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: start time %q, expected %s", domain.ErrParse, start, expectedFormat)
	}
	endClock, err := parseClock(end)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: end time %q, expected %s", domain.ErrParse, end, expectedFormat)
	}

	r, err := domain.NewTimeRange(onDay(day, startClock, loc), onDay(day, endClock, loc))
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: end time must be after start time on the same day", domain.ErrParse)
	}
	return r, nil
}

// ParseDate разбирает дату YYYY-MM-DD в полночь зоны зала
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q, expected YYYY-MM-DD", domain.ErrParse, date)
	}
	return day, nil
}

func parseClock(s string) (time.Time, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, norm); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized time")
}

func onDay(day, clock time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
}

// ValidateAdvanceNotice требует, чтобы между календарными днями now и начала диапазона
// было не меньше minDays дней
func ValidateAdvanceNotice(r domain.TimeRange, now time.Time, minDays int) error {
	loc := r.Start.Location()
	days := civilDays(r.Start) - civilDays(now.In(loc))
	if days < minDays {
		return fmt.Errorf("%w: reservations must be made at least %d days in advance", domain.ErrTooShortNotice, minDays)
	}
	return nil
}

// ValidateNotPast отклоняет диапазоны, которые уже начались
func ValidateNotPast(r domain.TimeRange, now time.Time) error {
	if !now.Before(r.Start) {
		return domain.ErrRangeInPast
	}
	return nil
}

// ValidateOpenHours требует, чтобы оба конца диапазона лежали в часах работы этого дня
func ValidateOpenHours(r domain.TimeRange, hours domain.DayHours) error {
	window, err := hours.Window(r.Start, r.Start.Location())
	if err != nil {
		if errors.Is(err, domain.ErrClosed) {
			return fmt.Errorf("%w: the lab is closed on %s", domain.ErrOutsideOpenHours, r.Start.Format(domain.DateFormat))
		}
		return fmt.Errorf("%w: %v", domain.ErrOutsideOpenHours, err)
	}
	if !window.Covers(r) {
		return fmt.Errorf("%w: open %s-%s", domain.ErrOutsideOpenHours, hours.Open, hours.Close)
	}
	return nil
}

// civilDays номер календарного дня без учёта часового пояса и перехода на летнее время
func civilDays(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
