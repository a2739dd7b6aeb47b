package domain

import "time"

// PrimeTimeRule evening peak: starts at WeekendStartHour on weekend days, WeekdayStartHour otherwise
type PrimeTimeRule struct {
	WeekdayStartHour int
	WeekendStartHour int
	WeekendDays      []time.Weekday
}

// DefaultPrimeTimeRule 19:00 Sunday to Thursday, 18:00 on Friday and Saturday
func DefaultPrimeTimeRule() PrimeTimeRule {
	return PrimeTimeRule{
		WeekdayStartHour: DefaultWeekdayPrimeHour,
		WeekendStartHour: DefaultWeekendPrimeHour,
		WeekendDays:      []time.Weekday{time.Friday, time.Saturday},
	}
}

// StartOn prime-time start on the calendar day of t, in t's location
func (r PrimeTimeRule) StartOn(t time.Time) time.Time {
	hour := r.WeekdayStartHour
	for _, d := range r.WeekendDays {
		if t.Weekday() == d {
			hour = r.WeekendStartHour
			break
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// WeekWindow quota week containing t: Monday 00:00 to the next Monday 00:00, in t's location
func WeekWindow(t time.Time) TimeRange {
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return TimeRange{Start: monday, End: monday.AddDate(0, 0, 7)}
}
