package domain

import "time"

// Default policy values
const (
	DefaultAdvanceNoticeDays = 2
	DefaultWeekdayPrimeHour  = 19
	DefaultWeekendPrimeHour  = 18
	DefaultSlotDuration      = 30 * time.Minute
	DefaultMatchTolerance    = 5 * time.Minute
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
