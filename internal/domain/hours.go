package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/pkg/types"
)

var (
	// ErrClosed is returned when the lab is closed on the date
	ErrClosed = errors.New("domain: lab is closed on this date")
	// ErrInvalidHours is returned when the hours table is inconsistent
	ErrInvalidHours = errors.New("domain: invalid open hours")
)

// DayHours opening window of a single day
type DayHours struct {
	Closed bool
	Open   types.TimeString
	Close  types.TimeString
}

// Validate checks that the window is well-formed
func (h DayHours) Validate() error {
	if h.Closed {
		return nil
	}
	if err := h.Open.Validate(); err != nil {
		return fmt.Errorf("%w: open: %v", ErrInvalidHours, err)
	}
	if err := h.Close.Validate(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrInvalidHours, err)
	}
	if !h.Open.IsBefore(h.Close) {
		return fmt.Errorf("%w: open %s must be before close %s", ErrInvalidHours, h.Open, h.Close)
	}
	return nil
}

// Window open interval of the day in loc
func (h DayHours) Window(date time.Time, loc *time.Location) (TimeRange, error) {
	if h.Closed {
		return TimeRange{}, ErrClosed
	}
	open, err := h.Open.On(date, loc)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	closeAt, err := h.Close.On(date, loc)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	return NewTimeRange(open, closeAt)
}

// OpenHours weekday table plus per-date overrides (holidays, events)
type OpenHours struct {
	weekly    map[time.Weekday]DayHours
	overrides map[string]DayHours
}

// NewOpenHours validates every entry; weekdays missing from the table are closed
func NewOpenHours(weekly map[time.Weekday]DayHours, overrides map[string]DayHours) (*OpenHours, error) {
	h := &OpenHours{
		weekly:    make(map[time.Weekday]DayHours, 7),
		overrides: make(map[string]DayHours, len(overrides)),
	}
	for day, dh := range weekly {
		if err := dh.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", day, err)
		}
		h.weekly[day] = dh
	}
	for date, dh := range overrides {
		if _, err := time.Parse(DateFormat, date); err != nil {
			return nil, fmt.Errorf("%w: override date %q", ErrInvalidHours, date)
		}
		if err := dh.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", date, err)
		}
		h.overrides[date] = dh
	}
	return h, nil
}

// For returns the hours of the calendar date, override first
func (h *OpenHours) For(date time.Time) DayHours {
	if dh, ok := h.overrides[date.Format(DateFormat)]; ok {
		return dh
	}
	dh, ok := h.weekly[date.Weekday()]
	if !ok {
		return DayHours{Closed: true}
	}
	return dh
}

// IsOverridden reports whether the date uses adjusted hours
func (h *OpenHours) IsOverridden(date time.Time) bool {
	_, ok := h.overrides[date.Format(DateFormat)]
	return ok
}
