package domain

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when start is not before end
var ErrInvalidRange = errors.New("domain: range start must be before end")

// TimeRange half-open interval [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a validated range
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps half-open overlap: touching ranges do not overlap
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether t lies in [Start, End)
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Covers reports whether other lies entirely inside r
func (r TimeRange) Covers(other TimeRange) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// In converts both ends to the location
func (r TimeRange) In(loc *time.Location) TimeRange {
	return TimeRange{Start: r.Start.In(loc), End: r.End.In(loc)}
}
