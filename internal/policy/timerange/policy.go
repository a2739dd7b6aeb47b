package timerange

import (
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// Policy правила времени зала: зона, часы работы и минимальный срок бронирования
type Policy struct {
	loc           *time.Location
	hours         *domain.OpenHours
	advanceNotice int
}

func NewPolicy(loc *time.Location, hours *domain.OpenHours, advanceNoticeDays int) *Policy {
	return &Policy{loc: loc, hours: hours, advanceNotice: advanceNoticeDays}
}

// Location зона зала
func (p *Policy) Location() *time.Location {
	return p.loc
}

// Parse разбирает ввод в зоне зала
func (p *Policy) Parse(date, start, end string) (domain.TimeRange, error) {
	return Parse(date, start, end, p.loc)
}

// HoursOn часы работы на дату
func (p *Policy) HoursOn(date time.Time) domain.DayHours {
	return p.hours.For(date.In(p.loc))
}

// Validate проверяет диапазон: не в прошлом, в часах работы и, для командных броней, с запасом по дням
func (p *Policy) Validate(r domain.TimeRange, now time.Time, kind domain.ReservationKind) error {
	r = r.In(p.loc)

	if err := ValidateNotPast(r, now); err != nil {
		return err
	}
	if err := ValidateOpenHours(r, p.HoursOn(r.Start)); err != nil {
		return err
	}
	if kind == domain.KindExternal {
		return nil
	}
	return ValidateAdvanceNotice(r, now, p.advanceNotice)
}
