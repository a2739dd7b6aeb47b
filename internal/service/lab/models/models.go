package models

import (
	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// ResourceResponse ПК зала
type ResourceResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Zone      string `json:"zone"`
	Block     int    `json:"block,omitempty"`
	Streaming bool   `json:"streaming,omitempty"`
}

// TeamResponse команда и её недельная квота
type TeamResponse struct {
	Name  string `json:"name"`
	Quota *int   `json:"quota,omitempty"` // nil для команд без ограничения
}

// DayResponse часы работы на дату
type DayResponse struct {
	Date            string   `json:"date"`
	Weekday         string   `json:"weekday"`
	Closed          bool     `json:"closed"`
	Open            string   `json:"open,omitempty"`
	Close           string   `json:"close,omitempty"`
	Adjusted        bool     `json:"adjusted"`
	SuppressedZones []string `json:"suppressedZones,omitempty"`
}

// PrimeTimeResponse правило прайм-тайма
type PrimeTimeResponse struct {
	WeekdayStartHour int      `json:"weekdayStartHour"`
	WeekendStartHour int      `json:"weekendStartHour"`
	WeekendDays      []string `json:"weekendDays"`
}

// LabResponse описание зала
type LabResponse struct {
	Resources         []ResourceResponse  `json:"resources"`
	MainCeiling       int                 `json:"mainCeiling"`
	BackCeiling       int                 `json:"backCeiling"`
	Teams             []TeamResponse      `json:"teams"`
	Schedule          []DayResponse       `json:"schedule"`
	PrimeTime         PrimeTimeResponse   `json:"primeTime"`
	AdvanceNoticeDays int                 `json:"advanceNoticeDays"`
	Games             map[string][]string `json:"games"` // консоль -> игры
}

// FromDomainResource конвертирует ПК
func FromDomainResource(r domain.Resource) ResourceResponse {
	return ResourceResponse{ID: int(r.ID), Name: r.Name, Zone: string(r.Zone), Block: r.Block, Streaming: r.Streaming}
}

// FromDomainTeam конвертирует команду
func FromDomainTeam(t domain.Team) TeamResponse {
	resp := TeamResponse{Name: t.Name}
	if !t.IsUnlimited() {
		quota := t.Quota
		resp.Quota = &quota
	}
	return resp
}

// FromPrimeTimeRule конвертирует правило прайм-тайма
func FromPrimeTimeRule(r domain.PrimeTimeRule) PrimeTimeResponse {
	days := make([]string, 0, len(r.WeekendDays))
	for _, d := range r.WeekendDays {
		days = append(days, d.String())
	}
	return PrimeTimeResponse{
		WeekdayStartHour: r.WeekdayStartHour,
		WeekendStartHour: r.WeekendStartHour,
		WeekendDays:      days,
	}
}

// FromGames копия списка игр; пустой объект вместо null
func FromGames(games map[string][]string) map[string][]string {
	out := make(map[string][]string, len(games))
	for console, titles := range games {
		out[console] = append([]string(nil), titles...)
	}
	return out
}
