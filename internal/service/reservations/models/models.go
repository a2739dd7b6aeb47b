package models

import (
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/primetime"
)

// ResourceResponse ПК брони
type ResourceResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Zone      string `json:"zone"`
	Streaming bool   `json:"streaming,omitempty"`
}

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID          int64              `json:"id"`
	Kind        string             `json:"kind"`
	Team        string             `json:"team"`
	Resources   []ResourceResponse `json:"resources"`
	Date        string             `json:"date"`      // "2025-03-12"
	StartTime   string             `json:"startTime"` // "18:15"
	EndTime     string             `json:"endTime"`
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end"`
	ManagerID   int64              `json:"managerId"`
	IsPrimeTime bool               `json:"isPrimeTime"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// QuotaResponse использование прайм-тайма командой за текущую неделю
type QuotaResponse struct {
	Team      string    `json:"team"`
	Used      int       `json:"used"`
	Limit     *int      `json:"limit,omitempty"` // nil для команд без ограничения
	Remaining *int      `json:"remaining,omitempty"`
	HasQuota  bool      `json:"hasQuota"`
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`
}

// Resolver имена ПК по ID
type Resolver interface {
	Get(id domain.ResourceID) (domain.Resource, bool)
}

// FromDomainResources конвертирует набор ПК; неизвестные ID пропускаются
func FromDomainResources(ids []domain.ResourceID, pool Resolver) []ResourceResponse {
	out := make([]ResourceResponse, 0, len(ids))
	for _, id := range ids {
		r, ok := pool.Get(id)
		if !ok {
			continue
		}
		out = append(out, ResourceResponse{ID: int(r.ID), Name: r.Name, Zone: string(r.Zone), Streaming: r.Streaming})
	}
	return out
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, pool Resolver) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:          r.ID,
		Kind:        string(r.Kind),
		Team:        r.Team,
		Resources:   FromDomainResources(r.Resources, pool),
		Date:        r.Range.Start.Format(domain.DateFormat),
		StartTime:   r.Range.Start.Format(domain.TimeFormat),
		EndTime:     r.Range.End.Format(domain.TimeFormat),
		Start:       r.Range.Start,
		End:         r.Range.End,
		ManagerID:   r.ManagerID,
		IsPrimeTime: r.IsPrimeTime,
		CreatedAt:   r.CreatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []domain.Reservation, pool Resolver) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(list))}
	for i := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(&list[i], pool))
	}
	return resp
}

// FromQuota конвертирует квоту
func FromQuota(q primetime.Quota) *QuotaResponse {
	resp := &QuotaResponse{
		Team:      q.Team,
		Used:      q.Used,
		HasQuota:  q.HasQuota,
		WeekStart: q.Week.Start,
		WeekEnd:   q.Week.End,
	}
	if q.Limit < domain.UnlimitedQuota {
		limit := q.Limit
		remaining := q.Limit - q.Used
		if remaining < 0 {
			remaining = 0
		}
		resp.Limit = &limit
		resp.Remaining = &remaining
	}
	return resp
}
