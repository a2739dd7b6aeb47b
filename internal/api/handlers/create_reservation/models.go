package create_reservation

import (
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	createReservation "github.com/m04kA/GameRoom-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Team      string `json:"team"`
	Count     int    `json:"count"`
	Date      string `json:"date"`      // "2025-03-12"
	StartTime string `json:"startTime"` // "6:15 PM" или "18:15"
	EndTime   string `json:"endTime"`
	External  bool   `json:"external,omitempty"`
}

// ResourceResponse назначенный ПК
type ResourceResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Zone      string `json:"zone"`
	Streaming bool   `json:"streaming,omitempty"`
}

// QuotaResponse использование прайм-тайма после брони
type QuotaResponse struct {
	Used  int  `json:"used"`
	Limit *int `json:"limit,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64              `json:"id"`
	Kind        string             `json:"kind"`
	Team        string             `json:"team"`
	Resources   []ResourceResponse `json:"resources"`
	Date        string             `json:"date"`
	StartTime   string             `json:"startTime"`
	EndTime     string             `json:"endTime"`
	IsPrimeTime bool               `json:"isPrimeTime"`
	Quota       *QuotaResponse     `json:"quota,omitempty"`
	CreatedAt   string             `json:"createdAt"`
}

// ConflictDetails кто занимает ПК
type ConflictDetails struct {
	ReservationID int64  `json:"reservationId"`
	Team          string `json:"team"`
	ManagerID     int64  `json:"managerId"`
}

// QuotaDetails почему отказано по квоте
type QuotaDetails struct {
	Team  string `json:"team"`
	Used  int    `json:"used"`
	Limit int    `json:"limit"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) *createReservation.Request {
	return &createReservation.Request{
		UserID:    userID,
		Team:      r.Team,
		Count:     r.Count,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		External:  r.External,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	out := &ReservationResponse{
		ID:          resp.ID,
		Kind:        string(resp.Kind),
		Team:        resp.Team,
		Resources:   make([]ResourceResponse, 0, len(resp.Resources)),
		Date:        resp.Start.Format(domain.DateFormat),
		StartTime:   resp.Start.Format(domain.TimeFormat),
		EndTime:     resp.End.Format(domain.TimeFormat),
		IsPrimeTime: resp.IsPrimeTime,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
	for _, r := range resp.Resources {
		out.Resources = append(out.Resources, ResourceResponse{
			ID:        int(r.ID),
			Name:      r.Name,
			Zone:      string(r.Zone),
			Streaming: r.Streaming,
		})
	}
	if resp.IsPrimeTime {
		out.Quota = &QuotaResponse{Used: resp.QuotaUsed}
		if resp.QuotaLimit < domain.UnlimitedQuota {
			limit := resp.QuotaLimit
			out.Quota.Limit = &limit
		}
	}
	return out
}
