package booking_session

import (
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/session"
	createReservation "github.com/m04kA/GameRoom-ReservationService/internal/usecase/create_reservation"
)

// DraftRequest поля черновика; отсутствующие не меняются
type DraftRequest struct {
	Team      *string `json:"team,omitempty"`
	Count     *int    `json:"count,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	External  *bool   `json:"external,omitempty"`
}

// DraftResponse текущее состояние черновика
type DraftResponse struct {
	ID        string    `json:"id"`
	Team      string    `json:"team,omitempty"`
	Count     int       `json:"count,omitempty"`
	Date      string    `json:"date,omitempty"`
	StartTime string    `json:"startTime,omitempty"`
	EndTime   string    `json:"endTime,omitempty"`
	External  bool      `json:"external,omitempty"`
	Missing   []string  `json:"missing"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToPatch конвертирует HTTP запрос в изменения черновика
func (r *DraftRequest) ToPatch() session.Patch {
	return session.Patch{
		Team:      r.Team,
		Count:     r.Count,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		External:  r.External,
	}
}

// FromDraft конвертирует черновик в HTTP response
func FromDraft(d session.Draft) *DraftResponse {
	return &DraftResponse{
		ID:        d.ID,
		Team:      d.Team,
		Count:     d.Count,
		Date:      d.Date,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		External:  d.External,
		Missing:   missingFields(d),
		ExpiresAt: d.ExpiresAt,
	}
}

// ToUseCaseRequest черновик как запрос на бронирование
func ToUseCaseRequest(d session.Draft) *createReservation.Request {
	return &createReservation.Request{
		UserID:    d.UserID,
		Team:      d.Team,
		Count:     d.Count,
		Date:      d.Date,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		External:  d.External,
	}
}

// missingFields поля, без которых черновик нельзя отправить
func missingFields(d session.Draft) []string {
	missing := []string{}
	if d.Team == "" {
		missing = append(missing, "team")
	}
	if d.Count <= 0 {
		missing = append(missing, "count")
	}
	if d.Date == "" {
		missing = append(missing, "date")
	}
	if d.StartTime == "" {
		missing = append(missing, "startTime")
	}
	if d.EndTime == "" {
		missing = append(missing, "endTime")
	}
	return missing
}
