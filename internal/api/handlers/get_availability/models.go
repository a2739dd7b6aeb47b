package get_availability

import (
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/GameRoom-ReservationService/internal/usecase/get_availability"
)

// CellResponse состояние ПК в слоте
type CellResponse struct {
	State         string `json:"state"`
	ReservationID int64  `json:"reservationId,omitempty"`
	Team          string `json:"team,omitempty"`
}

// ResourceRowResponse строка сетки: один ПК по всем слотам
type ResourceRowResponse struct {
	ID    int            `json:"id"`
	Name  string         `json:"name"`
	Zone  string         `json:"zone"`
	Cells []CellResponse `json:"cells"`
}

// PendingResponse бронь, которой ещё нет в системе учёта
type PendingResponse struct {
	ReservationID  int64      `json:"reservationId"`
	Team           string     `json:"team"`
	Resources      []string   `json:"resources"`
	StartTime      string     `json:"startTime"`
	EndTime        string     `json:"endTime"`
	ManagerID      int64      `json:"managerId"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedBy int64      `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
}

// AvailabilityResponse сетка занятости дня
type AvailabilityResponse struct {
	Date          string                `json:"date"`
	Closed        bool                  `json:"closed"`
	FeedAvailable bool                  `json:"feedAvailable"`
	Slots         []string              `json:"slots"`
	Resources     []ResourceRowResponse `json:"resources"`
	Pending       []PendingResponse     `json:"pending"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response, pool ResourceLookup) *AvailabilityResponse {
	view := resp.View
	out := &AvailabilityResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		Closed:        resp.Closed,
		FeedAvailable: view.FeedAvailable,
		Slots:         []string{},
		Resources:     make([]ResourceRowResponse, 0, len(view.Resources)),
		Pending:       make([]PendingResponse, 0, len(view.Pending)),
	}

	for _, slot := range view.Grid.Slots() {
		out.Slots = append(out.Slots, slot.Format(domain.TimeFormat))
	}

	for i, id := range view.Resources {
		row := ResourceRowResponse{ID: int(id), Cells: make([]CellResponse, 0, len(view.Cells[i]))}
		if res, ok := pool.Get(id); ok {
			row.Name = res.Name
			row.Zone = string(res.Zone)
		}
		for _, c := range view.Cells[i] {
			row.Cells = append(row.Cells, CellResponse{State: string(c.State), ReservationID: c.ReservationID, Team: c.Team})
		}
		out.Resources = append(out.Resources, row)
	}

	for _, p := range view.Pending {
		item := PendingResponse{
			ReservationID: p.ReservationID,
			Team:          p.Team,
			Resources:     make([]string, 0, len(p.Resources)),
			StartTime:     p.Range.Start.Format(domain.TimeFormat),
			EndTime:       p.Range.End.Format(domain.TimeFormat),
			ManagerID:     p.ManagerID,
		}
		for _, id := range p.Resources {
			if res, ok := pool.Get(id); ok {
				item.Resources = append(item.Resources, res.Name)
			}
		}
		if ack, ok := resp.Acknowledged[p.ReservationID]; ok {
			at := ack.AcknowledgedAt
			item.Acknowledged = true
			item.AcknowledgedBy = ack.OperatorID
			item.AcknowledgedAt = &at
		}
		out.Pending = append(out.Pending, item)
	}

	return out
}
