package get_pcs

import (
	getPCStatuses "github.com/m04kA/GameRoom-ReservationService/internal/usecase/get_pc_statuses"
)

// PCResponse живой статус ПК
type PCResponse struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Zone          string `json:"zone"`
	Streaming     bool   `json:"streaming,omitempty"`
	State         string `json:"state"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

// PCListResponse статусы всех ПК и сводка по состояниям
type PCListResponse struct {
	PCs     []PCResponse   `json:"pcs"`
	Summary map[string]int `json:"summary"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPCStatuses.Response) *PCListResponse {
	out := &PCListResponse{
		PCs:     make([]PCResponse, 0, len(resp.Statuses)),
		Summary: make(map[string]int, len(resp.Summary)),
	}
	for _, st := range resp.Statuses {
		out.PCs = append(out.PCs, FromStatus(st))
	}
	for state, n := range resp.Summary {
		out.Summary[string(state)] = n
	}
	return out
}

// FromStatus статус одной машины
func FromStatus(st getPCStatuses.Status) PCResponse {
	return PCResponse{
		ID:            int(st.Resource),
		Name:          st.Name,
		Zone:          string(st.Zone),
		Streaming:     st.Streaming,
		State:         string(st.State),
		UptimeSeconds: int64(st.Uptime.Seconds()),
	}
}
