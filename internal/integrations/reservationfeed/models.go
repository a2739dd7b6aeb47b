package reservationfeed

// reservationsResponse ответ GET {reservations_url}/{YYYY-MM-DD}
type reservationsResponse struct {
	Reservations []reservationDTO `json:"reservations"`
}

type reservationDTO struct {
	Name      string   `json:"name"`
	Machines  []string `json:"machines"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
}

// statusDTO значение ответа GET {status_url}: {"Desk 009": {...}}
type statusDTO struct {
	State  string    `json:"state"`
	Uptime uptimeDTO `json:"uptime"`
}

type uptimeDTO struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}
