package get_availability

import (
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// Request запрос сетки занятости на дату
type Request struct {
	UserID int64  // для логирования
	Date   string // "2025-03-12"; пустая строка означает сегодня в зоне зала
}

// Response сетка занятости дня
type Response struct {
	Date   time.Time
	Closed bool // зал закрыт, View пустой
	View   domain.MergedView
	// Acknowledged отметки операторов по ID брони из View.Pending
	Acknowledged map[int64]domain.Acknowledgement
}
