package create_reservation

import (
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// Request запрос на бронирование
type Request struct {
	UserID    int64  // ID менеджера (из платформы)
	Team      string // Название команды; для внешних броней произвольная метка
	Count     int    // Количество ПК
	Date      string // "2025-03-12"
	StartTime string // "6:15 PM", "18:15"
	EndTime   string
	External  bool // Бронь всего зала оператором
}

// Response созданная бронь
type Response struct {
	ID          int64
	Kind        domain.ReservationKind
	Team        string
	Resources   []domain.Resource
	Start       time.Time
	End         time.Time
	IsPrimeTime bool
	QuotaUsed   int // с учётом новой брони; 0, если бронь не в прайм-тайме
	QuotaLimit  int
	CreatedAt   time.Time
}
