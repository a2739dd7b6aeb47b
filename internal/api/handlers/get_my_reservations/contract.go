package get_my_reservations

import (
	"context"

	"github.com/m04kA/GameRoom-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	ListUpcoming(ctx context.Context, userID int64) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
