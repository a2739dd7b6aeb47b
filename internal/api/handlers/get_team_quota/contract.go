package get_team_quota

import (
	"context"

	"github.com/m04kA/GameRoom-ReservationService/internal/service/reservations/models"
)

type QuotaService interface {
	GetQuota(ctx context.Context, team string) (*models.QuotaResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
