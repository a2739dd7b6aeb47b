package get_lab_info

import (
	"context"

	"github.com/m04kA/GameRoom-ReservationService/internal/service/lab/models"
)

type LabService interface {
	GetInfo(ctx context.Context, from string) (*models.LabResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
