package get_pcs

import (
	"context"

	getPCStatuses "github.com/m04kA/GameRoom-ReservationService/internal/usecase/get_pc_statuses"
)

type GetPCStatusesUseCase interface {
	Execute(ctx context.Context) (*getPCStatuses.Response, error)
	ExecuteOne(ctx context.Context, pc string) (*getPCStatuses.Status, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
