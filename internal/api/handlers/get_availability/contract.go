package get_availability

import (
	"context"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/GameRoom-ReservationService/internal/usecase/get_availability"
)

type GetAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error)
}

// ResourceLookup имена ПК для ответа
type ResourceLookup interface {
	Get(id domain.ResourceID) (domain.Resource, bool)
}

// AccessChecker список ожидающих броней видят только операторы
type AccessChecker interface {
	IsOperator(userID int64) bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
