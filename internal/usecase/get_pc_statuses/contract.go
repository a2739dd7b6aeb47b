package get_pc_statuses

import (
	"context"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// StatusFeed живые статусы машин
type StatusFeed interface {
	GetStatuses(ctx context.Context) ([]domain.PCStatus, error)
}

// ResourceLookup сопоставление имени машины с ПК пула
type ResourceLookup interface {
	LookupByName(name string) (domain.ResourceID, bool)
	Get(id domain.ResourceID) (domain.Resource, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
