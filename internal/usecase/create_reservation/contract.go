package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/allocation"
	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/primetime"
)

// ReservationRepository интерфейс журнала броней
type ReservationRepository interface {
	GetOverlapping(ctx context.Context, span domain.TimeRange) ([]domain.Reservation, error)
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// TeamRegistry справочник команд
type TeamRegistry interface {
	Get(name string) (domain.Team, error)
}

// TimePolicy разбор и проверка временного диапазона
type TimePolicy interface {
	Parse(date, start, end string) (domain.TimeRange, error)
	Validate(r domain.TimeRange, now time.Time, kind domain.ReservationKind) error
}

// PrimeTimePolicy классификация прайм-тайма и недельная квота
type PrimeTimePolicy interface {
	Classify(r domain.TimeRange, resources []domain.ResourceID) bool
	Enforce(ctx context.Context, team string, r domain.TimeRange, isPrimeTime bool) (primetime.Quota, error)
}

// ConflictChecker проверка вместимости зала
type ConflictChecker interface {
	HasConflict(r domain.TimeRange, count int, kind domain.ReservationKind, existing []domain.Reservation) allocation.Conflict
}

// Allocator выбор конкретных ПК
type Allocator interface {
	Allocate(r domain.TimeRange, count int, kind domain.ReservationKind, existing []domain.Reservation) []domain.ResourceID
}

// ResourceDirectory пул ПК зала
type ResourceDirectory interface {
	MaxRequest() int
	Get(id domain.ResourceID) (domain.Resource, bool)
}

// AccessChecker определяет операторов зала
type AccessChecker interface {
	IsOperator(userID int64) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder метрики бронирования
type MetricsRecorder interface {
	ReservationCreated(team, kind string, primeTime bool)
	ReservationRejected(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
