package reservations

import (
	"context"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/primetime"
)

// ReservationRepository интерфейс журнала броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByManager(ctx context.Context, managerID int64, from time.Time) ([]domain.Reservation, error)
	Delete(ctx context.Context, id int64, now time.Time) error
}

// AcknowledgementRepository отметки операторов
type AcknowledgementRepository interface {
	Acknowledge(ctx context.Context, reservationID, operatorID int64, at time.Time) error
}

// QuotaChecker недельная квота прайм-тайма
type QuotaChecker interface {
	CheckQuota(ctx context.Context, team string, start time.Time) (primetime.Quota, error)
}

// TeamRegistry справочник команд
type TeamRegistry interface {
	Get(name string) (domain.Team, error)
}

// ResourceDirectory пул ПК
type ResourceDirectory interface {
	Get(id domain.ResourceID) (domain.Resource, bool)
}

// AccessChecker определяет операторов зала
type AccessChecker interface {
	IsOperator(userID int64) bool
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
