package worker

import (
	"context"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/internal/usecase/get_availability"
)

// AvailabilityViewer сетка занятости на дату
type AvailabilityViewer interface {
	View(ctx context.Context, date time.Time) (*get_availability.Response, error)
}

// Notifier публикация уведомлений операторам
type Notifier interface {
	PublishPending(ctx context.Context, items []domain.PendingItem, notifiedAt time.Time) error
}

// UsageAggregator недельная статистика прайм-тайма
type UsageAggregator interface {
	CountPrimeTimeByTeam(ctx context.Context, from, to time.Time) (map[string]int, error)
}

// TeamRegistry справочник команд
type TeamRegistry interface {
	All() []domain.Team
}

// MetricsRecorder метрики фоновых задач
type MetricsRecorder interface {
	SetPendingReservations(count int)
	NotificationSent()
	SetPrimeTimeUsed(team string, used int)
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
