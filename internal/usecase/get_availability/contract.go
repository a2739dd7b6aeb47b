package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// ReservationRepository интерфейс журнала броней
type ReservationRepository interface {
	ListByRange(ctx context.Context, from, to time.Time) ([]domain.Reservation, error)
}

// AcknowledgementRepository отметки операторов о перенесённых бронях
type AcknowledgementRepository interface {
	ListByReservations(ctx context.Context, reservationIDs []int64) (map[int64]domain.Acknowledgement, error)
}

// Feed внешняя система учёта; при недоступности возвращает снимок с Available=false
type Feed interface {
	Snapshot(ctx context.Context, date time.Time) domain.FeedSnapshot
}

// Reconciler сведение журнала и фида
type Reconciler interface {
	Merge(feed domain.FeedSnapshot, ledger []domain.Reservation, grid domain.Grid) domain.MergedView
}

// HoursPolicy часы работы зала
type HoursPolicy interface {
	Location() *time.Location
	HoursOn(date time.Time) domain.DayHours
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
