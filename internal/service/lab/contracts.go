package lab

import (
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// ResourcePool пул ПК зала
type ResourcePool interface {
	Resources() []domain.Resource
	CeilingOf(z domain.Zone) int
	IsSuppressed(z domain.Zone, day time.Weekday) bool
}

// TeamRegistry справочник команд
type TeamRegistry interface {
	All() []domain.Team
}

// HoursTable часы работы с переопределениями по датам
type HoursTable interface {
	For(date time.Time) domain.DayHours
	IsOverridden(date time.Time) bool
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
