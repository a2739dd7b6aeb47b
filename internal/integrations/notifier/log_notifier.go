package notifier

import (
	"context"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// LogNotifier пишет напоминания в лог; используется, когда Kafka выключена
type LogNotifier struct {
	log Logger
}

func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) PublishPending(_ context.Context, items []domain.PendingItem, _ time.Time) error {
	for _, item := range items {
		n.log.Warn("PendingReservation: id=%d team=%q manager=%d %s-%s resources=%v is not in the system of record",
			item.ReservationID, item.Team, item.ManagerID,
			item.Range.Start.Format(domain.TimeFormat), item.Range.End.Format(domain.TimeFormat), item.Resources)
	}
	return nil
}

func (n *LogNotifier) Close() error {
	return nil
}
