package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// PendingSyncConfig параметры сверки ожидающих броней
type PendingSyncConfig struct {
	Interval      time.Duration
	LookaheadDays int
	StaleAfter    time.Duration
}

// PendingSync сверяет журнал с системой учёта на ближайшие дни и напоминает операторам
// о бронях, которые дольше StaleAfter не перенесены и не подтверждены.
// Напоминание повторяется каждые StaleAfter, пока бронь не появится в системе учёта или не будет подтверждена.
type PendingSync struct {
	*loop

	viewer       AvailabilityViewer
	notifier     Notifier
	metrics      MetricsRecorder
	cfg          PendingSyncConfig
	timeProvider TimeProvider
	logger       Logger

	mu           sync.Mutex
	lastNotified map[int64]time.Time
}

func NewPendingSync(cfg PendingSyncConfig, viewer AvailabilityViewer, notifier Notifier, metrics MetricsRecorder, logger Logger) *PendingSync {
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = 1
	}
	w := &PendingSync{
		viewer:       viewer,
		notifier:     notifier,
		metrics:      metrics,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		lastNotified: make(map[int64]time.Time),
	}
	w.loop = newLoop("PendingSync", cfg.Interval, logger, func(ctx context.Context) { w.RunOnce(ctx) })
	return w
}

// RunOnce один проход сверки; возвращает количество отправленных напоминаний
func (w *PendingSync) RunOnce(ctx context.Context) int {
	now := w.timeProvider.Now()

	var (
		pending  []domain.PendingItem
		acked    = map[int64]bool{}
		degraded bool
	)

	// 1. Сетки занятости на ближайшие дни
	for i := 0; i < w.cfg.LookaheadDays; i++ {
		date := now.AddDate(0, 0, i)
		resp, err := w.viewer.View(ctx, date)
		if err != nil {
			w.logger.Error("PendingSync: failed to build view for %s: %v", date.Format(domain.DateFormat), err)
			return 0
		}
		if resp.Closed {
			continue
		}
		if !resp.View.FeedAvailable {
			degraded = true
			continue
		}
		pending = append(pending, resp.View.Pending...)
		for id := range resp.Acknowledged {
			acked[id] = true
		}
	}

	if degraded {
		w.logger.Warn("PendingSync: feed unavailable, pending list is incomplete")
	} else if w.metrics != nil {
		w.metrics.SetPendingReservations(len(pending))
	}

	// 2. Отбор устаревших и не подтверждённых
	w.mu.Lock()
	defer w.mu.Unlock()

	current := make(map[int64]bool, len(pending))
	var stale []domain.PendingItem
	for _, item := range pending {
		current[item.ReservationID] = true
		if acked[item.ReservationID] || !item.Range.End.After(now) {
			continue
		}
		if now.Sub(item.CreatedAt) < w.cfg.StaleAfter {
			continue
		}
		if last, ok := w.lastNotified[item.ReservationID]; ok && now.Sub(last) < w.cfg.StaleAfter {
			continue
		}
		stale = append(stale, item)
	}

	// Перенесённые и удалённые брони больше не отслеживаются
	if !degraded {
		for id := range w.lastNotified {
			if !current[id] {
				delete(w.lastNotified, id)
			}
		}
	}

	if len(stale) == 0 {
		return 0
	}

	// 3. Публикация
	if err := w.notifier.PublishPending(ctx, stale, now); err != nil {
		w.logger.Error("PendingSync: failed to notify operators about %d reservations: %v", len(stale), err)
		return 0
	}

	for _, item := range stale {
		w.lastNotified[item.ReservationID] = now
		if w.metrics != nil {
			w.metrics.NotificationSent()
		}
	}

	w.logger.Info("PendingSync: notified operators about %d stale reservations", len(stale))
	return len(stale)
}
