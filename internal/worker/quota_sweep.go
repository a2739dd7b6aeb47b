package worker

import (
	"context"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// QuotaSweep публикует недельное использование прайм-тайма по командам
type QuotaSweep struct {
	*loop

	usage        UsageAggregator
	teams        TeamRegistry
	metrics      MetricsRecorder
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewQuotaSweep неделя считается в зоне зала loc
func NewQuotaSweep(interval time.Duration, loc *time.Location, usage UsageAggregator, teams TeamRegistry, metrics MetricsRecorder, logger Logger) *QuotaSweep {
	w := &QuotaSweep{
		usage:        usage,
		teams:        teams,
		metrics:      metrics,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	w.loop = newLoop("QuotaSweep", interval, logger, func(ctx context.Context) { _ = w.RunOnce(ctx) })
	return w
}

// RunOnce считает использование за текущую неделю
func (w *QuotaSweep) RunOnce(ctx context.Context) error {
	week := domain.WeekWindow(w.timeProvider.Now().In(w.loc))

	used, err := w.usage.CountPrimeTimeByTeam(ctx, week.Start, week.End)
	if err != nil {
		w.logger.Error("QuotaSweep: failed to count prime time: %v", err)
		return err
	}

	for _, team := range w.teams.All() {
		n := used[team.Name]
		if w.metrics != nil {
			w.metrics.SetPrimeTimeUsed(team.Name, n)
		}
		if team.IsUnlimited() {
			w.logger.Info("QuotaSweep: week=%s team=%q used=%d (unlimited)", week.Start.Format(domain.DateFormat), team.Name, n)
			continue
		}
		w.logger.Info("QuotaSweep: week=%s team=%q used=%d/%d", week.Start.Format(domain.DateFormat), team.Name, n, team.Quota)
	}

	return nil
}
