package primetime

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// Quota использование прайм-тайма командой за неделю
type Quota struct {
	Team     string
	Used     int
	Limit    int
	HasQuota bool
	Week     domain.TimeRange
}

// Policy классификация прайм-тайма и проверка недельной квоты
type Policy struct {
	rule    domain.PrimeTimeRule
	pool    *domain.ResourcePool
	quotas  QuotaSource
	counter UsageCounter
	loc     *time.Location
}

func NewPolicy(rule domain.PrimeTimeRule, pool *domain.ResourcePool, quotas QuotaSource, counter UsageCounter, loc *time.Location) *Policy {
	return &Policy{
		rule:    rule,
		pool:    pool,
		quotas:  quotas,
		counter: counter,
		loc:     loc,
	}
}

// Classify бронь в прайм-тайме, если в ней есть ПК основного зала и она заканчивается позже начала прайм-тайма
func (p *Policy) Classify(r domain.TimeRange, resources []domain.ResourceID) bool {
	if !p.pool.HasZone(resources, domain.ZoneMain) {
		return false
	}
	start := r.Start.In(p.loc)
	primeStart := p.rule.StartOn(start)
	return r.End.After(primeStart)
}

// CheckQuota считает прайм-тайм брони команды в неделе, содержащей start
func (p *Policy) CheckQuota(ctx context.Context, team string, start time.Time) (Quota, error) {
	limit, err := p.quotas.QuotaOf(team)
	if err != nil {
		return Quota{}, err
	}

	week := domain.WeekWindow(start.In(p.loc))
	q := Quota{Team: team, Limit: limit, Week: week}

	used, err := p.counter.CountPrimeTime(ctx, team, week.Start, week.End)
	if err != nil {
		return Quota{}, fmt.Errorf("%w: count prime time for %q: %v", ErrInternal, team, err)
	}
	q.Used = used
	q.HasQuota = limit >= domain.UnlimitedQuota || used < limit

	return q, nil
}

// Enforce проверяет квоту только для прайм-тайм брони
func (p *Policy) Enforce(ctx context.Context, team string, r domain.TimeRange, isPrimeTime bool) (Quota, error) {
	if !isPrimeTime {
		return Quota{Team: team, HasQuota: true}, nil
	}

	q, err := p.CheckQuota(ctx, team, r.Start)
	if err != nil {
		return Quota{}, err
	}
	if !q.HasQuota {
		return q, &domain.QuotaError{Team: team, Used: q.Used, Limit: q.Limit}
	}
	return q, nil
}
