package primetime

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

var loc = time.FixedZone("CST", -6*3600)

// fakeLedger хранит прайм-тайм брони в памяти
type fakeLedger struct {
	starts map[string][]time.Time
	err    error
}

func (f *fakeLedger) CountPrimeTime(_ context.Context, team string, from, to time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, s := range f.starts[team] {
		if !s.Before(from) && s.Before(to) {
			n++
		}
	}
	return n, nil
}

func testPool(t *testing.T) *domain.ResourcePool {
	t.Helper()
	var resources []domain.Resource
	for i := 1; i <= 10; i++ {
		resources = append(resources, domain.Resource{ID: domain.ResourceID(i), Name: fmt.Sprintf("Desk %03d", i), Zone: domain.ZoneMain, Block: 1})
	}
	resources = append(resources, domain.Resource{ID: 11, Name: "Desk 011", Zone: domain.ZoneBack})
	pool, err := domain.NewResourcePool(domain.PoolOptions{Resources: resources, MainCeiling: 5})
	require.NoError(t, err)
	return pool
}

func testTeams(t *testing.T) *domain.TeamRegistry {
	t.Helper()
	teams, err := domain.NewTeamRegistry([]domain.Team{
		{Name: "Apex White", Quota: 1},
		{Name: "Staff", Quota: -1},
	})
	require.NoError(t, err)
	return teams
}

func rng(y int, m time.Month, d, h1, min1, h2, min2 int) domain.TimeRange {
	return domain.TimeRange{
		Start: time.Date(y, m, d, h1, min1, 0, 0, loc),
		End:   time.Date(y, m, d, h2, min2, 0, 0, loc),
	}
}

func TestClassify(t *testing.T) {
	ledger := &fakeLedger{}
	p := NewPolicy(domain.DefaultPrimeTimeRule(), testPool(t), testTeams(t), ledger, loc)

	main := []domain.ResourceID{1}
	back := []domain.ResourceID{11}

	// 2025-03-14 пятница, 2025-03-11 вторник
	assert.True(t, p.Classify(rng(2025, 3, 14, 18, 15, 20, 0), main), "friday 6:15pm is prime")
	assert.False(t, p.Classify(rng(2025, 3, 11, 18, 15, 19, 0), main), "tuesday ending at 7pm is not prime")
	assert.True(t, p.Classify(rng(2025, 3, 11, 18, 15, 19, 15), main), "tuesday crossing 7pm is prime")
	assert.False(t, p.Classify(rng(2025, 3, 14, 18, 15, 20, 0), back), "back room never counts")
	assert.False(t, p.Classify(rng(2025, 3, 14, 16, 0, 18, 0), main), "ends exactly at prime start")
}

func TestEnforce_WeekBoundary(t *testing.T) {
	ledger := &fakeLedger{starts: map[string][]time.Time{}}
	p := NewPolicy(domain.DefaultPrimeTimeRule(), testPool(t), testTeams(t), ledger, loc)
	ctx := context.Background()

	// вторник 2025-03-11, неделя 10.03 - 17.03
	first := rng(2025, 3, 11, 19, 0, 21, 0)
	_, err := p.Enforce(ctx, "Apex White", first, true)
	require.NoError(t, err)
	ledger.starts["Apex White"] = append(ledger.starts["Apex White"], first.Start)

	sameWeek := rng(2025, 3, 13, 19, 0, 21, 0)
	q, err := p.Enforce(ctx, "Apex White", sameWeek, true)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)
	var quotaErr *domain.QuotaError
	require.True(t, errors.As(err, &quotaErr))
	assert.Equal(t, 1, quotaErr.Used)
	assert.Equal(t, 1, quotaErr.Limit)
	assert.False(t, q.HasQuota)

	nextWeek := rng(2025, 3, 18, 19, 0, 21, 0)
	q, err = p.Enforce(ctx, "Apex White", nextWeek, true)
	require.NoError(t, err)
	assert.Equal(t, 0, q.Used)
	assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, loc), q.Week.Start)

	_, err = p.Enforce(ctx, "Apex White", sameWeek, false)
	assert.NoError(t, err, "off-peak bookings are not checked")
}

func TestCheckQuota_Unlimited(t *testing.T) {
	start := time.Date(2025, 3, 11, 19, 0, 0, 0, loc)
	ledger := &fakeLedger{starts: map[string][]time.Time{"Staff": {start, start, start}}}
	p := NewPolicy(domain.DefaultPrimeTimeRule(), testPool(t), testTeams(t), ledger, loc)

	q, err := p.CheckQuota(context.Background(), "Staff", start)
	require.NoError(t, err)
	assert.True(t, q.HasQuota)
	assert.Equal(t, 3, q.Used)
}

func TestCheckQuota_Errors(t *testing.T) {
	ledger := &fakeLedger{err: errors.New("db down")}
	p := NewPolicy(domain.DefaultPrimeTimeRule(), testPool(t), testTeams(t), ledger, loc)

	_, err := p.CheckQuota(context.Background(), "Apex White", time.Now())
	assert.ErrorIs(t, err, ErrInternal)

	_, err = p.CheckQuota(context.Background(), "Nobody", time.Now())
	assert.ErrorIs(t, err, domain.ErrUnknownTeam)
}
