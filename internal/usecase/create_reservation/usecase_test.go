package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GameRoom-ReservationService/internal/allocation"
	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/primetime"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/timerange"
	"github.com/m04kA/GameRoom-ReservationService/pkg/logger"
)

var loc = time.FixedZone("CST", -6*3600)

// memoryLedger журнал броней в памяти
type memoryLedger struct {
	items     []domain.Reservation
	nextID    int64
	createErr error
}

func (m *memoryLedger) GetOverlapping(_ context.Context, span domain.TimeRange) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range m.items {
		if r.Range.Overlaps(span) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryLedger) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	created := *res
	created.ID = m.nextID
	created.CreatedAt = time.Date(2025, 3, 10, 10, 0, 0, 0, loc)
	m.items = append(m.items, created)
	return &created, nil
}

func (m *memoryLedger) CountPrimeTime(_ context.Context, team string, from, to time.Time) (int, error) {
	n := 0
	for _, r := range m.items {
		if r.Team == team && r.IsPrimeTime && !r.Range.Start.Before(from) && r.Range.Start.Before(to) {
			n++
		}
	}
	return n, nil
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type operators map[int64]bool

func (o operators) IsOperator(id int64) bool { return o[id] }

type recordedMetrics struct {
	created  []string
	rejected []string
}

func (m *recordedMetrics) ReservationCreated(team, kind string, primeTime bool) {
	m.created = append(m.created, fmt.Sprintf("%s/%s/%t", team, kind, primeTime))
}

func (m *recordedMetrics) ReservationRejected(reason string) {
	m.rejected = append(m.rejected, reason)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	uc      *UseCase
	ledger  *memoryLedger
	metrics *recordedMetrics
}

const operatorID = 900

func newFixture(t *testing.T) *fixture {
	t.Helper()

	var resources []domain.Resource
	for i := 1; i <= 10; i++ {
		block := 1
		if i > 5 {
			block = 2
		}
		resources = append(resources, domain.Resource{ID: domain.ResourceID(i), Name: fmt.Sprintf("Desk %03d", i), Zone: domain.ZoneMain, Block: block})
	}
	resources = append(resources, domain.Resource{ID: 11, Name: "Desk 011", Zone: domain.ZoneBack})
	pool, err := domain.NewResourcePool(domain.PoolOptions{Resources: resources, MainCeiling: 5})
	require.NoError(t, err)

	teams, err := domain.NewTeamRegistry([]domain.Team{
		{Name: "Apex White", Quota: 1},
		{Name: "Valorant Blue", Quota: 3},
	})
	require.NoError(t, err)

	weekly := make(map[time.Weekday]domain.DayHours)
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekly[d] = domain.DayHours{Open: "12:00", Close: "23:00"}
	}
	hours, err := domain.NewOpenHours(weekly, nil)
	require.NoError(t, err)

	ledger := &memoryLedger{}
	metrics := &recordedMetrics{}

	uc := NewUseCase(Deps{
		ReservationRepo: ledger,
		Teams:           teams,
		Pool:            pool,
		TimePolicy:      timerange.NewPolicy(loc, hours, 2),
		PrimePolicy:     primetime.NewPolicy(domain.DefaultPrimeTimeRule(), pool, teams, ledger, loc),
		Checker:         allocation.NewChecker(pool),
		Allocator:       allocation.NewAllocator(pool),
		Access:          operators{operatorID: true},
		TxManager:       inlineTx{},
		Metrics:         metrics,
		Logger:          logger.NewNop(),
	})
	// понедельник
	uc.timeProvider = fixedTime{now: time.Date(2025, 3, 10, 10, 0, 0, 0, loc)}

	return &fixture{uc: uc, ledger: ledger, metrics: metrics}
}

func wednesdayEvening(team string, count int) *Request {
	return &Request{
		UserID:    42,
		Team:      team,
		Count:     count,
		Date:      "2025-03-12",
		StartTime: "6:15 PM",
		EndTime:   "8:00 PM",
	}
}

func ids(resources []domain.Resource) []domain.ResourceID {
	out := make([]domain.ResourceID, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.ID)
	}
	return out
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), wednesdayEvening("apex white", 3))
	require.NoError(t, err)

	assert.Equal(t, "Apex White", resp.Team)
	assert.Equal(t, domain.KindTeam, resp.Kind)
	assert.ElementsMatch(t, []domain.ResourceID{11, 1, 2}, ids(resp.Resources))
	assert.True(t, resp.IsPrimeTime)
	assert.Equal(t, 1, resp.QuotaUsed)
	assert.Equal(t, 1, resp.QuotaLimit)
	assert.True(t, resp.Start.Equal(time.Date(2025, 3, 12, 18, 15, 0, 0, loc)))

	require.Len(t, f.ledger.items, 1)
	assert.Equal(t, int64(42), f.ledger.items[0].ManagerID)
	assert.Equal(t, []string{"Apex White/team/true"}, f.metrics.created)
}

func TestExecute_QuotaExceeded(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), wednesdayEvening("Apex White", 1))
	require.NoError(t, err)

	friday := wednesdayEvening("Apex White", 1)
	friday.Date = "2025-03-14"
	_, err = f.uc.Execute(context.Background(), friday)

	var quotaErr *domain.QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 1, quotaErr.Used)
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)
	assert.Len(t, f.ledger.items, 1, "rejected request must not persist")
	assert.Equal(t, []string{"quota_exceeded"}, f.metrics.rejected)
}

func TestExecute_OffPeakDoesNotUseQuota(t *testing.T) {
	f := newFixture(t)

	afternoon := wednesdayEvening("Apex White", 2)
	afternoon.StartTime, afternoon.EndTime = "13:00", "15:00"

	for i := 0; i < 2; i++ {
		resp, err := f.uc.Execute(context.Background(), afternoon)
		require.NoError(t, err)
		assert.False(t, resp.IsPrimeTime)
	}
}

func TestExecute_CapacityConflictNamesHolder(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), wednesdayEvening("Valorant Blue", 6))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), wednesdayEvening("Apex White", 1))

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Valorant Blue", conflict.Team)
	assert.Equal(t, int64(42), conflict.ManagerID)
	assert.Equal(t, []string{"capacity_conflict"}, f.metrics.rejected)
}

func TestExecute_PolicyRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{"too short notice", func(r *Request) { r.Date = "2025-03-11" }, domain.ErrTooShortNotice},
		{"outside open hours", func(r *Request) { r.StartTime, r.EndTime = "10:00", "12:30" }, domain.ErrOutsideOpenHours},
		{"malformed time", func(r *Request) { r.StartTime = "quarter past six" }, domain.ErrParse},
		{"too many resources", func(r *Request) { r.Count = 7 }, domain.ErrTooManyResources},
		{"unknown team", func(r *Request) { r.Team = "Nobody" }, ErrTeamNotFound},
		{"zero count", func(r *Request) { r.Count = 0 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := wednesdayEvening("Apex White", 1)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.ledger.items)
		})
	}
}

func TestExecute_External(t *testing.T) {
	f := newFixture(t)

	req := &Request{
		UserID:    42,
		Team:      "LAN party",
		Date:      "2025-03-11",
		StartTime: "12:00",
		EndTime:   "18:00",
		External:  true,
	}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	req.UserID = operatorID
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.KindExternal, resp.Kind)
	assert.Len(t, resp.Resources, 11, "external bookings take the whole lab")
	assert.False(t, resp.IsPrimeTime)
}

func TestExecute_RepositoryError(t *testing.T) {
	f := newFixture(t)
	f.ledger.createErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), wednesdayEvening("Apex White", 1))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.metrics.rejected)
}
