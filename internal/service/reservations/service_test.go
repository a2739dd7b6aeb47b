package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	ackRepo "github.com/m04kA/GameRoom-ReservationService/internal/infra/storage/acknowledgement"
	reservationRepo "github.com/m04kA/GameRoom-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/primetime"
	"github.com/m04kA/GameRoom-ReservationService/pkg/logger"
)

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

type fakeRepo struct {
	items     map[int64]*domain.Reservation
	deleteErr error
	deleted   []int64
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListByManager(_ context.Context, managerID int64, from time.Time) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range f.items {
		if r.ManagerID == managerID && r.Range.End.After(from) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64, _ time.Time) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAcks struct {
	err   error
	calls int
}

func (f *fakeAcks) Acknowledge(context.Context, int64, int64, time.Time) error {
	f.calls++
	return f.err
}

type fakeQuotas struct{ used int }

func (f fakeQuotas) CheckQuota(_ context.Context, team string, start time.Time) (primetime.Quota, error) {
	week := domain.WeekWindow(start)
	return primetime.Quota{Team: team, Used: f.used, Limit: 2, HasQuota: f.used < 2, Week: week}, nil
}

type operators map[int64]bool

func (o operators) IsOperator(id int64) bool { return o[id] }

type fixedTime struct{}

func (fixedTime) Now() time.Time { return now }

func newService(t *testing.T, repo *fakeRepo, acks *fakeAcks) *Service {
	t.Helper()

	pool, err := domain.NewResourcePool(domain.PoolOptions{Resources: []domain.Resource{
		{ID: 1, Name: "Desk 001", Zone: domain.ZoneMain, Block: 1},
	}})
	require.NoError(t, err)
	teams, err := domain.NewTeamRegistry([]domain.Team{{Name: "Apex White", Quota: 2}})
	require.NoError(t, err)

	s := NewService(repo, acks, fakeQuotas{used: 3}, teams, pool, operators{900: true}, logger.NewNop())
	s.timeProvider = fixedTime{}
	return s
}

func reservationAt(id, manager int64, start time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		Kind:      domain.KindTeam,
		Team:      "Apex White",
		Resources: []domain.ResourceID{1},
		Range:     domain.TimeRange{Start: start, End: start.Add(2 * time.Hour)},
		ManagerID: manager,
	}
}

func TestGetByID_Access(t *testing.T) {
	repo := &fakeRepo{items: map[int64]*domain.Reservation{1: reservationAt(1, 42, now.Add(48*time.Hour))}}
	s := newService(t, repo, &fakeAcks{})

	resp, err := s.GetByID(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, "Desk 001", resp.Resources[0].Name)

	_, err = s.GetByID(context.Background(), 1, 900)
	assert.NoError(t, err, "operators see every reservation")

	_, err = s.GetByID(context.Background(), 1, 43)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetByID(context.Background(), 2, 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel(t *testing.T) {
	repo := &fakeRepo{items: map[int64]*domain.Reservation{
		1: reservationAt(1, 42, now.Add(48*time.Hour)),
		2: reservationAt(2, 42, now.Add(-time.Hour)),
	}}
	s := newService(t, repo, &fakeAcks{})

	assert.ErrorIs(t, s.Cancel(context.Background(), 1, 43), ErrAccessDenied)
	assert.ErrorIs(t, s.Cancel(context.Background(), 2, 42), ErrCannotCancel)
	require.NoError(t, s.Cancel(context.Background(), 1, 42))
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestCancel_StartedDuringDelete(t *testing.T) {
	repo := &fakeRepo{
		items:     map[int64]*domain.Reservation{1: reservationAt(1, 42, now.Add(time.Minute))},
		deleteErr: reservationRepo.ErrCannotCancel,
	}
	s := newService(t, repo, &fakeAcks{})

	assert.ErrorIs(t, s.Cancel(context.Background(), 1, 900), ErrCannotCancel)

	repo.deleteErr = errors.New("connection reset")
	assert.ErrorIs(t, s.Cancel(context.Background(), 1, 900), ErrInternal)
}

func TestAcknowledge(t *testing.T) {
	acks := &fakeAcks{}
	s := newService(t, &fakeRepo{}, acks)

	assert.ErrorIs(t, s.Acknowledge(context.Background(), 1, 42), ErrAccessDenied)
	assert.Equal(t, 0, acks.calls)

	require.NoError(t, s.Acknowledge(context.Background(), 1, 900))

	acks.err = ackRepo.ErrReservationNotFound
	assert.ErrorIs(t, s.Acknowledge(context.Background(), 1, 900), ErrReservationNotFound)
}

func TestGetQuota(t *testing.T) {
	s := newService(t, &fakeRepo{}, &fakeAcks{})

	resp, err := s.GetQuota(context.Background(), "apex white")
	require.NoError(t, err)
	assert.Equal(t, "Apex White", resp.Team)
	assert.False(t, resp.HasQuota)
	require.NotNil(t, resp.Remaining)
	assert.Equal(t, 0, *resp.Remaining)

	_, err = s.GetQuota(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestListUpcoming(t *testing.T) {
	repo := &fakeRepo{items: map[int64]*domain.Reservation{
		1: reservationAt(1, 42, now.Add(48*time.Hour)),
		2: reservationAt(2, 42, now.Add(-5*time.Hour)),
		3: reservationAt(3, 43, now.Add(48*time.Hour)),
	}}
	s := newService(t, repo, &fakeAcks{})

	resp, err := s.ListUpcoming(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(1), resp.Reservations[0].ID)
}
