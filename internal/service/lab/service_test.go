package lab

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func TestGetInfo(t *testing.T) {
	pool, err := domain.NewResourcePool(domain.PoolOptions{
		Resources: []domain.Resource{
			{ID: 1, Name: "Desk 001", Zone: domain.ZoneMain, Block: 1},
			{ID: 2, Name: "Desk 002", Zone: domain.ZoneMain, Block: 1},
			{ID: 11, Name: "Desk 011", Zone: domain.ZoneBack},
		},
		MainCeiling: 1,
		Suppressed:  map[time.Weekday][]domain.Zone{time.Sunday: {domain.ZoneBack}},
	})
	require.NoError(t, err)

	teams, err := domain.NewTeamRegistry([]domain.Team{{Name: "Apex White", Quota: 1}, {Name: "Staff", Quota: -1}})
	require.NoError(t, err)

	hours, err := domain.NewOpenHours(
		map[time.Weekday]domain.DayHours{time.Monday: {Open: "12:00", Close: "22:00"}},
		map[string]domain.DayHours{"2025-03-12": {Open: "14:00", Close: "20:00"}},
	)
	require.NoError(t, err)

	games := map[string][]string{
		"switch": {"Mario Kart 8 Deluxe", "Super Smash Bros. Ultimate"},
		"n64":    {"GoldenEye 007"},
	}
	s := NewService(pool, teams, hours, domain.DefaultPrimeTimeRule(), 2, games, time.UTC, logger.NewNop())
	s.timeProvider = fixedTime{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}

	resp, err := s.GetInfo(context.Background(), "")
	require.NoError(t, err)

	assert.Len(t, resp.Resources, 3)
	assert.Equal(t, 1, resp.MainCeiling)
	assert.Equal(t, 1, resp.BackCeiling)
	require.Len(t, resp.Teams, 2)
	require.Len(t, resp.Schedule, 7)

	monday := resp.Schedule[0]
	assert.Equal(t, "2025-03-10", monday.Date)
	assert.Equal(t, "12:00", monday.Open)
	assert.False(t, monday.Closed)

	assert.True(t, resp.Schedule[1].Closed)

	wednesday := resp.Schedule[2]
	assert.True(t, wednesday.Adjusted)
	assert.Equal(t, "14:00", wednesday.Open)

	sunday := resp.Schedule[6]
	assert.Equal(t, []string{"back"}, sunday.SuppressedZones)

	assert.Equal(t, games, resp.Games)

	_, err = s.GetInfo(context.Background(), "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetInfo_NoGames(t *testing.T) {
	pool, err := domain.NewResourcePool(domain.PoolOptions{
		Resources: []domain.Resource{{ID: 1, Name: "Desk 001", Zone: domain.ZoneMain, Block: 1}},
	})
	require.NoError(t, err)
	teams, err := domain.NewTeamRegistry([]domain.Team{{Name: "Staff", Quota: -1}})
	require.NoError(t, err)
	hours, err := domain.NewOpenHours(nil, nil)
	require.NoError(t, err)

	resp, err := NewService(pool, teams, hours, domain.DefaultPrimeTimeRule(), 2, nil, time.UTC, logger.NewNop()).
		GetInfo(context.Background(), "2025-03-10")
	require.NoError(t, err)

	assert.NotNil(t, resp.Games)
	assert.Empty(t, resp.Games)
}
