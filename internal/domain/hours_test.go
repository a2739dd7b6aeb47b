package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenHours_For(t *testing.T) {
	hours, err := NewOpenHours(
		map[time.Weekday]DayHours{
			time.Wednesday: {Open: "10:00", Close: "22:00"},
		},
		map[string]DayHours{
			"2025-03-19": {Closed: true},
		},
	)
	require.NoError(t, err)

	wed := time.Date(2025, 3, 12, 0, 0, 0, 0, testLoc)
	dh := hours.For(wed)
	assert.False(t, dh.Closed)

	window, err := dh.Window(wed, testLoc)
	require.NoError(t, err)
	assert.Equal(t, at(10, 0), window.Start)
	assert.Equal(t, at(22, 0), window.End)

	holiday := time.Date(2025, 3, 19, 0, 0, 0, 0, testLoc)
	assert.True(t, hours.IsOverridden(holiday))
	_, err = hours.For(holiday).Window(holiday, testLoc)
	assert.ErrorIs(t, err, ErrClosed)

	thursday := time.Date(2025, 3, 13, 0, 0, 0, 0, testLoc)
	assert.True(t, hours.For(thursday).Closed, "missing weekday is closed")
}

func TestNewOpenHours_Invalid(t *testing.T) {
	_, err := NewOpenHours(map[time.Weekday]DayHours{
		time.Monday: {Open: "22:00", Close: "10:00"},
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidHours)

	_, err = NewOpenHours(nil, map[string]DayHours{"12/03/2025": {Closed: true}})
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestTeamRegistry(t *testing.T) {
	reg, err := NewTeamRegistry([]Team{
		{Name: "Apex White", Quota: 1},
		{Name: "Staff", Quota: -1},
	})
	require.NoError(t, err)

	team, err := reg.Get("apex white")
	require.NoError(t, err)
	assert.Equal(t, "Apex White", team.Name)
	assert.False(t, team.IsUnlimited())

	quota, err := reg.QuotaOf("Staff")
	require.NoError(t, err)
	assert.Equal(t, UnlimitedQuota, quota)

	_, err = reg.Get("Nobody")
	assert.ErrorIs(t, err, ErrUnknownTeam)

	_, err = NewTeamRegistry([]Team{{Name: "A"}, {Name: "a"}})
	assert.ErrorIs(t, err, ErrInvalidTeams)
}
