package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourcePool_Ceilings(t *testing.T) {
	pool := labPool(t)

	assert.Equal(t, 5, pool.CeilingOf(ZoneMain))
	assert.Equal(t, 3, pool.CeilingOf(ZoneBack))
	assert.Equal(t, 8, pool.MaxRequest())
	assert.Equal(t, []ResourceID{12, 11, 13}, pool.BackOrder())
	assert.Equal(t, [][]ResourceID{{1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}}, pool.MainBlocks())
}

func TestResourcePool_ZoneAndSuppression(t *testing.T) {
	pool := labPool(t)

	zone, ok := pool.ZoneOf(3)
	require.True(t, ok)
	assert.Equal(t, ZoneMain, zone)

	_, ok = pool.ZoneOf(99)
	assert.False(t, ok)

	assert.True(t, pool.IsSuppressed(ZoneBack, time.Tuesday))
	assert.False(t, pool.IsSuppressed(ZoneBack, time.Wednesday))
	assert.False(t, pool.IsSuppressed(ZoneMain, time.Tuesday))

	main, back := pool.CountByZone([]ResourceID{1, 2, 11, 99})
	assert.Equal(t, 2, main)
	assert.Equal(t, 1, back)
}

func TestResourcePool_LookupByName(t *testing.T) {
	pool := labPool(t)

	tests := []struct {
		name   string
		input  string
		wantID ResourceID
		wantOK bool
	}{
		{name: "exact", input: "Desk 009", wantID: 9, wantOK: true},
		{name: "case and spaces", input: "  desk   009 ", wantID: 9, wantOK: true},
		{name: "without padding", input: "desk 9", wantID: 9, wantOK: true},
		{name: "streaming", input: "Desk 000 - Streaming", wantID: 13, wantOK: true},
		{name: "streaming by number", input: "Desk 000", wantID: 13, wantOK: true},
		{name: "test machine", input: "SAIT TEST 1", wantOK: false},
		{name: "unknown", input: "Desk 042", wantOK: false},
		{name: "no digits", input: "printer", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := pool.LookupByName(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestNewResourcePool_Invalid(t *testing.T) {
	_, err := NewResourcePool(PoolOptions{})
	assert.ErrorIs(t, err, ErrInvalidPool)

	_, err = NewResourcePool(PoolOptions{Resources: []Resource{
		{ID: 1, Name: "Desk 001", Zone: ZoneMain, Block: 1},
		{ID: 1, Name: "Desk 002", Zone: ZoneMain, Block: 1},
	}})
	assert.ErrorIs(t, err, ErrInvalidPool)

	_, err = NewResourcePool(PoolOptions{Resources: []Resource{
		{ID: 1, Name: "Desk 001", Zone: ZoneMain},
	}})
	assert.ErrorIs(t, err, ErrInvalidPool)

	_, err = NewResourcePool(PoolOptions{
		Resources: []Resource{{ID: 1, Name: "Desk 001", Zone: ZoneMain, Block: 1}},
		BackOrder: []ResourceID{1},
	})
	assert.ErrorIs(t, err, ErrInvalidPool)
}

func TestNewResourcePool_CeilingDefaultsToZoneSize(t *testing.T) {
	pool, err := NewResourcePool(PoolOptions{Resources: []Resource{
		{ID: 1, Name: "Desk 001", Zone: ZoneMain, Block: 1},
		{ID: 2, Name: "Desk 002", Zone: ZoneMain, Block: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, pool.CeilingOf(ZoneMain))
	assert.Equal(t, 0, pool.CeilingOf(ZoneBack))
}
