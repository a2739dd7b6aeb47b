package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func testPool(t *testing.T) *domain.ResourcePool {
	t.Helper()
	pool, err := domain.NewResourcePool(domain.PoolOptions{Resources: []domain.Resource{
		{ID: 9, Name: "Desk 009", Zone: domain.ZoneMain, Block: 1},
	}})
	require.NoError(t, err)
	return pool
}

func TestPublishPending(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisher(writer, testPool(t))

	start := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	notifiedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	items := []domain.PendingItem{{
		ReservationID: 17,
		Team:          "Apex White",
		ManagerID:     5,
		Resources:     []domain.ResourceID{9, 42},
		Range:         domain.TimeRange{Start: start, End: start.Add(2 * time.Hour)},
	}}

	require.NoError(t, p.PublishPending(context.Background(), items, notifiedAt))
	require.Len(t, writer.msgs, 1)
	assert.Equal(t, []byte("17"), writer.msgs[0].Key)

	var msg PendingMessage
	require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &msg))
	assert.Equal(t, int64(17), msg.ReservationID)
	assert.Equal(t, []string{"Desk 009", "42"}, msg.Resources)
	assert.True(t, msg.NotifiedAt.Equal(notifiedAt))
}

func TestPublishPending_Empty(t *testing.T) {
	writer := &fakeWriter{err: errors.New("must not be called")}
	p := NewPublisher(writer, testPool(t))

	assert.NoError(t, p.PublishPending(context.Background(), nil, time.Now()))
}

func TestPublishPending_WriterError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker down")}
	p := NewPublisher(writer, testPool(t))

	err := p.PublishPending(context.Background(), []domain.PendingItem{{ReservationID: 1}}, time.Now())
	assert.ErrorIs(t, err, ErrPublish)
}

type warnings struct{ lines int }

func (w *warnings) Warn(string, ...interface{}) { w.lines++ }

func TestLogNotifier(t *testing.T) {
	log := &warnings{}
	n := NewLogNotifier(log)

	start := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	items := []domain.PendingItem{
		{ReservationID: 1, Team: "Apex White", Range: domain.TimeRange{Start: start, End: start.Add(time.Hour)}},
		{ReservationID: 2, Team: "Valorant Blue", Range: domain.TimeRange{Start: start, End: start.Add(time.Hour)}},
	}

	require.NoError(t, n.PublishPending(context.Background(), items, start))
	assert.Equal(t, 2, log.lines)
	assert.NoError(t, n.Close())
}
