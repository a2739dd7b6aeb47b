package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// ErrPublish возвращается, когда сообщение не удалось отправить
var ErrPublish = errors.New("notifier: failed to publish")

// MessageWriter часть kafka.Writer, используемая издателем
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PendingMessage уведомление операторам о брони, которую нужно перенести в систему учёта
type PendingMessage struct {
	ReservationID int64     `json:"reservationId"`
	Team          string    `json:"team"`
	ManagerID     int64     `json:"managerId"`
	Resources     []string  `json:"resources"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	CreatedAt     time.Time `json:"createdAt"`
	NotifiedAt    time.Time `json:"notifiedAt"`
}

// Publisher публикует уведомления в Kafka, ключ сообщения ID брони
type Publisher struct {
	writer MessageWriter
	pool   *domain.ResourcePool
}

// NewKafkaWriter создает writer с хешированием по ключу (порядок сообщений одной брони)
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
	}
}

func NewPublisher(writer MessageWriter, pool *domain.ResourcePool) *Publisher {
	return &Publisher{writer: writer, pool: pool}
}

// PublishPending отправляет уведомления по всем позициям одним батчем
func (p *Publisher) PublishPending(ctx context.Context, items []domain.PendingItem, notifiedAt time.Time) error {
	if len(items) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(items))
	for _, item := range items {
		payload, err := json.Marshal(p.message(item, notifiedAt))
		if err != nil {
			return fmt.Errorf("%w: marshal reservation %d: %v", ErrPublish, item.ReservationID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.FormatInt(item.ReservationID, 10)),
			Value: payload,
			Time:  notifiedAt,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) message(item domain.PendingItem, notifiedAt time.Time) PendingMessage {
	names := make([]string, 0, len(item.Resources))
	for _, id := range item.Resources {
		if r, ok := p.pool.Get(id); ok {
			names = append(names, r.Name)
			continue
		}
		names = append(names, strconv.Itoa(int(id)))
	}

	return PendingMessage{
		ReservationID: item.ReservationID,
		Team:          item.Team,
		ManagerID:     item.ManagerID,
		Resources:     names,
		Start:         item.Range.Start,
		End:           item.Range.End,
		CreatedAt:     item.CreatedAt,
		NotifiedAt:    notifiedAt,
	}
}
