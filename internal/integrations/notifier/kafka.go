// Package notifier публикация событий бронирования для внешних подписчиков (уведомления клиенту и мастеру).
// Доставка best-effort: ошибка публикации не отменяет уже закоммиченное изменение.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// Топики событий
const (
	TopicBookingCreated       = "spa.booking.created"
	TopicBookingStatusChanged = "spa.booking.status_changed"
)

const (
	defaultWriteTimeout = 5 * time.Second
	// Одна запись на запрос: пачку не ждем
	batchTimeout = 10 * time.Millisecond
)

// MessageWriter то, что нужно от kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier публикует события в Kafka
type KafkaNotifier struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaWriter создает writer для списка брокеров. Топик задается в каждом сообщении.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaNotifier создает notifier поверх writer
func NewKafkaNotifier(writer MessageWriter, timeout time.Duration) *KafkaNotifier {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &KafkaNotifier{writer: writer, timeout: timeout}
}

// BookingCreated публикует событие о новой записи
func (n *KafkaNotifier) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	return n.publish(ctx, TopicBookingCreated, newBookingEvent(booking, "", booking.Status))
}

// StatusChanged публикует событие о смене статуса
func (n *KafkaNotifier) StatusChanged(ctx context.Context, booking *domain.Booking, from, to domain.BookingStatus) error {
	return n.publish(ctx, TopicBookingStatusChanged, newBookingEvent(booking, from, to))
}

// Close закрывает writer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func (n *KafkaNotifier) publish(ctx context.Context, topic string, event BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: publish - encode: %v", ErrPublish, err)
	}

	// Событие о закоммиченной записи публикуется, даже если клиент уже отключился
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(event.BookingID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(topic)},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: publish %s: %v", ErrPublish, topic, err)
	}
	return nil
}
