package bus

// Тесты ack-политики потребителя: судьба сообщения определяется только
// классом ошибки обработчика. Транспорт подменяется фейковым
// Acknowledger-ом, живой брокер не нужен.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

// fakeAcknowledger записывает решение по доставке.
type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(_ uint64, _ bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func delivery(ack *fakeAcknowledger) amqp.Delivery {
	return amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  1,
		RoutingKey:   "users.create",
		Body:         []byte(`{"username":"alunduil"}`),
	}
}

// Успешное применение — ack.
func TestConsumer_Apply_Success_Acks(t *testing.T) {
	var got string
	c := NewConsumer(ConsumerConfig{Queue: "q"}, func(_ context.Context, key string, _ []byte) error {
		got = key
		return nil
	})

	ack := &fakeAcknowledger{}
	c.apply(context.Background(), discardLogger(), delivery(ack))

	require.Equal(t, "users.create", got)
	require.True(t, ack.acked)
	require.False(t, ack.nacked)
}

// Неразбираемое сообщение — nack без requeue: повторная доставка
// не поможет, очередь не зацикливается.
func TestConsumer_Apply_Unprocessable_DropsWithoutRequeue(t *testing.T) {
	c := NewConsumer(ConsumerConfig{Queue: "q"}, func(_ context.Context, _ string, _ []byte) error {
		return fmt.Errorf("%w: bad body", ErrUnprocessable)
	})

	ack := &fakeAcknowledger{}
	c.apply(context.Background(), discardLogger(), delivery(ack))

	require.False(t, ack.acked)
	require.True(t, ack.nacked)
	require.False(t, ack.requeue)
}

// Транзиентная ошибка (сторадж недоступен) — nack с requeue: at-least-once
// доставку обеспечивает шина, собственных retry-циклов нет.
func TestConsumer_Apply_TransientError_Requeues(t *testing.T) {
	c := NewConsumer(ConsumerConfig{Queue: "q"}, func(_ context.Context, _ string, _ []byte) error {
		return errors.New("server selection timeout")
	})

	ack := &fakeAcknowledger{}
	c.apply(context.Background(), discardLogger(), delivery(ack))

	require.False(t, ack.acked)
	require.True(t, ack.nacked)
	require.True(t, ack.requeue)
}

// Паника обработчика изолируется: сообщение дропается без requeue,
// процесс продолжает жить.
func TestConsumer_Apply_Panic_IsolatedAndDropped(t *testing.T) {
	c := NewConsumer(ConsumerConfig{Queue: "q"}, func(_ context.Context, _ string, _ []byte) error {
		panic("boom")
	})

	ack := &fakeAcknowledger{}
	require.NotPanics(t, func() {
		c.apply(context.Background(), discardLogger(), delivery(ack))
	})

	require.False(t, ack.acked)
	require.True(t, ack.nacked)
	require.False(t, ack.requeue)
}

// Дефолты backoff выставляются при сборке.
func TestNewConsumer_BackoffDefaults(t *testing.T) {
	c := NewConsumer(ConsumerConfig{Queue: "q"}, nil)
	require.Greater(t, c.cfg.MaxBackoff, c.cfg.MinBackoff)
	require.Positive(t, c.cfg.MinBackoff)
}
