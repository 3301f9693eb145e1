// bus — клиент шины команд на RabbitMQ.
// publisher.go — публикация команд в topic-обменники;
// consumer.go — супервизируемый цикл потребления с переподключением.
//
// Контракт доставки: at-least-once, FIFO внутри одной очереди, никакого
// порядка между ресурсами. Команды неизменяемы после публикации.
package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher — контракт публикации команд.
type Publisher interface {
	// Publish отправляет тело команды в обменник с маршрутным ключом.
	Publish(ctx context.Context, exchange, routingKey string, body []byte) error
	// Close закрывает канал и соединение.
	Close() error
}

type publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel

	mu       sync.Mutex
	declared map[string]struct{}
}

// NewPublisher подключается к RabbitMQ и открывает канал публикации.
// Обменники объявляются лениво при первой публикации.
func NewPublisher(url string) (Publisher, error) {
	const op = "bus/NewPublisher"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: dial: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: channel: %w", op, err)
	}

	return &publisher{
		conn:     conn,
		channel:  ch,
		declared: make(map[string]struct{}),
	}, nil
}

// Publish отправляет персистентное JSON-сообщение с корреляционным
// идентификатором. Ошибка транспорта возвращается вызывающему как есть:
// фронт не публикует — значит, не отвечает 202.
func (p *publisher) Publish(ctx context.Context, exchange, routingKey string, body []byte) error {
	const op = "bus/Publish"

	if err := p.ensureExchange(exchange); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := p.channel.PublishWithContext(ctx,
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			CorrelationId: uuid.NewString(),
			Body:          body,
		})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (p *publisher) ensureExchange(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.declared[name]; ok {
		return nil
	}

	if err := declareExchange(p.channel, name); err != nil {
		return err
	}

	p.declared[name] = struct{}{}
	return nil
}

func (p *publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}

	return p.conn.Close()
}

// declareExchange объявляет durable topic-обменник.
func declareExchange(ch *amqp.Channel, name string) error {
	return ch.ExchangeDeclare(
		name,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
}
