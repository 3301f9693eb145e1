package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	logctx "github.com/pribylovaa/go-readlater/internal/pkg/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrUnprocessable — сообщение невозможно применить в принципе
// (битый JSON, неизвестный маршрутный ключ, нарушенный контракт тела).
// Такое сообщение отбрасывается без повторной доставки (dead-letter);
// любая другая ошибка считается транзиентной и ведёт к requeue.
var ErrUnprocessable = errors.New("unprocessable message")

// Handler применяет одно сообщение шины. Возврат nil — ack;
// ErrUnprocessable — drop; прочее — nack с повторной доставкой.
type Handler func(ctx context.Context, routingKey string, body []byte) error

// ConsumerConfig — параметры одной очереди потребления.
type ConsumerConfig struct {
	URL      string
	Exchange string
	Queue    string
	// BindKey — шаблон привязки очереди к topic-обменнику, например "users.*".
	BindKey string
	// MinBackoff/MaxBackoff ограничивают паузу между переподключениями.
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

// Consumer — супервизируемый цикл потребления: одна AMQP-сессия на
// заход, переподключение с ограниченным backoff при закрытии
// транспорта. Падение обработки отдельного сообщения никогда не
// роняет цикл — изоляция достигается ack-политикой Handler.
type Consumer struct {
	cfg     ConsumerConfig
	handler Handler
}

// NewConsumer создаёт консьюмер очереди cfg.Queue с обработчиком handler.
func NewConsumer(cfg ConsumerConfig, handler Handler) *Consumer {
	if cfg.MinBackoff <= 0 {
		cfg.MinBackoff = time.Second
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 30 * time.Second
	}

	return &Consumer{cfg: cfg, handler: handler}
}

// Run потребляет сообщения до отмены контекста. Возвращает ctx.Err()
// при штатной остановке.
func (c *Consumer) Run(ctx context.Context) error {
	const op = "bus/Consumer.Run"

	lg := logctx.From(ctx).With("queue", c.cfg.Queue)
	backoff := c.cfg.MinBackoff

	for {
		err := c.consumeSession(ctx, lg)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// Транспортная сессия закрылась: переподключаемся с паузой.
		lg.Error("consume session closed",
			slog.String("op", op),
			slog.String("err", errString(err)),
			slog.Duration("backoff", backoff),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > c.cfg.MaxBackoff {
			backoff = c.cfg.MaxBackoff
		}
	}
}

// consumeSession — одна AMQP-сессия: соединение, канал, топология,
// цикл доставки. Возвращается только при ошибке транспорта или отмене
// контекста.
func (c *Consumer) consumeSession(ctx context.Context, lg *slog.Logger) error {
	const op = "bus/Consumer.consumeSession"

	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("%s: dial: %w", op, err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("%s: channel: %w", op, err)
	}
	defer ch.Close()

	if err := declareExchange(ch, c.cfg.Exchange); err != nil {
		return fmt.Errorf("%s: declare exchange: %w", op, err)
	}

	queue, err := ch.QueueDeclare(
		c.cfg.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("%s: declare queue: %w", op, err)
	}

	if err := ch.QueueBind(queue.Name, c.cfg.BindKey, c.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("%s: bind queue: %w", op, err)
	}

	// Честная единица за раз: непримененное сообщение не подтверждаем,
	// повторную доставку делает шина, собственных retry-циклов нет.
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("%s: qos: %w", op, err)
	}

	deliveries, err := ch.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack: подтверждаем только применённое
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("%s: consume: %w", op, err)
	}

	lg.Info("consuming", slog.String("exchange", c.cfg.Exchange), slog.String("bind", c.cfg.BindKey))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("%s: delivery channel closed", op)
			}

			c.apply(ctx, lg, msg)
		}
	}
}

// apply применяет одно сообщение и решает его судьбу по ack-политике.
// Паника обработчика приравнивается к неразбираемому сообщению: лог и
// drop, но не падение процесса.
func (c *Consumer) apply(ctx context.Context, lg *slog.Logger, msg amqp.Delivery) {
	var err error

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				lg.Error("handler panic",
					slog.String("routing_key", msg.RoutingKey),
					slog.Any("reason", rec),
				)
				err = fmt.Errorf("%w: handler panic", ErrUnprocessable)
			}
		}()

		err = c.handler(ctx, msg.RoutingKey, msg.Body)
	}()

	switch {
	case err == nil:
		_ = msg.Ack(false)
	case errors.Is(err, ErrUnprocessable):
		lg.Warn("dropping unprocessable message",
			slog.String("routing_key", msg.RoutingKey),
			slog.String("err", err.Error()),
		)
		_ = msg.Nack(false, false)
	default:
		lg.Error("message application failed, requeue",
			slog.String("routing_key", msg.RoutingKey),
			slog.String("err", err.Error()),
		)
		_ = msg.Nack(false, true)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
