package worker

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/notification-service/internal/events"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/notification-service/internal/notifier"
)

type Config struct {
	RabbitURL   string
	Exchange    string
	Queue       string
	Bindings    []string
	Prefetch    int
	DLXName     string
	DLXQueue    string
	ServiceName string
}

// Consumer drains booking lifecycle events into the notifier. Messages that
// fail to decode go to the dead letter queue instead of looping forever.
type Consumer struct {
	cfg      Config
	notifier notifier.Notifier
	log      *zap.Logger

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg Config, n notifier.Notifier, log *zap.Logger) *Consumer {
	return &Consumer{cfg: cfg, notifier: n, log: log}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("rabbit dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return c.teardown(conn, ch, fmt.Errorf("declare exchange %s: %w", c.cfg.Exchange, err))
	}

	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange": c.cfg.DLXName,
	})
	if err != nil {
		return c.teardown(conn, ch, fmt.Errorf("declare queue: %w", err))
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			return c.teardown(conn, ch, fmt.Errorf("bind %s: %w", key, err))
		}
	}

	if err := ch.ExchangeDeclare(c.cfg.DLXName, "topic", true, false, false, false, nil); err != nil {
		return c.teardown(conn, ch, fmt.Errorf("declare dlx: %w", err))
	}
	if _, err := ch.QueueDeclare(c.cfg.DLXQueue, true, false, false, false, nil); err != nil {
		return c.teardown(conn, ch, fmt.Errorf("declare dlq: %w", err))
	}
	if err := ch.QueueBind(c.cfg.DLXQueue, "#", c.cfg.DLXName, false, nil); err != nil {
		return c.teardown(conn, ch, fmt.Errorf("bind dlq: %w", err))
	}

	if c.cfg.Prefetch <= 0 {
		c.cfg.Prefetch = 8
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return c.teardown(conn, ch, fmt.Errorf("set qos: %w", err))
	}

	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) teardown(conn *amqp.Connection, ch *amqp.Channel, err error) error {
	_ = ch.Close()
	_ = conn.Close()
	return err
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.ServiceName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handleDelivery(d); err != nil {
				c.log.Warn("handle delivery", zap.String("key", d.RoutingKey), zap.Error(err))
				// requeue=false routes the message to the DLX
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleDelivery(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKBookingCreated:
		ev, err := events.Unmarshal[events.BookingChanged](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Booking confirmed",
			fmt.Sprintf("Booking %s for room %s, %s.", ev.BookingID, ev.RoomID, notifier.HumanTimeRange(ev.Start, ev.End)))

	case events.RKBookingUpdated:
		ev, err := events.Unmarshal[events.BookingChanged](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Booking rescheduled",
			fmt.Sprintf("Booking %s moved to room %s, %s.", ev.BookingID, ev.RoomID, notifier.HumanTimeRange(ev.Start, ev.End)))

	case events.RKBookingCancelled:
		ev, err := events.Unmarshal[events.BookingCancelled](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Booking cancelled",
			fmt.Sprintf("Booking %s for room %s has been cancelled.", ev.BookingID, ev.RoomID))

	default:
		c.log.Info("skip unknown routing key", zap.String("key", d.RoutingKey))
	}
	return nil
}
