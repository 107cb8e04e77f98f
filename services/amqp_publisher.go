package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/yeremiapane/table-reservation/utils"
)

// AMQPPublisher publishes every event to a durable topic exchange, using the event type as
// routing key (e.g. "reservation.created").
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

// DialAMQP connects with a few retries, then declares the exchange.
func DialAMQP(url, exchange string, maxRetries int) (*AMQPPublisher, error) {
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var conn *amqp.Connection
	var err error
	for i := 1; i <= maxRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		utils.ErrorLogger.Warnf("AMQP connection attempt %d/%d failed: %v", i, maxRetries, err)
		if i < maxRetries {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	p := &AMQPPublisher{conn: conn, exchange: exchange}
	if err := p.declare(); err != nil {
		conn.Close()
		return nil, err
	}
	utils.InfoLogger.Infof("Connected to AMQP server, exchange %s", exchange)
	return p, nil
}

func (p *AMQPPublisher) declare() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	err = ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		ch.Close()
		return err
	}
	p.ch = ch
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		if err := p.declare(); err != nil {
			return err
		}
	}

	return p.ch.PublishWithContext(
		ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	errs = append(errs, p.conn.Close())
	return errors.Join(errs...)
}
