package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// AMQPMailer publishes messages to a fanout exchange; an external mail worker
// consumes them and does the actual SMTP delivery.
type AMQPMailer struct {
	url      string
	exchange string
	log      logrus.FieldLogger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// DialAMQP connects and declares the durable fanout exchange
func DialAMQP(url, exchange string, log logrus.FieldLogger) (*AMQPMailer, error) {
	m := &AMQPMailer{url: url, exchange: exchange, log: log}
	if err := m.connect(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *AMQPMailer) connect() error {
	conn, err := amqp.Dial(m.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		m.exchange, // name
		"fanout",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to declare %s exchange: %w", m.exchange, err)
	}
	m.conn, m.channel = conn, ch
	return nil
}

func (m *AMQPMailer) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil || m.conn.IsClosed() {
		if err := m.connect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = m.channel.PublishWithContext(ctx,
		m.exchange, // exchange
		"",         // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	m.log.WithFields(logrus.Fields{"exchange": m.exchange, "to": msg.To}).Debug("email queued")
	return nil
}

func (m *AMQPMailer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.channel != nil {
		m.channel.Close()
	}
	if m.conn != nil {
		return m.conn.Close()
	}
	return nil
}
