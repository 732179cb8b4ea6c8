// Package notify relays order change events over RabbitMQ so every
// dashboard instance can drop its cached order list and surface a
// staff-facing notification when a new order lands.
package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "order_events"
	queueName    = "order_events_dashboard"
)

// Event actions mirror the row operations on the orders table.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Event is the payload published for every order mutation. Consumers
// use it only for the notification text; they refetch the order list
// rather than trusting the payload structurally.
type Event struct {
	Action      string  `json:"action"`
	OrderID     uint    `json:"order_id"`
	TableNumber string  `json:"table_number"`
	Total       float64 `json:"total"`
}

// Broker wraps a RabbitMQ connection with the exchange and queue this
// service needs already declared.
type Broker struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Connect dials RabbitMQ and declares the fanout exchange plus the
// dashboard queue bound to it.
func Connect(url string) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"fanout",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.QueueBind(queueName, "", exchangeName, false, nil)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Broker{conn: conn, channel: channel}, nil
}

// Publish sends ev to the fanout exchange. Callers treat failures as
// non-fatal: an order that saved but failed to announce is still a
// valid order.
func (b *Broker) Publish(ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return b.channel.PublishWithContext(ctx,
		exchangeName, // exchange
		"",           // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
}

// Close tears down the channel and connection.
func (b *Broker) Close() {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		b.conn.Close()
	}
}

// Consume starts delivering events from the dashboard queue.
func (b *Broker) Consume() (<-chan amqp.Delivery, error) {
	return b.channel.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
}
