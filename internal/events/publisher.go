// Package events publishes order lifecycle events to RabbitMQ. Publishing is
// best-effort: the order workflow never fails because a broker is down, and a
// nil *Publisher is a valid no-op (events disabled).
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"delivery-tracking/models"
)

const exchange = "order_events"

type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to RabbitMQ and declares the order_events topic exchange.
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// OrderEvent is the JSON payload published on order transitions.
type OrderEvent struct {
	Event    string        `json:"event"`
	DriverID int64         `json:"driver_id"`
	OrderNo  string        `json:"order_no"`
	Status   string        `json:"status"`
	Location models.LatLng `json:"location"`
	At       string        `json:"at"`
}

// OrderStarted publishes an order.started event.
func (p *Publisher) OrderStarted(ctx context.Context, o *models.Order) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, "order.started", OrderEvent{
		Event:    "order.started",
		DriverID: o.DriverID,
		OrderNo:  o.Number,
		Status:   string(o.Status),
		Location: o.StartLocation,
		At:       o.CreatedAt,
	})
}

// OrderCompleted publishes an order.completed event.
func (p *Publisher) OrderCompleted(ctx context.Context, driverID int64, orderNo string, end models.LatLng, completedAt string) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, "order.completed", OrderEvent{
		Event:    "order.completed",
		DriverID: driverID,
		OrderNo:  orderNo,
		Status:   string(models.OrderStatusCompleted),
		Location: end,
		At:       completedAt,
	})
}

func (p *Publisher) publish(ctx context.Context, key string, ev OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Body:         body,
	})
}
