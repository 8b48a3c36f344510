// Package events publishes order-placed notifications to RabbitMQ for
// downstream consumers (warehouse, fulfillment). Publishing is
// best-effort: checkout never fails because the broker is away.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/hotiphone/storefront/internal/models"
)

const queueName = "orders"

type OrderItemMessage struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type OrderPlacedMessage struct {
	OrderID  int64              `json:"order_id"`
	OrderRef string             `json:"order_ref"`
	Items    []OrderItemMessage `json:"items"`
}

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Connect dials the broker and declares the orders queue. A nil
// *Publisher is a valid no-op publisher, so callers can skip the
// broker entirely when it is not configured.
func Connect(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch}, nil
}

// OrderPlaced announces a new order. Failures are logged, not
// returned; the order is already committed by the time we get here.
func (p *Publisher) OrderPlaced(ctx context.Context, order *models.Order) {
	if p == nil {
		return
	}

	msg := OrderPlacedMessage{OrderID: order.ID, OrderRef: order.OrderRef}
	for _, item := range order.Items {
		msg.Items = append(msg.Items, OrderItemMessage{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to encode order event", "order_id", order.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.New().String(),
		Body:         body,
	})
	if err != nil {
		slog.Error("Failed to publish order event", "order_id", order.ID, "error", err)
		return
	}
	slog.Info("Order event published", "order_id", order.ID, "items", len(msg.Items))
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.channel.Close()
	p.conn.Close()
}
