// Package notify hands committed booking summaries to downstream consumers
// such as ticket mailers and QR renderers.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	QueueBookingConfirmed = "booking.confirmed"
	QueueBookingCancelled = "booking.cancelled"
)

// publisher is the subset of *amqp.Channel used for publishing.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// message is the JSON body published for every booking event.
type message struct {
	domain.BookingSummary
	QRPayload string `json:"qrPayload"`
}

// AMQPNotifier publishes booking summaries as persistent JSON messages to
// durable queues on the default exchange.
type AMQPNotifier struct {
	conn *amqp.Connection

	mu sync.Mutex
	ch publisher
}

// NewAMQPNotifier dials the broker and declares the booking queues.
func NewAMQPNotifier(url string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("rabbitmq channel open failed: %w", err), conn.Close())
	}

	for _, queue := range []string{QueueBookingConfirmed, QueueBookingCancelled} {
		_, err = ch.QueueDeclare(
			queue, // name
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("rabbitmq queue declare failed: %w", err), conn.Close())
		}
	}

	return &AMQPNotifier{conn: conn, ch: ch}, nil
}

func (n *AMQPNotifier) BookingConfirmed(ctx context.Context, summary domain.BookingSummary) error {
	return n.publish(ctx, QueueBookingConfirmed, summary)
}

func (n *AMQPNotifier) BookingCancelled(ctx context.Context, summary domain.BookingSummary) error {
	return n.publish(ctx, QueueBookingCancelled, summary)
}

func (n *AMQPNotifier) publish(ctx context.Context, queue string, summary domain.BookingSummary) error {
	body, err := json.Marshal(message{BookingSummary: summary, QRPayload: summary.QRPayload()})
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         queue,
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishing
	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.ch.PublishWithContext(ctx, "", queue, false, false, pub)
	if err != nil {
		return fmt.Errorf("rabbitmq publish to %s failed: %w", queue, err)
	}

	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.conn == nil {
		return nil
	}

	return n.conn.Close()
}

// LogNotifier writes booking summaries to the log. It is used when no broker
// is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) BookingConfirmed(ctx context.Context, summary domain.BookingSummary) error {
	n.log(ctx, QueueBookingConfirmed, summary)
	return nil
}

func (n *LogNotifier) BookingCancelled(ctx context.Context, summary domain.BookingSummary) error {
	n.log(ctx, QueueBookingCancelled, summary)
	return nil
}

func (n *LogNotifier) log(ctx context.Context, event string, summary domain.BookingSummary) {
	n.logger.InfoContext(ctx, "booking event",
		"event", event,
		"booking_id", summary.BookingID,
		"user_id", summary.UserID,
		"seats", summary.SeatLabels,
		"amount", summary.AmountCharged,
		"qr_payload", summary.QRPayload())
}
