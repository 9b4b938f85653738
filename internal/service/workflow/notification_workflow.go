package workflow

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/eventum-app/eventum/internal/mq"
)

// NotificationWorkflow drains the lifecycle queues and emits the user-facing
// notifications. Delivery is a structured log line for now; a mail or push
// sender slots in behind the same consumer.
type NotificationWorkflow struct {
	logger *zap.Logger
}

func NewNotificationWorkflow(logger *zap.Logger) *NotificationWorkflow {
	return &NotificationWorkflow{
		logger: logger,
	}
}

func (w *NotificationWorkflow) Start(conn *amqp.Connection) error {
	for queue, kind := range map[string]string{
		mq.BookingCreatedQueue:   "booking_created",
		mq.BookingConfirmedQueue: "booking_confirmed",
		mq.BookingCancelledQueue: "booking_cancelled",
	} {
		if err := w.consume(conn, queue, kind); err != nil {
			return err
		}
	}
	return nil
}

func (w *NotificationWorkflow) consume(conn *amqp.Connection, queue, kind string) error {
	ch, err := mq.NewChannel(conn)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			if err := w.handle(msg, kind); err != nil {
				w.logger.Error("failed to handle notification", zap.String("kind", kind), zap.Error(err))
			}
		}
	}()

	return nil
}

func (w *NotificationWorkflow) handle(msg amqp.Delivery, kind string) error {
	var message mq.BookingLifecycleMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		msg.Nack(false, false)
		return err
	}

	w.logger.Info("notification",
		zap.String("kind", kind),
		zap.Uint("booking_id", message.BookingID),
		zap.Uint("user_id", message.UserID),
		zap.Uint("event_id", message.EventID),
		zap.Int("tickets", message.Tickets),
	)

	msg.Ack(false)

	return nil
}
