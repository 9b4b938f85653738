package workflow

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/mq"
	"github.com/eventum-app/eventum/internal/service/domain"
)

// BookingWorkflow fronts the booking service and fans each successful
// transition out to the lifecycle queues. Publishing is best-effort: a dead
// broker never fails the booking, it only costs the notification.
type BookingWorkflow struct {
	bookingService *domain.BookingService
	mqConn         *amqp.Connection
	logger         *zap.Logger
}

func NewBookingWorkflow(bookingService *domain.BookingService, mqConn *amqp.Connection, logger *zap.Logger) *BookingWorkflow {
	return &BookingWorkflow{
		bookingService: bookingService,
		mqConn:         mqConn,
		logger:         logger,
	}
}

func (w *BookingWorkflow) Create(userID, eventID uint, tickets int, eventDate time.Time) (*model.Booking, error) {
	booking, err := w.bookingService.Create(userID, eventID, tickets, eventDate)
	if err != nil {
		return nil, err
	}
	w.publishLifecycle(mq.BookingCreatedQueue, booking)
	w.publishTimeout(booking.ID)
	return booking, nil
}

func (w *BookingWorkflow) ConfirmPayment(userID, bookingID uint) (*model.Booking, error) {
	booking, err := w.bookingService.ConfirmPayment(userID, bookingID)
	if err != nil {
		return nil, err
	}
	w.publishLifecycle(mq.BookingConfirmedQueue, booking)
	return booking, nil
}

func (w *BookingWorkflow) Cancel(userID, bookingID uint, now time.Time) (*domain.Cancellation, error) {
	cancellation, err := w.bookingService.Cancel(userID, bookingID, now)
	if err != nil {
		return nil, err
	}
	w.publishLifecycle(mq.BookingCancelledQueue, cancellation.Booking)
	return cancellation, nil
}

// Start attaches the payment timeout consumer. The delay queue holds each
// created booking's message for the TTL; whatever surfaces here and is still
// pending gets expired.
func (w *BookingWorkflow) Start(conn *amqp.Connection) error {
	ch, err := mq.NewChannel(conn)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(mq.BookingPaymentTimeoutQueue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			if err := w.handleTimeout(msg); err != nil {
				w.logger.Error("failed to handle payment timeout", zap.Error(err))
			}
		}
	}()

	return nil
}

func (w *BookingWorkflow) handleTimeout(msg amqp.Delivery) error {
	var message mq.BookingTimeoutMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		msg.Nack(false, false)
		return err
	}

	expired, err := w.bookingService.ExpirePending(message.BookingID)
	if err != nil {
		msg.Nack(false, true)
		return err
	}
	if expired {
		w.logger.Info("expired unpaid booking",
			zap.Uint("booking_id", message.BookingID))
	}

	msg.Ack(false)

	return nil
}

func (w *BookingWorkflow) publishLifecycle(queue string, booking *model.Booking) {
	if w.mqConn == nil {
		return
	}
	ch, err := mq.NewChannel(w.mqConn)
	if err != nil {
		w.logger.Warn("lifecycle publish skipped", zap.String("queue", queue), zap.Error(err))
		return
	}
	defer ch.Close()

	message := mq.BookingLifecycleMessage{
		BookingID:       booking.ID,
		EventID:         booking.EventID,
		UserID:          booking.UserID,
		Tickets:         booking.Tickets,
		TotalPriceCents: booking.TotalPriceCents,
		Status:          string(booking.Status),
	}
	if err := mq.SendImmediateMessage(ch, queue, message); err != nil {
		w.logger.Warn("lifecycle publish failed", zap.String("queue", queue), zap.Error(err))
	}
}

func (w *BookingWorkflow) publishTimeout(bookingID uint) {
	if w.mqConn == nil {
		return
	}
	ch, err := mq.NewChannel(w.mqConn)
	if err != nil {
		w.logger.Warn("timeout publish skipped", zap.Error(err))
		return
	}
	defer ch.Close()

	message := mq.BookingTimeoutMessage{BookingID: bookingID}
	if err := mq.SendTimeoutMessage(ch, mq.BookingPaymentDelayQueue, message); err != nil {
		w.logger.Warn("timeout publish failed", zap.Error(err))
	}
}
