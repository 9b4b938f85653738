package mq

// Queue names and message definitions

// Booking lifecycle queues. One message per transition, consumed by the
// notification workflow.
const (
	BookingCreatedQueue   = "booking.lifecycle.created"
	BookingConfirmedQueue = "booking.lifecycle.confirmed"
	BookingCancelledQueue = "booking.lifecycle.cancelled"
)

type BookingLifecycleMessage struct {
	BookingID       uint   `json:"booking_id"`
	EventID         uint   `json:"event_id"`
	UserID          uint   `json:"user_id"`
	Tickets         int    `json:"tickets"`
	TotalPriceCents int64  `json:"total_price_cents"`
	Status          string `json:"status"`
}

// Payment timeout delay queue. A message enters the delay queue when a
// booking is created and dead-letters into the timeout queue after the TTL;
// the consumer expires the booking if it is still pending.
const (
	BookingPaymentDelayQueue        = "booking.payment.timeout.delay"
	BookingPaymentTimeoutQueue      = "booking.payment.timeout.immediate"
	BookingPaymentTimeoutExchange   = "booking.timeout.exchange"
	BookingPaymentTimeoutRoutingKey = "booking.timeout"
)

type BookingTimeoutMessage struct {
	BookingID uint `json:"booking_id"`
}
