package mq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

func InitQueues(mqConn *amqp.Connection) error {
	ch, err := NewChannel(mqConn)
	if err != nil {
		return err
	}
	defer ch.Close()

	// setup all needed queues (listed in constants)
	if err := SetupImmediateQueue(ch, BookingCreatedQueue); err != nil {
		return err
	}
	if err := SetupImmediateQueue(ch, BookingConfirmedQueue); err != nil {
		return err
	}
	if err := SetupImmediateQueue(ch, BookingCancelledQueue); err != nil {
		return err
	}
	return SetupDelayQueue(ch, BookingPaymentDelayQueue, BookingPaymentTimeoutExchange,
		BookingPaymentTimeoutQueue, BookingPaymentTimeoutRoutingKey)
}

func NewMQConn(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func NewChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func SetupImmediateQueue(ch *amqp.Channel, immediateQueueName string) error {
	_, err := ch.QueueDeclare(immediateQueueName, true, false, false, false, nil)
	return err
}

// the delay queue consists of three parts: delay queue, timeout exchange,
// timeout queue. Produce to the delay queue, consume from the timeout queue.
func SetupDelayQueue(ch *amqp.Channel, delayQueueName, timeoutExchangeName, timeoutQueueName string, timeoutRoutingKey string) error {
	delayArgs := amqp.Table{
		"x-message-ttl":             int32(15 * 60 * 1000), // 15 mins
		"x-dead-letter-exchange":    timeoutExchangeName,
		"x-dead-letter-routing-key": timeoutRoutingKey,
	}

	if _, err := ch.QueueDeclare(
		delayQueueName, true, false, false, false, delayArgs); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(timeoutExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(timeoutQueueName, true, false, false, false, nil); err != nil {
		return err
	}

	return ch.QueueBind(timeoutQueueName, timeoutRoutingKey, timeoutExchangeName, false, nil)
}
