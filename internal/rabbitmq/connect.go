// Package rabbitmq содержит подключение к RabbitMQ, настройку очередей,
// публикацию и потребление сообщений о новых подписках.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Имена сущностей брокера для событий рассылки.
const (
	ExchangeName      = "notifications"
	WelcomeQueue      = "notifications.welcome"
	WelcomeRoutingKey = "welcome"
)

// Connect устанавливает соединение с RabbitMQ с повторными попытками.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel открывает канал и объявляет exchange и очередь приветственных писем.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		ExchangeName,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_, err = ch.QueueDeclare(
		WelcomeQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.QueueBind(WelcomeQueue, WelcomeRoutingKey, ExchangeName, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, nil
}
