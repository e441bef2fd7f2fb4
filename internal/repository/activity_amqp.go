package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/d60-Lab/microblog/internal/model"
)

// AMQPChannel *amqp.Channel 中用到的部分
type AMQPChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpSink struct {
	ch       AMQPChannel
	conn     io.Closer
	exchange string
}

// DialAMQP 建立连接并打开 channel
func DialAMQP(url string) (*amqp.Channel, *amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("error establishing connection with rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("error opening channel for rabbitmq: %w", err)
	}
	return ch, conn, nil
}

// NewAMQPActivitySink 声明 topic exchange；routing key 为活动类型。conn 可为 nil。
func NewAMQPActivitySink(ch AMQPChannel, conn io.Closer, exchange string) (ActivitySink, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &amqpSink{ch: ch, conn: conn, exchange: exchange}, nil
}

func (s *amqpSink) Name() string { return "amqp" }

func (s *amqpSink) Append(ctx context.Context, a *model.Activity) error {
	body, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.ch.PublishWithContext(ctx, s.exchange, string(a.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    a.ID,
		Timestamp:    a.CreatedAt,
		Type:         string(a.Type),
		Body:         body,
	})
}

func (s *amqpSink) Close() error {
	var result *multierror.Error
	if err := s.ch.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
