package mq

import (
	"encoding/json"
	"log"
	"os"

	eventtypes "flame/pkg/types/eventtype"

	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQ struct {
	Conn    *amqp.Connection
	channel *amqp.Channel
}

// 이벤트 타입별 핸들러 매핑
type EventHandlerMap map[string]func(data json.RawMessage)

// ConnectToRabbitMQ: RabbitMQ 연결 설정
func ConnectToRabbitMQ() (*RabbitMQ, error) {
	host := os.Getenv("RABBITMQ_HOST")
	if host == "" {
		host = "flame-rabbitmq"
	}

	conn, err := amqp.Dial("amqp://guest:guest@" + host)
	if err != nil {
		log.Printf("❌ Failed to connect to RabbitMQ: %v", err)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("❌ Failed to open RabbitMQ channel: %v", err)
		return nil, err
	}

	return &RabbitMQ{Conn: conn, channel: ch}, nil
}

// DeclareExchange: Exchange 생성
func (mq *RabbitMQ) DeclareExchange(name, exchangeType string) error {
	return mq.channel.ExchangeDeclare(
		name,         // exchange name
		exchangeType, // type: topic or fanout
		true,         // durable
		false,        // autoDelete
		false,        // internal
		false,        // noWait
		nil,          // arguments
	)
}

// DeclareQueue: Queue 생성 및 바인딩
func (mq *RabbitMQ) DeclareQueue(queueName, exchangeName, routingKey string) (amqp.Queue, error) {
	queue, err := mq.channel.QueueDeclare(
		queueName, // queue name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // arguments
	)
	if err != nil {
		return queue, err
	}

	// Exchange와 Queue 바인딩
	err = mq.channel.QueueBind(
		queue.Name,   // queue name
		routingKey,   // routing key
		exchangeName, // exchange name
		false,        // noWait
		nil,          // arguments
	)

	return queue, err
}

// PublishMessage: 메시지 발행
func (mq *RabbitMQ) PublishMessage(exchange, routingKey string, body []byte) error {
	return mq.channel.Publish(
		exchange,   // exchange name
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// PublishEvent: EventPayload 직렬화 후 발행
func (mq *RabbitMQ) PublishEvent(exchange, routingKey string, payload eventtypes.EventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ Failed to marshal event payload: %v", err)
		return err
	}
	return mq.PublishMessage(exchange, routingKey, body)
}

// ConsumeMessages: 이벤트 타입별 핸들러로 메시지 소비
func (mq *RabbitMQ) ConsumeMessages(queueName string, handlers EventHandlerMap) error {
	msgs, err := mq.channel.Consume(
		queueName, // queue name
		"",        // consumer
		true,      // autoAck
		false,     // exclusive
		false,     // noLocal
		false,     // noWait
		nil,       // arguments
	)
	if err != nil {
		return err
	}

	// 메시지 처리
	go func() {
		for msg := range msgs {
			var payload eventtypes.EventPayload
			if err := json.Unmarshal(msg.Body, &payload); err != nil {
				log.Printf("Failed to unmarshal event payload: %v", err)
				continue
			}

			handler, ok := handlers[payload.EventType]
			if !ok {
				log.Printf("No handler for event type: %s", payload.EventType)
				continue
			}
			handler(payload.Data)
		}
	}()
	return nil
}
