package event

import (
	"encoding/json"
	"log"

	"flame/pkg/logger"
	"flame/pkg/models"
	"flame/pkg/mq"
	eventtypes "flame/pkg/types/eventtype"
	"flame/services/logger/repo"
)

// Consumer log 익스체인지의 로그 이벤트를 소비해 저장소로 적재
type Consumer struct {
	rabbitMQ *mq.RabbitMQ
	logRepo  *repo.LogRepository
}

func NewConsumer(rabbitMQ *mq.RabbitMQ, logRepo *repo.LogRepository) *Consumer {
	return &Consumer{rabbitMQ: rabbitMQ, logRepo: logRepo}
}

func (c *Consumer) Listen() error {
	if err := c.rabbitMQ.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout); err != nil {
		return err
	}
	if _, err := c.rabbitMQ.DeclareQueue(mq.QueueLog, mq.ExchangeLog, ""); err != nil {
		return err
	}

	handlers := mq.EventHandlerMap{
		eventtypes.EventTypeLog: c.handleLog,
	}
	return c.rabbitMQ.ConsumeMessages(mq.QueueLog, handlers)
}

func (c *Consumer) handleLog(data json.RawMessage) {
	var baseLog logger.BaseLog
	if err := json.Unmarshal(data, &baseLog); err != nil {
		log.Printf("Failed to unmarshal log event: %v", err)
		return
	}

	entry := &models.ServiceLog{
		Level:        baseLog.Level,
		Service:      baseLog.Service,
		LogEventType: baseLog.LogEventType,
		Message:      baseLog.Message,
		Log:          baseLog.Log,
		Timestamp:    baseLog.Timestamp,
	}
	if err := c.logRepo.InsertLog(entry); err != nil {
		log.Printf("Failed to store log entry: %v", err)
	}
}
