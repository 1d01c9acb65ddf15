package event

import (
	"encoding/json"
	"log"
	"strconv"

	"flame/pkg/helper"
	"flame/pkg/mq"
	"flame/pkg/redis"
	eventtypes "flame/pkg/types/eventtype"
	"flame/services/notify/registry"
)

// Consumer notify 익스체인지의 이벤트를 소비해 레지스트리로 전달
type Consumer struct {
	rabbitMQ    *mq.RabbitMQ
	registry    *registry.Registry
	redisClient *redis.RedisClient
}

func NewConsumer(rabbitMQ *mq.RabbitMQ, reg *registry.Registry, redisClient *redis.RedisClient) *Consumer {
	return &Consumer{rabbitMQ: rabbitMQ, registry: reg, redisClient: redisClient}
}

// 전달 실패는 허용되지만, 접속 중으로 등록된 유저에게 떨어진 이벤트는 기록해둠
// (다른 notify 인스턴스에 연결됐거나 송신 버퍼가 가득 찬 경우)
func (c *Consumer) logDropped(eventType string, targetID int) {
	active, err := c.redisClient.IsActiveUser(strconv.Itoa(targetID))
	if err != nil || !active {
		return
	}
	log.Printf("%s event dropped for active user %d", eventType, targetID)
}

// Listen 큐 선언 후 이벤트 소비 시작
func (c *Consumer) Listen() error {
	if err := c.rabbitMQ.DeclareExchange(mq.ExchangeNotifyEvents, mq.ExchangeTypeFanout); err != nil {
		return err
	}
	if _, err := c.rabbitMQ.DeclareQueue(mq.QueueNotify, mq.ExchangeNotifyEvents, ""); err != nil {
		return err
	}

	handlers := mq.EventHandlerMap{
		eventtypes.EventTypeChat:        c.handleChatMessage,
		eventtypes.EventTypeChatRead:    c.handleReadReceipt,
		eventtypes.EventTypeCoupleMatch: c.handleCoupleMatch,
	}
	return c.rabbitMQ.ConsumeMessages(mq.QueueNotify, handlers)
}

func (c *Consumer) handleChatMessage(data json.RawMessage) {
	var chatEvent eventtypes.ChatMessageEvent
	if err := json.Unmarshal(data, &chatEvent); err != nil {
		log.Printf("Failed to unmarshal chat event: %v", err)
		return
	}

	payload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeChat,
		Data:      helper.ToJSON(chatEvent),
	}
	if !c.registry.Publish(chatEvent.TargetID, payload) {
		c.logDropped(eventtypes.EventTypeChat, chatEvent.TargetID)
	}
}

func (c *Consumer) handleReadReceipt(data json.RawMessage) {
	var readEvent eventtypes.ReadReceiptEvent
	if err := json.Unmarshal(data, &readEvent); err != nil {
		log.Printf("Failed to unmarshal read receipt event: %v", err)
		return
	}

	payload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeChatRead,
		Data:      helper.ToJSON(readEvent),
	}
	if !c.registry.Publish(readEvent.TargetID, payload) {
		c.logDropped(eventtypes.EventTypeChatRead, readEvent.TargetID)
	}
}

func (c *Consumer) handleCoupleMatch(data json.RawMessage) {
	var matchEvent eventtypes.CoupleMatchEvent
	if err := json.Unmarshal(data, &matchEvent); err != nil {
		log.Printf("Failed to unmarshal couple match event: %v", err)
		return
	}

	payload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeCoupleMatch,
		Data:      helper.ToJSON(matchEvent),
	}

	// 매칭 성사는 양쪽 멤버 모두에게 전달
	for _, memberID := range matchEvent.MemberIDs {
		if !c.registry.Publish(memberID, payload) {
			c.logDropped(eventtypes.EventTypeCoupleMatch, memberID)
		}
	}
}
