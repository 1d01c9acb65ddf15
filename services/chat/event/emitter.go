package event

import (
	"flame/pkg/helper"
	"flame/pkg/models"
	"flame/pkg/mq"
	eventtypes "flame/pkg/types/eventtype"
)

// Emitter 채팅 관련 실시간 이벤트를 notify 익스체인지로 발행
type Emitter struct {
	rabbitMQ *mq.RabbitMQ
}

func NewEmitter(rabbitMQ *mq.RabbitMQ) *Emitter {
	return &Emitter{rabbitMQ: rabbitMQ}
}

func (e *Emitter) PublishChatMessage(targetID int, msg *models.Message) error {
	chatEvent := eventtypes.ChatMessageEvent{
		TargetID:  targetID,
		CoupleID:  msg.CoupleID,
		MessageId: msg.MessageId,
		SenderID:  msg.SenderID,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}

	payload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeChat,
		Data:      helper.ToJSON(chatEvent),
	}
	return e.rabbitMQ.PublishEvent(mq.ExchangeNotifyEvents, "", payload)
}

func (e *Emitter) PublishReadReceipt(targetID int, coupleID int) error {
	readEvent := eventtypes.ReadReceiptEvent{
		TargetID: targetID,
		CoupleID: coupleID,
	}

	payload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeChatRead,
		Data:      helper.ToJSON(readEvent),
	}
	return e.rabbitMQ.PublishEvent(mq.ExchangeNotifyEvents, "", payload)
}
