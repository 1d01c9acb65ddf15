package event

import (
	"log"

	"flame/pkg/helper"
	"flame/pkg/mq"

	eventtypes "flame/pkg/types/eventtype"
)

type Emitter struct {
	mqClient *mq.RabbitMQ
}

func NewEmitter(mqClient *mq.RabbitMQ) *Emitter {
	return &Emitter{mqClient: mqClient}
}

// 매칭 성사 이벤트 발행 (Fanout)
func (e *Emitter) PublishCoupleMatchEvent(event eventtypes.CoupleMatchEvent) error {
	payload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeCoupleMatch,
		Data:      helper.ToJSON(event),
	}

	err := e.mqClient.PublishEvent(mq.ExchangeNotifyEvents, "", payload)
	if err != nil {
		log.Printf("❌ Failed to publish couple match event: %v", err)
		return err
	}

	log.Printf("Couple match event published, couple: %d", event.CoupleID)
	return nil
}
