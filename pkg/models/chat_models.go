package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	MessageId primitive.ObjectID `bson:"_id" json:"message_id"`
	CoupleID  int                `bson:"couple_id" json:"couple_id"`
	SenderID  int                `bson:"sender_id" json:"sender_id"`
	Message   string             `bson:"message" json:"message"`
	Seen      bool               `bson:"seen" json:"seen"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type ServiceLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Level        string             `bson:"level" json:"level"`
	Service      int                `bson:"service" json:"service"`
	LogEventType int                `bson:"log_event_type" json:"log_event_type"`
	Message      string             `bson:"message" json:"message"`
	Log          interface{}        `bson:"log" json:"log"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
}
