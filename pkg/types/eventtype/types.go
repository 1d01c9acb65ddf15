package eventtypes

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventPayload struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// Event Types
const (
	EventTypeChat        = "chat"
	EventTypeChatRead    = "chat.read"
	EventTypeCoupleMatch = "couple.match"
	EventTypeLog         = "log"
)

// ChatMessageEvent 살아있는 연결로 전달되는 채팅 메시지
type ChatMessageEvent struct {
	TargetID  int                `json:"target_id"`
	CoupleID  int                `json:"couple_id"`
	MessageId primitive.ObjectID `json:"message_id"`
	SenderID  int                `json:"sender_id"`
	Message   string             `json:"message"`
	CreatedAt time.Time          `json:"created_at"`
}

// ReadReceiptEvent 상대방이 메시지를 읽었음을 알림
type ReadReceiptEvent struct {
	TargetID int `json:"target_id"`
	CoupleID int `json:"couple_id"`
}

// CoupleMatchEvent 상호 매칭 성사 알림
type CoupleMatchEvent struct {
	CoupleID  int       `json:"couple_id"`
	MemberIDs []int     `json:"member_ids"`
	MatchedAt time.Time `json:"matched_at"`
}
