package dto

import "flame/pkg/models"

type SendMessageRequest struct {
	CoupleID int    `json:"couple_id"`
	Message  string `json:"message"`
}

type SendMessageResponse struct {
	MessageID string `json:"message_id"`
}

type MessageListResponse struct {
	Messages    []*models.Message `json:"messages"`
	TotalCount  int64             `json:"total_count"`
	UnreadCount int               `json:"unread_count"`
}
