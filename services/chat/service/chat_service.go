package service

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"flame/pkg/logger"
	"flame/pkg/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxMessageRunes = 1000

var (
	ErrNotFound      = errors.New("record not found")
	ErrForbidden     = errors.New("user is not a member of the couple")
	ErrValueRejected = errors.New("message body rejected")
)

// MessageStore 채팅 메시지 저장소
type MessageStore interface {
	InsertMessage(msg *models.Message) (primitive.ObjectID, error)
	GetMessagesByCoupleID(coupleID int, pageNumber int, pageSize int) ([]*models.Message, int64, error)
	MarkMessagesSeen(coupleID int, viewerID int) (int64, error)
	CountUnseen(coupleID int, viewerID int) (int, error)
	DeleteMessagesByCoupleID(coupleID int) error
}

// CoupleStore 커플 멤버십 조회
type CoupleStore interface {
	GetCoupleByID(coupleID int) (*models.Couple, error)
}

// Publisher 실시간 알림 발행
type Publisher interface {
	PublishChatMessage(targetID int, msg *models.Message) error
	PublishReadReceipt(targetID int, coupleID int) error
}

type ChatService struct {
	messages MessageStore
	couples  CoupleStore
	notify   Publisher

	now func() time.Time
}

func NewChatService(messages MessageStore, couples CoupleStore, notify Publisher) *ChatService {
	return &ChatService{
		messages: messages,
		couples:  couples,
		notify:   notify,
		now:      time.Now,
	}
}

// SendMessage 채팅 메시지 전송, 커플 양쪽 모두에게 알림 발행
func (s *ChatService) SendMessage(senderID int, coupleID int, body string) (*models.Message, error) {
	runes := utf8.RuneCountInString(body)
	if runes == 0 || runes > MaxMessageRunes {
		return nil, fmt.Errorf("%w: length %d", ErrValueRejected, runes)
	}

	couple, err := s.couples.GetCoupleByID(coupleID)
	if err != nil {
		return nil, err
	}
	if !couple.Member(senderID) {
		logger.Warn(logger.LogEventWarning,
			fmt.Sprintf("Chat send denied: user %d is not in couple %d", senderID, coupleID), nil)
		return nil, ErrForbidden
	}

	msg := &models.Message{
		CoupleID:  coupleID,
		SenderID:  senderID,
		Message:   body,
		Seen:      false,
		CreatedAt: s.now(),
	}
	id, err := s.messages.InsertMessage(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %v", err)
	}
	msg.MessageId = id

	// 한쪽 발행 실패가 다른 쪽 전달을 막지 않는다
	for _, memberID := range []int{couple.LowID, couple.HighID} {
		if err := s.notify.PublishChatMessage(memberID, msg); err != nil {
			logger.Error(logger.LogEventError,
				fmt.Sprintf("Failed to publish chat message to user %d: %v", memberID, err), nil)
		}
	}

	logger.Info(logger.LogEventChatSend,
		fmt.Sprintf("Chat message sent: couple %d, message %s", coupleID, id.Hex()), nil)
	return msg, nil
}

// TickMessagesSeen 상대방이 보낸 메시지 일괄 읽음 처리 후 읽음 알림 발행
func (s *ChatService) TickMessagesSeen(viewerID int, coupleID int) error {
	couple, err := s.couples.GetCoupleByID(coupleID)
	if err != nil {
		return err
	}
	if !couple.Member(viewerID) {
		return ErrForbidden
	}

	modified, err := s.messages.MarkMessagesSeen(coupleID, viewerID)
	if err != nil {
		return fmt.Errorf("failed to mark messages seen: %v", err)
	}
	if modified == 0 {
		return nil
	}

	partnerID := couple.Partner(viewerID)
	if err := s.notify.PublishReadReceipt(partnerID, coupleID); err != nil {
		logger.Error(logger.LogEventError,
			fmt.Sprintf("Failed to publish read receipt to user %d: %v", partnerID, err), nil)
	}

	logger.Info(logger.LogEventChatRead,
		fmt.Sprintf("Chat messages marked seen: couple %d, count %d", coupleID, modified), nil)
	return nil
}

// GetMessages 채팅 내역 조회 (최신순 페이지네이션 + 미확인 수)
func (s *ChatService) GetMessages(viewerID int, coupleID int, pageNumber int, pageSize int) ([]*models.Message, int64, int, error) {
	couple, err := s.couples.GetCoupleByID(coupleID)
	if err != nil {
		return nil, 0, 0, err
	}
	if !couple.Member(viewerID) {
		return nil, 0, 0, ErrForbidden
	}

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 30
	}

	messages, total, err := s.messages.GetMessagesByCoupleID(coupleID, pageNumber, pageSize)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to get messages: %v", err)
	}
	unread, err := s.messages.CountUnseen(coupleID, viewerID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count unseen messages: %v", err)
	}
	return messages, total, unread, nil
}

// DeleteCoupleHistory 커플 채팅 내역 삭제 (계정 삭제 캐스케이드)
func (s *ChatService) DeleteCoupleHistory(coupleID int) error {
	return s.messages.DeleteMessagesByCoupleID(coupleID)
}
