package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"flame/pkg/dto"
	"flame/pkg/middleware"
	"flame/services/chat/service"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// 채팅 메시지 전송
func (h *ChatHandler) SendMessage(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	var req dto.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	msg, err := h.chatService.SendMessage(userID, req.CoupleID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValueRejected):
			return echo.NewHTTPError(http.StatusBadRequest, "Message must be 1 to 1000 characters")
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Couple not found")
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "Not a member of this couple")
		default:
			log.Printf("Failed to send message for user %d: %v", userID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send message")
		}
	}

	return c.JSON(http.StatusCreated, dto.SendMessageResponse{MessageID: msg.MessageId.Hex()})
}

// 채팅 내역 조회
func (h *ChatHandler) GetMessages(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	coupleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid couple ID")
	}
	pageNumber, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("size"))

	messages, total, unread, err := h.chatService.GetMessages(userID, coupleID, pageNumber, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Couple not found")
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "Not a member of this couple")
		default:
			log.Printf("Failed to get messages for user %d: %v", userID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get messages")
		}
	}

	return c.JSON(http.StatusOK, dto.MessageListResponse{
		Messages:    messages,
		TotalCount:  total,
		UnreadCount: unread,
	})
}

// 상대방 메시지 일괄 읽음 처리
func (h *ChatHandler) TickMessagesSeen(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	coupleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid couple ID")
	}

	if err := h.chatService.TickMessagesSeen(userID, coupleID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Couple not found")
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "Not a member of this couple")
		default:
			log.Printf("Failed to mark messages seen for user %d: %v", userID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark messages seen")
		}
	}

	return c.NoContent(http.StatusNoContent)
}
