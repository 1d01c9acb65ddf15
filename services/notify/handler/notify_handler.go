package handler

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"flame/pkg/logger"
	"flame/pkg/middleware"
	"flame/pkg/redis"
	"flame/services/notify/registry"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotifyHandler struct {
	registry    *registry.Registry
	redisClient *redis.RedisClient
	serverID    string
}

func NewNotifyHandler(reg *registry.Registry, redisClient *redis.RedisClient) *NotifyHandler {
	serverID, err := os.Hostname()
	if err != nil {
		serverID = "notify"
	}
	return &NotifyHandler{
		registry:    reg,
		redisClient: redisClient,
		serverID:    serverID,
	}
}

// 실시간 알림 웹소켓 연결 처리
func (h *NotifyHandler) HandleNotifySocket(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "WebSocket upgrade failed")
	}

	client := h.registry.Register(userID)
	if err := h.redisClient.RegisterActiveUser(strconv.Itoa(userID), h.serverID); err != nil {
		log.Printf("Failed to register active user %d: %v", userID, err)
	}

	logger.Info(logger.LogEventClientConnect,
		"Client connected: "+strconv.Itoa(userID), nil)

	// 모든 종료 경로에서 등록 해제가 보장되어야 함
	defer func() {
		// 이미 새 연결로 대체된 경우 presence는 건드리지 않음
		if h.registry.Unregister(userID, client) {
			if err := h.redisClient.UnregisterActiveUser(strconv.Itoa(userID)); err != nil {
				log.Printf("Failed to unregister active user %d: %v", userID, err)
			}
		}
		conn.Close()

		logger.Info(logger.LogEventClientDisconnect,
			"Client disconnected: "+strconv.Itoa(userID), nil)
	}()

	// 송신 루프: 레지스트리로 발행된 이벤트를 소켓으로 전달
	go func() {
		for payload := range client.Send {
			if err := conn.WriteJSON(payload); err != nil {
				log.Printf("Failed to write to user %d: %v", userID, err)
				conn.Close()
				return
			}
		}
		// 채널이 닫힘 (등록 해제 또는 재접속으로 대체됨)
		conn.Close()
	}()

	// 수신 루프: 연결 종료 감지 용도
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Unexpected close for user %d: %v", userID, err)
			}
			break
		}
	}

	return nil
}
