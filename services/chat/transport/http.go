package transport

import (
	"flame/pkg/middleware"
	"flame/pkg/redis"
	"flame/services/chat/handler"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
)

func NewRouter(chatHandler *handler.ChatHandler, redisClient *redis.RedisClient) *echo.Echo {
	e := echo.New()

	// CORS 설정
	e.Use(echo_middleware.CORSWithConfig(echo_middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.Use(middleware.SessionMiddleware(redisClient))

	e.POST("/messages", chatHandler.SendMessage)
	e.GET("/couples/:id/messages", chatHandler.GetMessages)
	e.PATCH("/couples/:id/messages/seen", chatHandler.TickMessagesSeen)

	return e
}
