package transport

import (
	"flame/pkg/middleware"
	"flame/pkg/redis"
	"flame/services/notify/handler"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
)

func NewRouter(notifyHandler *handler.NotifyHandler, redisClient *redis.RedisClient) *echo.Echo {
	e := echo.New()

	// CORS 설정
	e.Use(echo_middleware.CORSWithConfig(echo_middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.Use(middleware.SessionMiddleware(redisClient))

	e.GET("/ws", notifyHandler.HandleNotifySocket)

	return e
}
