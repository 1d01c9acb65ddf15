package transport

import (
	"flame/pkg/middleware"
	"flame/pkg/redis"
	"flame/services/match/handler"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
)

func NewRouter(matchHandler *handler.MatchHandler, redisClient *redis.RedisClient) *echo.Echo {
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

	e.GET("/candidate", matchHandler.FindCandidate)
	e.POST("/swipe", matchHandler.SwipeUser)
	e.GET("/couples", matchHandler.FindCouples)
	e.PATCH("/couples/:id/seen", matchHandler.TickSeen)

	return e
}
