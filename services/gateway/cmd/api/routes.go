package main

import (
	"net/http"

	"flame/pkg/middleware"
	"flame/pkg/redis"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (app *Config) routes(redisClient *redis.RedisClient) http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Use(middleware.HTTPSessionMiddleware(redisClient))

	// 실시간 알림 웹소켓은 notify 서비스로 전달
	mux.Handle("/ws", app.notifyProxy())

	// 나머지는 첫 경로 요소로 서비스 라우팅 (/user, /match, /chat)
	mux.Handle("/*", app.proxyService())

	return mux
}
