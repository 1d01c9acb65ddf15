package main

import (
	"fmt"
	"net/http"
	"os"

	"flame/pkg/redis"

	"github.com/rs/zerolog/log"
)

const webPort = 80

type Config struct{}

func main() {
	// Redis 연결
	redisClient, err := redis.NewRedisClient()
	if err != nil {
		log.Error().Msgf("Failed to initialize Redis client: %v", err)
		os.Exit(1)
	}

	app := Config{}

	log.Info().Msgf("Starting Gateway service on port %d", webPort)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", webPort),
		Handler: app.routes(redisClient),
	}

	err = srv.ListenAndServe()
	if err != nil {
		log.Error().Msgf("Error starting server: %v", err)
	}
}
