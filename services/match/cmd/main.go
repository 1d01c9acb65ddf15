package main

import (
	"fmt"
	"log"

	"flame/pkg/db"
	"flame/pkg/logger"
	"flame/pkg/mq"
	"flame/pkg/redis"
	"flame/services/match/event"
	"flame/services/match/handler"
	"flame/services/match/repository"
	"flame/services/match/service"
	"flame/services/match/transport"
)

const webPort = 80

func main() {
	if err := logger.InitLogger(logger.ServiceTypeMatch); err != nil {
		log.Panic("Logger 초기화 실패: ", err)
	}

	dbConn, err := db.ConnectMySQL()
	if err != nil {
		log.Panic("MySQL 연결 실패: ", err)
	}

	mqClient, err := mq.ConnectToRabbitMQ()
	if err != nil {
		log.Panic("RabbitMQ 연결 실패: ", err)
	}
	defer mqClient.Conn.Close()

	if err := mqClient.DeclareExchange(mq.ExchangeNotifyEvents, mq.ExchangeTypeFanout); err != nil {
		log.Panic("Exchange 선언 실패: ", err)
	}

	redisClient, err := redis.NewRedisClient()
	if err != nil {
		log.Panic("Redis 연결 실패: ", err)
	}

	// 의존성 주입 (DI)
	matchRepo := repository.NewMatchRepository(dbConn)
	if err := matchRepo.InitDB(); err != nil {
		log.Panic("Failed to Match DB Migration: ", err)
	}
	profileRepo := repository.NewProfileRepository(dbConn)

	emitter := event.NewEmitter(mqClient)

	matchService := service.NewMatchService(matchRepo, profileRepo, emitter)
	matchHandler := handler.NewMatchHandler(matchService)

	e := transport.NewRouter(matchHandler, redisClient)

	log.Printf("🚀 Match Service Started on Port %d", webPort)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", webPort)))
}
