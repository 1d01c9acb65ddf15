package main

import (
	"fmt"
	"log"

	"flame/pkg/db"
	"flame/pkg/logger"
	"flame/pkg/mq"
	"flame/pkg/redis"
	"flame/services/chat/event"
	"flame/services/chat/handler"
	"flame/services/chat/repo"
	"flame/services/chat/service"
	"flame/services/chat/transport"
)

const webPort = 80

func main() {
	if err := logger.InitLogger(logger.ServiceTypeChat); err != nil {
		log.Panic("Logger 초기화 실패: ", err)
	}

	mongoClient, err := db.ConnectMongo()
	if err != nil {
		log.Panic("MongoDB 연결 실패: ", err)
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
	chatRepo, err := repo.NewChatRepository(mongoClient)
	if err != nil {
		log.Panic("Failed to Chat DB Initialize: ", err)
	}
	coupleRepo := repo.NewCoupleRepository(dbConn)

	emitter := event.NewEmitter(mqClient)

	chatService := service.NewChatService(chatRepo, coupleRepo, emitter)
	chatHandler := handler.NewChatHandler(chatService)

	e := transport.NewRouter(chatHandler, redisClient)

	log.Printf("🚀 Chat Service Started on Port %d", webPort)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", webPort)))
}
