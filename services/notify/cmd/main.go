package main

import (
	"fmt"
	"log"

	"flame/pkg/logger"
	"flame/pkg/mq"
	"flame/pkg/redis"
	"flame/services/notify/event"
	"flame/services/notify/handler"
	"flame/services/notify/registry"
	"flame/services/notify/transport"
)

const webPort = 80

func main() {
	if err := logger.InitLogger(logger.ServiceTypeNotify); err != nil {
		log.Panic("Logger 초기화 실패: ", err)
	}

	mqClient, err := mq.ConnectToRabbitMQ()
	if err != nil {
		log.Panic("RabbitMQ 연결 실패: ", err)
	}
	defer mqClient.Conn.Close()

	redisClient, err := redis.NewRedisClient()
	if err != nil {
		log.Panic("Redis 연결 실패: ", err)
	}

	// 의존성 주입 (DI)
	reg := registry.NewRegistry()

	consumer := event.NewConsumer(mqClient, reg, redisClient)
	if err := consumer.Listen(); err != nil {
		log.Panic("Failed to start event consumer: ", err)
	}

	notifyHandler := handler.NewNotifyHandler(reg, redisClient)

	e := transport.NewRouter(notifyHandler, redisClient)

	log.Printf("🚀 Notify Service Started on Port %d", webPort)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", webPort)))
}
