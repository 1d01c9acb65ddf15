package main

import (
	"log"

	"flame/pkg/db"
	"flame/pkg/mq"
	"flame/services/logger/event"
	"flame/services/logger/repo"
)

func main() {
	mongoClient, err := db.ConnectMongo()
	if err != nil {
		log.Panic("MongoDB 연결 실패: ", err)
	}

	mqClient, err := mq.ConnectToRabbitMQ()
	if err != nil {
		log.Panic("RabbitMQ 연결 실패: ", err)
	}
	defer mqClient.Conn.Close()

	logRepo, err := repo.NewLogRepository(mongoClient)
	if err != nil {
		log.Panic("Failed to Log DB Initialize: ", err)
	}

	consumer := event.NewConsumer(mqClient, logRepo)
	if err := consumer.Listen(); err != nil {
		log.Panic("Failed to start log consumer: ", err)
	}

	log.Println("🚀 Logger Service Started")
	select {}
}
