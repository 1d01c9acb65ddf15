package main

import (
	"fmt"
	"log"

	"flame/pkg/db"
	"flame/pkg/logger"
	"flame/pkg/redis"
	"flame/services/chat/repo"
	matchrepo "flame/services/match/repository"
	"flame/services/user/handler"
	"flame/services/user/repository"
	"flame/services/user/service"
	"flame/services/user/transport"
)

const webPort = 80

func main() {
	if err := logger.InitLogger(logger.ServiceTypeUser); err != nil {
		log.Panic("Logger 초기화 실패: ", err)
	}

	dbConn, err := db.ConnectMySQL()
	if err != nil {
		log.Panic("MySQL 연결 실패: ", err)
	}

	mongoClient, err := db.ConnectMongo()
	if err != nil {
		log.Panic("MongoDB 연결 실패: ", err)
	}

	redisClient, err := redis.NewRedisClient()
	if err != nil {
		log.Panic("Redis 연결 실패: ", err)
	}

	// 의존성 주입 (DI)
	userRepo := repository.NewUserRepository(dbConn)
	if err := userRepo.InitDB(); err != nil {
		log.Panic("Failed to User DB Migration: ", err)
	}
	matchRepo := matchrepo.NewMatchRepository(dbConn)
	chatRepo, err := repo.NewChatRepository(mongoClient)
	if err != nil {
		log.Panic("Failed to Chat DB Initialize: ", err)
	}

	userService := service.NewUserService(userRepo, matchRepo, chatRepo, redisClient)
	userHandler := handler.NewUserHandler(userService)

	e := transport.NewRouter(userHandler, redisClient)

	log.Printf("🚀 User Service Started on Port %d", webPort)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", webPort)))
}
