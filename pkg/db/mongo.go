package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongo() (*mongo.Client, error) {
	host := os.Getenv("MONGO_HOST")
	if host == "" {
		host = "flame-mongo"
	}
	mongoURL := fmt.Sprintf("mongodb://%s:27017", host)

	clientOptions := options.Client().ApplyURI(mongoURL)
	if user := os.Getenv("MONGO_INITDB_ROOT_USERNAME"); user != "" {
		clientOptions.SetAuth(options.Credential{
			Username: user,
			Password: os.Getenv("MONGO_INITDB_ROOT_PASSWORD"),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Println("Error connecting to MongoDB:", err)
		return nil, err
	}

	log.Println("Connected to MongoDB!")
	return client, nil
}
