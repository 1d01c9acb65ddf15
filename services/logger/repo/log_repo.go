package repo

import (
	"context"
	"log"
	"time"

	"flame/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type LogRepository struct {
	client *mongo.Client
}

func NewLogRepository(client *mongo.Client) (*LogRepository, error) {
	repo := &LogRepository{client: client}
	if err := repo.initIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *LogRepository) collection() *mongo.Collection {
	return r.client.Database("log_db").Collection("service_logs")
}

func (r *LogRepository) initIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "service", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	return err
}

// 서비스 로그 적재
func (r *LogRepository) InsertLog(entry *models.ServiceLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection().InsertOne(ctx, entry)
	if err != nil {
		log.Printf("Failed to insert service log: %v", err)
		return err
	}
	return nil
}
