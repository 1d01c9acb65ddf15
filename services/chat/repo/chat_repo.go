package repo

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"flame/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatRepository struct {
	client *mongo.Client
}

func NewChatRepository(client *mongo.Client) (*ChatRepository, error) {
	repo := &ChatRepository{client: client}
	if err := repo.InitDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}
	return repo, nil
}

// InitDatabase 데이터베이스 초기화
func (r *ChatRepository) InitDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := r.client.Database("chat_db")

	// 필요한 컬렉션 생성 (MongoDB는 실제로 데이터가 들어갈 때 생성됨)
	collections := []string{"messages"}
	for _, collName := range collections {
		err := db.CreateCollection(ctx, collName)
		if err != nil {
			// 이미 컬렉션이 존재하는 경우 무시
			if !strings.Contains(err.Error(), "already exists") {
				log.Printf("Error creating collection %s: %v", collName, err)
				return err
			}
		}
	}

	// 필요한 인덱스 생성
	msgCollection := db.Collection("messages")
	_, err := msgCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "couple_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		log.Printf("Error creating indexes for messages: %v", err)
		return err
	}

	return nil
}

func (r *ChatRepository) collection() *mongo.Collection {
	return r.client.Database("chat_db").Collection("messages")
}

// 채팅 메시지 삽입
func (r *ChatRepository) InsertMessage(msg *models.Message) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if msg.MessageId.IsZero() {
		msg.MessageId = primitive.NewObjectID()
	}

	_, err := r.collection().InsertOne(ctx, msg)
	if err != nil {
		log.Printf("Failed to insert chat message: %v", err)
		return primitive.NilObjectID, err
	}
	return msg.MessageId, nil
}

// 커플 채팅 내역 조회 (페이지네이션, 최신순)
func (r *ChatRepository) GetMessagesByCoupleID(coupleID int, pageNumber int, pageSize int) ([]*models.Message, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"couple_id": coupleID}

	totalCount, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((pageNumber - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var messages []*models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, err
	}

	return messages, totalCount, nil
}

// 상대방이 보낸 미확인 메시지 일괄 확인 처리, 갱신된 메시지 수 반환
func (r *ChatRepository) MarkMessagesSeen(coupleID int, viewerID int) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// viewer가 보낸 메시지는 건드리지 않음
	filter := bson.M{
		"couple_id": coupleID,
		"sender_id": bson.M{"$ne": viewerID},
		"seen":      false,
	}
	update := bson.M{"$set": bson.M{"seen": true}}

	result, err := r.collection().UpdateMany(ctx, filter, update)
	if err != nil {
		log.Printf("Failed to mark messages seen for couple %d: %v", coupleID, err)
		return 0, err
	}
	return result.ModifiedCount, nil
}

// 유저 기준 미확인 메시지 수 조회
func (r *ChatRepository) CountUnseen(coupleID int, viewerID int) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"couple_id": coupleID,
		"sender_id": bson.M{"$ne": viewerID},
		"seen":      false,
	}
	count, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// 커플의 채팅 내역 일괄 삭제 (계정 삭제 캐스케이드)
func (r *ChatRepository) DeleteMessagesByCoupleID(coupleID int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection().DeleteMany(ctx, bson.M{"couple_id": coupleID})
	if err != nil {
		log.Printf("Failed to delete messages for couple %d: %v", coupleID, err)
		return err
	}
	return nil
}
