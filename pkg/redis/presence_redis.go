package redis

import (
	"fmt"

	"github.com/go-redis/redis/v8"
)

const activeKey = "client:active"

// 실시간 연결 중인 유저 등록
func (r *RedisClient) RegisterActiveUser(userID string, serverID string) error {
	if err := r.Client.HSet(ctx, activeKey, userID, serverID).Err(); err != nil {
		return fmt.Errorf("failed to register active user %s: %v", userID, err)
	}
	return nil
}

// 실시간 연결 종료된 유저 제거
func (r *RedisClient) UnregisterActiveUser(userID string) error {
	if err := r.Client.HDel(ctx, activeKey, userID).Err(); err != nil {
		return fmt.Errorf("failed to unregister active user %s: %v", userID, err)
	}
	return nil
}

// 유저 실시간 연결 여부 확인
func (r *RedisClient) IsActiveUser(userID string) (bool, error) {
	_, err := r.Client.HGet(ctx, activeKey, userID).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to check active status for user %s: %v", userID, err)
	}
	return true, nil
}
