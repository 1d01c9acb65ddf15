package models

import "time"

// Swipe 한 방향 스와이프 기록, 한 번 생성되면 수정/삭제되지 않음
type Swipe struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	SwiperID  int       `gorm:"uniqueIndex:idx_swiper_swiped;index" json:"swiper_id"`
	SwipedID  int       `gorm:"uniqueIndex:idx_swiper_swiped" json:"swiped_id"`
	Love      bool      `json:"love"`
	CreatedAt time.Time `json:"created_at"`
}

// Couple 상호 매칭 결과, 멤버 쌍당 정확히 하나만 존재
// LowID < HighID 순서로 저장하여 (A,B)와 (B,A)가 같은 행이 되도록 함
type Couple struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	LowID     int       `gorm:"uniqueIndex:idx_couple_pair;index" json:"low_id"`
	HighID    int       `gorm:"uniqueIndex:idx_couple_pair;index" json:"high_id"`
	LowSeen   bool      `gorm:"default:false" json:"low_seen"`
	HighSeen  bool      `gorm:"default:false" json:"high_seen"`
	CreatedAt time.Time `json:"created_at"`
}

// Member 해당 유저가 커플의 멤버인지 확인
func (c *Couple) Member(userID int) bool {
	return c.LowID == userID || c.HighID == userID
}

// Partner 커플에서 상대방 ID 반환, 멤버가 아니면 -1
func (c *Couple) Partner(userID int) int {
	switch userID {
	case c.LowID:
		return c.HighID
	case c.HighID:
		return c.LowID
	}
	return -1
}

// OrderPair 커플 저장 순서 정규화
func OrderPair(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
