package repository

import (
	"errors"
	"fmt"
	"log"

	"flame/pkg/models"
	"flame/services/match/service"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// 데이터베이스 초기화
func (r *MatchRepository) InitDB() error {
	err := r.db.AutoMigrate(&models.Swipe{}, &models.Couple{})
	if err != nil {
		log.Printf("❌ Failed to migrate tables: %v", err)
		return err
	}
	log.Println("✅ Tables swipes and couples migrated or already exist.")
	return nil
}

// InTx 스와이프+매칭 판정을 트랜잭션 하나로 묶어 실행
// 콜백이 에러를 반환하면 롤백, 아니면 커밋됨
func (r *MatchRepository) InTx(fn func(tx service.MatchStore) error) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&MatchRepository{db: tx})
	})
	if err != nil && isLockConflict(err) {
		return fmt.Errorf("%w: %v", service.ErrTxRetryable, err)
	}
	return err
}

// InnoDB 데드락 희생자(1213)와 락 대기 초과(1205)는 롤백 후 재시도 대상
func isLockConflict(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}

// 스와이프 기록 삽입, (swiper, swiped) 중복은 service.ErrDuplicated
func (r *MatchRepository) InsertSwipe(swipe *models.Swipe) error {
	if err := r.db.Create(swipe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return service.ErrDuplicated
		}
		log.Printf("❌ Failed to insert swipe %d -> %d: %v", swipe.SwiperID, swipe.SwipedID, err)
		return err
	}
	return nil
}

// 양방향 수락 스와이프 수 조회, 2이면 상호 매칭
// FOR UPDATE 잠금 읽기: 스냅샷이 아니라 커밋된 최신 상태를 본다
// 상대방 트랜잭션이 역방향 스와이프를 넣는 중이면 그 커밋을 기다림
func (r *MatchRepository) CountMutualLove(a, b int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Swipe{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("(swiper_id = ? AND swiped_id = ? AND love = ?) OR (swiper_id = ? AND swiped_id = ? AND love = ?)",
			a, b, true, b, a, true).
		Count(&count).Error
	if err != nil {
		log.Printf("❌ Failed to count mutual love for %d, %d: %v", a, b, err)
		return 0, err
	}
	return count, nil
}

// 커플 삽입, 멤버 쌍 중복은 service.ErrDuplicated
func (r *MatchRepository) InsertCouple(couple *models.Couple) error {
	if err := r.db.Create(couple).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return service.ErrDuplicated
		}
		log.Printf("❌ Failed to insert couple (%d, %d): %v", couple.LowID, couple.HighID, err)
		return err
	}
	return nil
}

// 멤버 쌍으로 커플 조회
func (r *MatchRepository) GetCoupleByPair(lowID, highID int) (*models.Couple, error) {
	var couple models.Couple
	err := r.db.Where("low_id = ? AND high_id = ?", lowID, highID).First(&couple).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		log.Printf("❌ Failed to get couple (%d, %d): %v", lowID, highID, err)
		return nil, err
	}
	return &couple, nil
}

// ID로 커플 조회
func (r *MatchRepository) GetCoupleByID(coupleID int) (*models.Couple, error) {
	var couple models.Couple
	err := r.db.First(&couple, coupleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		log.Printf("❌ Failed to get couple by ID %d: %v", coupleID, err)
		return nil, err
	}
	return &couple, nil
}

// 매칭 확인 플래그 갱신, 본인 쪽 플래그만 변경
func (r *MatchRepository) SetCoupleSeen(coupleID int, viewerID int) error {
	result := r.db.Model(&models.Couple{}).
		Where("id = ? AND low_id = ?", coupleID, viewerID).
		Update("low_seen", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	result = r.db.Model(&models.Couple{}).
		Where("id = ? AND high_id = ?", coupleID, viewerID).
		Update("high_seen", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

// 유저가 속한 커플 목록 조회
func (r *MatchRepository) GetCouplesByUserID(userID int) ([]models.Couple, error) {
	var couples []models.Couple
	err := r.db.Where("low_id = ? OR high_id = ?", userID, userID).Find(&couples).Error
	if err != nil {
		log.Printf("❌ Failed to get couples for user %d: %v", userID, err)
		return nil, err
	}
	return couples, nil
}

// 탈퇴 유저의 스와이프/커플 기록 일괄 삭제 (계정 삭제 캐스케이드)
func (r *MatchRepository) DeleteUserHistory(userID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("swiper_id = ? OR swiped_id = ?", userID, userID).
			Delete(&models.Swipe{}).Error; err != nil {
			return err
		}
		return tx.Where("low_id = ? OR high_id = ?", userID, userID).
			Delete(&models.Couple{}).Error
	})
}
