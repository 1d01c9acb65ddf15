package repository

import (
	"errors"
	"log"

	"flame/pkg/models"
	"flame/services/match/service"

	"gorm.io/gorm"
)

// ProfileRepository 매칭 쿼리에 필요한 프로필 읽기 전용 저장소
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// 유저 조회 (ID)
func (r *ProfileRepository) GetUserByID(id int) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		log.Printf("❌ Failed to get user by ID %d: %v", id, err)
		return nil, err
	}
	return &user, nil
}

// FindCandidates 요청자에게 보여줄 수 있는 후보 목록 조회
// 본인 제외, 상호 성별 선호 일치, 나이 범위, 요청자가 스와이프한 적 없는 유저만
// 최근 활동순 정렬, 탐색 반경 필터는 서비스 계층에서 적용
func (r *ProfileRepository) FindCandidates(requester *models.User) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("id <> ?", requester.ID).
		Where("gender = ?", requester.LookingFor).
		Where("looking_for = ?", requester.Gender).
		Where("age BETWEEN ? AND ?", requester.AgeMin, requester.AgeMax).
		Where("id NOT IN (?)",
			r.db.Model(&models.Swipe{}).Select("swiped_id").Where("swiper_id = ?", requester.ID)).
		Order("last_seen DESC").
		Find(&users).Error
	if err != nil {
		log.Printf("❌ Failed to find candidates for user %d: %v", requester.ID, err)
		return nil, err
	}
	return users, nil
}
