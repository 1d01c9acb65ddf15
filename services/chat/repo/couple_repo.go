package repo

import (
	"errors"

	"flame/pkg/models"
	"flame/services/chat/service"

	"gorm.io/gorm"
)

// CoupleRepository 채팅 권한 검사에 필요한 커플 조회 전용 저장소
type CoupleRepository struct {
	db *gorm.DB
}

func NewCoupleRepository(db *gorm.DB) *CoupleRepository {
	return &CoupleRepository{db: db}
}

func (r *CoupleRepository) GetCoupleByID(coupleID int) (*models.Couple, error) {
	var couple models.Couple
	if err := r.db.First(&couple, coupleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &couple, nil
}
