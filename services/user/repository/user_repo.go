package repository

import (
	"errors"
	"time"

	"flame/pkg/models"
	"flame/services/user/service"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// InitDB 유저 테이블 마이그레이션
func (r *UserRepository) InitDB() error {
	return r.db.AutoMigrate(&models.User{})
}

func (r *UserRepository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return service.ErrDuplicated
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByID(userID int) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateLastSeen 활동 시각만 갱신
func (r *UserRepository) UpdateLastSeen(userID int, seenAt time.Time) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen", seenAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(userID int) error {
	result := r.db.Delete(&models.User{}, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}
