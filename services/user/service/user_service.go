package service

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"flame/pkg/dto"
	"flame/pkg/geo"
	"flame/pkg/logger"
	"flame/pkg/models"

	"github.com/google/uuid"
)

const MaxDescriptionRunes = 500

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicated     = errors.New("duplicated record")
	ErrEmailTaken     = errors.New("email already registered")
	ErrValueRejected  = errors.New("profile value rejected")
	ErrSessionInvalid = errors.New("session invalid")
)

// UserStore 유저 프로필 저장소
type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByID(userID int) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdateLastSeen(userID int, seenAt time.Time) error
	DeleteUser(userID int) error
}

// MatchHistoryStore 스와이프/커플 기록 삭제용
type MatchHistoryStore interface {
	GetCouplesByUserID(userID int) ([]models.Couple, error)
	DeleteUserHistory(userID int) error
}

// MessagePurger 커플 채팅 내역 삭제용
type MessagePurger interface {
	DeleteMessagesByCoupleID(coupleID int) error
}

// SessionStore 세션 발급/삭제
type SessionStore interface {
	SetSession(sessionID string, userID int) error
	Delete(key string) error
}

type UserService struct {
	users    UserStore
	matches  MatchHistoryStore
	messages MessagePurger
	sessions SessionStore

	now func() time.Time
}

func NewUserService(users UserStore, matches MatchHistoryStore, messages MessagePurger, sessions SessionStore) *UserService {
	return &UserService{
		users:    users,
		matches:  matches,
		messages: messages,
		sessions: sessions,
		now:      time.Now,
	}
}

// 프로필 값 검증, 거부 시 ErrValueRejected로 래핑
func validateProfile(name string, gender, lookingFor, age int, latitude, longitude float64, searchRadius, ageMin, ageMax int, description string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValueRejected)
	}
	if gender != models.MALE && gender != models.FEMALE {
		return fmt.Errorf("%w: invalid gender %d", ErrValueRejected, gender)
	}
	if lookingFor != models.MALE && lookingFor != models.FEMALE {
		return fmt.Errorf("%w: invalid looking_for %d", ErrValueRejected, lookingFor)
	}
	if age < 18 {
		return fmt.Errorf("%w: age must be at least 18", ErrValueRejected)
	}
	if !geo.ValidCoordinates(latitude, longitude) {
		return fmt.Errorf("%w: invalid coordinates (%f, %f)", ErrValueRejected, latitude, longitude)
	}
	if searchRadius < 1 {
		return fmt.Errorf("%w: search radius must be positive", ErrValueRejected)
	}
	if ageMin < 18 || ageMax > 99 || ageMin > ageMax {
		return fmt.Errorf("%w: invalid age range [%d, %d]", ErrValueRejected, ageMin, ageMax)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionRunes {
		return fmt.Errorf("%w: description too long", ErrValueRejected)
	}
	return nil
}

// RegisterUser 유저 등록 후 세션 발급
func (s *UserService) RegisterUser(req *dto.RegisterUserRequest) (*models.User, string, error) {
	if err := validateProfile(req.Name, req.Gender, req.LookingFor, req.Age,
		req.Latitude, req.Longitude, req.SearchRadius, req.AgeMin, req.AgeMax, req.Description); err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Gender:       req.Gender,
		LookingFor:   req.LookingFor,
		Age:          req.Age,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		SearchRadius: req.SearchRadius,
		AgeMin:       req.AgeMin,
		AgeMax:       req.AgeMax,
		Description:  req.Description,
		LastSeen:     s.now(),
	}

	if err := s.users.CreateUser(user); err != nil {
		if errors.Is(err, ErrDuplicated) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %v", err)
	}

	sessionID, err := s.issueSession(user.ID)
	if err != nil {
		return nil, "", err
	}

	logger.Info(logger.LogEventUserRegister,
		fmt.Sprintf("User registered: %d", user.ID), nil)
	return user, sessionID, nil
}

// LoginUser 이메일로 로그인, 세션 발급 및 last_seen 갱신
func (s *UserService) LoginUser(email string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.UpdateLastSeen(user.ID, s.now()); err != nil {
		return nil, "", fmt.Errorf("failed to update last seen: %v", err)
	}

	sessionID, err := s.issueSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, sessionID, nil
}

func (s *UserService) issueSession(userID int) (string, error) {
	sessionID := uuid.New().String()
	if err := s.sessions.SetSession(sessionID, userID); err != nil {
		return "", fmt.Errorf("failed to create session: %v", err)
	}
	return sessionID, nil
}

// GetProfile 프로필 조회
func (s *UserService) GetProfile(userID int) (*models.User, error) {
	return s.users.GetUserByID(userID)
}

// UpdateProfile 프로필 수정, 활동 시각도 함께 갱신
func (s *UserService) UpdateProfile(userID int, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := validateProfile(req.Name, req.Gender, req.LookingFor, req.Age,
		req.Latitude, req.Longitude, req.SearchRadius, req.AgeMin, req.AgeMax, req.Description); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Gender = req.Gender
	user.LookingFor = req.LookingFor
	user.Age = req.Age
	user.Latitude = req.Latitude
	user.Longitude = req.Longitude
	user.SearchRadius = req.SearchRadius
	user.AgeMin = req.AgeMin
	user.AgeMax = req.AgeMax
	user.Description = req.Description
	user.LastSeen = s.now()

	if err := s.users.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %v", err)
	}
	return user, nil
}

// TouchLastSeen 활동 시각 갱신, 후보 신선도 순위에 사용됨
func (s *UserService) TouchLastSeen(userID int) error {
	return s.users.UpdateLastSeen(userID, s.now())
}

// DeleteAccount 계정 삭제, 스와이프/커플/채팅 내역도 함께 제거
func (s *UserService) DeleteAccount(userID int, sessionID string) error {
	if _, err := s.users.GetUserByID(userID); err != nil {
		return err
	}

	// 채팅 내역 먼저 정리 (커플 목록이 필요함)
	couples, err := s.matches.GetCouplesByUserID(userID)
	if err != nil {
		return fmt.Errorf("failed to list couples: %v", err)
	}
	for _, couple := range couples {
		if err := s.messages.DeleteMessagesByCoupleID(couple.ID); err != nil {
			logger.Error(logger.LogEventError,
				fmt.Sprintf("Failed to delete messages for couple %d: %v", couple.ID, err), nil)
		}
	}

	if err := s.matches.DeleteUserHistory(userID); err != nil {
		return fmt.Errorf("failed to delete match history: %v", err)
	}
	if err := s.users.DeleteUser(userID); err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}

	if sessionID != "" {
		if err := s.sessions.Delete(sessionID); err != nil {
			logger.Error(logger.LogEventError,
				fmt.Sprintf("Failed to delete session for user %d: %v", userID, err), nil)
		}
	}

	logger.Info(logger.LogEventUserDelete,
		fmt.Sprintf("User deleted: %d", userID), nil)
	return nil
}
