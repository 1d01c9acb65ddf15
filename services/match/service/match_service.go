package service

import (
	"errors"
	"fmt"
	"time"

	"flame/pkg/geo"
	"flame/pkg/helper"
	"flame/pkg/logger"
	"flame/pkg/models"

	eventtypes "flame/pkg/types/eventtype"

	"github.com/samber/lo"
)

var (
	ErrSelfSwipe     = errors.New("cannot swipe yourself")
	ErrSwipeConflict = errors.New("already swiped this user")
	ErrNoCandidate   = errors.New("no candidate found")
	ErrNotFound      = errors.New("couple not found")
	ErrForbidden     = errors.New("user is not a member of this couple")

	// ErrDuplicated 저장소가 유니크 제약 위반을 보고할 때 사용하는 에러
	ErrDuplicated = errors.New("duplicated key")

	// ErrTxRetryable 데드락 희생자로 롤백된 트랜잭션, 재시도하면 성공할 수 있음
	ErrTxRetryable = errors.New("transaction rolled back, retry")
)

// 데드락 희생자 재시도 상한
const maxSwipeAttempts = 3

// MatchStore 스와이프/커플 저장소, InTx 안에서 받은 스토어는 같은 트랜잭션에 바인딩됨
type MatchStore interface {
	InTx(fn func(tx MatchStore) error) error
	InsertSwipe(swipe *models.Swipe) error
	CountMutualLove(a, b int) (int64, error)
	InsertCouple(couple *models.Couple) error
	GetCoupleByPair(lowID, highID int) (*models.Couple, error)
	GetCoupleByID(coupleID int) (*models.Couple, error)
	SetCoupleSeen(coupleID int, viewerID int) error
	GetCouplesByUserID(userID int) ([]models.Couple, error)
}

// ProfileStore 후보 조회에 필요한 프로필 읽기 전용 접근
type ProfileStore interface {
	GetUserByID(id int) (*models.User, error)
	FindCandidates(requester *models.User) ([]models.User, error)
}

type MQEmitter interface {
	PublishCoupleMatchEvent(event eventtypes.CoupleMatchEvent) error
}

type MatchService struct {
	matchStore   MatchStore
	profileStore ProfileStore
	emitter      MQEmitter
	now          func() time.Time
}

func NewMatchService(matchStore MatchStore, profileStore ProfileStore, emitter MQEmitter) *MatchService {
	return &MatchService{
		matchStore:   matchStore,
		profileStore: profileStore,
		emitter:      emitter,
		now:          time.Now,
	}
}

// Candidate 후보 프로필과 요청자로부터의 거리
type Candidate struct {
	User       models.User
	DistanceKm float64
}

// SelectCandidate 요청자에게 보여줄 후보 1명 선택
// 저장소 쿼리가 성별/나이/스와이프 이력 필터와 최근 활동순 정렬을 담당하고,
// 탐색 반경 필터는 하버사인 거리로 여기서 적용함
func (s *MatchService) SelectCandidate(requesterID int) (*Candidate, error) {
	requester, err := s.profileStore.GetUserByID(requesterID)
	if err != nil {
		return nil, err
	}

	users, err := s.profileStore.FindCandidates(requester)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	candidates := lo.FilterMap(users, func(user models.User, _ int) (Candidate, bool) {
		d := geo.HaversineKm(requester.Latitude, requester.Longitude, user.Latitude, user.Longitude)
		// 반경 경계값은 포함
		if d > float64(requester.SearchRadius) {
			return Candidate{}, false
		}
		return Candidate{User: user, DistanceKm: d}, true
	})

	if len(candidates) == 0 {
		return nil, ErrNoCandidate
	}

	// 저장소가 last_seen 내림차순으로 정렬해주므로 첫 번째가 가장 최근 활동 유저
	return &candidates[0], nil
}

// SwipeResult 스와이프 처리 결과
type SwipeResult struct {
	Matched bool
	Couple  *models.Couple
}

// RecordSwipe 스와이프 1건 기록 후 상호 매칭 여부 판정
// 스와이프 삽입 → 양방향 수락 카운트 → 커플 생성이 하나의 트랜잭션으로 묶임
// 양쪽이 동시에 수락하면 카운트의 잠금 읽기가 교착을 일으킬 수 있고,
// 희생자 쪽은 전체 트랜잭션을 재시도함
func (s *MatchService) RecordSwipe(swiperID, swipedID int, love bool) (*SwipeResult, error) {
	if swiperID == swipedID {
		return nil, ErrSelfSwipe
	}

	var result *SwipeResult
	var err error
	for attempt := 1; attempt <= maxSwipeAttempts; attempt++ {
		result, err = s.recordSwipeTx(swiperID, swipedID, love)
		if !errors.Is(err, ErrTxRetryable) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	if result.Matched {
		logger.Info(logger.LogEventMatchSuccess,
			fmt.Sprintf("Mutual match: %d <-> %d", swiperID, swipedID), result.Couple)
		s.notifyCoupleMatch(result.Couple)
	} else {
		logger.Info(logger.LogEventSwipeRecorded,
			fmt.Sprintf("Swipe recorded: %d -> %d", swiperID, swipedID), nil)
	}

	return result, nil
}

func (s *MatchService) recordSwipeTx(swiperID, swipedID int, love bool) (*SwipeResult, error) {
	result := &SwipeResult{}
	err := s.matchStore.InTx(func(tx MatchStore) error {
		swipe := &models.Swipe{
			SwiperID:  swiperID,
			SwipedID:  swipedID,
			Love:      love,
			CreatedAt: s.now(),
		}
		if err := tx.InsertSwipe(swipe); err != nil {
			if errors.Is(err, ErrDuplicated) {
				// 같은 상대를 두 번 스와이프, 기존 기록은 유지됨
				return ErrSwipeConflict
			}
			return err
		}

		if !love {
			return nil
		}

		count, err := tx.CountMutualLove(swiperID, swipedID)
		if err != nil {
			return err
		}
		if count != 2 {
			return nil
		}

		// 양방향 수락 확인, 커플 생성
		lowID, highID := models.OrderPair(swiperID, swipedID)
		couple := &models.Couple{
			LowID:     lowID,
			HighID:    highID,
			CreatedAt: s.now(),
		}
		err = tx.InsertCouple(couple)
		if errors.Is(err, ErrDuplicated) {
			// 동시 스와이프 경쟁에서 진 쪽, 이미 존재하는 커플을 조회
			existing, getErr := tx.GetCoupleByPair(lowID, highID)
			if getErr != nil {
				return getErr
			}
			result.Matched = true
			result.Couple = existing
			return nil
		}
		if err != nil {
			return err
		}

		result.Matched = true
		result.Couple = couple
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TickSeen 매칭 확인 처리, 본인 플래그만 변경됨
func (s *MatchService) TickSeen(coupleID, viewerID int) error {
	couple, err := s.matchStore.GetCoupleByID(coupleID)
	if err != nil {
		return err
	}
	if !couple.Member(viewerID) {
		return ErrForbidden
	}
	return s.matchStore.SetCoupleSeen(coupleID, viewerID)
}

// GetCouples 유저가 속한 커플 목록 조회
func (s *MatchService) GetCouples(userID int) ([]models.Couple, error) {
	return s.matchStore.GetCouplesByUserID(userID)
}

// 매칭 성공 이벤트 MQ 발행
func (s *MatchService) notifyCoupleMatch(couple *models.Couple) {
	matchEvent := eventtypes.CoupleMatchEvent{
		CoupleID:  couple.ID,
		MemberIDs: []int{couple.LowID, couple.HighID},
		MatchedAt: couple.CreatedAt,
	}

	if err := s.emitter.PublishCoupleMatchEvent(matchEvent); err != nil {
		logger.Error(logger.LogEventError,
			fmt.Sprintf("Failed to publish couple match event: %v", err), helper.ToJSON(matchEvent))
	}
}
