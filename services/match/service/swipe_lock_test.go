package service

import (
	"sync"
	"testing"

	"flame/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// InnoDB의 MVCC와 잠금 읽기를 흉내내는 저장소.
// 커밋 전 행은 다른 트랜잭션에 보이지 않고, CountMutualLove는 잠금 읽기로
// 역방향 행을 쥔 트랜잭션의 커밋을 기다린다. 상호 대기가 생기면
// 한쪽이 희생자로 롤백되어 ErrTxRetryable을 받는다.
type lockingStore struct {
	mu         sync.Mutex
	cond       *sync.Cond
	swipes     map[[2]int]*models.Swipe // 커밋된 행만
	couples    map[[2]int]*models.Couple
	lockOwners map[[2]int]*lockingTx
	nextID     int
}

func newLockingStore() *lockingStore {
	s := &lockingStore{
		swipes:     make(map[[2]int]*models.Swipe),
		couples:    make(map[[2]int]*models.Couple),
		lockOwners: make(map[[2]int]*lockingTx),
		nextID:     1,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

type lockingTx struct {
	store         *lockingStore
	pendingSwipes map[[2]int]*models.Swipe
	pendingCouple *models.Couple
	waitingFor    *lockingTx
}

func (s *lockingStore) InTx(fn func(tx MatchStore) error) error {
	tx := &lockingTx{store: s, pendingSwipes: make(map[[2]int]*models.Swipe)}
	err := fn(tx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		for key, swipe := range tx.pendingSwipes {
			s.swipes[key] = swipe
		}
		if tx.pendingCouple != nil {
			tx.pendingCouple.ID = s.nextID
			s.nextID++
			s.couples[[2]int{tx.pendingCouple.LowID, tx.pendingCouple.HighID}] = tx.pendingCouple
		}
	}
	tx.releaseLocks()
	s.cond.Broadcast()
	return err
}

// 호출자가 mu를 쥐고 있어야 함
func (tx *lockingTx) releaseLocks() {
	for key, owner := range tx.store.lockOwners {
		if owner == tx {
			delete(tx.store.lockOwners, key)
		}
	}
}

func (tx *lockingTx) InTx(fn func(tx MatchStore) error) error {
	return fn(tx)
}

func (tx *lockingTx) InsertSwipe(swipe *models.Swipe) error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]int{swipe.SwiperID, swipe.SwipedID}
	if _, ok := s.swipes[key]; ok {
		return ErrDuplicated
	}
	if _, ok := tx.pendingSwipes[key]; ok {
		return ErrDuplicated
	}
	s.lockOwners[key] = tx
	tx.pendingSwipes[key] = swipe
	return nil
}

func (tx *lockingTx) CountMutualLove(a, b int) (int64, error) {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// 역방향 행 잠금 읽기: 다른 트랜잭션이 쥐고 있으면 대기
	reverse := [2]int{b, a}
	for {
		owner := s.lockOwners[reverse]
		if owner == nil || owner == tx {
			break
		}
		if owner.waitingFor == tx {
			// 상호 대기, 이 트랜잭션이 희생자로 롤백됨
			tx.releaseLocks()
			s.cond.Broadcast()
			return 0, ErrTxRetryable
		}
		tx.waitingFor = owner
		s.cond.Wait()
		tx.waitingFor = nil
	}

	var count int64
	for _, key := range [][2]int{{a, b}, {b, a}} {
		if swipe, ok := s.swipes[key]; ok && swipe.Love {
			count++
			continue
		}
		if swipe, ok := tx.pendingSwipes[key]; ok && swipe.Love {
			count++
		}
	}
	return count, nil
}

func (tx *lockingTx) InsertCouple(couple *models.Couple) error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]int{couple.LowID, couple.HighID}
	if _, ok := s.couples[key]; ok {
		return ErrDuplicated
	}
	tx.pendingCouple = couple
	return nil
}

func (tx *lockingTx) GetCoupleByPair(lowID, highID int) (*models.Couple, error) {
	return tx.store.GetCoupleByPair(lowID, highID)
}

func (tx *lockingTx) GetCoupleByID(coupleID int) (*models.Couple, error) {
	return tx.store.GetCoupleByID(coupleID)
}

func (tx *lockingTx) SetCoupleSeen(coupleID int, viewerID int) error {
	return nil
}

func (tx *lockingTx) GetCouplesByUserID(userID int) ([]models.Couple, error) {
	return nil, nil
}

func (s *lockingStore) InsertSwipe(swipe *models.Swipe) error       { return nil }
func (s *lockingStore) CountMutualLove(a, b int) (int64, error)     { return 0, nil }
func (s *lockingStore) InsertCouple(couple *models.Couple) error    { return nil }
func (s *lockingStore) SetCoupleSeen(coupleID, viewerID int) error  { return nil }
func (s *lockingStore) GetCouplesByUserID(int) ([]models.Couple, error) {
	return nil, nil
}

func (s *lockingStore) GetCoupleByPair(lowID, highID int) (*models.Couple, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if couple, ok := s.couples[[2]int{lowID, highID}]; ok {
		return couple, nil
	}
	return nil, ErrNotFound
}

func (s *lockingStore) GetCoupleByID(coupleID int) (*models.Couple, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, couple := range s.couples {
		if couple.ID == coupleID {
			return couple, nil
		}
	}
	return nil, ErrNotFound
}

// 동시 상호 수락에서 스냅샷 읽기라면 양쪽 다 상대 행을 못 보고
// 커플이 0개가 된다. 잠금 카운트 + 희생자 재시도로 정확히 1개가 보장되어야 함
func TestRecordSwipeConcurrentAcceptLockingCount(t *testing.T) {
	for i := 0; i < 50; i++ {
		store := newLockingStore()
		svc := NewMatchService(store, newFakeProfileStore(), &fakeEmitter{})

		var wg sync.WaitGroup
		results := make([]*SwipeResult, 2)
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			results[0], errs[0] = svc.RecordSwipe(1, 2, true)
		}()
		go func() {
			defer wg.Done()
			results[1], errs[1] = svc.RecordSwipe(2, 1, true)
		}()
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		// 0개도 2개도 아닌 정확히 1개
		require.Len(t, store.couples, 1)

		matched := 0
		for _, result := range results {
			if result.Matched {
				matched++
			}
		}
		assert.GreaterOrEqual(t, matched, 1, "at least one side must observe the match")

		couple := store.couples[[2]int{1, 2}]
		require.NotNil(t, couple)
		assert.Equal(t, 1, couple.LowID)
		assert.Equal(t, 2, couple.HighID)
	}
}

// 데드락 희생자로 롤백된 트랜잭션은 통째로 재시도되어 성공해야 함
func TestRecordSwipeRetriesDeadlockVictim(t *testing.T) {
	inner := newFakeMatchStore()
	store := &flakyStore{fakeMatchStore: inner, failures: 2}
	svc := NewMatchService(store, newFakeProfileStore(), &fakeEmitter{})

	result, err := svc.RecordSwipe(1, 2, true)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, 0, store.failures)
	assert.Len(t, inner.swipes, 1)
}

// 재시도 상한을 넘기면 에러가 그대로 올라감
func TestRecordSwipeRetryExhausted(t *testing.T) {
	store := &flakyStore{fakeMatchStore: newFakeMatchStore(), failures: maxSwipeAttempts}
	svc := NewMatchService(store, newFakeProfileStore(), &fakeEmitter{})

	_, err := svc.RecordSwipe(1, 2, true)
	assert.ErrorIs(t, err, ErrTxRetryable)
}

// 처음 몇 번의 트랜잭션을 데드락 희생자처럼 롤백시키는 래퍼
type flakyStore struct {
	*fakeMatchStore
	failures int
}

func (s *flakyStore) InTx(fn func(tx MatchStore) error) error {
	if s.failures > 0 {
		s.failures--
		return ErrTxRetryable
	}
	return s.fakeMatchStore.InTx(fn)
}
