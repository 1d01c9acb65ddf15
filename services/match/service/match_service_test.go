package service

import (
	"sync"
	"testing"
	"time"

	"flame/pkg/models"

	eventtypes "flame/pkg/types/eventtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 인메모리 MatchStore, 유니크 제약을 맵 키로 흉내냄
type fakeMatchStore struct {
	mu       sync.Mutex
	swipes   map[[2]int]*models.Swipe
	couples  map[[2]int]*models.Couple
	nextID   int
	inTxLock sync.Mutex
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{
		swipes:  make(map[[2]int]*models.Swipe),
		couples: make(map[[2]int]*models.Couple),
		nextID:  1,
	}
}

// 트랜잭션 직렬화, 실제 DB의 행 잠금을 거칠게 흉내냄
func (f *fakeMatchStore) InTx(fn func(tx MatchStore) error) error {
	f.inTxLock.Lock()
	defer f.inTxLock.Unlock()
	return fn(f)
}

func (f *fakeMatchStore) InsertSwipe(swipe *models.Swipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int{swipe.SwiperID, swipe.SwipedID}
	if _, ok := f.swipes[key]; ok {
		return ErrDuplicated
	}
	f.swipes[key] = swipe
	return nil
}

func (f *fakeMatchStore) CountMutualLove(a, b int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	if s, ok := f.swipes[[2]int{a, b}]; ok && s.Love {
		count++
	}
	if s, ok := f.swipes[[2]int{b, a}]; ok && s.Love {
		count++
	}
	return count, nil
}

func (f *fakeMatchStore) InsertCouple(couple *models.Couple) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int{couple.LowID, couple.HighID}
	if _, ok := f.couples[key]; ok {
		return ErrDuplicated
	}
	couple.ID = f.nextID
	f.nextID++
	f.couples[key] = couple
	return nil
}

func (f *fakeMatchStore) GetCoupleByPair(lowID, highID int) (*models.Couple, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.couples[[2]int{lowID, highID}]; ok {
		return c, nil
	}
	return nil, ErrNotFound
}

func (f *fakeMatchStore) GetCoupleByID(coupleID int) (*models.Couple, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.couples {
		if c.ID == coupleID {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeMatchStore) SetCoupleSeen(coupleID int, viewerID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.couples {
		if c.ID != coupleID {
			continue
		}
		switch viewerID {
		case c.LowID:
			c.LowSeen = true
		case c.HighID:
			c.HighSeen = true
		}
		return nil
	}
	return ErrNotFound
}

func (f *fakeMatchStore) GetCouplesByUserID(userID int) ([]models.Couple, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var couples []models.Couple
	for _, c := range f.couples {
		if c.Member(userID) {
			couples = append(couples, *c)
		}
	}
	return couples, nil
}

type fakeProfileStore struct {
	users  map[int]*models.User
	swiped map[int]map[int]bool // swiper -> swiped set
}

func newFakeProfileStore(users ...*models.User) *fakeProfileStore {
	s := &fakeProfileStore{
		users:  make(map[int]*models.User),
		swiped: make(map[int]map[int]bool),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (f *fakeProfileStore) GetUserByID(id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeProfileStore) FindCandidates(requester *models.User) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.ID == requester.ID {
			continue
		}
		if u.Gender != requester.LookingFor || u.LookingFor != requester.Gender {
			continue
		}
		if u.Age < requester.AgeMin || u.Age > requester.AgeMax {
			continue
		}
		if f.swiped[requester.ID][u.ID] {
			continue
		}
		out = append(out, *u)
	}
	// last_seen 내림차순
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].LastSeen.After(out[i].LastSeen) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []eventtypes.CoupleMatchEvent
}

func (f *fakeEmitter) PublishCoupleMatchEvent(event eventtypes.CoupleMatchEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func newTestService() (*MatchService, *fakeMatchStore, *fakeProfileStore, *fakeEmitter) {
	store := newFakeMatchStore()
	profiles := newFakeProfileStore()
	emitter := &fakeEmitter{}
	return NewMatchService(store, profiles, emitter), store, profiles, emitter
}

func TestRecordSwipeSelfSwipe(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.RecordSwipe(1, 1, true)
	assert.ErrorIs(t, err, ErrSelfSwipe)
}

func TestRecordSwipeRecordedThenMatched(t *testing.T) {
	svc, store, _, emitter := newTestService()

	// A -> B 수락: 아직 매칭 아님
	result, err := svc.RecordSwipe(1, 2, true)
	require.NoError(t, err)
	assert.False(t, result.Matched)

	// B -> A 수락: 매칭 성사
	result, err = svc.RecordSwipe(2, 1, true)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	require.NotNil(t, result.Couple)
	assert.Equal(t, 1, result.Couple.LowID)
	assert.Equal(t, 2, result.Couple.HighID)

	// 커플은 정확히 하나
	assert.Len(t, store.couples, 1)

	// 매칭 이벤트 발행 확인
	require.Len(t, emitter.events, 1)
	assert.ElementsMatch(t, []int{1, 2}, emitter.events[0].MemberIDs)
}

func TestRecordSwipeRejectNeverMatches(t *testing.T) {
	svc, store, _, _ := newTestService()

	result, err := svc.RecordSwipe(1, 2, true)
	require.NoError(t, err)
	assert.False(t, result.Matched)

	// 거절 스와이프는 매칭을 만들지 않음
	result, err = svc.RecordSwipe(2, 1, false)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, store.couples)
}

func TestRecordSwipeDuplicateConflict(t *testing.T) {
	svc, store, _, _ := newTestService()

	_, err := svc.RecordSwipe(1, 2, true)
	require.NoError(t, err)

	// 같은 상대를 두 번 스와이프하면 Conflict, 원본 기록은 유지
	_, err = svc.RecordSwipe(1, 2, false)
	assert.ErrorIs(t, err, ErrSwipeConflict)
	assert.Len(t, store.swipes, 1)
	assert.True(t, store.swipes[[2]int{1, 2}].Love)
}

func TestRecordSwipeConcurrentMutualAccept(t *testing.T) {
	// A와 B가 거의 동시에 서로 수락해도 커플은 정확히 하나 생성됨
	for i := 0; i < 50; i++ {
		svc, store, _, _ := newTestService()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.RecordSwipe(1, 2, true)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.RecordSwipe(2, 1, true)
			assert.NoError(t, err)
		}()
		wg.Wait()

		assert.Len(t, store.couples, 1, "exactly one couple must exist")
	}
}

func TestSelectCandidateFilters(t *testing.T) {
	now := time.Now()
	requester := &models.User{
		ID: 1, Gender: models.MALE, LookingFor: models.FEMALE,
		Age: 30, AgeMin: 25, AgeMax: 35, SearchRadius: 50,
		Latitude: 37.5665, Longitude: 126.9780, // 서울
	}
	near := &models.User{
		ID: 2, Gender: models.FEMALE, LookingFor: models.MALE,
		Age: 28, Latitude: 37.4563, Longitude: 126.7052, // 인천, 약 27km
		LastSeen: now.Add(-time.Hour),
	}
	far := &models.User{
		ID: 3, Gender: models.FEMALE, LookingFor: models.MALE,
		Age: 29, Latitude: 35.1796, Longitude: 129.0756, // 부산, 약 325km
		LastSeen: now,
	}
	wrongAge := &models.User{
		ID: 4, Gender: models.FEMALE, LookingFor: models.MALE,
		Age: 40, Latitude: 37.5665, Longitude: 126.9780,
		LastSeen: now,
	}

	store := newFakeMatchStore()
	profiles := newFakeProfileStore(requester, near, far, wrongAge)
	svc := NewMatchService(store, profiles, &fakeEmitter{})

	// 반경/나이 필터를 모두 통과하는 후보는 near뿐
	candidate, err := svc.SelectCandidate(1)
	require.NoError(t, err)
	assert.Equal(t, 2, candidate.User.ID)
	assert.InDelta(t, 27, candidate.DistanceKm, 3)
}

func TestSelectCandidateFreshnessOrder(t *testing.T) {
	now := time.Now()
	requester := &models.User{
		ID: 1, Gender: models.MALE, LookingFor: models.FEMALE,
		Age: 30, AgeMin: 20, AgeMax: 40, SearchRadius: 100,
		Latitude: 37.5665, Longitude: 126.9780,
	}
	older := &models.User{
		ID: 2, Gender: models.FEMALE, LookingFor: models.MALE,
		Age: 28, Latitude: 37.5665, Longitude: 126.9780,
		LastSeen: now.Add(-24 * time.Hour),
	}
	fresher := &models.User{
		ID: 3, Gender: models.FEMALE, LookingFor: models.MALE,
		Age: 29, Latitude: 37.5665, Longitude: 126.9780,
		LastSeen: now,
	}

	svc := NewMatchService(newFakeMatchStore(), newFakeProfileStore(requester, older, fresher), &fakeEmitter{})

	// 가장 최근 활동 유저가 우선
	candidate, err := svc.SelectCandidate(1)
	require.NoError(t, err)
	assert.Equal(t, 3, candidate.User.ID)
}

func TestSelectCandidateNoCandidate(t *testing.T) {
	requester := &models.User{
		ID: 1, Gender: models.MALE, LookingFor: models.FEMALE,
		Age: 30, AgeMin: 25, AgeMax: 35, SearchRadius: 50,
	}

	svc := NewMatchService(newFakeMatchStore(), newFakeProfileStore(requester), &fakeEmitter{})

	// 빈 결과는 에러가 아니라 ErrNoCandidate로 구분됨
	_, err := svc.SelectCandidate(1)
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestSelectCandidateRadiusBoundary(t *testing.T) {
	requester := &models.User{
		ID: 1, Gender: models.MALE, LookingFor: models.FEMALE,
		Age: 30, AgeMin: 20, AgeMax: 40, SearchRadius: 112,
		Latitude: 0, Longitude: 0,
	}
	// 적도에서 경도 1도 ≈ 111.19km, 반경 112km 안
	inside := &models.User{
		ID: 2, Gender: models.FEMALE, LookingFor: models.MALE,
		Age: 30, Latitude: 0, Longitude: 1,
	}

	svc := NewMatchService(newFakeMatchStore(), newFakeProfileStore(requester, inside), &fakeEmitter{})
	candidate, err := svc.SelectCandidate(1)
	require.NoError(t, err)
	assert.Equal(t, 2, candidate.User.ID)

	// 반경을 거리 미만으로 줄이면 제외됨
	requester.SearchRadius = 111
	_, err = svc.SelectCandidate(1)
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestTickSeen(t *testing.T) {
	svc, store, _, _ := newTestService()

	_, err := svc.RecordSwipe(1, 2, true)
	require.NoError(t, err)
	result, err := svc.RecordSwipe(2, 1, true)
	require.NoError(t, err)
	require.True(t, result.Matched)

	coupleID := result.Couple.ID

	// 멤버가 아닌 유저는 Forbidden
	err = svc.TickSeen(coupleID, 99)
	assert.ErrorIs(t, err, ErrForbidden)

	// 본인 플래그만 변경됨
	require.NoError(t, svc.TickSeen(coupleID, 1))
	couple, err := store.GetCoupleByID(coupleID)
	require.NoError(t, err)
	assert.True(t, couple.LowSeen)
	assert.False(t, couple.HighSeen)
}
