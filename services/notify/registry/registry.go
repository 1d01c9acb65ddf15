package registry

import (
	"sync"

	eventtypes "flame/pkg/types/eventtype"

	"github.com/google/uuid"
)

// 클라이언트당 송신 버퍼 크기, 가득 차면 이벤트는 버려짐
const sendBufferSize = 256

// Client 살아있는 실시간 연결 하나
type Client struct {
	ID   uuid.UUID
	Send chan eventtypes.EventPayload
}

// Registry 유저 ID와 살아있는 연결의 매핑
// 유저당 연결은 최대 하나, 재접속 시 기존 항목을 대체한다
type Registry struct {
	mu      sync.Mutex
	clients map[int]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[int]*Client)}
}

// Register 유저의 연결 등록, 기존 연결이 있으면 대체하고 닫는다
func (r *Registry) Register(userID int) *Client {
	client := &Client{
		ID:   uuid.New(),
		Send: make(chan eventtypes.EventPayload, sendBufferSize),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 대체된 연결의 송신 루프를 깨워 종료시킴
	if old, existed := r.clients[userID]; existed {
		close(old.Send)
	}
	r.clients[userID] = client
	return client
}

// Unregister 해당 클라이언트의 등록 해제
// 이미 다른 연결로 대체된 경우 아무것도 하지 않는다 (멱등)
func (r *Registry) Unregister(userID int, client *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.clients[userID]
	if !ok || current.ID != client.ID {
		return false
	}
	delete(r.clients, userID)
	close(current.Send)
	return true
}

// Publish 유저에게 이벤트 전달 시도
// 연결이 없거나 버퍼가 가득 차면 버리고 false 반환, 절대 블록하지 않는다
func (r *Registry) Publish(userID int, payload eventtypes.EventPayload) bool {
	// 락을 쥔 채 전송해야 Unregister의 close와 경합하지 않는다
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[userID]
	if !ok {
		return false
	}

	select {
	case client.Send <- payload:
		return true
	default:
		return false
	}
}

// Count 현재 등록된 연결 수
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
