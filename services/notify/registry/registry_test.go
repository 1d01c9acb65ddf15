package registry

import (
	"sync"
	"testing"

	eventtypes "flame/pkg/types/eventtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(eventType string) eventtypes.EventPayload {
	return eventtypes.EventPayload{EventType: eventType}
}

func TestPublishDeliversToRegisteredClient(t *testing.T) {
	r := NewRegistry()
	client := r.Register(1)

	require.True(t, r.Publish(1, payload("chat")))

	got := <-client.Send
	assert.Equal(t, "chat", got.EventType)
}

func TestPublishToAbsentUserIsNoop(t *testing.T) {
	r := NewRegistry()

	// 블록 없이 즉시 false 반환
	assert.False(t, r.Publish(42, payload("chat")))
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	r := NewRegistry()
	r.Register(1)

	for i := 0; i < sendBufferSize; i++ {
		require.True(t, r.Publish(1, payload("chat")))
	}

	// 수신자가 읽지 않아도 발행자는 블록되지 않는다
	assert.False(t, r.Publish(1, payload("chat")))
}

func TestUnregisterRemovesAndClosesChannel(t *testing.T) {
	r := NewRegistry()
	client := r.Register(1)

	assert.True(t, r.Unregister(1, client))
	assert.Equal(t, 0, r.Count())
	assert.False(t, r.Publish(1, payload("chat")))

	_, open := <-client.Send
	assert.False(t, open)

	// 멱등: 두 번째 호출은 아무것도 하지 않음
	assert.False(t, r.Unregister(1, client))
}

func TestReconnectReceivesAgain(t *testing.T) {
	r := NewRegistry()
	first := r.Register(1)
	require.True(t, r.Unregister(1, first))

	second := r.Register(1)
	require.True(t, r.Publish(1, payload("chat")))

	got := <-second.Send
	assert.Equal(t, "chat", got.EventType)
}

func TestRegisterReplacesExistingConnection(t *testing.T) {
	r := NewRegistry()
	old := r.Register(1)
	fresh := r.Register(1)

	// 기존 연결의 채널은 닫혀서 송신 루프가 종료됨
	_, open := <-old.Send
	assert.False(t, open)

	// 발행은 새 연결로만 전달
	require.True(t, r.Publish(1, payload("chat")))
	got := <-fresh.Send
	assert.Equal(t, "chat", got.EventType)

	// 기존 연결의 지연된 정리가 새 항목을 지우지 않는다
	assert.False(t, r.Unregister(1, old))
	assert.Equal(t, 1, r.Count())

	assert.True(t, r.Unregister(1, fresh))
	assert.Equal(t, 0, r.Count())
}

func TestConcurrentPublishAndChurn(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	wg.Add(2)

	// 접속/해제가 반복되는 동안 발행이 패닉이나 블록 없이 동작해야 함
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			client := r.Register(1)
			r.Unregister(1, client)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			r.Publish(1, payload("chat"))
		}
	}()

	wg.Wait()
	assert.Equal(t, 0, r.Count())
}
