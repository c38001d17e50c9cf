package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

type recordingService struct {
	mu        sync.Mutex
	delivered []ports.MessageInput
	done      chan struct{}
	expect    int
}

func (s *recordingService) Deliver(_ context.Context, in ports.MessageInput) error {
	s.mu.Lock()
	s.delivered = append(s.delivered, in)
	n := len(s.delivered)
	s.mu.Unlock()
	if n == s.expect {
		close(s.done)
	}
	return nil
}

func (s *recordingService) ListConversation(context.Context, string, int) ([]*domain.Message, error) {
	return nil, nil
}

func (s *recordingService) MarkRead(context.Context, string, string) error { return nil }

func TestDispatcher_PreservesConversationOrder(t *testing.T) {
	const n = 20
	svc := &recordingService{done: make(chan struct{}), expect: n}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		if !d.Enqueue(ports.MessageInput{
			ConversationID: "c1",
			Body:           fmt.Sprintf("msg-%d", i),
		}) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}

	select {
	case <-svc.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for deliveries")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i, in := range svc.delivered {
		if want := fmt.Sprintf("msg-%d", i); in.Body != want {
			t.Fatalf("position %d: got %q, want %q", i, in.Body, want)
		}
	}
}

func TestDispatcher_ShedsWhenBufferFull(t *testing.T) {
	// Workers are never started, so the shard buffer fills up and the
	// next Enqueue must shed instead of blocking the caller.
	svc := &recordingService{done: make(chan struct{})}
	d := NewDispatcher(1, svc, zerolog.Nop())

	for i := 0; i < channelBuffer; i++ {
		if !d.Enqueue(ports.MessageInput{ConversationID: "c1", Body: "m"}) {
			t.Fatalf("enqueue %d rejected before buffer was full", i)
		}
	}
	if d.Enqueue(ports.MessageInput{ConversationID: "c1", Body: "overflow"}) {
		t.Fatalf("enqueue accepted with a full buffer")
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingService{done: make(chan struct{})}, zerolog.Nop())

	first := d.shardIndex("conversation-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("conversation-42"); got != first {
			t.Fatalf("shard index changed: %d then %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
