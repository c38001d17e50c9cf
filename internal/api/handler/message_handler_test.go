package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/urbanrenew/renewal-platform/internal/api/middleware"
	"github.com/urbanrenew/renewal-platform/internal/core/domain"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

type stubDispatcher struct {
	enqueued []ports.MessageInput
	accept   bool
}

func (d *stubDispatcher) Enqueue(msg ports.MessageInput) bool {
	d.enqueued = append(d.enqueued, msg)
	return d.accept
}

type stubMessageService struct{}

func (stubMessageService) Deliver(context.Context, ports.MessageInput) error { return nil }

func (stubMessageService) ListConversation(context.Context, string, int) ([]*domain.Message, error) {
	return nil, nil
}

func (stubMessageService) MarkRead(context.Context, string, string) error { return nil }

func newMessageTestContext(t *testing.T, body string) echo.Context {
	t.Helper()
	c, _ := newAuthTestContext(t, http.MethodPost, "/v1/messages", body)
	c.Set(middleware.ContextKeySession, &domain.Session{
		ID:        "s1",
		Principal: domain.Principal{ID: "u1"},
	})
	return c
}

func TestMessageHandler_Send_Accepted(t *testing.T) {
	disp := &stubDispatcher{accept: true}
	h := NewMessageHandler(stubMessageService{}, disp)

	c := newMessageTestContext(t, `{"conversation_id":"c1","body":"hello"}`)
	if err := h.Send(c); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if c.Response().Status != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", c.Response().Status, http.StatusAccepted)
	}
	if len(disp.enqueued) != 1 || disp.enqueued[0].SenderID != "u1" {
		t.Fatalf("unexpected enqueued messages: %+v", disp.enqueued)
	}
}

func TestMessageHandler_Send_QueueFullReturns503(t *testing.T) {
	disp := &stubDispatcher{accept: false}
	h := NewMessageHandler(stubMessageService{}, disp)

	c := newMessageTestContext(t, `{"conversation_id":"c1","body":"hello"}`)
	err := h.Send(c)
	if err == nil {
		t.Fatal("expected an error when the queue is full")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %v, want 503", err)
	}
}
