package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func testSession(id string) domain.Session {
	return domain.Session{
		ID:        id,
		Principal: domain.Principal{ID: "u1", Email: "jane@test.com"},
		Token:     "tkn",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("s1")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "s1" || got.Principal.ID != "u1" || got.Token != "tkn" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestSessionStore_SaveRejectsExpired(t *testing.T) {
	store, _ := newTestStore(t)

	sess := testSession("s1")
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Save(context.Background(), sess); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("got %v, want ErrSessionExpired", err)
	}
}

func TestSessionStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_GetMalformedRecordSelfHeals(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := mr.Set("session:bad", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := store.Get(ctx, "bad"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
	if mr.Exists("session:bad") {
		t.Fatal("malformed record was not removed")
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("s1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if mr.Exists("session:s1") {
		t.Fatal("record still present after Delete")
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
}

func TestInflightGuard_AcquireRelease(t *testing.T) {
	store, _ := newTestStore(t)
	guard := NewInflightGuard(store.client)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "signin:u1")
	if err != nil || !ok {
		t.Fatalf("first Acquire = %v, %v", ok, err)
	}
	ok, err = guard.Acquire(ctx, "signin:u1")
	if err != nil || ok {
		t.Fatalf("second Acquire = %v, %v, want held lock", ok, err)
	}

	if err := guard.Release(ctx, "signin:u1"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	ok, err = guard.Acquire(ctx, "signin:u1")
	if err != nil || !ok {
		t.Fatalf("Acquire after Release = %v, %v", ok, err)
	}
}
