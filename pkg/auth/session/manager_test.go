package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type memoryStore map[string]string

func (m memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m[key] = fmt.Sprint(value)
	return nil
}

func (m memoryStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := m[key]; ok {
		return v, nil
	}
	return "", redislib.Nil
}

func (m memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m, key)
	}
	return nil
}

func (m memoryStore) AccessSessionKey(accessID string) string {
	return "sess:" + accessID
}

func newTestManager() (*Manager, memoryStore) {
	store := memoryStore{}
	return &Manager{store: store, keyer: store, ttl: time.Hour}, store
}

func TestManagerGenerateStoresToken(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	token, err := manager.Generate(ctx, "access-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if store["sess:access-123"] != token {
		t.Fatalf("stored token %q does not match returned %q", store["sess:access-123"], token)
	}
}

func TestManagerRotate(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	token, err := manager.Generate(ctx, "access-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := manager.Rotate(ctx, "access-123", "wrong"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("mismatched token: got %v, want ErrInvalidRefreshToken", err)
	}
	if _, _, err := manager.Rotate(ctx, "no-such-session", token); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("unknown session: got %v, want ErrInvalidRefreshToken", err)
	}

	nextID, nextToken, err := manager.Rotate(ctx, "access-123", token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if nextID == "access-123" || nextToken == token {
		t.Fatal("rotate must issue a fresh access id and refresh token")
	}
	if _, exists := store["sess:access-123"]; exists {
		t.Fatal("old session left behind after rotate")
	}
	if store["sess:"+nextID] != nextToken {
		t.Fatalf("new session not stored under %q", nextID)
	}
}

func TestManagerRevokeEndsSession(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	if _, err := manager.Generate(ctx, "access-456"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if active, err := manager.HasSession(ctx, "access-456"); err != nil || !active {
		t.Fatalf("HasSession after generate = %v, %v", active, err)
	}

	if err := manager.Revoke(ctx, "access-456"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if active, err := manager.HasSession(ctx, "access-456"); err != nil || active {
		t.Fatalf("HasSession after revoke = %v, %v", active, err)
	}
}
