package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestEnsureUserPreservesScore(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewUserService(store, zap.NewNop())

	user, err := svc.EnsureUser(ctx, 1, 100, "alice")
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if user.Score != 0 {
		t.Fatalf("new user score = %d", user.Score)
	}

	store.mu.Lock()
	store.users[1].Score = 25
	store.mu.Unlock()

	// A repeat contact with a new name must not touch the score.
	user, err = svc.EnsureUser(ctx, 1, 100, "alice2")
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if user.Score != 25 {
		t.Fatalf("score after rename = %d, want 25", user.Score)
	}
	if user.DisplayName != "alice2" {
		t.Fatalf("display name = %q", user.DisplayName)
	}
}
