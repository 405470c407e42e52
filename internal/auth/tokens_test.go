package auth

import (
	"context"
	"testing"
	"time"
)

func TestTokenStore_ConsumeIsOneTime(t *testing.T) {
	store := NewTokenStore(time.Minute)
	token := store.Issue("recC1", "ana@example.org")

	id, ok := store.Consume(token)
	if !ok || id != "recC1" {
		t.Fatalf("first consume: got (%q, %v)", id, ok)
	}
	if _, ok := store.Consume(token); ok {
		t.Error("second consume of the same token must fail")
	}
}

func TestTokenStore_UnknownToken(t *testing.T) {
	store := NewTokenStore(time.Minute)
	if _, ok := store.Consume("never-issued"); ok {
		t.Error("unknown token must not authenticate")
	}
}

func TestTokenStore_ExpiredTokenRejectedAndEvicted(t *testing.T) {
	store := NewTokenStore(time.Millisecond)
	token := store.Issue("recC1", "ana@example.org")

	time.Sleep(5 * time.Millisecond)

	if _, ok := store.Consume(token); ok {
		t.Error("expired token must not authenticate")
	}
	if store.Len() != 0 {
		t.Errorf("expired token must be evicted on lookup, %d left", store.Len())
	}
}

func TestTokenStore_SweepEvictsWithoutLookup(t *testing.T) {
	store := NewTokenStore(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.StartSweep(ctx, 5*time.Millisecond)

	store.Issue("recC1", "ana@example.org")
	store.Issue("recC2", "luis@example.org")

	deadline := time.Now().Add(time.Second)
	for store.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if store.Len() != 0 {
		t.Errorf("sweep did not evict expired tokens, %d left", store.Len())
	}
}
