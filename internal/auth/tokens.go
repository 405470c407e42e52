// Package auth holds the magic-link login pieces: a one-time token store
// and the mailer boundary that delivers the links.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type pendingLogin struct {
	CoordinatorID string
	Email         string
	CreatedAt     time.Time
}

// TokenStore is a thread-safe in-memory store of one-time login tokens.
// Tokens expire after the configured TTL; expired entries are evicted
// lazily on lookup and by a periodic sweep, so the map cannot grow without
// bound over the life of the process.
type TokenStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]pendingLogin
}

// NewTokenStore creates a store whose tokens live for ttl.
func NewTokenStore(ttl time.Duration) *TokenStore {
	return &TokenStore{ttl: ttl, tokens: make(map[string]pendingLogin)}
}

// Issue creates a fresh token bound to the coordinator.
func (s *TokenStore) Issue(coordinatorID, email string) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = pendingLogin{
		CoordinatorID: coordinatorID,
		Email:         email,
		CreatedAt:     time.Now(),
	}
	return token
}

// Consume redeems a token exactly once. Expired or unknown tokens report
// false; a consumed token is deleted either way.
func (s *TokenStore) Consume(token string) (coordinatorID string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.tokens[token]
	if !found {
		return "", false
	}
	delete(s.tokens, token)
	if time.Since(p.CreatedAt) > s.ttl {
		return "", false
	}
	return p.CoordinatorID, true
}

// Len reports the number of live entries, expired included until swept.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// StartSweep starts a background goroutine that evicts expired tokens
// every interval until ctx is cancelled.
func (s *TokenStore) StartSweep(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				for token, p := range s.tokens {
					if time.Since(p.CreatedAt) > s.ttl {
						delete(s.tokens, token)
					}
				}
				s.mu.Unlock()
			}
		}
	}()
}
