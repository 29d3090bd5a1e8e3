package repository

import (
	"sync"
	"time"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/challenge"
)

type nonceEntry struct {
	challenge *challenge.Challenge
	expiresAt time.Time
}

type memoryNonceRepo struct {
	mu      sync.Mutex
	entries map[string]nonceEntry
	now     func() time.Time
}

// NewMemoryNonceRepo keeps nonces in process memory. Single instance only;
// deployments with more than one replica use the redis repo.
func NewMemoryNonceRepo() challenge.NonceRepo {
	return &memoryNonceRepo{
		entries: map[string]nonceEntry{},
		now:     time.Now,
	}
}

func (r *memoryNonceRepo) Save(c ctx.Ctx, ch *challenge.Challenge, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[ch.Nonce] = nonceEntry{
		challenge: ch,
		expiresAt: r.now().Add(ttl),
	}
	return nil
}

func (r *memoryNonceRepo) Consume(c ctx.Ctx, nonce string) (*challenge.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[nonce]
	if !ok {
		return nil, domain.ErrInvalidNonce
	}

	// consumed or expired, either way it is gone
	delete(r.entries, nonce)

	if r.now().After(entry.expiresAt) {
		return nil, domain.ErrInvalidNonce
	}
	return entry.challenge, nil
}
