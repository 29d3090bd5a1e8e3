package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/challenge"
)

func TestMemoryNonceRepoConsumeOnce(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	repo := NewMemoryNonceRepo()

	ch := &challenge.Challenge{
		EnsName: "alice.eth",
		Chain:   domain.ChainBitcoin,
		Address: "bc1qexample",
		Nonce:   "nonce-1",
	}
	req.NoError(repo.Save(c, ch, time.Minute))

	got, err := repo.Consume(c, "nonce-1")
	req.NoError(err)
	req.Equal(ch.EnsName, got.EnsName)

	_, err = repo.Consume(c, "nonce-1")
	req.ErrorIs(err, domain.ErrInvalidNonce)
}

func TestMemoryNonceRepoUnknownNonce(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	repo := NewMemoryNonceRepo()

	_, err := repo.Consume(c, "never-issued")
	req.ErrorIs(err, domain.ErrInvalidNonce)
}

func TestMemoryNonceRepoExpiry(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	now := time.Now()
	repo := &memoryNonceRepo{
		entries: map[string]nonceEntry{},
		now:     func() time.Time { return now },
	}

	ch := &challenge.Challenge{Nonce: "nonce-2"}
	req.NoError(repo.Save(c, ch, time.Minute))

	// advance past the ttl
	now = now.Add(2 * time.Minute)
	_, err := repo.Consume(c, "nonce-2")
	req.ErrorIs(err, domain.ErrInvalidNonce)
}
