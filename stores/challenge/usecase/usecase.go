package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/chain"
	"github.com/crossbind/goapi/domain/challenge"
)

type impl struct {
	nonces challenge.NonceRepo
	ttl    time.Duration
}

// New creates the challenge usecase. ttl bounds nonce lifetime; 0 falls back
// to challenge.DefaultTtl.
func New(nonces challenge.NonceRepo, ttl time.Duration) challenge.Usecase {
	if ttl <= 0 {
		ttl = challenge.DefaultTtl
	}
	return &impl{
		nonces: nonces,
		ttl:    ttl,
	}
}

func (im *impl) Issue(c ctx.Ctx, ensName string, chainId domain.ChainId, address domain.Address) (*challenge.Challenge, error) {
	// validation order is part of the contract: presence, then chain
	// support, then name shape
	if ensName == "" || chainId.IsEmpty() || address.IsEmpty() {
		return nil, domain.ErrMissingFields
	}

	if !chain.IsSupported(chainId) {
		c.WithField("chain", chainId).Warn("unsupported chain requested")
		return nil, domain.ErrUnsupportedChain
	}

	if !domain.IsValidEnsName(ensName) {
		c.WithField("ensName", ensName).Warn("invalid ens name requested")
		return nil, domain.ErrInvalidEnsName
	}

	ch := &challenge.Challenge{
		EnsName:   strings.ToLower(ensName),
		Chain:     chainId.ToLower(),
		Address:   address,
		Nonce:     uuid.NewString(),
		Timestamp: time.Now().UnixMilli(),
		Purpose:   challenge.Purpose,
	}

	if err := im.nonces.Save(c, ch, im.ttl); err != nil {
		c.WithFields(log.Fields{"err": err, "nonce": ch.Nonce}).Error("failed to save nonce")
		return nil, err
	}

	return ch, nil
}
