package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/challenge"
	"github.com/crossbind/goapi/stores/challenge/repository"
)

type challengeSuite struct {
	suite.Suite

	ctx    ctx.Ctx
	nonces challenge.NonceRepo
	im     challenge.Usecase
}

func (s *challengeSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.nonces = repository.NewMemoryNonceRepo()
	s.im = New(s.nonces, time.Minute)
}

func TestChallengeSuite(t *testing.T) {
	suite.Run(t, new(challengeSuite))
}

func (s *challengeSuite) TestIssue() {
	ch, err := s.im.Issue(s.ctx, "Alice.ETH", domain.ChainId("Bitcoin"), "bc1qexample")
	s.NoError(err)
	s.Equal("alice.eth", ch.EnsName)
	s.Equal(domain.ChainBitcoin, ch.Chain)
	s.Equal(domain.Address("bc1qexample"), ch.Address)
	s.Equal(challenge.Purpose, ch.Purpose)
	s.NotEmpty(ch.Nonce)
	s.Greater(ch.Timestamp, int64(0))

	// nonce is consumable exactly once
	saved, err := s.nonces.Consume(s.ctx, ch.Nonce)
	s.NoError(err)
	s.Equal(ch.Nonce, saved.Nonce)
	_, err = s.nonces.Consume(s.ctx, ch.Nonce)
	s.ErrorIs(err, domain.ErrInvalidNonce)
}

func (s *challengeSuite) TestIssueUniqueNonces() {
	a, err := s.im.Issue(s.ctx, "alice.eth", domain.ChainSolana, "addr")
	s.NoError(err)
	b, err := s.im.Issue(s.ctx, "alice.eth", domain.ChainSolana, "addr")
	s.NoError(err)
	s.NotEqual(a.Nonce, b.Nonce)
}

func (s *challengeSuite) TestIssueValidationOrder() {
	// presence first
	_, err := s.im.Issue(s.ctx, "", domain.ChainId("dogecoin"), "addr")
	s.ErrorIs(err, domain.ErrMissingFields)

	// then chain support, even with a bad name
	_, err = s.im.Issue(s.ctx, "not-an-ens-name", domain.ChainId("dogecoin"), "addr")
	s.ErrorIs(err, domain.ErrUnsupportedChain)

	// then name shape
	_, err = s.im.Issue(s.ctx, "not-an-ens-name", domain.ChainBitcoin, "addr")
	s.ErrorIs(err, domain.ErrInvalidEnsName)

	_, err = s.im.Issue(s.ctx, ".eth", domain.ChainBitcoin, "addr")
	s.ErrorIs(err, domain.ErrInvalidEnsName)
}
