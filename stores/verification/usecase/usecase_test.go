package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/suite"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/ethereum"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/challenge"
	"github.com/crossbind/goapi/domain/proof"
	"github.com/crossbind/goapi/domain/verification"
	"github.com/crossbind/goapi/stores/challenge/repository"
)

type fakeStorage struct {
	ref    string
	err    error
	stored []*proof.Proof
}

func (f *fakeStorage) Store(c ctx.Ctx, p *proof.Proof) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.stored = append(f.stored, p)
	return f.ref, nil
}

func (f *fakeStorage) Name() string {
	return "fake"
}

type verificationSuite struct {
	suite.Suite

	ctx     ctx.Ctx
	nonces  challenge.NonceRepo
	storage *fakeStorage
	im      verification.Usecase

	address   string
	message   string
	signature string
}

func (s *verificationSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.nonces = repository.NewMemoryNonceRepo()
	s.storage = &fakeStorage{ref: "QmExample"}
	s.im = New(s.nonces, s.storage)

	privateKey, publicKey, err := ethereum.GenerateKey()
	s.Require().NoError(err)
	s.address = crypto.PubkeyToAddress(*publicKey).Hex()
	s.message = "challenge for alice.eth"
	sig, err := crypto.Sign(accounts.TextHash([]byte(s.message)), privateKey)
	s.Require().NoError(err)
	s.signature = hexutil.Encode(sig)
}

func TestVerificationSuite(t *testing.T) {
	suite.Run(t, new(verificationSuite))
}

func (s *verificationSuite) saveNonce(nonce string) {
	s.Require().NoError(s.nonces.Save(s.ctx, &challenge.Challenge{Nonce: nonce}, time.Minute))
}

func (s *verificationSuite) payload(nonce string) *verification.Payload {
	return &verification.Payload{
		Chain:     domain.ChainEthereum,
		Address:   domain.Address(s.address),
		Signature: s.signature,
		Nonce:     nonce,
		Message:   s.message,
	}
}

func (s *verificationSuite) TestVerify() {
	s.saveNonce("nonce-1")

	res, err := s.im.Verify(s.ctx, s.payload("nonce-1"))
	s.NoError(err)
	s.True(proof.IsFingerprint(res.ProofHash))
	s.Equal("QmExample", res.IpfsHash)
	s.Nil(res.Warning)
	s.Equal(domain.ChainEthereum, res.Metadata.Chain)
	s.Equal(domain.Address(s.address), res.Metadata.Address)
	s.Greater(res.Metadata.VerifiedAt, int64(0))
	s.Len(s.storage.stored, 1)
}

func (s *verificationSuite) TestVerifyMissingFields() {
	p := s.payload("nonce-1")
	p.Signature = ""
	_, err := s.im.Verify(s.ctx, p)
	s.ErrorIs(err, domain.ErrMissingFields)
}

func (s *verificationSuite) TestVerifyUnsupportedChain() {
	p := s.payload("nonce-1")
	p.Chain = "dogecoin"
	_, err := s.im.Verify(s.ctx, p)
	s.ErrorIs(err, domain.ErrUnsupportedChain)
}

func (s *verificationSuite) TestVerifyBadSignatureKeepsNonce() {
	s.saveNonce("nonce-1")

	p := s.payload("nonce-1")
	p.Message = "a different message"
	_, err := s.im.Verify(s.ctx, p)
	s.ErrorIs(err, domain.ErrInvalidSignature)

	// the nonce survived the failed attempt and the corrected submission
	// succeeds
	res, err := s.im.Verify(s.ctx, s.payload("nonce-1"))
	s.NoError(err)
	s.True(proof.IsFingerprint(res.ProofHash))
}

func (s *verificationSuite) TestVerifyReplayBurnsNonce() {
	s.saveNonce("nonce-1")

	_, err := s.im.Verify(s.ctx, s.payload("nonce-1"))
	s.NoError(err)

	_, err = s.im.Verify(s.ctx, s.payload("nonce-1"))
	s.ErrorIs(err, domain.ErrInvalidNonce)
}

func (s *verificationSuite) TestVerifyUnknownNonce() {
	_, err := s.im.Verify(s.ctx, s.payload("never-issued"))
	s.ErrorIs(err, domain.ErrInvalidNonce)
}

func (s *verificationSuite) TestVerifyStorageFailureDegradesToWarning() {
	s.storage.err = errors.New("pinning unavailable")
	s.saveNonce("nonce-1")

	res, err := s.im.Verify(s.ctx, s.payload("nonce-1"))
	s.NoError(err)
	s.True(proof.IsFingerprint(res.ProofHash))
	s.Empty(res.IpfsHash)
	s.Require().NotNil(res.Warning)
	s.Equal("fake", res.Warning.Storage)
	s.Contains(res.Warning.Reason, "pinning unavailable")
}

func (s *verificationSuite) TestVerifyWithoutStorage() {
	im := New(s.nonces, nil)
	s.saveNonce("nonce-1")

	res, err := im.Verify(s.ctx, s.payload("nonce-1"))
	s.NoError(err)
	s.Empty(res.IpfsHash)
	s.Nil(res.Warning)
}
