package usecase

import (
	"time"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/chain"
	"github.com/crossbind/goapi/domain/challenge"
	"github.com/crossbind/goapi/domain/proof"
	"github.com/crossbind/goapi/domain/verification"
)

const storeTimeout = 10 * time.Second

type impl struct {
	nonces  challenge.NonceRepo
	storage proof.Storage
	now     func() time.Time
}

// New creates the verification orchestrator. storage may be nil when raw
// proof persistence is disabled; results then carry no ipfs hash and no
// warning.
func New(nonces challenge.NonceRepo, storage proof.Storage) verification.Usecase {
	return &impl{
		nonces:  nonces,
		storage: storage,
		now:     time.Now,
	}
}

func (im *impl) Verify(c ctx.Ctx, payload *verification.Payload) (*verification.Result, error) {
	if payload.HasMissingFields() {
		return nil, domain.ErrMissingFields
	}

	ch, ok := chain.Lookup(payload.Chain)
	if !ok {
		c.WithField("chain", payload.Chain).Warn("unsupported chain submitted")
		return nil, domain.ErrUnsupportedChain
	}

	// verify before consuming so a bad signature does not burn the nonce
	// and the client may correct and resubmit
	if !ch.Verify(string(payload.Address), payload.Message, payload.Signature) {
		c.WithFields(log.Fields{"chain": ch.Id, "address": payload.Address}).Warn("signature verification failed")
		return nil, domain.ErrInvalidSignature
	}

	if _, err := im.nonces.Consume(c, payload.Nonce); err != nil {
		c.WithFields(log.Fields{"err": err, "nonce": payload.Nonce}).Warn("nonce rejected")
		return nil, err
	}

	p := &proof.Proof{
		Chain:      ch.Id,
		Address:    payload.Address,
		Signature:  payload.Signature,
		Nonce:      payload.Nonce,
		VerifiedAt: im.now().Unix(),
	}

	res := &verification.Result{
		ProofHash: proof.Fingerprint(p),
		Metadata: verification.Metadata{
			Chain:      p.Chain,
			Address:    p.Address,
			VerifiedAt: p.VerifiedAt,
		},
	}

	if im.storage != nil {
		im.storeProof(c, p, res)
	}

	return res, nil
}

// storeProof persists the raw proof within a bounded window. Failure degrades
// to a warning on the result, verification itself already succeeded.
func (im *impl) storeProof(c ctx.Ctx, p *proof.Proof, res *verification.Result) {
	storeCtx, cancel := ctx.WithTimeout(c, storeTimeout)
	defer cancel()

	ref, err := im.storage.Store(storeCtx, p)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "storage": im.storage.Name()}).Warn("proof storage failed")
		res.Warning = &proof.Warning{
			Storage: im.storage.Name(),
			Reason:  err.Error(),
		}
		return
	}
	res.IpfsHash = ref
}
