package verification

import (
	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/proof"
)

// Payload is a signed challenge submitted for verification.
type Payload struct {
	Chain     domain.ChainId `json:"chain"`
	Address   domain.Address `json:"address"`
	Signature string         `json:"signature"`
	Nonce     string         `json:"nonce"`
	Message   string         `json:"message"`
}

func (p *Payload) HasMissingFields() bool {
	return p.Chain.IsEmpty() || p.Address.IsEmpty() ||
		p.Signature == "" || p.Nonce == "" || p.Message == ""
}

// Metadata describes the verification event returned alongside the
// fingerprint.
type Metadata struct {
	Chain      domain.ChainId `json:"chain"`
	Address    domain.Address `json:"address"`
	VerifiedAt int64          `json:"verifiedAt"`
}

// Result is a successful verification. IpfsHash is empty and Warning is set
// when raw proof persistence degraded; the fingerprint is authoritative
// either way.
type Result struct {
	ProofHash string         `json:"proofHash"`
	IpfsHash  string         `json:"ipfsHash"`
	Warning   *proof.Warning `json:"warning,omitempty"`
	Metadata  Metadata       `json:"metadata"`
}

// Usecase orchestrates verification: validate, dispatch to the chain's
// verifier, consume the nonce, fingerprint the proof, best-effort persist.
// It never writes on-chain state; submitting the fingerprint to the registry
// is the caller's responsibility.
type Usecase interface {
	Verify(c ctx.Ctx, payload *Payload) (*Result, error)
}
