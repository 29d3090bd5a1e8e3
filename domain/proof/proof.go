package proof

import (
	"fmt"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/domain"
)

// Proof is the record of one successful signature verification. VerifiedAt is
// assigned by the verifier at verification time, never by the client.
type Proof struct {
	Chain      domain.ChainId `json:"chain" bson:"chain"`
	Address    domain.Address `json:"address" bson:"address"`
	Signature  string         `json:"signature" bson:"signature"`
	Nonce      string         `json:"nonce" bson:"nonce"`
	VerifiedAt int64          `json:"verifiedAt" bson:"verifiedAt"` // unix seconds
}

// Storage is the port for best-effort raw proof persistence. Implementations
// are selected at composition time; the orchestrator treats every failure as
// a warning, never as a verification failure.
type Storage interface {
	// Store persists the raw proof and returns a content reference
	// (IPFS hash or local path)
	Store(c ctx.Ctx, p *Proof) (string, error)

	// Name identifies the backend in warnings and logs
	Name() string
}

// Warning carries a tolerated persistence failure alongside a successful
// verification result so callers and tests can assert on it.
type Warning struct {
	Storage string `json:"storage"`
	Reason  string `json:"reason"`
}

func (w *Warning) String() string {
	return fmt.Sprintf("proof storage %s failed: %s", w.Storage, w.Reason)
}
