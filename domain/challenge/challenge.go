package challenge

import (
	"time"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/domain"
)

// Purpose is stamped into every challenge so the signed payload is
// unambiguous about what the signature authorizes.
const Purpose = "cross-chain address verification"

// DefaultTtl bounds how long an issued nonce stays consumable.
const DefaultTtl = 10 * time.Minute

// Challenge binds an identity name, a target chain and a claimed address to a
// single-use nonce. Immutable once issued.
type Challenge struct {
	EnsName   string         `json:"ensName"`
	Chain     domain.ChainId `json:"chain"`
	Address   domain.Address `json:"address"`
	Nonce     string         `json:"nonce"`
	Timestamp int64          `json:"timestamp"` // unix ms, issuance time
	Purpose   string         `json:"purpose"`
}

// NonceRepo tracks issued nonces until they are consumed or expire. Consume
// is single use: a second call for the same nonce fails with
// domain.ErrInvalidNonce.
type NonceRepo interface {
	Save(c ctx.Ctx, ch *Challenge, ttl time.Duration) error
	Consume(c ctx.Ctx, nonce string) (*Challenge, error)
}

// Usecase issues challenges. Stateless apart from recording the nonce.
type Usecase interface {
	Issue(c ctx.Ctx, ensName string, chain domain.ChainId, address domain.Address) (*Challenge, error)
}
