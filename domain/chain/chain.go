// Package chain declares the closed set of supported chains. Each entry
// carries the verifier for that chain's native signature scheme; extending to
// a new chain is adding an entry here plus its verifier package.
package chain

import (
	"sort"

	"github.com/crossbind/goapi/base/bitcoin"
	"github.com/crossbind/goapi/base/ethereum"
	"github.com/crossbind/goapi/base/solana"
	"github.com/crossbind/goapi/domain"
)

// VerifyFunc validates that address produced signature over message under the
// chain's signing convention. Implementations never panic; any internal
// failure surfaces as false.
type VerifyFunc func(address, message, signature string) bool

type Chain struct {
	Id     domain.ChainId
	Name   string
	Verify VerifyFunc
}

var supported = map[domain.ChainId]Chain{
	domain.ChainBitcoin: {
		Id:     domain.ChainBitcoin,
		Name:   "Bitcoin",
		Verify: bitcoin.VerifyMessage,
	},
	domain.ChainEthereum: {
		Id:     domain.ChainEthereum,
		Name:   "Ethereum",
		Verify: ethereum.VerifyMessage,
	},
	domain.ChainSolana: {
		Id:     domain.ChainSolana,
		Name:   "Solana",
		Verify: solana.VerifyMessage,
	},
}

// Lookup returns the chain for id, matching case insensitively.
func Lookup(id domain.ChainId) (Chain, bool) {
	c, ok := supported[id.ToLower()]
	return c, ok
}

func IsSupported(id domain.ChainId) bool {
	_, ok := supported[id.ToLower()]
	return ok
}

// Ids returns the supported chain ids in stable order.
func Ids() []domain.ChainId {
	ids := make([]domain.ChainId, 0, len(supported))
	for id := range supported {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
