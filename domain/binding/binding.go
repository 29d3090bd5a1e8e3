package binding

import (
	"fmt"
	"time"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/domain"
)

// Binding links an identity node and a chain id to a verified address and
// the fingerprint of the proof that backed the verification. Re-verification
// overwrites the record wholesale; no history is kept here, the audit trail
// lives in Event.
type Binding struct {
	Node             domain.Node    `json:"node" bson:"node"`
	ChainId          domain.ChainId `json:"chainId" bson:"chainId"`
	Address          domain.Address `json:"address" bson:"address"`
	ProofFingerprint string         `json:"proofFingerprint" bson:"proofFingerprint"`
	VerifiedAt       int64          `json:"verifiedAt" bson:"verifiedAt"`
}

type EventType string

const (
	EventBindingSet     EventType = "binding_set"
	EventBindingRemoved EventType = "binding_removed"
)

// Event is one entry of the durable audit log emitted on every registry
// write.
type Event struct {
	Type             EventType      `json:"type" bson:"type"`
	Node             domain.Node    `json:"node" bson:"node"`
	ChainId          domain.ChainId `json:"chainId" bson:"chainId"`
	Address          domain.Address `json:"address" bson:"address"`
	ProofFingerprint string         `json:"proofFingerprint" bson:"proofFingerprint"`
	VerifiedAt       int64          `json:"verifiedAt" bson:"verifiedAt"`
	Caller           domain.Address `json:"caller" bson:"caller"`
	CreatedAt        time.Time      `json:"createdAt" bson:"createdAt"`
}

// NotOwnerError is returned when a write is attempted by anyone but the
// current owner of the node. It carries both parties for diagnostics.
type NotOwnerError struct {
	Node   domain.Node
	Caller domain.Address
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("caller %s is not the owner of node %s", e.Caller, e.Node)
}

// NotFoundError is returned when no binding exists for (node, chainId).
type NotFoundError struct {
	Node    domain.Node
	ChainId domain.ChainId
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no binding for node %s on chain %s", e.Node, e.ChainId)
}

// Is lets errors.Is(err, domain.ErrNotFound) match without losing the
// node/chain payload.
func (e *NotFoundError) Is(target error) bool {
	return target == domain.ErrNotFound
}

// Repo is the registry's storage. Set reports whether the binding was created
// (Absent -> Bound) as opposed to overwritten. Implementations must keep the
// chain-id enumeration consistent with the bindings: an entry is listed iff a
// binding exists, with no dangling or duplicate entries after removal.
type Repo interface {
	Get(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (*Binding, error)
	Set(c ctx.Ctx, b *Binding) (created bool, err error)
	Remove(c ctx.Ctx, node domain.Node, chainId domain.ChainId) error
	ListChainIds(c ctx.Ctx, node domain.Node) ([]domain.ChainId, error)
	Count(c ctx.Ctx, node domain.Node) (int, error)
	Exists(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (bool, error)
}

// EventRepo persists the audit log.
type EventRepo interface {
	Insert(c ctx.Ctx, e *Event) error
	FindByNode(c ctx.Ctx, node domain.Node) ([]Event, error)
}

// Usecase is the registry surface. Writes are gated on the caller being the
// node's current owner per the external ENS registry; reads are public by
// design, provenance must be auditable by third parties.
type Usecase interface {
	SetBinding(c ctx.Ctx, caller domain.Address, b *Binding) error
	GetBinding(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (*Binding, error)
	RemoveBinding(c ctx.Ctx, caller domain.Address, node domain.Node, chainId domain.ChainId) error
	ListChains(c ctx.Ctx, node domain.Node) ([]domain.ChainId, error)
	Count(c ctx.Ctx, node domain.Node) (int, error)
	Exists(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (bool, error)
	Events(c ctx.Ctx, node domain.Node) ([]Event, error)

	// read-only accessors of the external identity registry
	RegistryAddress() domain.Address
	OwnerOf(c ctx.Ctx, node domain.Node) (domain.Address, error)
}
