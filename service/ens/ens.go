package ens

import (
	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/domain"
)

// ENS is the boundary to the external identity registry. Name resolution is
// cached; owner lookups are not, the ownership gate must see the registry's
// current state.
type ENS interface {
	// Resolve returns the address a name points at, empty for
	// unregistered names
	Resolve(c ctx.Ctx, name string) (domain.Address, error)

	// NameHash derives the identity node of a name
	NameHash(name string) (domain.Node, error)

	// Owner returns the current owner of a node per the registry
	Owner(c ctx.Ctx, node domain.Node) (domain.Address, error)

	// RegistryAddress is the configured identity-registry contract address
	RegistryAddress() domain.Address
}
