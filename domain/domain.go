package domain

import (
	"strings"
)

// ChainId is the lowercase tag naming a supported external blockchain,
// e.g. "bitcoin" or "solana".
type ChainId string

const (
	ChainBitcoin  ChainId = "bitcoin"
	ChainEthereum ChainId = "ethereum"
	ChainSolana   ChainId = "solana"
)

func (c ChainId) ToLower() ChainId {
	return ChainId(strings.ToLower(string(c)))
}

func (c ChainId) String() string {
	return string(c)
}

func (c ChainId) IsEmpty() bool {
	return len(c) == 0
}

// Address is a chain address in its chain-native textual form. Ethereum
// addresses are compared lowercased, other chains are case sensitive.
type Address string

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// Node is the namehash of an ENS name in 0x-prefixed hex, the registry's
// primary key.
type Node string

func (n Node) ToLower() Node {
	return Node(strings.ToLower(string(n)))
}

func (n Node) String() string {
	return string(n)
}

// EnsSuffix is the only top level label accepted for identity names.
const EnsSuffix = ".eth"

// IsValidEnsName reports whether name follows the identity-name convention:
// a non-empty label followed by the ".eth" suffix.
func IsValidEnsName(name string) bool {
	name = strings.ToLower(name)
	return len(name) > len(EnsSuffix) && strings.HasSuffix(name, EnsSuffix)
}

// Table is a mongo collection name
type Table string

const (
	TableBindings      Table = "bindings"
	TableBindingEvents Table = "binding_events"
)
