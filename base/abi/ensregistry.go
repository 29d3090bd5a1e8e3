package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ENSRegistryABI covers the single read we need from the external identity
// registry: resolving a node's current owner.
var ENSRegistryABI abi.ABI

func init() {
	_abi, err := abi.JSON(strings.NewReader(ensRegistryABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	ENSRegistryABI = _abi
}

var ensRegistryABIJson = `
[
  {
    "inputs": [
      {
        "internalType": "bytes32",
        "name": "node",
        "type": "bytes32"
      }
    ],
    "name": "owner",
    "outputs": [
      {
        "internalType": "address",
        "name": "",
        "type": "address"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  }
]
`
