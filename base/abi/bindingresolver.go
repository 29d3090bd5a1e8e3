package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// BindingResolverABI is the surface of the deployed cross-chain binding
// resolver contract.
var BindingResolverABI abi.ABI

func init() {
	_abi, err := abi.JSON(strings.NewReader(bindingResolverABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	BindingResolverABI = _abi
}

var bindingResolverABIJson = `
[
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "string", "name": "chainId", "type": "string" },
      { "internalType": "string", "name": "addr", "type": "string" },
      { "internalType": "bytes32", "name": "proofFingerprint", "type": "bytes32" },
      { "internalType": "uint256", "name": "verifiedAt", "type": "uint256" }
    ],
    "name": "setBinding",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "string", "name": "chainId", "type": "string" }
    ],
    "name": "getBinding",
    "outputs": [
      { "internalType": "string", "name": "addr", "type": "string" },
      { "internalType": "bytes32", "name": "proofFingerprint", "type": "bytes32" },
      { "internalType": "uint256", "name": "verifiedAt", "type": "uint256" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "string", "name": "chainId", "type": "string" }
    ],
    "name": "removeBinding",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" }
    ],
    "name": "listChains",
    "outputs": [
      { "internalType": "string[]", "name": "", "type": "string[]" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" }
    ],
    "name": "count",
    "outputs": [
      { "internalType": "uint256", "name": "", "type": "uint256" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "string", "name": "chainId", "type": "string" }
    ],
    "name": "exists",
    "outputs": [
      { "internalType": "bool", "name": "", "type": "bool" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "ens",
    "outputs": [
      { "internalType": "address", "name": "", "type": "address" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "anonymous": false,
    "inputs": [
      { "indexed": true, "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "indexed": false, "internalType": "string", "name": "chainId", "type": "string" },
      { "indexed": false, "internalType": "string", "name": "addr", "type": "string" },
      { "indexed": false, "internalType": "bytes32", "name": "proofFingerprint", "type": "bytes32" },
      { "indexed": false, "internalType": "uint256", "name": "verifiedAt", "type": "uint256" }
    ],
    "name": "BindingSet",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      { "indexed": true, "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "indexed": false, "internalType": "string", "name": "chainId", "type": "string" }
    ],
    "name": "BindingRemoved",
    "type": "event"
  }
]
`
