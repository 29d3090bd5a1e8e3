package ethereum

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// IsValidAddress reports whether address is a well formed 20-byte hex address.
func IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// VerifyMessage checks that signature was produced by signer over the
// personal_sign envelope of message. It never returns an error; malformed
// input of any kind yields false.
func VerifyMessage(address, message, signature string) bool {
	if !IsValidAddress(address) {
		return false
	}
	ok, err := ValidateMsgSignature([]byte(message), signature, address)
	if err != nil {
		return false
	}
	return ok
}

// ValidateMsgSignature verifies signature against the eth_sign text hash of message.
func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	return validateSignature(message, signature, signer, true)
}

// ValidateHashSignature verifies signature against a precomputed 32-byte hash.
func ValidateHashSignature(hash []byte, signature, signer string) (bool, error) {
	return validateSignature(hash, signature, signer, false)
}

// RecoverMsgSigner returns the address that signed the personal_sign envelope
// of message, for callers that authenticate by signature alone.
func RecoverMsgSigner(message []byte, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, err
	}
	return ecRecover(accounts.TextHash(message), sig)
}

func validateSignature(data []byte, signature, signer string, applyTextHash bool) (bool, error) {
	hash := data
	if applyTextHash {
		hash = accounts.TextHash(data)
	}
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, err
	}
	recoveredAddress, err := ecRecover(hash, sig)
	if err != nil {
		return false, err
	}
	address := common.HexToAddress(signer)
	return bytes.Equal(address.Bytes(), recoveredAddress.Bytes()), nil
}

// ecRecover returns the address for the account that was used to create the signature.
// copy of internal go-ethereum function:
// https://github.com/ethereum/go-ethereum/blob/v1.10.9/internal/ethapi/api.go#L524
func ecRecover(data []byte, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes long", crypto.SignatureLength)
	}

	// copy before mutating V so callers may reuse the signature
	fixed := make([]byte, len(sig))
	copy(fixed, sig)

	// support both versions of `eth_sign` responses
	//	@see	https://github.com/ethereumjs/ethereumjs-util/blob/master/src/signature.ts#L112
	if fixed[crypto.RecoveryIDOffset] < 27 {
		fixed[crypto.RecoveryIDOffset] += 27
	}

	if fixed[crypto.RecoveryIDOffset] != 27 && fixed[crypto.RecoveryIDOffset] != 28 {
		return common.Address{}, fmt.Errorf("invalid Ethereum signature (V is not 27 or 28)")
	}

	fixed[crypto.RecoveryIDOffset] -= 27

	rpk, err := crypto.SigToPub(data, fixed)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(*rpk), nil
}
