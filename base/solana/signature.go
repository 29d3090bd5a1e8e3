package solana

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// IsValidAddress reports whether address base58-decodes to a 32-byte ed25519
// public key.
func IsValidAddress(address string) bool {
	pub, err := base58.Decode(address)
	return err == nil && len(pub) == ed25519.PublicKeySize
}

// VerifyMessage checks a detached ed25519 signature over the raw message
// bytes. The public key is the base58-decoded address and the signature is
// base58 encoded as well. Invalid base58 input (characters outside the
// alphabet, wrong decoded length) yields false, never a panic.
func VerifyMessage(address, message, signature string) bool {
	pub, err := base58.Decode(address)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	sig, err := base58.Decode(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), []byte(message), sig)
}
