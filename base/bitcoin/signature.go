package bitcoin

import (
	"bytes"
	"encoding/base64"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// messageSignatureHeader is the domain separation prefix of the bitcoin
// message-signing convention; both header and message are varint
// length-prefixed before hashing.
const messageSignatureHeader = "Bitcoin Signed Message:\n"

const compactSigSize = 65

// VerifyMessage checks that signature (base64 compact signature, BIP-137) was
// produced by the key behind address over message. The address must pass the
// format gate first. It never panics; any malformed input yields false.
//
// Taproot addresses pass the format gate but always fail verification here
// since they cannot be matched against an ECDSA-recovered key.
func VerifyMessage(address, message, signature string) bool {
	if !IsValidAddress(address) {
		return false
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil || len(sig) != compactSigSize {
		return false
	}

	hash := MessageHash(message)
	pub, compressed, err := ecdsa.RecoverCompact(sig, hash)
	if err != nil {
		return false
	}

	decoded, err := decodeAddress(address)
	if err != nil {
		return false
	}

	var serialized []byte
	if compressed {
		serialized = pub.SerializeCompressed()
	} else {
		serialized = pub.SerializeUncompressed()
	}

	switch addr := decoded.(type) {
	case *btcutil.AddressPubKeyHash:
		return bytes.Equal(btcutil.Hash160(serialized), addr.Hash160()[:])
	case *btcutil.AddressWitnessPubKeyHash:
		// p2wpkh commits to the compressed key only
		return bytes.Equal(btcutil.Hash160(pub.SerializeCompressed()), addr.WitnessProgram())
	case *btcutil.AddressScriptHash:
		// nested segwit, p2sh wrapping the p2wpkh witness program
		program := btcutil.Hash160(pub.SerializeCompressed())
		script := append([]byte{0x00, 0x14}, program...)
		return bytes.Equal(btcutil.Hash160(script), addr.Hash160()[:])
	default:
		return false
	}
}

// MessageHash returns the double-SHA256 digest of the framed signing payload.
func MessageHash(message string) []byte {
	var buf bytes.Buffer
	_ = wire.WriteVarString(&buf, 0, messageSignatureHeader)
	_ = wire.WriteVarString(&buf, 0, message)
	return chainhash.DoubleHashB(buf.Bytes())
}
