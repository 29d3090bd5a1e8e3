package bitcoin

import (
	"encoding/base64"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
)

func signMessage(t *testing.T, key *btcec.PrivateKey, message string, compressed bool) string {
	t.Helper()
	sig, err := ecdsa.SignCompact(key, MessageHash(message), compressed)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(sig)
}

func TestVerifyMessageP2PKH(t *testing.T) {
	req := require.New(t)

	key, err := btcec.NewPrivateKey()
	req.NoError(err)

	pubKeyHash := btcutil.Hash160(key.PubKey().SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, &chaincfg.MainNetParams)
	req.NoError(err)

	message := "challenge nonce 42"
	signature := signMessage(t, key, message, true)

	req.True(VerifyMessage(addr.EncodeAddress(), message, signature))
	req.False(VerifyMessage(addr.EncodeAddress(), "another message", signature))

	otherKey, err := btcec.NewPrivateKey()
	req.NoError(err)
	otherHash := btcutil.Hash160(otherKey.PubKey().SerializeCompressed())
	otherAddr, err := btcutil.NewAddressPubKeyHash(otherHash, &chaincfg.MainNetParams)
	req.NoError(err)
	req.False(VerifyMessage(otherAddr.EncodeAddress(), message, signature))
}

func TestVerifyMessageP2PKHUncompressed(t *testing.T) {
	req := require.New(t)

	key, err := btcec.NewPrivateKey()
	req.NoError(err)

	pubKeyHash := btcutil.Hash160(key.PubKey().SerializeUncompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, &chaincfg.MainNetParams)
	req.NoError(err)

	message := "uncompressed key message"
	signature := signMessage(t, key, message, false)

	req.True(VerifyMessage(addr.EncodeAddress(), message, signature))
}

func TestVerifyMessageP2WPKH(t *testing.T) {
	req := require.New(t)

	key, err := btcec.NewPrivateKey()
	req.NoError(err)

	program := btcutil.Hash160(key.PubKey().SerializeCompressed())
	addr, err := btcutil.NewAddressWitnessPubKeyHash(program, &chaincfg.MainNetParams)
	req.NoError(err)

	message := "segwit challenge"
	signature := signMessage(t, key, message, true)

	req.True(VerifyMessage(addr.EncodeAddress(), message, signature))
	req.False(VerifyMessage(addr.EncodeAddress(), "tampered", signature))
}

func TestVerifyMessageNestedSegwit(t *testing.T) {
	req := require.New(t)

	key, err := btcec.NewPrivateKey()
	req.NoError(err)

	program := btcutil.Hash160(key.PubKey().SerializeCompressed())
	script := append([]byte{0x00, 0x14}, program...)
	addr, err := btcutil.NewAddressScriptHash(script, &chaincfg.MainNetParams)
	req.NoError(err)

	message := "nested segwit challenge"
	signature := signMessage(t, key, message, true)

	req.True(VerifyMessage(addr.EncodeAddress(), message, signature))
}

func TestVerifyMessageMalformedInput(t *testing.T) {
	req := require.New(t)

	key, err := btcec.NewPrivateKey()
	req.NoError(err)
	pubKeyHash := btcutil.Hash160(key.PubKey().SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, &chaincfg.MainNetParams)
	req.NoError(err)

	message := "some message"
	signature := signMessage(t, key, message, true)

	// not base64
	req.False(VerifyMessage(addr.EncodeAddress(), message, "%%%not-base64%%%"))
	// base64 of the wrong length
	req.False(VerifyMessage(addr.EncodeAddress(), message, base64.StdEncoding.EncodeToString([]byte("short"))))
	// malformed address never reaches recovery
	req.False(VerifyMessage("zzzz-not-an-address", message, signature))
	// taproot passes the format gate but cannot be matched
	req.False(VerifyMessage("bc1p5d7rjq7g6rdk2yhzks9smlaqtedr4dekq08ge8ztwac72sfr9rusxg3297", message, signature))
}

func TestIsValidAddress(t *testing.T) {
	req := require.New(t)

	// legacy p2pkh and p2sh
	req.True(IsValidAddress("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"))
	req.True(IsValidAddress("3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy"))
	// segwit v0
	req.True(IsValidAddress("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"))
	// taproot
	req.True(IsValidAddress("bc1p5d7rjq7g6rdk2yhzks9smlaqtedr4dekq08ge8ztwac72sfr9rusxg3297"))

	req.False(IsValidAddress(""))
	req.False(IsValidAddress("0A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"))
	req.False(IsValidAddress("bc1qinvalidcharsO0Il"))
	req.False(IsValidAddress("0x71C7656EC7ab88b098defB751B7401B5f6d8976F"))
}
