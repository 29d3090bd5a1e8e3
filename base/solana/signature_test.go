package solana

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

func TestVerifyMessage(t *testing.T) {
	req := require.New(t)

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	req.NoError(err)

	address := base58.Encode(pub)
	message := "challenge nonce abc"
	signature := base58.Encode(ed25519.Sign(priv, []byte(message)))

	req.True(VerifyMessage(address, message, signature))
	req.False(VerifyMessage(address, "another message", signature))

	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	req.NoError(err)
	req.False(VerifyMessage(base58.Encode(otherPub), message, signature))
}

func TestVerifyMessageMalformedInput(t *testing.T) {
	req := require.New(t)

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	req.NoError(err)

	address := base58.Encode(pub)
	message := "a message"
	signature := base58.Encode(ed25519.Sign(priv, []byte(message)))

	// 0, O, I, l are outside the base58 alphabet
	req.False(VerifyMessage("0OIl", message, signature))
	req.False(VerifyMessage(address, message, "0OIl"))
	// decodes but wrong length
	req.False(VerifyMessage(base58.Encode([]byte("short")), message, signature))
	req.False(VerifyMessage(address, message, base58.Encode([]byte("short"))))
}

func TestIsValidAddress(t *testing.T) {
	req := require.New(t)

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	req.NoError(err)

	req.True(IsValidAddress(base58.Encode(pub)))
	req.False(IsValidAddress(""))
	req.False(IsValidAddress("0OIl"))
	req.False(IsValidAddress(base58.Encode([]byte("short"))))
}
