package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crossbind/goapi/domain"
)

func TestLookup(t *testing.T) {
	req := require.New(t)

	c, ok := Lookup(domain.ChainBitcoin)
	req.True(ok)
	req.Equal(domain.ChainBitcoin, c.Id)
	req.NotNil(c.Verify)

	// case insensitive
	c, ok = Lookup(domain.ChainId("Ethereum"))
	req.True(ok)
	req.Equal(domain.ChainEthereum, c.Id)

	_, ok = Lookup(domain.ChainId("dogecoin"))
	req.False(ok)
}

func TestIsSupported(t *testing.T) {
	req := require.New(t)

	req.True(IsSupported(domain.ChainBitcoin))
	req.True(IsSupported(domain.ChainEthereum))
	req.True(IsSupported(domain.ChainSolana))
	req.True(IsSupported(domain.ChainId("SOLANA")))
	req.False(IsSupported(domain.ChainId("")))
	req.False(IsSupported(domain.ChainId("cosmos")))
}

func TestIds(t *testing.T) {
	req := require.New(t)

	req.Equal([]domain.ChainId{
		domain.ChainBitcoin,
		domain.ChainEthereum,
		domain.ChainSolana,
	}, Ids())
}
