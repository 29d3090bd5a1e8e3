package eth

import (
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
)

// Client is a thin read-path wrapper over an ethereum rpc endpoint: pack,
// call, unpack. Contract wrappers in the repository layer build on it.
type Client interface {
	Call(c bCtx.Ctx, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	Raw() *ethclient.Client
}

type clientImpl struct {
	client *ethclient.Client
}

func NewClient(c bCtx.Ctx, rpcUrl string) (Client, error) {
	client, err := ethclient.DialContext(c, rpcUrl)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "url": rpcUrl}).Error("failed to dial rpc")
		return nil, err
	}
	return &clientImpl{client: client}, nil
}

func (c *clientImpl) Raw() *ethclient.Client {
	return c.client
}

func (c *clientImpl) Call(ctx bCtx.Ctx, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{"method": method, "err": err}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := c.client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithFields(log.Fields{"method": method, "err": err}).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}
