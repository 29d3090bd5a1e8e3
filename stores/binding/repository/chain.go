package repository

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	baseabi "github.com/crossbind/goapi/base/abi"
	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/binding"
	"github.com/crossbind/goapi/service/eth"
)

type chainRepo struct {
	client   eth.Client
	contract common.Address
	bound    *bind.BoundContract
	signer   *bind.TransactOpts
}

// NewChainRepo reads and writes bindings on the deployed resolver contract.
// signerKey may be nil for a read-only repo; writes then fail with
// domain.ErrInternalServerError.
func NewChainRepo(c ctx.Ctx, client eth.Client, contract domain.Address, signerKey *ecdsa.PrivateKey, evmChainId *big.Int) (binding.Repo, error) {
	addr := common.HexToAddress(string(contract))

	repo := &chainRepo{
		client:   client,
		contract: addr,
		bound:    bind.NewBoundContract(addr, baseabi.BindingResolverABI, client.Raw(), client.Raw(), client.Raw()),
	}

	if signerKey != nil {
		signer, err := bind.NewKeyedTransactorWithChainID(signerKey, evmChainId)
		if err != nil {
			c.WithField("err", err).Error("failed to build transactor")
			return nil, err
		}
		repo.signer = signer
	}
	return repo, nil
}

func nodeHash(node domain.Node) common.Hash {
	return common.HexToHash(string(node))
}

func (r *chainRepo) Get(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (*binding.Binding, error) {
	unpacked, err := r.client.Call(c, r.contract, nil, baseabi.BindingResolverABI, "getBinding", nodeHash(node), chainId.String())
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node, "chainId": chainId}).Error("getBinding call failed")
		return nil, err
	}

	addr := unpacked[0].(string)
	if addr == "" {
		return nil, &binding.NotFoundError{Node: node, ChainId: chainId}
	}

	fingerprint := unpacked[1].([32]byte)
	verifiedAt := unpacked[2].(*big.Int)

	return &binding.Binding{
		Node:             node,
		ChainId:          chainId,
		Address:          domain.Address(addr),
		ProofFingerprint: hexutil.Encode(fingerprint[:]),
		VerifiedAt:       verifiedAt.Int64(),
	}, nil
}

func (r *chainRepo) Set(c ctx.Ctx, b *binding.Binding) (bool, error) {
	if r.signer == nil {
		c.Error("set attempted on read-only chain repo")
		return false, domain.ErrInternalServerError
	}

	existed, err := r.Exists(c, b.Node, b.ChainId)
	if err != nil {
		return false, err
	}

	raw, err := hexutil.Decode(b.ProofFingerprint)
	if err != nil || len(raw) != 32 {
		c.WithFields(log.Fields{"err": err, "fingerprint": b.ProofFingerprint}).Error("malformed fingerprint")
		return false, domain.ErrBadParamInput
	}
	var fingerprint [32]byte
	copy(fingerprint[:], raw)

	tx, err := r.bound.Transact(r.signer, "setBinding",
		nodeHash(b.Node), b.ChainId.String(), string(b.Address), fingerprint, big.NewInt(b.VerifiedAt))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": b.Node, "chainId": b.ChainId}).Error("setBinding tx failed")
		return false, err
	}

	if _, err := bind.WaitMined(c, r.client.Raw(), tx); err != nil {
		c.WithFields(log.Fields{"err": err, "tx": tx.Hash()}).Error("setBinding tx not mined")
		return false, err
	}
	return !existed, nil
}

func (r *chainRepo) Remove(c ctx.Ctx, node domain.Node, chainId domain.ChainId) error {
	if r.signer == nil {
		c.Error("remove attempted on read-only chain repo")
		return domain.ErrInternalServerError
	}

	existed, err := r.Exists(c, node, chainId)
	if err != nil {
		return err
	}
	if !existed {
		return &binding.NotFoundError{Node: node, ChainId: chainId}
	}

	tx, err := r.bound.Transact(r.signer, "removeBinding", nodeHash(node), chainId.String())
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node, "chainId": chainId}).Error("removeBinding tx failed")
		return err
	}

	if _, err := bind.WaitMined(c, r.client.Raw(), tx); err != nil {
		c.WithFields(log.Fields{"err": err, "tx": tx.Hash()}).Error("removeBinding tx not mined")
		return err
	}
	return nil
}

func (r *chainRepo) ListChainIds(c ctx.Ctx, node domain.Node) ([]domain.ChainId, error) {
	unpacked, err := r.client.Call(c, r.contract, nil, baseabi.BindingResolverABI, "listChains", nodeHash(node))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node}).Error("listChains call failed")
		return nil, err
	}

	raw := unpacked[0].([]string)
	chainIds := make([]domain.ChainId, 0, len(raw))
	for _, id := range raw {
		chainIds = append(chainIds, domain.ChainId(id))
	}
	return chainIds, nil
}

func (r *chainRepo) Count(c ctx.Ctx, node domain.Node) (int, error) {
	unpacked, err := r.client.Call(c, r.contract, nil, baseabi.BindingResolverABI, "count", nodeHash(node))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node}).Error("count call failed")
		return 0, err
	}
	return int(unpacked[0].(*big.Int).Int64()), nil
}

func (r *chainRepo) Exists(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (bool, error) {
	unpacked, err := r.client.Call(c, r.contract, nil, baseabi.BindingResolverABI, "exists", nodeHash(node), chainId.String())
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node, "chainId": chainId}).Error("exists call failed")
		return false, err
	}
	return unpacked[0].(bool), nil
}
