package usecase

import (
	"time"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/binding"
	"github.com/crossbind/goapi/domain/chain"
	"github.com/crossbind/goapi/service/ens"
)

type impl struct {
	repo   binding.Repo
	events binding.EventRepo
	ens    ens.ENS
}

// New creates the registry usecase. events may be nil to disable the audit
// log.
func New(repo binding.Repo, events binding.EventRepo, ensSvc ens.ENS) binding.Usecase {
	return &impl{
		repo:   repo,
		events: events,
		ens:    ensSvc,
	}
}

// requireOwner resolves the node's current owner and rejects everyone else.
// Ownership is re-read on every write, a transferred name immediately loses
// its old controller.
func (im *impl) requireOwner(c ctx.Ctx, caller domain.Address, node domain.Node) error {
	owner, err := im.ens.Owner(c, node)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node}).Error("failed to resolve node owner")
		return err
	}
	if owner.IsEmpty() || !owner.Equals(caller) {
		return &binding.NotOwnerError{Node: node, Caller: caller}
	}
	return nil
}

func (im *impl) SetBinding(c ctx.Ctx, caller domain.Address, b *binding.Binding) error {
	if b.Address.IsEmpty() {
		return domain.ErrEmptyAddress
	}
	if b.ChainId.IsEmpty() {
		return domain.ErrEmptyChainId
	}
	if !chain.IsSupported(b.ChainId) {
		return domain.ErrUnsupportedChain
	}

	if err := im.requireOwner(c, caller, b.Node); err != nil {
		return err
	}

	b.ChainId = b.ChainId.ToLower()

	created, err := im.repo.Set(c, b)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": b.Node, "chainId": b.ChainId}).Error("failed to set binding")
		return err
	}

	c.WithFields(log.Fields{
		"node":    b.Node,
		"chainId": b.ChainId,
		"address": b.Address,
		"created": created,
	}).Info("binding set")

	im.emit(c, &binding.Event{
		Type:             binding.EventBindingSet,
		Node:             b.Node,
		ChainId:          b.ChainId,
		Address:          b.Address,
		ProofFingerprint: b.ProofFingerprint,
		VerifiedAt:       b.VerifiedAt,
		Caller:           caller,
		CreatedAt:        time.Now().UTC(),
	})
	return nil
}

func (im *impl) GetBinding(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (*binding.Binding, error) {
	if chainId.IsEmpty() {
		return nil, domain.ErrEmptyChainId
	}
	return im.repo.Get(c, node, chainId.ToLower())
}

func (im *impl) RemoveBinding(c ctx.Ctx, caller domain.Address, node domain.Node, chainId domain.ChainId) error {
	if chainId.IsEmpty() {
		return domain.ErrEmptyChainId
	}

	if err := im.requireOwner(c, caller, node); err != nil {
		return err
	}

	chainId = chainId.ToLower()

	if err := im.repo.Remove(c, node, chainId); err != nil {
		return err
	}

	c.WithFields(log.Fields{"node": node, "chainId": chainId}).Info("binding removed")

	im.emit(c, &binding.Event{
		Type:      binding.EventBindingRemoved,
		Node:      node,
		ChainId:   chainId,
		Caller:    caller,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (im *impl) ListChains(c ctx.Ctx, node domain.Node) ([]domain.ChainId, error) {
	return im.repo.ListChainIds(c, node)
}

func (im *impl) Count(c ctx.Ctx, node domain.Node) (int, error) {
	return im.repo.Count(c, node)
}

func (im *impl) Exists(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (bool, error) {
	if chainId.IsEmpty() {
		return false, domain.ErrEmptyChainId
	}
	return im.repo.Exists(c, node, chainId.ToLower())
}

func (im *impl) Events(c ctx.Ctx, node domain.Node) ([]binding.Event, error) {
	if im.events == nil {
		return []binding.Event{}, nil
	}
	return im.events.FindByNode(c, node)
}

func (im *impl) RegistryAddress() domain.Address {
	return im.ens.RegistryAddress()
}

func (im *impl) OwnerOf(c ctx.Ctx, node domain.Node) (domain.Address, error) {
	return im.ens.Owner(c, node)
}

// emit appends to the audit log. The registry write already happened; a
// failed audit insert is logged and swallowed.
func (im *impl) emit(c ctx.Ctx, e *binding.Event) {
	if im.events == nil {
		return
	}
	if err := im.events.Insert(c, e); err != nil {
		c.WithFields(log.Fields{"err": err, "node": e.Node, "type": e.Type}).Warn("failed to insert audit event")
	}
}
