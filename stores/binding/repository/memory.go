package repository

import (
	"sync"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/binding"
)

type bindingKey struct {
	node    domain.Node
	chainId domain.ChainId
}

// nodeChains enumerates the chain ids bound under one node. chainIds plus the
// position index mirror the on-chain resolver's array-and-index layout so the
// memory repo removes entries the same way: overwrite with the last element,
// shrink by one.
type nodeChains struct {
	chainIds []domain.ChainId
	index    map[domain.ChainId]int
}

type memoryRepo struct {
	mu       sync.RWMutex
	bindings map[bindingKey]binding.Binding
	chains   map[domain.Node]*nodeChains
}

// NewMemoryRepo keeps the registry in process memory, for local mode and
// tests.
func NewMemoryRepo() binding.Repo {
	return &memoryRepo{
		bindings: map[bindingKey]binding.Binding{},
		chains:   map[domain.Node]*nodeChains{},
	}
}

func (r *memoryRepo) Get(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (*binding.Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bindings[bindingKey{node, chainId}]
	if !ok {
		return nil, &binding.NotFoundError{Node: node, ChainId: chainId}
	}
	cp := b
	return &cp, nil
}

func (r *memoryRepo) Set(c ctx.Ctx, b *binding.Binding) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := bindingKey{b.Node, b.ChainId}
	_, existed := r.bindings[key]
	r.bindings[key] = *b

	if !existed {
		nc, ok := r.chains[b.Node]
		if !ok {
			nc = &nodeChains{index: map[domain.ChainId]int{}}
			r.chains[b.Node] = nc
		}
		nc.index[b.ChainId] = len(nc.chainIds)
		nc.chainIds = append(nc.chainIds, b.ChainId)
	}
	return !existed, nil
}

func (r *memoryRepo) Remove(c ctx.Ctx, node domain.Node, chainId domain.ChainId) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := bindingKey{node, chainId}
	if _, ok := r.bindings[key]; !ok {
		return &binding.NotFoundError{Node: node, ChainId: chainId}
	}
	delete(r.bindings, key)

	nc := r.chains[node]
	pos := nc.index[chainId]
	last := len(nc.chainIds) - 1
	if pos != last {
		moved := nc.chainIds[last]
		nc.chainIds[pos] = moved
		nc.index[moved] = pos
	}
	nc.chainIds = nc.chainIds[:last]
	delete(nc.index, chainId)

	if len(nc.chainIds) == 0 {
		delete(r.chains, node)
	}
	return nil
}

func (r *memoryRepo) ListChainIds(c ctx.Ctx, node domain.Node) ([]domain.ChainId, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nc, ok := r.chains[node]
	if !ok {
		return []domain.ChainId{}, nil
	}
	out := make([]domain.ChainId, len(nc.chainIds))
	copy(out, nc.chainIds)
	return out, nil
}

func (r *memoryRepo) Count(c ctx.Ctx, node domain.Node) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nc, ok := r.chains[node]
	if !ok {
		return 0, nil
	}
	return len(nc.chainIds), nil
}

func (r *memoryRepo) Exists(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.bindings[bindingKey{node, chainId}]
	return ok, nil
}
