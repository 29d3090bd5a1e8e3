package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/binding"
	"github.com/crossbind/goapi/service/query"
)

type mongoRepo struct {
	q query.Mongo
}

// NewMongoRepo persists the registry in mongo, keyed on (node, chainId).
func NewMongoRepo(q query.Mongo) binding.Repo {
	return &mongoRepo{q: q}
}

func selector(node domain.Node, chainId domain.ChainId) bson.M {
	return bson.M{"node": node, "chainId": chainId}
}

func (r *mongoRepo) Get(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (*binding.Binding, error) {
	b := &binding.Binding{}
	err := r.q.FindOne(c, domain.TableBindings, selector(node, chainId), b)
	if errors.Is(err, query.ErrNotFound) {
		return nil, &binding.NotFoundError{Node: node, ChainId: chainId}
	}
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node, "chainId": chainId}).Error("failed to find binding")
		return nil, err
	}
	return b, nil
}

func (r *mongoRepo) Set(c ctx.Ctx, b *binding.Binding) (bool, error) {
	existed, err := r.Exists(c, b.Node, b.ChainId)
	if err != nil {
		return false, err
	}

	if err := r.q.Upsert(c, domain.TableBindings, selector(b.Node, b.ChainId), b); err != nil {
		c.WithFields(log.Fields{"err": err, "node": b.Node, "chainId": b.ChainId}).Error("failed to upsert binding")
		return false, err
	}
	return !existed, nil
}

func (r *mongoRepo) Remove(c ctx.Ctx, node domain.Node, chainId domain.ChainId) error {
	err := r.q.Remove(c, domain.TableBindings, selector(node, chainId))
	if errors.Is(err, query.ErrNotFound) {
		return &binding.NotFoundError{Node: node, ChainId: chainId}
	}
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node, "chainId": chainId}).Error("failed to remove binding")
		return err
	}
	return nil
}

func (r *mongoRepo) ListChainIds(c ctx.Ctx, node domain.Node) ([]domain.ChainId, error) {
	bindings := []binding.Binding{}
	if err := r.q.Search(c, domain.TableBindings, 0, 0, "verifiedAt", bson.M{"node": node}, &bindings); err != nil {
		c.WithFields(log.Fields{"err": err, "node": node}).Error("failed to search bindings")
		return nil, err
	}

	chainIds := make([]domain.ChainId, 0, len(bindings))
	for _, b := range bindings {
		chainIds = append(chainIds, b.ChainId)
	}
	return chainIds, nil
}

func (r *mongoRepo) Count(c ctx.Ctx, node domain.Node) (int, error) {
	n, err := r.q.Count(c, domain.TableBindings, bson.M{"node": node})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node}).Error("failed to count bindings")
		return 0, err
	}
	return n, nil
}

func (r *mongoRepo) Exists(c ctx.Ctx, node domain.Node, chainId domain.ChainId) (bool, error) {
	n, err := r.q.Count(c, domain.TableBindings, selector(node, chainId))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node, "chainId": chainId}).Error("failed to count binding")
		return false, err
	}
	return n > 0, nil
}
