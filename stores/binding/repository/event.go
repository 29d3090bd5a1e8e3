package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/binding"
	"github.com/crossbind/goapi/service/query"
)

type eventRepo struct {
	q query.Mongo
}

// NewEventRepo persists the registry audit log in mongo, append only.
func NewEventRepo(q query.Mongo) binding.EventRepo {
	return &eventRepo{q: q}
}

func (r *eventRepo) Insert(c ctx.Ctx, e *binding.Event) error {
	if err := r.q.Insert(c, domain.TableBindingEvents, e); err != nil {
		c.WithFields(log.Fields{"err": err, "node": e.Node, "type": e.Type}).Error("failed to insert binding event")
		return err
	}
	return nil
}

func (r *eventRepo) FindByNode(c ctx.Ctx, node domain.Node) ([]binding.Event, error) {
	events := []binding.Event{}
	if err := r.q.Search(c, domain.TableBindingEvents, 0, 0, "-createdAt", bson.M{"node": node}, &events); err != nil {
		c.WithFields(log.Fields{"err": err, "node": node}).Error("failed to search binding events")
		return nil, err
	}
	return events, nil
}
