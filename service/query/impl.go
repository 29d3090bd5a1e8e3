package query

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/database/mongoclient"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain"
)

const (
	maxQueryTime = 30 * time.Second
)

type impl struct {
	client *mongoclient.Client
}

// New creates the mongo query service over a connected client
func New(client *mongoclient.Client) Mongo {
	return &impl{client: client}
}

func (im *impl) collection(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

func (im *impl) Insert(c ctx.Ctx, table domain.Table, insert interface{}) error {
	c = ctx.WithValues(c, log.Fields{"table": table})

	if _, err := im.collection(table).InsertOne(c, insert); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		c.WithField("err", err).Error("InsertOne failed")
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error {
	c = ctx.WithValues(c, log.Fields{"table": table, "query": query})

	opts := options.FindOne().SetMaxTime(maxQueryTime)
	err := im.collection(table).FindOne(c, query, opts).Decode(result)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		c.WithField("err", err).Error("FindOne failed")
		return err
	}
	return nil
}

func (im *impl) Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	c = ctx.WithValues(c, log.Fields{"table": table, "selector": selector})

	opts := options.Count().SetMaxTime(maxQueryTime)
	n, err := im.collection(table).CountDocuments(c, selector, opts)
	if err != nil {
		c.WithField("err", err).Error("CountDocuments failed")
		return 0, err
	}
	return int(n), nil
}

func (im *impl) Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error {
	c = ctx.WithValues(c, log.Fields{"table": table, "selector": selector})

	opts := options.Replace().SetUpsert(true)
	if _, err := im.collection(table).ReplaceOne(c, selector, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		c.WithField("err", err).Error("ReplaceOne failed")
		return err
	}
	return nil
}

func (im *impl) Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error {
	c = ctx.WithValues(c, log.Fields{"table": table, "query": query})

	opts := options.Find().
		SetSkip(int64(offset)).
		SetMaxTime(maxQueryTime)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if sort != "" {
		opts.SetSort(parseSort(sort))
	}

	cursor, err := im.collection(table).Find(c, query, opts)
	if err != nil {
		c.WithField("err", err).Error("Find failed")
		return err
	}
	defer cursor.Close(c)

	if err := cursor.All(c, results); err != nil {
		c.WithField("err", err).Error("cursor.All failed")
		return err
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, table domain.Table, selector interface{}) error {
	c = ctx.WithValues(c, log.Fields{"table": table, "selector": selector})

	res, err := im.collection(table).DeleteOne(c, selector)
	if err != nil {
		c.WithField("err", err).Error("DeleteOne failed")
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// parseSort maps "field" to ascending and "-field" to descending
func parseSort(sort string) bson.D {
	order := 1
	field := sort
	if strings.HasPrefix(sort, "-") {
		order = -1
		field = strings.TrimPrefix(sort, "-")
	}
	return bson.D{{Key: field, Value: order}}
}
