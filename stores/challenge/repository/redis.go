package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/challenge"
	"github.com/crossbind/goapi/domain/keys"
	"github.com/crossbind/goapi/service/redis"
)

type redisNonceRepo struct {
	redis redis.Service
}

// NewRedisNonceRepo keeps issued nonces in redis with their ttl. Consume uses
// GETDEL so a nonce can be redeemed exactly once across replicas.
func NewRedisNonceRepo(redisSvc redis.Service) challenge.NonceRepo {
	return &redisNonceRepo{redis: redisSvc}
}

func (r *redisNonceRepo) Save(c ctx.Ctx, ch *challenge.Challenge, ttl time.Duration) error {
	data, err := json.Marshal(ch)
	if err != nil {
		c.WithField("err", err).Error("failed to marshal challenge")
		return err
	}

	key := keys.RedisKey(keys.PfxNonce, ch.Nonce)
	if err := r.redis.Set(c, key, data, ttl); err != nil {
		c.WithFields(log.Fields{"err": err, "nonce": ch.Nonce}).Error("failed to set nonce")
		return err
	}
	return nil
}

func (r *redisNonceRepo) Consume(c ctx.Ctx, nonce string) (*challenge.Challenge, error) {
	key := keys.RedisKey(keys.PfxNonce, nonce)

	data, err := r.redis.GetDel(c, key)
	if errors.Is(err, redis.ErrNotFound) {
		return nil, domain.ErrInvalidNonce
	}
	if err != nil {
		c.WithFields(log.Fields{"err": err, "nonce": nonce}).Error("failed to getdel nonce")
		return nil, err
	}

	ch := &challenge.Challenge{}
	if err := json.Unmarshal(data, ch); err != nil {
		c.WithFields(log.Fields{"err": err, "nonce": nonce}).Error("failed to unmarshal challenge")
		return nil, err
	}
	return ch, nil
}
