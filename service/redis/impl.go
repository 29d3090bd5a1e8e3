package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/metrics"
)

// retTTLNoExpire is the return value of PTTL when the key exists but has no
// associated expire
const retTTLNoExpire = -1

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// New redis service over the given pools
func New(name string, met metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   met,
		pools: pools,
	}
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()
	conn := r.pools.Src.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getconn.err", 1, "cluster", r.name)
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) connDo(c ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	defer r.met.BumpTime("cmd.time", "cluster", r.name, "cmd", commandName).End()
	reply, err := conn.Do(commandName, args...)
	if err != nil {
		r.met.BumpSum("cmd.err", 1, "cluster", r.name, "cmd", commandName)
		c.WithFields(map[string]interface{}{"err": err, "cmd": commandName}).Error("redis command failed")
	}
	return reply, err
}

func (r *redImpl) Get(c ctx.Ctx, key string) ([]byte, error) {
	reply, err := redis.Bytes(r.connDo(c, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	}
	return reply, err
}

func (r *redImpl) GetWithTTL(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, err := r.Get(c, key)
	if err != nil {
		return nil, 0, err
	}
	ms, err := redis.Int64(r.connDo(c, "PTTL", key))
	if err != nil {
		return nil, 0, err
	}
	if ms <= retTTLNoExpire {
		return val, 0, nil
	}
	return val, time.Duration(ms) * time.Millisecond, nil
}

func (r *redImpl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	var err error
	if ttl > 0 {
		_, err = r.connDo(c, "SET", key, value, "PX", int64(ttl/time.Millisecond))
	} else {
		_, err = r.connDo(c, "SET", key, value)
	}
	return err
}

func (r *redImpl) Del(c ctx.Ctx, key string) error {
	_, err := r.connDo(c, "DEL", key)
	return err
}

func (r *redImpl) GetDel(c ctx.Ctx, key string) ([]byte, error) {
	reply, err := redis.Bytes(r.connDo(c, "GETDEL", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	}
	return reply, err
}
