package ens

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	goens "github.com/wealdtech/go-ens/v3"

	baseabi "github.com/crossbind/goapi/base/abi"
	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/keys"
	"github.com/crossbind/goapi/service/cache"
	compoundcache "github.com/crossbind/goapi/service/cache/compoundCache"
	"github.com/crossbind/goapi/service/cache/provider/primitive"
	redisCache "github.com/crossbind/goapi/service/cache/provider/redis"
	"github.com/crossbind/goapi/service/eth"
	"github.com/crossbind/goapi/service/redis"
)

type impl struct {
	client       eth.Client
	registryAddr domain.Address
	cache        cache.Service
}

// New wires the ens service over an rpc client. registryAddr is the identity
// registry contract; resolutions are cached in-process and in redis.
func New(client eth.Client, registryAddr domain.Address, redisSvc redis.Service) ENS {
	return &impl{
		client:       client,
		registryAddr: registryAddr,
		cache: compoundcache.NewCompoundCache([]cache.Service{
			cache.New(cache.ServiceConfig{
				Ttl:   30 * time.Second,
				Pfx:   keys.PfxEns,
				Cache: primitive.NewPrimitive("ens", 64),
			}),
			cache.New(cache.ServiceConfig{
				Ttl:   time.Hour,
				Pfx:   keys.PfxEns,
				Cache: redisCache.NewRedis(redisSvc),
			}),
		}),
	}
}

func (im *impl) Resolve(c ctx.Ctx, name string) (domain.Address, error) {
	res := domain.Address("")
	key := keys.RedisKey("resolve", name)
	err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		addr, err := goens.Resolve(im.client.Raw(), name)
		if fmt.Sprint(err) == "unregistered name" {
			val := domain.Address("")
			return &val, nil
		}
		if err != nil {
			c.WithFields(log.Fields{"err": err, "name": name}).Error("failed to goens.Resolve")
			return nil, err
		}
		val := domain.Address(addr.String()).ToLower()
		return &val, nil
	})

	if err != nil {
		c.WithField("err", err).Error("failed to cache.GetByFunc")
		return "", err
	}

	return res, nil
}

func (im *impl) NameHash(name string) (domain.Node, error) {
	hash, err := goens.NameHash(name)
	if err != nil {
		return "", err
	}
	return domain.Node(hexutil.Encode(hash[:])), nil
}

func (im *impl) Owner(c ctx.Ctx, node domain.Node) (domain.Address, error) {
	raw, err := hexutil.Decode(string(node))
	if err != nil || len(raw) != 32 {
		c.WithFields(log.Fields{"err": err, "node": node}).Error("malformed node")
		return "", domain.ErrBadParamInput
	}
	var nodeHash [32]byte
	copy(nodeHash[:], raw)

	unpacked, err := im.client.Call(c, common.HexToAddress(string(im.registryAddr)), nil, baseabi.ENSRegistryABI, "owner", nodeHash)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "node": node}).Error("registry owner call failed")
		return "", err
	}
	owner := unpacked[0].(common.Address)
	return domain.Address(owner.Hex()).ToLower(), nil
}

func (im *impl) RegistryAddress() domain.Address {
	return im.registryAddr
}
