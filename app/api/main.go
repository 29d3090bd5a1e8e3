package main

import (
	"crypto/ecdsa"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/database/mongoclient"
	"github.com/crossbind/goapi/base/database/redisclient"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/base/metrics"
	bValidator "github.com/crossbind/goapi/base/validator"
	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/binding"
	"github.com/crossbind/goapi/domain/challenge"
	"github.com/crossbind/goapi/domain/proof"
	mmiddleware "github.com/crossbind/goapi/middleware"
	"github.com/crossbind/goapi/service/ens"
	"github.com/crossbind/goapi/service/eth"
	"github.com/crossbind/goapi/service/pinata"
	"github.com/crossbind/goapi/service/query"
	"github.com/crossbind/goapi/service/redis"
	binding_delivery "github.com/crossbind/goapi/stores/binding/delivery/http"
	binding_repository "github.com/crossbind/goapi/stores/binding/repository"
	binding_usecase "github.com/crossbind/goapi/stores/binding/usecase"
	challenge_delivery "github.com/crossbind/goapi/stores/challenge/delivery/http"
	challenge_repository "github.com/crossbind/goapi/stores/challenge/repository"
	challenge_usecase "github.com/crossbind/goapi/stores/challenge/usecase"
	hc_delivery "github.com/crossbind/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/crossbind/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/crossbind/goapi/stores/healthcheck/usecase"
	proof_repository "github.com/crossbind/goapi/stores/proof/repository"
	verification_delivery "github.com/crossbind/goapi/stores/verification/delivery/http"
	verification_usecase "github.com/crossbind/goapi/stores/verification/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init eth rpc and ens
	context.Info("init eth client")
	ethClient, err := eth.NewClient(context, viper.GetString("eth.rpcUrl"))
	if err != nil {
		context.WithField("err", err).Panic("failed to dial eth rpc")
	}
	ensRegistry := domain.Address(viper.GetString("ens.registryAddress")).ToLower()
	ensService := ens.New(ethClient, ensRegistry, redisCache)

	// proof storage is selected by config; verification tolerates storage
	// failures so a misconfigured backend degrades to warnings
	var proofStorage proof.Storage
	switch provider := viper.GetString("proofStorage.provider"); provider {
	case "pinata":
		pinataSvc := pinata.New(viper.GetString("pinata.apiKey"), viper.GetString("pinata.apiSecret"))
		proofStorage = proof_repository.NewPinataStorage(pinataSvc)
	case "node":
		proofStorage = proof_repository.NewNodeStorage(viper.GetString("proofStorage.ipfsApiAddr"))
	case "local":
		proofStorage = proof_repository.NewLocalStorage(viper.GetString("proofStorage.localPath"))
	case "none":
		proofStorage = nil
	default:
		context.WithField("provider", provider).Panic("unknown proof storage provider")
	}

	// nonce store
	var nonceRepo challenge.NonceRepo
	switch store := viper.GetString("nonce.store"); store {
	case "redis":
		nonceRepo = challenge_repository.NewRedisNonceRepo(redisCache)
	case "memory":
		nonceRepo = challenge_repository.NewMemoryNonceRepo()
	default:
		context.WithField("store", store).Panic("unknown nonce store")
	}

	// registry backend
	var bindingRepo binding.Repo
	switch mode := viper.GetString("registry.mode"); mode {
	case "mongo":
		bindingRepo = binding_repository.NewMongoRepo(q)
	case "memory":
		bindingRepo = binding_repository.NewMemoryRepo()
	case "chain":
		var key *ecdsa.PrivateKey
		if signerKey := viper.GetString("registry.signerKey"); signerKey != "" {
			key, err = crypto.HexToECDSA(signerKey)
			if err != nil {
				context.WithField("err", err).Panic("malformed registry signer key")
			}
		}
		bindingRepo, err = binding_repository.NewChainRepo(
			context,
			ethClient,
			domain.Address(viper.GetString("registry.contractAddress")).ToLower(),
			key,
			big.NewInt(viper.GetInt64("eth.chainId")),
		)
		if err != nil {
			context.WithField("err", err).Panic("failed to init chain registry")
		}
	default:
		context.WithField("mode", mode).Panic("unknown registry mode")
	}

	eventRepo := binding_repository.NewEventRepo(q)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	hc := hc_usecase.New(hcRepo)
	challengeUC := challenge_usecase.New(nonceRepo, viper.GetDuration("challenge.ttl"))
	verificationUC := verification_usecase.New(nonceRepo, proofStorage)
	bindingUC := binding_usecase.New(bindingRepo, eventRepo, ensService)

	hc_delivery.New(e, hc, viper.GetString("app.name"))
	challenge_delivery.New(e, challengeUC)
	verification_delivery.New(e, verificationUC)
	binding_delivery.New(e, bindingUC, ensService)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
