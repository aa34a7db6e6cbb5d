package state

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/pkg/errors"
)

// RedisStore keeps screen state in Redis so several API instances share it.
// Pending marks are SETNX keys with a TTL; results expire after ResultTTL.
type RedisStore struct {
	client     *redis.Client
	pendingTTL time.Duration
	resultTTL  time.Duration
	logger     *zap.Logger
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisStore(cfg RedisConfig, pendingTTL time.Duration, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewStateError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
	)

	return NewRedisStoreWithClient(client, pendingTTL, logger), nil
}

func NewRedisStoreWithClient(client *redis.Client, pendingTTL time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client:     client,
		pendingTTL: pendingTTL,
		resultTTL:  constants.StateConfig.ResultTTL,
		logger:     logger,
	}
}

func pendingKey(key Key) string {
	return constants.StateConfig.KeyPrefix + "pending:" + key.String()
}

func resultKey(key Key) string {
	return constants.StateConfig.KeyPrefix + "result:" + key.String()
}

func (r *RedisStore) TryBegin(ctx context.Context, key Key) (bool, error) {
	ok, err := r.client.SetNX(ctx, pendingKey(key), time.Now().Unix(), r.pendingTTL).Result()
	if err != nil {
		r.logger.Error("State begin failed", zap.String("key", key.String()), zap.Error(err))
		return false, errors.NewStateError("begin failed", "setnx", pendingKey(key), err)
	}
	return ok, nil
}

func (r *RedisStore) Finish(ctx context.Context, key Key, result domain.Envelope) error {
	data, err := json.Marshal(result)
	if err != nil {
		return errors.NewStateError("marshal failed", "finish", resultKey(key), err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultKey(key), data, r.resultTTL)
		pipe.Del(ctx, pendingKey(key))
		return nil
	})
	if err != nil {
		r.logger.Error("State finish failed", zap.String("key", key.String()), zap.Error(err))
		return errors.NewStateError("finish failed", "set", resultKey(key), err)
	}
	return nil
}

func (r *RedisStore) Abort(ctx context.Context, key Key) error {
	if err := r.client.Del(ctx, pendingKey(key)).Err(); err != nil {
		r.logger.Error("State abort failed", zap.String("key", key.String()), zap.Error(err))
		return errors.NewStateError("abort failed", "del", pendingKey(key), err)
	}
	return nil
}

func (r *RedisStore) Last(ctx context.Context, key Key, dest *domain.Envelope) (bool, error) {
	value, err := r.client.Get(ctx, resultKey(key)).Result()
	if stderrors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		r.logger.Error("State get failed", zap.String("key", key.String()), zap.Error(err))
		return false, errors.NewStateError("get failed", "get", resultKey(key), err)
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		r.logger.Error("State unmarshal failed", zap.String("key", key.String()), zap.Error(err))
		return false, errors.NewStateError("unmarshal failed", "get", resultKey(key), err)
	}
	return true, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
