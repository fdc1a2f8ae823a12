package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/go-redis/redis/v8"

	"github.com/seifreed/NSECGenerator/config"
	"github.com/seifreed/NSECGenerator/log"
)

const redisKeyPrefix = "nsec3gen:cache:"

// RedisStore mirrors artifacts as JSON strings in redis
type RedisStore struct {
	cfg    *config.Redis
	client *redis.Client
}

// NewRedisStore connects to the configured server, retrying the first ping
func NewRedisStore(ctx context.Context, cfg *config.Redis) (*RedisStore, error) {
	logger := log.PrefixedLog("redis")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	err := retry.Do(
		func() error {
			return client.Ping(ctx).Err()
		},
		retry.Attempts(uint(cfg.ConnectionAttempts)),
		retry.Delay(cfg.ConnectionCooldown.ToDuration()),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.WithField("attempt", n+1).Warnf("can't connect to redis '%s': %v", cfg.Address, err)
		}))
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("can't connect to redis '%s': %w", cfg.Address, err)
	}

	logger.Debugf("connected to '%s'", cfg.Address)

	return &RedisStore{cfg: cfg, client: client}, nil
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

func (s *RedisStore) String() string {
	return fmt.Sprintf("redis store '%s'", s.cfg.Address)
}

// Save stores the artifact, expiring it after the configured TTL if any
func (s *RedisStore) Save(ctx context.Context, artifact *Artifact) (Location, error) {
	data, err := json.Marshal(artifact)
	if err != nil {
		return Location{}, fmt.Errorf("can't serialize artifact: %w", err)
	}

	key := redisKey(artifact.Key)

	if err := s.client.Set(ctx, key, data, s.cfg.TTL.ToDuration()).Err(); err != nil {
		return Location{}, fmt.Errorf("can't write redis key '%s': %w", key, err)
	}

	return Location{Target: fmt.Sprintf("redis://%s/%d/%s", s.cfg.Address, s.cfg.Database, key), Size: int64(len(data))}, nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (*Artifact, error) {
	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, redisKey(key))
		}

		return nil, fmt.Errorf("can't read redis key '%s': %w", redisKey(key), err)
	}

	var artifact Artifact

	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("can't parse redis key '%s': %w", redisKey(key), err)
	}

	artifact.Key = key

	return &artifact, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
