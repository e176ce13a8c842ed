package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-planner/domain"
	"github.com/beka-birhanu/vinom-planner/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const keyPrefix = "plan:"

// RedisPlanCache caches solved plans in Redis with TTL support.
// Plans are stored as BSON documents, the encoding the plan repository uses.
type RedisPlanCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisPlanCache initializes a RedisPlanCache with the provided Redis client and TTL.
func NewRedisPlanCache(client *redis.Client, ttlSeconds int) (i.PlanCache, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %d", ttlSeconds)
	}

	cache := &RedisPlanCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	cache.locker = redsync.New(pool)
	return cache, nil
}

// Get retrieves the plan cached under key.
func (c *RedisPlanCache) Get(ctx context.Context, key string) (*domain.Plan, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var plan domain.Plan
	if err := bson.Unmarshal(raw, &plan); err != nil {
		return nil, false, fmt.Errorf("decoding cached plan: %w", err)
	}
	return &plan, true, nil
}

// Set stores the plan under key, replacing any previous entry and resetting its expiration.
func (c *RedisPlanCache) Set(ctx context.Context, key string, plan *domain.Plan) error {
	raw, err := bson.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	return c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err()
}

// Lock takes the distributed solve lock of key.
func (c *RedisPlanCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(keyPrefix + key + ":solve_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}
