package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis backs the cache with a shared redis instance so invalidation is seen
// by every api replica, not just the one that handled the mutation.
type Redis struct {
	redisdb *redis.Client
	ttl     time.Duration
	prefix  string
}

func NewRedis(cfg RedisConfig) *Redis {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ttl := cfg.TTL

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Redis{
		redisdb: redisdb,
		ttl:     ttl,
		prefix:  "addressbook:",
	}
}

// this ping function checks redis connectivity

func (c *Redis) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

// this closes the client

func (c *Redis) Close() error {
	return c.redisdb.Close()
}

func (c *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.redisdb.Get(ctx, c.prefix+key).Bytes()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, err
	}

	err = json.Unmarshal(data, dest)

	if err != nil {
		return false, err
	}

	return true, nil
}

func (c *Redis) Set(ctx context.Context, key string, val any) error {
	data, err := json.Marshal(val)

	if err != nil {
		return err
	}

	return c.redisdb.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

func (c *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, 0, len(keys))

	for _, key := range keys {
		prefixed = append(prefixed, c.prefix+key)
	}

	return c.redisdb.Del(ctx, prefixed...).Err()
}

// Clear walks every key under the app prefix with SCAN so it never blocks
// redis the way KEYS would.

func (c *Redis) Clear(ctx context.Context) error {
	iter := c.redisdb.Scan(ctx, 0, c.prefix+"*", 100).Iterator()

	for iter.Next(ctx) {
		err := c.redisdb.Del(ctx, iter.Val()).Err()

		if err != nil {
			return err
		}
	}

	return iter.Err()
}
