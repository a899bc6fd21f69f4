package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache holds the last loaded cart per user. Every Delete bumps a per-user
// generation; a load may only be written back under the generation it read
// before going to the database, so a cart loaded before a mutation can never
// outlive the invalidation that followed it.
type Cache interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Generation(ctx context.Context, userID string) (int64, error)
	SetIfGeneration(ctx context.Context, userID string, c *Cart, gen int64) error
	Delete(ctx context.Context, userID string) error
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
		genTTL:  24 * time.Hour,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
	genTTL  time.Duration // outlives any cached cart
}

// KEYS[1] cart, KEYS[2] generation; ARGV[1] expected generation, ARGV[2] payload, ARGV[3] ttl ms.
var setIfGeneration = redis.NewScript(`
local cur = redis.call('GET', KEYS[2]) or '0'
if cur ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

func (r *RedisCache) Get(ctx context.Context, userID string) (*Cart, error) {
	data, err := r.client.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &c, nil
}

func (r *RedisCache) Generation(ctx context.Context, userID string) (int64, error) {
	gen, err := r.client.Get(ctx, genKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

// SetIfGeneration stores c unless the user's cart was invalidated since gen
// was read. A refused write is not an error.
func (r *RedisCache) SetIfGeneration(ctx context.Context, userID string, c *Cart, gen int64) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	ttl := r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
	keys := []string{cacheKey(userID), genKey(userID)}
	if err := setIfGeneration.Run(ctx, r.client, keys, gen, data, ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, userID string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(userID))
		pipe.Expire(ctx, genKey(userID), r.genTTL)
		pipe.Del(ctx, cacheKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

func genKey(userID string) string {
	return fmt.Sprintf("cart:%s:gen", userID)
}

// NopCache is used when no Redis address is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*Cart, error)                  { return nil, ErrCacheMiss }
func (NopCache) Generation(context.Context, string) (int64, error)           { return 0, nil }
func (NopCache) SetIfGeneration(context.Context, string, *Cart, int64) error { return nil }
func (NopCache) Delete(context.Context, string) error                        { return nil }
