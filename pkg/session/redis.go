package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

// DefaultRedisKey is the sorted set holding session ids.
const DefaultRedisKey = "qrsheet:sessions"

// RedisConfig configures a RedisRegistry.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisRegistry keeps sessions in a sorted set scored by creation time in
// unix milliseconds, so expired ids are a single range query.
type RedisRegistry struct {
	client *redis.Client
	key    string
}

// NewRedisRegistry connects to redis and verifies the connection.
func NewRedisRegistry(ctx context.Context, cfg RedisConfig) (*RedisRegistry, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", cfg.Addr)
	}
	return NewRedisRegistryFromClient(client, cfg.Key), nil
}

// NewRedisRegistryFromClient wraps an existing client. An empty key selects
// DefaultRedisKey.
func NewRedisRegistryFromClient(client *redis.Client, key string) *RedisRegistry {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisRegistry{client: client, key: key}
}

func (r *RedisRegistry) Register(ctx context.Context, id string, createdAt time.Time) error {
	err := r.client.ZAdd(ctx, r.key, redis.Z{
		Score:  float64(createdAt.UnixMilli()),
		Member: id,
	}).Err()
	if err != nil {
		return fmt.Errorf("redis zadd: %w", err)
	}
	return nil
}

func (r *RedisRegistry) CreatedAt(ctx context.Context, id string) (time.Time, bool, error) {
	score, err := r.client.ZScore(ctx, r.key, id).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis zscore: %w", err)
	}
	return time.UnixMilli(int64(score)), true, nil
}

func (r *RedisRegistry) Expired(ctx context.Context, cutoff time.Time) ([]string, error) {
	ids, err := r.client.ZRangeByScore(ctx, r.key, &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrangebyscore: %w", err)
	}
	return ids, nil
}

func (r *RedisRegistry) List(ctx context.Context) ([]Entry, error) {
	zs, err := r.client.ZRangeWithScores(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrange: %w", err)
	}
	out := make([]Entry, 0, len(zs))
	for _, z := range zs {
		id, _ := z.Member.(string)
		out = append(out, Entry{ID: id, CreatedAt: time.UnixMilli(int64(z.Score))})
	}
	return out, nil
}

func (r *RedisRegistry) Delete(ctx context.Context, id string) error {
	if err := r.client.ZRem(ctx, r.key, id).Err(); err != nil {
		return fmt.Errorf("redis zrem: %w", err)
	}
	return nil
}

func (r *RedisRegistry) Close() error {
	return r.client.Close()
}

var _ Registry = (*RedisRegistry)(nil)
