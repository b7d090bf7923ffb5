package redisdata

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Conn is the slice of the Redis command surface this package uses.
// It's satisfied by *redis.Client (and by *redis.ClusterClient), and by
// the in-memory implementation in the mock package, so code built on
// this package can be tested without a Redis server.
type Conn interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd

	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	LLen(ctx context.Context, key string) *redis.IntCmd

	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd

	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Type(ctx context.Context, key string) *redis.StatusCmd
	StrLen(ctx context.Context, key string) *redis.IntCmd
	SCard(ctx context.Context, key string) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	ZCard(ctx context.Context, key string) *redis.IntCmd
	ZRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	HLen(ctx context.Context, key string) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd

	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

var _ Conn = (*redis.Client)(nil)
