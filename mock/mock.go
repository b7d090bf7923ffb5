// Package mock provides an in-memory implementation of redisdata.Conn,
// covering just enough of the Redis command surface for tests and
// offline development. Published messages are recorded instead of being
// delivered to subscribers.
package mock

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/philippgille/redisdata"
)

var errWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

type entry struct {
	kind string
	str  string
	list []string
	set  map[string]struct{}
	zset map[string]float64
	hash map[string]string
}

// Conn is an in-memory redisdata.Conn.
// It is safe for concurrent use.
type Conn struct {
	mu        sync.Mutex
	entries   map[string]*entry
	published map[string][]string
}

var _ redisdata.Conn = (*Conn)(nil)

// NewConn returns an empty in-memory connection.
func NewConn() *Conn {
	return &Conn{
		entries:   map[string]*entry{},
		published: map[string][]string{},
	}
}

// Published returns the messages published on the given channel so far,
// in order.
func (c *Conn) Published(channel string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.published[channel]...)
}

// SeedString stores a string entry directly, bypassing the command surface.
func (c *Conn) SeedString(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{kind: "string", str: value}
}

// SeedList stores a list entry directly.
func (c *Conn) SeedList(key string, elements ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{kind: "list", list: append([]string(nil), elements...)}
}

// SeedSet stores a set entry directly.
func (c *Conn) SeedSet(key string, members ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set := map[string]struct{}{}
	for _, m := range members {
		set[m] = struct{}{}
	}
	c.entries[key] = &entry{kind: "set", set: set}
}

// SeedZSet stores a sorted set entry directly.
func (c *Conn) SeedZSet(key string, members map[string]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	zset := map[string]float64{}
	for m, score := range members {
		zset[m] = score
	}
	c.entries[key] = &entry{kind: "zset", zset: zset}
}

// SeedHash stores a hash entry directly.
func (c *Conn) SeedHash(key string, fields map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hash := map[string]string{}
	for f, v := range fields {
		hash[f] = v
	}
	c.entries[key] = &entry{kind: "hash", hash: hash}
}

// Set implements redisdata.Conn. The expiration is ignored.
func (c *Conn) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{kind: "string", str: asString(value)}
	return redis.NewStatusResult("OK", nil)
}

// Get implements redisdata.Conn.
func (c *Conn) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	if e.kind != "string" {
		return redis.NewStringResult("", errWrongType)
	}
	return redis.NewStringResult(e.str, nil)
}

// Del implements redisdata.Conn.
func (c *Conn) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var deleted int64
	for _, key := range keys {
		if _, ok := c.entries[key]; ok {
			delete(c.entries, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

// Exists implements redisdata.Conn.
func (c *Conn) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := c.entries[key]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// RPush implements redisdata.Conn.
func (c *Conn) RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{kind: "list"}
		c.entries[key] = e
	}
	if e.kind != "list" {
		return redis.NewIntResult(0, errWrongType)
	}
	for _, v := range values {
		e.list = append(e.list, asString(v))
	}
	return redis.NewIntResult(int64(len(e.list)), nil)
}

// LRange implements redisdata.Conn.
func (c *Conn) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewStringSliceResult(nil, nil)
	}
	if e.kind != "list" {
		return redis.NewStringSliceResult(nil, errWrongType)
	}
	from, to, ok := normalizeRange(start, stop, int64(len(e.list)))
	if !ok {
		return redis.NewStringSliceResult(nil, nil)
	}
	return redis.NewStringSliceResult(append([]string(nil), e.list[from:to+1]...), nil)
}

// LLen implements redisdata.Conn.
func (c *Conn) LLen(ctx context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewIntResult(0, nil)
	}
	if e.kind != "list" {
		return redis.NewIntResult(0, errWrongType)
	}
	return redis.NewIntResult(int64(len(e.list)), nil)
}

// Publish implements redisdata.Conn. Messages are recorded and can be
// inspected with Published. The returned receiver count is always 0.
func (c *Conn) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published[channel] = append(c.published[channel], asString(message))
	return redis.NewIntResult(0, nil)
}

// Scan implements redisdata.Conn. All matching keys are returned in a
// single batch with cursor 0.
func (c *Conn) Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	if match == "" {
		match = "*"
	}
	var keys []string
	for key := range c.entries {
		ok, err := path.Match(match, key)
		if err != nil {
			return redis.NewScanCmdResult(nil, 0, err)
		}
		if ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return redis.NewScanCmdResult(keys, 0, nil)
}

// Type implements redisdata.Conn. Missing keys report "none", like Redis.
func (c *Conn) Type(ctx context.Context, key string) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewStatusResult("none", nil)
	}
	return redis.NewStatusResult(e.kind, nil)
}

// StrLen implements redisdata.Conn.
func (c *Conn) StrLen(ctx context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewIntResult(0, nil)
	}
	if e.kind != "string" {
		return redis.NewIntResult(0, errWrongType)
	}
	return redis.NewIntResult(int64(len(e.str)), nil)
}

// SCard implements redisdata.Conn.
func (c *Conn) SCard(ctx context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewIntResult(0, nil)
	}
	if e.kind != "set" {
		return redis.NewIntResult(0, errWrongType)
	}
	return redis.NewIntResult(int64(len(e.set)), nil)
}

// SMembers implements redisdata.Conn. Members are returned sorted for
// deterministic tests.
func (c *Conn) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewStringSliceResult(nil, nil)
	}
	if e.kind != "set" {
		return redis.NewStringSliceResult(nil, errWrongType)
	}
	members := make([]string, 0, len(e.set))
	for m := range e.set {
		members = append(members, m)
	}
	sort.Strings(members)
	return redis.NewStringSliceResult(members, nil)
}

// ZCard implements redisdata.Conn.
func (c *Conn) ZCard(ctx context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewIntResult(0, nil)
	}
	if e.kind != "zset" {
		return redis.NewIntResult(0, errWrongType)
	}
	return redis.NewIntResult(int64(len(e.zset)), nil)
}

// ZRange implements redisdata.Conn. Members are ordered by score,
// ties broken lexicographically, like Redis.
func (c *Conn) ZRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewStringSliceResult(nil, nil)
	}
	if e.kind != "zset" {
		return redis.NewStringSliceResult(nil, errWrongType)
	}
	members := make([]string, 0, len(e.zset))
	for m := range e.zset {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		if e.zset[members[i]] != e.zset[members[j]] {
			return e.zset[members[i]] < e.zset[members[j]]
		}
		return members[i] < members[j]
	})
	from, to, ok := normalizeRange(start, stop, int64(len(members)))
	if !ok {
		return redis.NewStringSliceResult(nil, nil)
	}
	return redis.NewStringSliceResult(members[from:to+1], nil)
}

// HLen implements redisdata.Conn.
func (c *Conn) HLen(ctx context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewIntResult(0, nil)
	}
	if e.kind != "hash" {
		return redis.NewIntResult(0, errWrongType)
	}
	return redis.NewIntResult(int64(len(e.hash)), nil)
}

// HGetAll implements redisdata.Conn.
func (c *Conn) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return redis.NewMapStringStringResult(map[string]string{}, nil)
	}
	if e.kind != "hash" {
		return redis.NewMapStringStringResult(nil, errWrongType)
	}
	fields := make(map[string]string, len(e.hash))
	for f, v := range e.hash {
		fields[f] = v
	}
	return redis.NewMapStringStringResult(fields, nil)
}

// Ping implements redisdata.Conn.
func (c *Conn) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

// Close implements redisdata.Conn.
func (c *Conn) Close() error {
	return nil
}

// normalizeRange translates a Redis start/stop pair (which may be
// negative, counting from the end) into slice bounds. The third return
// value is false if the range selects nothing.
func normalizeRange(start, stop, n int64) (int64, int64, bool) {
	if n == 0 {
		return 0, 0, false
	}
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop += n
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop, true
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}
