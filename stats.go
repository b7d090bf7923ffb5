package redisdata

import (
	"context"
	"sort"

	"github.com/philippgille/redisdata/util"
)

// scanCount is the COUNT hint passed to SCAN when enumerating keys.
const scanCount = 100

// KeyStats describes a single key: its Redis type, how many items it
// holds and how many payload bytes those items amount to.
// For strings Items is 1 and Bytes is the string length. For lists, sets
// and sorted sets Bytes sums the member lengths (scores are not counted).
// For hashes Bytes sums field and value lengths.
type KeyStats struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Items int64  `json:"items"`
	Bytes int64  `json:"bytes"`
}

// MB returns the key's payload size in megabytes.
func (s KeyStats) MB() float64 {
	return float64(s.Bytes) / (1024 * 1024)
}

// Keys returns the keys matching the given glob pattern, sorted and
// deduplicated. An empty pattern matches all keys.
// The keys are enumerated with SCAN, so the call doesn't block the
// server the way KEYS would on a large database.
func (c *Client) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}

	seen := map[string]struct{}{}
	var cursor uint64
	for {
		// SCAN may return a key more than once, so collect into a set.
		batch, next, err := c.c.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range batch {
			seen[k] = struct{}{}
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Stats returns the statistics for the given key.
// If the key doesn't exist it returns (KeyStats{}, false, nil).
// The key must not be "".
func (c *Client) Stats(ctx context.Context, k string) (KeyStats, bool, error) {
	if err := util.CheckKey(k); err != nil {
		return KeyStats{}, false, err
	}

	n, err := c.c.Exists(ctx, k).Result()
	if err != nil {
		return KeyStats{}, false, err
	}
	if n == 0 {
		return KeyStats{}, false, nil
	}

	keyType, err := c.c.Type(ctx, k).Result()
	if err != nil {
		return KeyStats{}, false, err
	}

	stats := KeyStats{
		Key:  k,
		Type: keyType,
	}

	switch keyType {
	case "string":
		size, err := c.c.StrLen(ctx, k).Result()
		if err != nil {
			return KeyStats{}, false, err
		}
		stats.Items = 1
		stats.Bytes = size
	case "list":
		num, err := c.c.LLen(ctx, k).Result()
		if err != nil {
			return KeyStats{}, false, err
		}
		elements, err := c.c.LRange(ctx, k, 0, -1).Result()
		if err != nil {
			return KeyStats{}, false, err
		}
		stats.Items = num
		stats.Bytes = sumLengths(elements)
	case "set":
		num, err := c.c.SCard(ctx, k).Result()
		if err != nil {
			return KeyStats{}, false, err
		}
		members, err := c.c.SMembers(ctx, k).Result()
		if err != nil {
			return KeyStats{}, false, err
		}
		stats.Items = num
		stats.Bytes = sumLengths(members)
	case "zset":
		num, err := c.c.ZCard(ctx, k).Result()
		if err != nil {
			return KeyStats{}, false, err
		}
		members, err := c.c.ZRange(ctx, k, 0, -1).Result()
		if err != nil {
			return KeyStats{}, false, err
		}
		stats.Items = num
		stats.Bytes = sumLengths(members)
	case "hash":
		num, err := c.c.HLen(ctx, k).Result()
		if err != nil {
			return KeyStats{}, false, err
		}
		fields, err := c.c.HGetAll(ctx, k).Result()
		if err != nil {
			return KeyStats{}, false, err
		}
		stats.Items = num
		for field, value := range fields {
			stats.Bytes += int64(len(field) + len(value))
		}
	default:
		// Other types (e.g. streams) are reported with zero counts.
	}

	c.debugf("key stats for %s: %+v", k, stats)
	return stats, true, nil
}

// StatsAll returns the statistics for all keys in the database,
// sorted by size in ascending order.
// Keys that disappear between enumeration and inspection are skipped.
func (c *Client) StatsAll(ctx context.Context) ([]KeyStats, error) {
	keys, err := c.Keys(ctx, "*")
	if err != nil {
		return nil, err
	}

	all := make([]KeyStats, 0, len(keys))
	for _, k := range keys {
		stats, found, err := c.Stats(ctx, k)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		all = append(all, stats)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Bytes != all[j].Bytes {
			return all[i].Bytes < all[j].Bytes
		}
		return all[i].Key < all[j].Key
	})
	return all, nil
}

func sumLengths(elements []string) int64 {
	var sum int64
	for _, element := range elements {
		sum += int64(len(element))
	}
	return sum
}
