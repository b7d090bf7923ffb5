package mock_test

import (
	"context"
	"testing"

	"github.com/go-test/deep"
	"github.com/redis/go-redis/v9"

	"github.com/philippgille/redisdata/mock"
)

func TestStringCommands(t *testing.T) {
	ctx := context.Background()
	conn := mock.NewConn()

	// Missing key behaves like Redis
	_, err := conn.Get(ctx, "foo").Result()
	if err != redis.Nil {
		t.Errorf("Expected redis.Nil, but was: %v", err)
	}
	if n, _ := conn.StrLen(ctx, "foo").Result(); n != 0 {
		t.Errorf("Expected 0, but was: %d", n)
	}
	if typ, _ := conn.Type(ctx, "foo").Result(); typ != "none" {
		t.Errorf("Expected none, but was: %s", typ)
	}

	if err := conn.Set(ctx, "foo", "bar", 0).Err(); err != nil {
		t.Fatal(err)
	}
	s, err := conn.Get(ctx, "foo").Result()
	if err != nil {
		t.Fatal(err)
	}
	if s != "bar" {
		t.Errorf("Expected: bar, but was: %s", s)
	}
	if n, _ := conn.StrLen(ctx, "foo").Result(); n != 3 {
		t.Errorf("Expected 3, but was: %d", n)
	}

	// []byte values are stored as their string form
	if err := conn.Set(ctx, "raw", []byte("baz"), 0).Err(); err != nil {
		t.Fatal(err)
	}
	if s, _ := conn.Get(ctx, "raw").Result(); s != "baz" {
		t.Errorf("Expected: baz, but was: %s", s)
	}
}

func TestListCommands(t *testing.T) {
	ctx := context.Background()
	conn := mock.NewConn()

	if err := conn.RPush(ctx, "l", "a", "b", "c").Err(); err != nil {
		t.Fatal(err)
	}
	if n, _ := conn.LLen(ctx, "l").Result(); n != 3 {
		t.Errorf("Expected 3, but was: %d", n)
	}

	tables := []struct {
		name        string
		start, stop int64
		expected    []string
	}{
		{"full range", 0, -1, []string{"a", "b", "c"}},
		{"prefix", 0, 1, []string{"a", "b"}},
		{"negative start", -2, -1, []string{"b", "c"}},
		{"stop beyond end", 1, 100, []string{"b", "c"}},
		{"inverted", 2, 1, nil},
	}
	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			actual, err := conn.LRange(ctx, "l", table.start, table.stop).Result()
			if err != nil {
				t.Fatal(err)
			}
			if diff := deep.Equal(actual, table.expected); diff != nil {
				t.Error(diff)
			}
		})
	}

	// Accessing a list with a string command reports a type error
	if _, err := conn.Get(ctx, "l").Result(); err == nil {
		t.Error("Expected an error")
	}
	// And the other way around
	_ = conn.Set(ctx, "s", "x", 0)
	if err := conn.RPush(ctx, "s", "y").Err(); err == nil {
		t.Error("Expected an error")
	}
}

func TestDelAndExists(t *testing.T) {
	ctx := context.Background()
	conn := mock.NewConn()

	_ = conn.Set(ctx, "a", "1", 0)
	_ = conn.Set(ctx, "b", "2", 0)

	if n, _ := conn.Exists(ctx, "a", "b", "c").Result(); n != 2 {
		t.Errorf("Expected 2, but was: %d", n)
	}
	if n, _ := conn.Del(ctx, "a", "c").Result(); n != 1 {
		t.Errorf("Expected 1, but was: %d", n)
	}
	if n, _ := conn.Exists(ctx, "a").Result(); n != 0 {
		t.Errorf("Expected 0, but was: %d", n)
	}
}

func TestScan(t *testing.T) {
	ctx := context.Background()
	conn := mock.NewConn()

	_ = conn.Set(ctx, "ticks:1", "x", 0)
	_ = conn.Set(ctx, "ticks:2", "x", 0)
	_ = conn.Set(ctx, "meta", "x", 0)

	keys, cursor, err := conn.Scan(ctx, 0, "ticks:*", 10).Result()
	if err != nil {
		t.Fatal(err)
	}
	if cursor != 0 {
		t.Errorf("Expected cursor 0, but was: %d", cursor)
	}
	if diff := deep.Equal(keys, []string{"ticks:1", "ticks:2"}); diff != nil {
		t.Error(diff)
	}
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	conn := mock.NewConn()

	_ = conn.Publish(ctx, "ch", "one")
	_ = conn.Publish(ctx, "ch", []byte("two"))

	if diff := deep.Equal(conn.Published("ch"), []string{"one", "two"}); diff != nil {
		t.Error(diff)
	}
	if len(conn.Published("other")) != 0 {
		t.Error("Expected no messages on an unused channel")
	}
}

func TestSortedSetOrder(t *testing.T) {
	ctx := context.Background()
	conn := mock.NewConn()

	conn.SeedZSet("z", map[string]float64{"b": 2, "a": 1, "c": 2})

	members, err := conn.ZRange(ctx, "z", 0, -1).Result()
	if err != nil {
		t.Fatal(err)
	}
	// Ordered by score, ties broken lexicographically
	if diff := deep.Equal(members, []string{"a", "b", "c"}); diff != nil {
		t.Error(diff)
	}
}

func TestHash(t *testing.T) {
	ctx := context.Background()
	conn := mock.NewConn()

	conn.SeedHash("h", map[string]string{"f1": "v1", "f2": "v2"})

	if n, _ := conn.HLen(ctx, "h").Result(); n != 2 {
		t.Errorf("Expected 2, but was: %d", n)
	}
	fields, err := conn.HGetAll(ctx, "h").Result()
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(fields, map[string]string{"f1": "v1", "f2": "v2"}); diff != nil {
		t.Error(diff)
	}
}
