// Package redisdata is a convenience layer over the Redis client for
// publishing and retrieving data in a handful of shapes: tabular frames
// (one encoded row per list element), codec-marshalled values and plain
// strings. Every write can optionally be announced on a pub/sub channel
// named after the key. The package also covers basic key administration:
// deletion with a missing-key report, pattern enumeration and per-key
// size statistics.
//
// All heavy lifting (networking, persistence, eviction) is delegated to
// github.com/redis/go-redis/v9. Operations go through the narrow Conn
// interface, so tests can swap in the in-memory implementation from the
// mock package.
package redisdata

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/philippgille/redisdata/encoding"
)

// Logger is the interface for the optional debug logger.
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Options are the options for the client.
type Options struct {
	// Address of the Redis server, including the port.
	// Optional ("localhost:6379" by default).
	Address string
	// Password for the Redis server.
	// Optional ("" by default).
	Password string
	// DB to use.
	// Optional (0 by default).
	DB int
	// Encoding format for values and frame rows.
	// Optional (encoding.JSON by default).
	Codec encoding.Codec
	// Location used by DailyKey.
	// Optional (the process's local time zone by default).
	Location *time.Location
	// Logger receives a debug line per store/publish operation.
	// Optional (nil by default, meaning no logging).
	Logger Logger
}

// DefaultOptions is an Options object with default values.
// Address: "localhost:6379", Password: "", DB: 0, Codec: encoding.JSON
var DefaultOptions = Options{
	Address: "localhost:6379",
	Codec:   encoding.JSON,
	// No need to set Password, DB, Location or Logger because their Go zero values are fine for that.
}

// Client publishes data to and retrieves data from Redis.
type Client struct {
	c      Conn
	codec  encoding.Codec
	loc    *time.Location
	logger Logger
}

// NewClient creates a new client connected to the Redis server from the options.
//
// You must call the Close() method on the client when you're done working with it.
func NewClient(options Options) (*Client, error) {
	// Set default values
	if options.Address == "" {
		options.Address = DefaultOptions.Address
	}

	conn := redis.NewClient(&redis.Options{
		Addr:     options.Address,
		Password: options.Password,
		DB:       options.DB,
	})

	client := NewClientWithConn(conn, options)
	if err := client.Ping(context.Background()); err != nil {
		return nil, err
	}
	return client, nil
}

// NewClientWithConn creates a client on top of an existing connection,
// e.g. a configured *redis.Client or the in-memory implementation from
// the mock package. Only the Codec, Location and Logger options are used.
func NewClientWithConn(conn Conn, options Options) *Client {
	if options.Codec == nil {
		options.Codec = DefaultOptions.Codec
	}
	if options.Location == nil {
		options.Location = time.Local
	}

	return &Client{
		c:      conn,
		codec:  options.Codec,
		loc:    options.Location,
		logger: options.Logger,
	}
}

// Ping checks the connection to the server.
func (c *Client) Ping(ctx context.Context) error {
	return c.c.Ping(ctx).Err()
}

// Close closes the client.
// It must be called to release any open resources.
func (c *Client) Close() error {
	return c.c.Close()
}

// DailyKey returns the given base key with today's date appended
// ("base:20060102"), using the location the client was configured with.
// Useful for datasets that roll over daily.
func (c *Client) DailyKey(base string) string {
	return c.DailyKeyAt(base, time.Now())
}

// DailyKeyAt is DailyKey for an arbitrary point in time.
func (c *Client) DailyKeyAt(base string, t time.Time) string {
	return base + ":" + t.In(c.loc).Format("20060102")
}

func (c *Client) debugf(format string, v ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, v...)
	}
}

var errNilFrame = errors.New("The passed frame is nil, which is not allowed")
