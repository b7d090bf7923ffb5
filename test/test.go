// Package test provides shared helpers for testing code built on
// redisdata clients, regardless of whether they're backed by a real
// Redis connection or the in-memory one from the mock package.
package test

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"testing"

	"github.com/go-test/deep"

	"github.com/philippgille/redisdata"
	"github.com/philippgille/redisdata/frame"
)

// Foo is just some struct for common tests.
type Foo struct {
	Bar string
}

// RandKey returns a random key for tests that must not collide.
func RandKey() string {
	return strconv.FormatInt(rand.Int63(), 10)
}

// TestClient tests if storing, retrieving and deleting values works properly.
func TestClient(c *redisdata.Client, t *testing.T) {
	ctx := context.Background()
	key := RandKey()

	// Initially the key shouldn't exist
	found, err := c.Get(ctx, key, new(Foo))
	if err != nil {
		t.Error(err)
	}
	if found {
		t.Error("A value was found, but no value was expected")
	}

	// Deleting a non-existing key-value pair should NOT lead to an error
	result, err := c.Delete(ctx, key)
	if err != nil {
		t.Error(err)
	}
	if result.Deleted != 0 || len(result.Missing) != 1 {
		t.Errorf("Expected no deletions and 1 missing key, but was: %+v", result)
	}

	// Store an object
	val := Foo{
		Bar: "baz",
	}
	err = c.Set(ctx, key, val, false)
	if err != nil {
		t.Error(err)
	}

	// Retrieve the object
	expected := val
	actualPtr := new(Foo)
	found, err = c.Get(ctx, key, actualPtr)
	if err != nil {
		t.Error(err)
	}
	if !found {
		t.Error("No value was found, but should have been")
	}
	actual := *actualPtr
	if actual != expected {
		t.Errorf("Expected: %v, but was: %v", expected, actual)
	}

	// Delete
	result, err = c.Delete(ctx, key)
	if err != nil {
		t.Error(err)
	}
	if result.Deleted != 1 || len(result.Missing) != 0 {
		t.Errorf("Expected 1 deletion and no missing keys, but was: %+v", result)
	}
	// Key-value pair shouldn't exist anymore
	found, err = c.Get(ctx, key, new(Foo))
	if err != nil {
		t.Error(err)
	}
	if found {
		t.Error("A value was found, but no value was expected")
	}
}

// SampleFrame returns a frame with rows out of order and one duplicate
// timestamp, plus the rows expected after a round trip through a client
// (deduplicated, sorted by timestamp).
func SampleFrame() (*frame.Frame, []frame.Row) {
	fr := frame.FromRows([]frame.Row{
		{frame.TimeColumn: "2024-05-01T10:02:00Z", "price": "101.5"},
		{frame.TimeColumn: "2024-05-01T10:03:00Z", "price": "102.0"},
		{frame.TimeColumn: "2024-05-01T10:01:00Z", "price": "100.0"},
		{frame.TimeColumn: "2024-05-01T10:02:00Z", "price": "101.7"}, // corrects the first row
	})
	expected := []frame.Row{
		{frame.TimeColumn: "2024-05-01T10:01:00Z", "price": "100.0"},
		{frame.TimeColumn: "2024-05-01T10:02:00Z", "price": "101.7"},
		{frame.TimeColumn: "2024-05-01T10:03:00Z", "price": "102.0"},
	}
	return fr, expected
}

// TestFrameRoundTrip pushes SampleFrame through the client and checks
// that FetchFrame returns it normalized.
func TestFrameRoundTrip(c *redisdata.Client, t *testing.T) {
	ctx := context.Background()
	key := RandKey()

	fr, expected := SampleFrame()
	last, err := c.PushFrame(ctx, key, fr, -1, false)
	if err != nil {
		t.Fatal(err)
	}
	if last != fr.Len()-1 {
		t.Errorf("Expected last index %d, but was: %d", fr.Len()-1, last)
	}

	actual, err := c.FetchFrame(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(actual.Rows(), expected); diff != nil {
		t.Error(diff)
	}
}

// InteractWithClient reads from and writes to the store. Meant to be executed in a goroutine.
// Does NOT check if the store works correctly (that's done elsewhere),
// only checks for errors that might occur due to concurrent access.
func InteractWithClient(c *redisdata.Client, key string, t *testing.T, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	ctx := context.Background()

	// Read
	_, err := c.Get(ctx, key, new(Foo))
	if err != nil {
		t.Error(err)
	}
	// Write
	err = c.Set(ctx, key, Foo{}, false)
	if err != nil {
		t.Error(err)
	}
	// Read
	_, err = c.Get(ctx, key, new(Foo))
	if err != nil {
		t.Error(err)
	}
}
