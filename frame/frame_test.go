package frame_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-test/deep"

	"github.com/philippgille/redisdata/frame"
)

func TestRowTime(t *testing.T) {
	tables := []struct {
		name     string
		value    interface{}
		expected time.Time
		ok       bool
	}{
		{"RFC3339", "2024-05-01T10:30:00Z", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), true},
		{"RFC3339Nano", "2024-05-01T10:30:00.5Z", time.Date(2024, 5, 1, 10, 30, 0, 500000000, time.UTC), true},
		{"space separated", "2024-05-01 10:30:00", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), true},
		{"date only", "2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"epoch seconds", float64(1714559400), time.Unix(1714559400, 0).UTC(), true},
		{"epoch millis", float64(1714559400000), time.UnixMilli(1714559400000).UTC(), true},
		{"json number", json.Number("1714559400"), time.Unix(1714559400, 0).UTC(), true},
		{"time.Time", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "not a time", time.Time{}, false},
		{"nil", nil, time.Time{}, false},
	}

	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			row := frame.Row{}
			if table.value != nil {
				row[frame.TimeColumn] = table.value
			}
			actual, ok := row.Time()
			if ok != table.ok {
				t.Fatalf("Expected ok=%v, but was: %v", table.ok, ok)
			}
			if ok && !actual.Equal(table.expected) {
				t.Errorf("Expected: %v, but was: %v", table.expected, actual)
			}
		})
	}
}

func TestRowsSince(t *testing.T) {
	f := frame.New()
	f.Append(
		frame.Row{"v": 1},
		frame.Row{"v": 2},
		frame.Row{"v": 3},
	)

	tables := []struct {
		name     string
		since    int
		expected int
	}{
		{"all rows", -1, 3},
		{"after first", 0, 2},
		{"after last", 2, 0},
		{"beyond end", 5, 0},
		{"below -1", -7, 3},
	}

	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			rows := f.RowsSince(table.since)
			if len(rows) != table.expected {
				t.Errorf("Expected %d rows, but was: %d", table.expected, len(rows))
			}
		})
	}

	// The returned rows must be the tail of the frame, not a re-ordering
	rows := f.RowsSince(1)
	if rows[0]["v"] != 3 {
		t.Errorf("Expected row with v=3, but was: %v", rows[0])
	}
}

func TestNormalize(t *testing.T) {
	f := frame.FromRows([]frame.Row{
		{frame.TimeColumn: "2024-05-01T10:02:00Z", "v": "stale"},
		{frame.TimeColumn: "2024-05-01T10:03:00Z", "v": "c"},
		{frame.TimeColumn: "2024-05-01T10:01:00Z", "v": "a"},
		{frame.TimeColumn: "2024-05-01T10:02:00Z", "v": "b"}, // duplicate, should win
	})

	f.Normalize()

	if f.Len() != 3 {
		t.Fatalf("Expected 3 rows, but was: %d", f.Len())
	}
	expected := []interface{}{"a", "b", "c"}
	if diff := deep.Equal(f.Column("v"), expected); diff != nil {
		t.Error(diff)
	}
}

func TestNormalizeWithoutTimestamps(t *testing.T) {
	f := frame.FromRows([]frame.Row{
		{frame.TimeColumn: "2024-05-01T10:01:00Z", "v": "timestamped"},
		{"v": "first"},
		{"v": "second"},
	})

	f.Normalize()

	if f.Len() != 3 {
		t.Fatalf("Expected 3 rows, but was: %d", f.Len())
	}
	// Rows without timestamps sort first and keep their relative order
	expected := []interface{}{"first", "second", "timestamped"}
	if diff := deep.Equal(f.Column("v"), expected); diff != nil {
		t.Error(diff)
	}
}

func TestColumns(t *testing.T) {
	f := frame.FromRows([]frame.Row{
		{"b": 1, "a": 2},
		{"c": 3},
	})

	if diff := deep.Equal(f.Columns(), []string{"a", "b", "c"}); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(f.Column("a"), []interface{}{2, nil}); diff != nil {
		t.Error(diff)
	}
}
