// Package frame provides an ordered, tabular collection of rows,
// meant for datasets that accumulate records over time (measurements,
// ticks, events). Each row is a flat record, usually carrying a
// timestamp column that the Normalize method deduplicates and sorts by.
package frame

import (
	"encoding/json"
	"sort"
	"time"
)

// TimeColumn is the name of the column that Normalize deduplicates
// and sorts by.
const TimeColumn = "timestamp"

// Row is a single record, mapping column names to values.
type Row map[string]interface{}

// Time returns the row's timestamp, parsed from the TimeColumn value.
// The second return value is false if the column is missing or can't be
// interpreted as a point in time.
func (r Row) Time() (time.Time, bool) {
	v, ok := r[TimeColumn]
	if !ok {
		return time.Time{}, false
	}
	return parseTime(v)
}

// Frame is an ordered collection of rows.
// The zero value is an empty frame, ready to use.
type Frame struct {
	rows []Row
}

// New returns an empty frame.
func New() *Frame {
	return &Frame{}
}

// FromRows returns a frame containing the given rows, in order.
// The slice is not copied, so the caller must not modify it afterwards.
func FromRows(rows []Row) *Frame {
	return &Frame{rows: rows}
}

// Append adds rows to the end of the frame.
func (f *Frame) Append(rows ...Row) {
	f.rows = append(f.rows, rows...)
}

// Len returns the number of rows in the frame.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Row returns the row at index i.
// It panics if i is out of range, like a slice access would.
func (f *Frame) Row(i int) Row {
	return f.rows[i]
}

// Rows returns the frame's rows in order.
// The returned slice is the frame's backing slice, not a copy.
func (f *Frame) Rows() []Row {
	return f.rows
}

// RowsSince returns the rows strictly after index i.
// Pass -1 to get all rows. If i points at or beyond the last row,
// the result is empty.
func (f *Frame) RowsSince(i int) []Row {
	if i < -1 {
		i = -1
	}
	if i+1 >= len(f.rows) {
		return nil
	}
	return f.rows[i+1:]
}

// Columns returns the sorted union of all column names in the frame.
func (f *Frame) Columns() []string {
	seen := map[string]struct{}{}
	for _, row := range f.rows {
		for name := range row {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Column returns the values of the named column, one entry per row.
// Rows without the column contribute a nil entry.
func (f *Frame) Column(name string) []interface{} {
	values := make([]interface{}, len(f.rows))
	for i, row := range f.rows {
		values[i] = row[name]
	}
	return values
}

// Normalize drops rows whose timestamp duplicates a later row's timestamp
// (the last occurrence wins) and sorts the remaining rows by timestamp in
// ascending order. Rows without a parseable timestamp are kept and sort
// before all timestamped rows, preserving their relative order.
func (f *Frame) Normalize() {
	type keyed struct {
		row Row
		t   time.Time
		ok  bool
	}

	kept := make([]keyed, 0, len(f.rows))
	seen := map[int64]int{} // unix nanos -> index into kept
	for _, row := range f.rows {
		t, ok := row.Time()
		if !ok {
			kept = append(kept, keyed{row: row})
			continue
		}
		if i, dup := seen[t.UnixNano()]; dup {
			kept[i].row = row // last occurrence wins
			continue
		}
		seen[t.UnixNano()] = len(kept)
		kept = append(kept, keyed{row: row, t: t, ok: true})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].ok != kept[j].ok {
			return !kept[i].ok
		}
		return kept[i].t.Before(kept[j].t)
	})

	rows := make([]Row, len(kept))
	for i, k := range kept {
		rows[i] = k.row
	}
	f.rows = rows
}

// Supported string layouts for timestamp parsing, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Epoch values at or above this threshold are interpreted as milliseconds.
const epochMillisThreshold = 1e12

func parseTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(f), true
	case float64:
		return fromEpoch(t), true
	case int64:
		return fromEpoch(float64(t)), true
	case int:
		return fromEpoch(float64(t)), true
	default:
		return time.Time{}, false
	}
}

func fromEpoch(f float64) time.Time {
	if f >= epochMillisThreshold {
		return time.UnixMilli(int64(f)).UTC()
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}
