package redisdata

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/philippgille/redisdata/frame"
	"github.com/philippgille/redisdata/util"
)

// Set stores the given value for the given key.
// Values are automatically marshalled to JSON or gob (depending on the configuration).
// If notify is true, the encoded value is also published on the pub/sub
// channel with the same name as the key.
// The key must not be "" and the value must not be nil.
func (c *Client) Set(ctx context.Context, k string, v interface{}, notify bool) error {
	if err := util.CheckKeyAndValue(k, v); err != nil {
		return err
	}

	data, err := c.codec.Marshal(v)
	if err != nil {
		return err
	}

	if err := c.c.Set(ctx, k, data, 0).Err(); err != nil {
		return err
	}
	c.debugf("stored value under key %s: %s", k, data)

	if notify {
		if err := c.c.Publish(ctx, k, data).Err(); err != nil {
			return err
		}
		c.debugf("published to channel %s: %s", k, data)
	}
	return nil
}

// Get retrieves the stored value for the given key.
// You need to pass a pointer to the value, so in case of a struct
// the automatic unmarshalling can populate the fields of the object
// that v points to with the values of the retrieved object's values.
// If no value is found it returns (false, nil).
// The key must not be "" and the pointer must not be nil.
func (c *Client) Get(ctx context.Context, k string, v interface{}) (found bool, err error) {
	if err := util.CheckKeyAndValue(k, v); err != nil {
		return false, err
	}

	dataString, err := c.c.Get(ctx, k).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	return true, c.codec.Unmarshal([]byte(dataString), v)
}

// SetString stores the given string verbatim, bypassing the codec.
// If notify is true, the string is also published on the pub/sub channel
// with the same name as the key.
// The key must not be "".
func (c *Client) SetString(ctx context.Context, k, s string, notify bool) error {
	if err := util.CheckKey(k); err != nil {
		return err
	}

	if err := c.c.Set(ctx, k, s, 0).Err(); err != nil {
		return err
	}
	c.debugf("stored string under key %s: %s", k, s)

	if notify {
		if err := c.c.Publish(ctx, k, s).Err(); err != nil {
			return err
		}
		c.debugf("published to channel %s: %s", k, s)
	}
	return nil
}

// GetString retrieves the string stored for the given key, bypassing the codec.
// If no value is found it returns ("", false, nil).
// The key must not be "".
func (c *Client) GetString(ctx context.Context, k string) (s string, found bool, err error) {
	if err := util.CheckKey(k); err != nil {
		return "", false, err
	}

	s, err = c.c.Get(ctx, k).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, err
	}
	return s, true, nil
}

// PushFrame appends the frame's rows after sinceIndex to the Redis list
// stored under the given key, one codec-encoded row per list element.
// Pass -1 to push all rows. If notify is true, each row is also published
// on the pub/sub channel with the same name as the key.
//
// It returns the index of the last row that was stored, so the caller can
// pass it as sinceIndex on the next call. On error, the returned index
// still accounts for the rows stored before the error occurred, which
// makes a retry safe with respect to the list (an error during the
// pub/sub announcement can leave the last stored row unannounced).
func (c *Client) PushFrame(ctx context.Context, k string, fr *frame.Frame, sinceIndex int, notify bool) (int, error) {
	if err := util.CheckKey(k); err != nil {
		return sinceIndex, err
	}
	if fr == nil {
		return sinceIndex, errNilFrame
	}

	rows := fr.RowsSince(sinceIndex)
	last := fr.Len() - 1 - len(rows)
	for _, row := range rows {
		data, err := c.codec.Marshal(row)
		if err != nil {
			return last, err
		}
		if err := c.c.RPush(ctx, k, data).Err(); err != nil {
			return last, err
		}
		last++
		c.debugf("stored new row for %s: %s", k, data)

		if notify {
			if err := c.c.Publish(ctx, k, data).Err(); err != nil {
				return last, err
			}
			c.debugf("published row to channel %s: %s", k, data)
		}
	}
	return last, nil
}

// FetchFrame reads the whole Redis list stored under the given key and
// decodes it into a frame. The frame is normalized: rows with duplicate
// timestamps are dropped (the last occurrence wins) and the remaining
// rows are sorted by timestamp in ascending order.
// A missing key yields an empty frame.
// The key must not be "".
func (c *Client) FetchFrame(ctx context.Context, k string) (*frame.Frame, error) {
	if err := util.CheckKey(k); err != nil {
		return nil, err
	}

	elements, err := c.c.LRange(ctx, k, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]frame.Row, 0, len(elements))
	for _, element := range elements {
		row := frame.Row{}
		if err := c.codec.Unmarshal([]byte(element), &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	fr := frame.FromRows(rows)
	fr.Normalize()
	return fr, nil
}

// DeleteResult reports the outcome of a Delete call.
type DeleteResult struct {
	// Deleted is the number of keys that existed and were deleted.
	Deleted int
	// Missing contains the keys that did not exist.
	Missing []string
}

// Delete deletes the given keys and reports how many of them existed and
// which ones didn't. Deleting non-existing keys does NOT lead to an error.
// None of the keys must be "".
func (c *Client) Delete(ctx context.Context, keys ...string) (DeleteResult, error) {
	result := DeleteResult{}
	for _, k := range keys {
		if err := util.CheckKey(k); err != nil {
			return result, err
		}

		n, err := c.c.Exists(ctx, k).Result()
		if err != nil {
			return result, err
		}
		if n == 0 {
			result.Missing = append(result.Missing, k)
			c.debugf("key does not exist: %s", k)
			continue
		}

		if err := c.c.Del(ctx, k).Err(); err != nil {
			return result, err
		}
		result.Deleted++
		c.debugf("deleted key: %s", k)
	}
	return result, nil
}
