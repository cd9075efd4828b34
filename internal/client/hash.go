package client

import (
	"context"
	"strconv"

	"github.com/yndnr/redisgate-go/internal/core/domain"
	"github.com/yndnr/redisgate-go/internal/proto"
)

// HSet sets one hash field; reports whether the field is new.
func (c *Conn) HSet(ctx context.Context, key, field, value string) (bool, error) {
	return c.doBool(ctx, "HSET", key, field, value)
}

// HGet returns one hash field. The bool result reports presence.
func (c *Conn) HGet(ctx context.Context, key, field string) (string, bool, error) {
	return c.doString(ctx, "HGET", key, field)
}

// HMSet sets multiple hash fields.
func (c *Conn) HMSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return domain.ErrValidation.WithDetails("HMSET requires at least one field")
	}
	args := make([]string, 0, 2+2*len(fields))
	args = append(args, "HSET", key)
	for f, v := range fields {
		args = append(args, f, v)
	}
	_, err := c.doInt(ctx, args...)
	return err
}

// HMGet returns multiple hash fields; entries for missing fields are
// nil.
func (c *Conn) HMGet(ctx context.Context, key string, fields ...string) ([]*string, error) {
	if len(fields) == 0 {
		return nil, domain.ErrValidation.WithDetails("HMGET requires at least one field")
	}
	return c.doNullableStrings(ctx, append([]string{"HMGET", key}, fields...)...)
}

// HDel deletes hash fields and returns the number removed.
func (c *Conn) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	if len(fields) == 0 {
		return 0, domain.ErrValidation.WithDetails("HDEL requires at least one field")
	}
	return c.doInt(ctx, append([]string{"HDEL", key}, fields...)...)
}

// HExists reports whether a hash field exists.
func (c *Conn) HExists(ctx context.Context, key, field string) (bool, error) {
	return c.doBool(ctx, "HEXISTS", key, field)
}

// HLen returns the number of fields in the hash.
func (c *Conn) HLen(ctx context.Context, key string) (int64, error) {
	return c.doInt(ctx, "HLEN", key)
}

// HKeys returns all field names of the hash.
func (c *Conn) HKeys(ctx context.Context, key string) ([]string, error) {
	return c.doStrings(ctx, "HKEYS", key)
}

// HVals returns all values of the hash.
func (c *Conn) HVals(ctx context.Context, key string) ([]string, error) {
	return c.doStrings(ctx, "HVALS", key)
}

// HGetAll returns all fields and values of the hash.
func (c *Conn) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return c.doStringMap(ctx, "HGETALL", key)
}

// HScan iterates the whole hash and returns all fields and values.
// It drives the cursor to completion, accumulating every page before
// returning. An optional pattern
// filters field names and count hints the page size. When the client
// carries a scan limiter, page fetches are paced by it.
func (c *Conn) HScan(ctx context.Context, key, pattern string, count int64) (map[string]string, error) {
	out := make(map[string]string)
	cursor := "0"
	for {
		if c.scan != nil {
			if err := c.scan.Wait(ctx); err != nil {
				return nil, c.fail("HSCAN", err)
			}
		}

		args := []string{"HSCAN", key, cursor}
		if pattern != "" {
			args = append(args, "MATCH", pattern)
		}
		if count > 0 {
			args = append(args, "COUNT", strconv.FormatInt(count, 10))
		}

		v, err := c.Do(ctx, args...)
		if err != nil {
			return nil, err
		}
		next, fields, ok := scanPage(v)
		if !ok {
			return nil, c.fail("HSCAN", &ServerError{
				Message: "unexpected reply " + v.String(),
			})
		}

		for f, val := range fields {
			out[f] = val
		}

		cursor = next
		if cursor == "0" {
			return out, nil
		}
	}
}

// scanPage splits a SCAN-family reply into the next cursor and the
// page payload.
func scanPage(v proto.Value) (cursor string, fields map[string]string, ok bool) {
	if len(v.Items) != 2 {
		return "", nil, false
	}
	return v.Items[0].Text(), valueToStringMap(v.Items[1]), true
}
