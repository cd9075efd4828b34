package client

import (
	"context"
	"strconv"

	"github.com/yndnr/redisgate-go/internal/core/domain"
)

// LPush prepends values and returns the new list length.
func (c *Conn) LPush(ctx context.Context, key string, values ...string) (int64, error) {
	if len(values) == 0 {
		return 0, domain.ErrValidation.WithDetails("LPUSH requires at least one value")
	}
	return c.doInt(ctx, append([]string{"LPUSH", key}, values...)...)
}

// RPush appends values and returns the new list length.
func (c *Conn) RPush(ctx context.Context, key string, values ...string) (int64, error) {
	if len(values) == 0 {
		return 0, domain.ErrValidation.WithDetails("RPUSH requires at least one value")
	}
	return c.doInt(ctx, append([]string{"RPUSH", key}, values...)...)
}

// LPop removes and returns the head element. The bool result reports
// whether the list had one.
func (c *Conn) LPop(ctx context.Context, key string) (string, bool, error) {
	return c.doString(ctx, "LPOP", key)
}

// RPop removes and returns the tail element.
func (c *Conn) RPop(ctx context.Context, key string) (string, bool, error) {
	return c.doString(ctx, "RPOP", key)
}

// LLen returns the list length.
func (c *Conn) LLen(ctx context.Context, key string) (int64, error) {
	return c.doInt(ctx, "LLEN", key)
}

// LRange returns elements between start and stop inclusive. Negative
// indexes count from the tail.
func (c *Conn) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return c.doStrings(ctx, "LRANGE", key,
		strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10))
}

// LIndex returns the element at index. The bool result reports whether
// the index was in range.
func (c *Conn) LIndex(ctx context.Context, key string, index int64) (string, bool, error) {
	return c.doString(ctx, "LINDEX", key, strconv.FormatInt(index, 10))
}

// LSet overwrites the element at index.
func (c *Conn) LSet(ctx context.Context, key string, index int64, value string) error {
	_, err := c.doStatus(ctx, "LSET", key, strconv.FormatInt(index, 10), value)
	return err
}

// LRem removes up to count occurrences of value and returns the number
// removed. count's sign picks the scan direction; zero removes all.
func (c *Conn) LRem(ctx context.Context, key string, count int64, value string) (int64, error) {
	return c.doInt(ctx, "LREM", key, strconv.FormatInt(count, 10), value)
}
