package client

import (
	"context"
	"strconv"

	"github.com/yndnr/redisgate-go/internal/core/domain"
)

// Del deletes keys and returns the number removed.
func (c *Conn) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, domain.ErrValidation.WithDetails("DEL requires at least one key")
	}
	return c.doInt(ctx, append([]string{"DEL"}, keys...)...)
}

// Exists reports whether key exists.
func (c *Conn) Exists(ctx context.Context, key string) (bool, error) {
	return c.doBool(ctx, "EXISTS", key)
}

// Expire sets a key expiration in seconds; reports whether it was set.
func (c *Conn) Expire(ctx context.Context, key string, seconds int64) (bool, error) {
	return c.doBool(ctx, "EXPIRE", key, strconv.FormatInt(seconds, 10))
}

// PExpire sets a key expiration in milliseconds; reports whether it
// was set.
func (c *Conn) PExpire(ctx context.Context, key string, millis int64) (bool, error) {
	return c.doBool(ctx, "PEXPIRE", key, strconv.FormatInt(millis, 10))
}

// TTL returns the remaining time to live in seconds: -1 when the key
// has no expiration, -2 when it does not exist.
func (c *Conn) TTL(ctx context.Context, key string) (int64, error) {
	return c.doInt(ctx, "TTL", key)
}

// PTTL returns the remaining time to live in milliseconds, with the
// same sentinel values as TTL.
func (c *Conn) PTTL(ctx context.Context, key string) (int64, error) {
	return c.doInt(ctx, "PTTL", key)
}

// Persist removes the expiration from key; reports whether one was
// removed.
func (c *Conn) Persist(ctx context.Context, key string) (bool, error) {
	return c.doBool(ctx, "PERSIST", key)
}

// Type returns the kind of value stored at key.
func (c *Conn) Type(ctx context.Context, key string) (domain.ValueKind, error) {
	name, err := c.doStatus(ctx, "TYPE", key)
	if err != nil {
		return domain.ValueKindNone, err
	}
	return domain.ValueKindFromName(name), nil
}

// Rename renames key to newKey. The server rejects the command when
// key does not exist.
func (c *Conn) Rename(ctx context.Context, key, newKey string) error {
	_, err := c.doStatus(ctx, "RENAME", key, newKey)
	return err
}

// Keys returns all keys matching pattern. Slow on large databases;
// prefer scans in production paths.
func (c *Conn) Keys(ctx context.Context, pattern string) ([]string, error) {
	return c.doStrings(ctx, "KEYS", pattern)
}
