package client

import (
	"context"
	"strconv"

	"github.com/yndnr/redisgate-go/internal/core/domain"
)

// Set sets a string value.
func (c *Conn) Set(ctx context.Context, key, value string) error {
	_, err := c.doStatus(ctx, "SET", key, value)
	return err
}

// Get returns the value of key. The bool result reports whether the
// key exists.
func (c *Conn) Get(ctx context.Context, key string) (string, bool, error) {
	return c.doString(ctx, "GET", key)
}

// MSet sets multiple key/value pairs in one command.
func (c *Conn) MSet(ctx context.Context, pairs map[string]string) error {
	if len(pairs) == 0 {
		return domain.ErrValidation.WithDetails("MSET requires at least one pair")
	}
	args := make([]string, 0, 1+2*len(pairs))
	args = append(args, "MSET")
	for k, v := range pairs {
		args = append(args, k, v)
	}
	_, err := c.doStatus(ctx, args...)
	return err
}

// MGet returns the values of keys; entries for missing keys are nil.
func (c *Conn) MGet(ctx context.Context, keys ...string) ([]*string, error) {
	if len(keys) == 0 {
		return nil, domain.ErrValidation.WithDetails("MGET requires at least one key")
	}
	return c.doNullableStrings(ctx, append([]string{"MGET"}, keys...)...)
}

// Append appends value to key and returns the resulting length.
func (c *Conn) Append(ctx context.Context, key, value string) (int64, error) {
	return c.doInt(ctx, "APPEND", key, value)
}

// Strlen returns the length of the string at key, 0 when absent.
func (c *Conn) Strlen(ctx context.Context, key string) (int64, error) {
	return c.doInt(ctx, "STRLEN", key)
}

// SetNX sets key only when it does not exist; reports whether it was
// set.
func (c *Conn) SetNX(ctx context.Context, key, value string) (bool, error) {
	return c.doBool(ctx, "SETNX", key, value)
}

// SetEX sets key with an expiration in seconds.
func (c *Conn) SetEX(ctx context.Context, key, value string, seconds int64) error {
	if seconds <= 0 {
		return domain.ErrValidation.WithDetails("SETEX requires a positive ttl")
	}
	_, err := c.doStatus(ctx, "SETEX", key, strconv.FormatInt(seconds, 10), value)
	return err
}

// Incr increments the integer value at key by one.
func (c *Conn) Incr(ctx context.Context, key string) (int64, error) {
	return c.doInt(ctx, "INCR", key)
}

// IncrBy increments the integer value at key by delta.
func (c *Conn) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return c.doInt(ctx, "INCRBY", key, strconv.FormatInt(delta, 10))
}

// Decr decrements the integer value at key by one.
func (c *Conn) Decr(ctx context.Context, key string) (int64, error) {
	return c.doInt(ctx, "DECR", key)
}

// DecrBy decrements the integer value at key by delta.
func (c *Conn) DecrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return c.doInt(ctx, "DECRBY", key, strconv.FormatInt(delta, 10))
}
