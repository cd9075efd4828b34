package client

import (
	"context"
	"strconv"

	"github.com/yndnr/redisgate-go/internal/core/domain"
)

// Hash field expiration commands. Each takes one or more fields and
// returns one result per field, in the order given. The raw variants
// expose the server's integer codes; the typed variants map them
// through domain.ExpireResultFromReply.

// HExpire sets a per-field TTL in seconds.
func (c *Conn) HExpire(ctx context.Context, key string, seconds int64, opt domain.ExpireOption, fields ...string) ([]domain.ExpireResult, error) {
	codes, err := c.hsetTTL(ctx, "HEXPIRE", key, strconv.FormatInt(seconds, 10), opt, fields)
	if err != nil {
		return nil, err
	}
	return mapExpireResults(codes), nil
}

// HPExpire sets a per-field TTL in milliseconds.
func (c *Conn) HPExpire(ctx context.Context, key string, millis int64, opt domain.ExpireOption, fields ...string) ([]domain.ExpireResult, error) {
	codes, err := c.hsetTTL(ctx, "HPEXPIRE", key, strconv.FormatInt(millis, 10), opt, fields)
	if err != nil {
		return nil, err
	}
	return mapExpireResults(codes), nil
}

// HExpireAt sets per-field expiry as a unix timestamp in seconds.
func (c *Conn) HExpireAt(ctx context.Context, key string, unixSeconds int64, opt domain.ExpireOption, fields ...string) ([]domain.ExpireResult, error) {
	codes, err := c.hsetTTL(ctx, "HEXPIREAT", key, strconv.FormatInt(unixSeconds, 10), opt, fields)
	if err != nil {
		return nil, err
	}
	return mapExpireResults(codes), nil
}

// HPExpireAt sets per-field expiry as a unix timestamp in milliseconds.
func (c *Conn) HPExpireAt(ctx context.Context, key string, unixMillis int64, opt domain.ExpireOption, fields ...string) ([]domain.ExpireResult, error) {
	codes, err := c.hsetTTL(ctx, "HPEXPIREAT", key, strconv.FormatInt(unixMillis, 10), opt, fields)
	if err != nil {
		return nil, err
	}
	return mapExpireResults(codes), nil
}

// HPersist clears per-field TTLs.
func (c *Conn) HPersist(ctx context.Context, key string, fields ...string) ([]domain.ExpireResult, error) {
	if len(fields) == 0 {
		return nil, domain.ErrValidation.WithDetails("HPERSIST requires at least one field")
	}
	codes, err := c.doInts(ctx, withFields([]string{"HPERSIST", key}, fields)...)
	if err != nil {
		return nil, err
	}
	return mapExpireResults(codes), nil
}

// HTTL returns per-field remaining TTLs in seconds. -1 means the field
// has no expiration, -2 that it does not exist.
func (c *Conn) HTTL(ctx context.Context, key string, fields ...string) ([]int64, error) {
	if len(fields) == 0 {
		return nil, domain.ErrValidation.WithDetails("HTTL requires at least one field")
	}
	return c.doInts(ctx, withFields([]string{"HTTL", key}, fields)...)
}

// HPTTL returns per-field remaining TTLs in milliseconds.
func (c *Conn) HPTTL(ctx context.Context, key string, fields ...string) ([]int64, error) {
	if len(fields) == 0 {
		return nil, domain.ErrValidation.WithDetails("HPTTL requires at least one field")
	}
	return c.doInts(ctx, withFields([]string{"HPTTL", key}, fields)...)
}

// HExpireTime returns per-field expiry as unix timestamps in seconds.
func (c *Conn) HExpireTime(ctx context.Context, key string, fields ...string) ([]int64, error) {
	if len(fields) == 0 {
		return nil, domain.ErrValidation.WithDetails("HEXPIRETIME requires at least one field")
	}
	return c.doInts(ctx, withFields([]string{"HEXPIRETIME", key}, fields)...)
}

// HPExpireTime returns per-field expiry as unix timestamps in
// milliseconds.
func (c *Conn) HPExpireTime(ctx context.Context, key string, fields ...string) ([]int64, error) {
	if len(fields) == 0 {
		return nil, domain.ErrValidation.WithDetails("HPEXPIRETIME requires at least one field")
	}
	return c.doInts(ctx, withFields([]string{"HPEXPIRETIME", key}, fields)...)
}

func (c *Conn) hsetTTL(ctx context.Context, command, key, ttl string, opt domain.ExpireOption, fields []string) ([]int64, error) {
	if len(fields) == 0 {
		return nil, domain.ErrValidation.WithDetails(command + " requires at least one field")
	}
	args := []string{command, key, ttl}
	if tok := opt.Token(); tok != "" {
		args = append(args, tok)
	}
	return c.doInts(ctx, withFields(args, fields)...)
}

func withFields(args, fields []string) []string {
	args = append(args, "FIELDS", strconv.Itoa(len(fields)))
	return append(args, fields...)
}

func mapExpireResults(codes []int64) []domain.ExpireResult {
	out := make([]domain.ExpireResult, len(codes))
	for i, code := range codes {
		out[i] = domain.ExpireResultFromReply(code)
	}
	return out
}
