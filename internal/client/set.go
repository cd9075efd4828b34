package client

import (
	"context"

	"github.com/yndnr/redisgate-go/internal/core/domain"
)

// SAdd adds members and returns the number newly added.
func (c *Conn) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, domain.ErrValidation.WithDetails("SADD requires at least one member")
	}
	return c.doInt(ctx, append([]string{"SADD", key}, members...)...)
}

// SRem removes members and returns the number removed.
func (c *Conn) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, domain.ErrValidation.WithDetails("SREM requires at least one member")
	}
	return c.doInt(ctx, append([]string{"SREM", key}, members...)...)
}

// SIsMember reports whether member is in the set.
func (c *Conn) SIsMember(ctx context.Context, key, member string) (bool, error) {
	return c.doBool(ctx, "SISMEMBER", key, member)
}

// SMembers returns all members of the set.
func (c *Conn) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.doStrings(ctx, "SMEMBERS", key)
}

// SCard returns the set cardinality.
func (c *Conn) SCard(ctx context.Context, key string) (int64, error) {
	return c.doInt(ctx, "SCARD", key)
}
