package client

import (
	"context"
	"math"
	"strconv"

	"github.com/yndnr/redisgate-go/internal/core/domain"
)

// ZMember pairs a sorted-set member with its score.
type ZMember struct {
	Member string
	Score  float64
}

// ZAdd adds members with scores and returns the number newly added.
// Scores must be finite; NaN and infinities are rejected before any
// bytes hit the wire.
func (c *Conn) ZAdd(ctx context.Context, key string, members ...ZMember) (int64, error) {
	if len(members) == 0 {
		return 0, domain.ErrValidation.WithDetails("ZADD requires at least one member")
	}
	args := make([]string, 0, 2+2*len(members))
	args = append(args, "ZADD", key)
	for _, m := range members {
		if math.IsNaN(m.Score) || math.IsInf(m.Score, 0) {
			return 0, domain.ErrValidation.WithDetails(
				"ZADD score for " + strconv.Quote(m.Member) + " is not finite")
		}
		args = append(args, formatScore(m.Score), m.Member)
	}
	return c.doInt(ctx, args...)
}

// ZRem removes members and returns the number removed.
func (c *Conn) ZRem(ctx context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, domain.ErrValidation.WithDetails("ZREM requires at least one member")
	}
	return c.doInt(ctx, append([]string{"ZREM", key}, members...)...)
}

// ZScore returns the score of member. The bool result reports whether
// the member exists.
func (c *Conn) ZScore(ctx context.Context, key, member string) (float64, bool, error) {
	s, ok, err := c.doString(ctx, "ZSCORE", key, member)
	if err != nil || !ok {
		return 0, ok, err
	}
	f, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return 0, false, c.fail("ZSCORE", perr)
	}
	return f, true, nil
}

// ZCard returns the sorted-set cardinality.
func (c *Conn) ZCard(ctx context.Context, key string) (int64, error) {
	return c.doInt(ctx, "ZCARD", key)
}

// ZCount returns the number of members with scores inside [min, max].
// Bounds follow the server's range syntax, so "-inf", "+inf" and
// exclusive "(1.5" forms pass through.
func (c *Conn) ZCount(ctx context.Context, key, min, max string) (int64, error) {
	return c.doInt(ctx, "ZCOUNT", key, min, max)
}

// ZIncrBy increments member's score and returns the new score.
func (c *Conn) ZIncrBy(ctx context.Context, key string, delta float64, member string) (float64, error) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return 0, domain.ErrValidation.WithDetails("ZINCRBY delta is not finite")
	}
	f, _, err := c.doFloat(ctx, "ZINCRBY", key, formatScore(delta), member)
	return f, err
}

// ZRange returns members between rank start and stop inclusive,
// ordered by ascending score. When withScores is set, the result
// carries scores; otherwise every Score is zero.
func (c *Conn) ZRange(ctx context.Context, key string, start, stop int64, withScores bool) ([]ZMember, error) {
	args := []string{"ZRANGE", key,
		strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10)}
	if withScores {
		args = append(args, "WITHSCORES")
	}
	return c.doZMembers(ctx, withScores, args...)
}

// ZRangeByScore returns members with scores inside [min, max] in
// ascending score order. Bounds follow the server's range syntax.
func (c *Conn) ZRangeByScore(ctx context.Context, key, min, max string, withScores bool) ([]ZMember, error) {
	args := []string{"ZRANGEBYSCORE", key, min, max}
	if withScores {
		args = append(args, "WITHSCORES")
	}
	return c.doZMembers(ctx, withScores, args...)
}

// ZRank returns member's ascending rank. The bool result reports
// whether the member exists.
func (c *Conn) ZRank(ctx context.Context, key, member string) (int64, bool, error) {
	return c.doNullableInt(ctx, "ZRANK", key, member)
}

// ZRevRank returns member's descending rank.
func (c *Conn) ZRevRank(ctx context.Context, key, member string) (int64, bool, error) {
	return c.doNullableInt(ctx, "ZREVRANK", key, member)
}

// ZRemRangeByRank removes members between rank start and stop and
// returns the number removed.
func (c *Conn) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) (int64, error) {
	return c.doInt(ctx, "ZREMRANGEBYRANK", key,
		strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10))
}

// ZRemRangeByScore removes members with scores inside [min, max] and
// returns the number removed.
func (c *Conn) ZRemRangeByScore(ctx context.Context, key, min, max string) (int64, error) {
	return c.doInt(ctx, "ZREMRANGEBYSCORE", key, min, max)
}

func (c *Conn) doZMembers(ctx context.Context, withScores bool, args ...string) ([]ZMember, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return nil, err
	}
	if !withScores {
		members := make([]ZMember, 0, len(v.Items))
		for _, item := range v.Items {
			members = append(members, ZMember{Member: item.Text()})
		}
		return members, nil
	}
	members := make([]ZMember, 0, len(v.Items)/2)
	// RESP3 returns member/score pairs as two-element arrays, RESP2 a
	// flat alternating list.
	if len(v.Items) > 0 && len(v.Items[0].Items) == 2 {
		for _, pair := range v.Items {
			if len(pair.Items) != 2 {
				return nil, c.fail(args[0], &ServerError{
					Message: "unexpected reply " + v.String(),
				})
			}
			score, perr := itemScore(pair.Items[1])
			if perr != nil {
				return nil, c.fail(args[0], perr)
			}
			members = append(members, ZMember{Member: pair.Items[0].Text(), Score: score})
		}
		return members, nil
	}
	if len(v.Items)%2 != 0 {
		return nil, c.fail(args[0], &ServerError{
			Message: "unexpected reply " + v.String(),
		})
	}
	for i := 0; i < len(v.Items); i += 2 {
		score, perr := itemScore(v.Items[i+1])
		if perr != nil {
			return nil, c.fail(args[0], perr)
		}
		members = append(members, ZMember{Member: v.Items[i].Text(), Score: score})
	}
	return members, nil
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
