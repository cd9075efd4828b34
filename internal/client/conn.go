package client

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/redisgate-go/internal/core/domain"
	"github.com/yndnr/redisgate-go/internal/proto"
	"github.com/yndnr/redisgate-go/internal/telemetry/logger"
	"github.com/yndnr/redisgate-go/internal/telemetry/metric"
)

// ServerError is an error reply returned by the server for a command.
type ServerError struct {
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return e.Message
}

// Conn is one connection to a Redis server. It is not safe for
// concurrent use; callers must serialize commands themselves.
type Conn struct {
	id      string
	netConn net.Conn
	r       *proto.Reader
	w       *proto.Writer
	log     logger.Logger
	metrics *metric.Registry
	scan    *rate.Limiter
	closed  bool
}

// ID returns the connection's correlation identifier used in logs.
func (c *Conn) ID() string {
	return c.id
}

// Close closes the underlying network connection.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.log.Debug("connection closed", "conn_id", c.id)
	return c.netConn.Close()
}

// Do issues one command and reads its reply. The context is consulted
// before the command is written; once sent, the round trip cannot be
// cancelled. A top-level error reply is returned as a *ServerError
// wrapped in the upstream error taxonomy, always naming the command.
func (c *Conn) Do(ctx context.Context, args ...string) (proto.Value, error) {
	if len(args) == 0 {
		return proto.Value{}, domain.ErrValidation.WithDetails("empty command")
	}
	name := strings.ToUpper(args[0])

	if err := ctx.Err(); err != nil {
		return proto.Value{}, c.fail(name, err)
	}
	c.log.Debug("command", "conn_id", c.id, "args", logger.RedactArgs(args))

	start := time.Now()
	v, err := c.roundTrip(name, args)
	c.metrics.ObserveCommand(name, time.Since(start), err)
	return v, err
}

func (c *Conn) roundTrip(name string, args []string) (proto.Value, error) {
	if err := c.w.WriteCommand(args...); err != nil {
		return proto.Value{}, c.fail(name, err)
	}

	for {
		v, err := c.r.ReadReply()
		if err != nil {
			return proto.Value{}, c.fail(name, err)
		}
		// Attribute metadata decorates the real reply; the wrapped
		// value is the command's answer.
		if v.Kind == proto.KindAttribute && v.Data != nil {
			c.log.Debug("reply carries attributes", "conn_id", c.id, "count", len(v.Pairs))
			v = *v.Data
		}
		// Out-of-band push messages (client tracking, pub/sub traffic
		// this facade never subscribes to) are not command replies.
		if v.Kind == proto.KindPush {
			c.log.Debug("discarding push message", "conn_id", c.id, "kind", v.Str)
			continue
		}
		if v.Kind == proto.KindServerError {
			return proto.Value{}, c.fail(name, &ServerError{Message: v.Str})
		}
		return v, nil
	}
}

// fail wraps any transport or server failure with the originating
// command name; callers always see which operation failed.
func (c *Conn) fail(command string, err error) error {
	return domain.ErrUpstream.WithDetails(command).WithCause(err)
}

// ---- typed reply helpers -------------------------------------------------

// doStatus issues a command expecting a simple status reply ("OK",
// "PONG").
func (c *Conn) doStatus(ctx context.Context, args ...string) (string, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return "", err
	}
	return v.Text(), nil
}

// doInt issues a command expecting an integer reply.
func (c *Conn) doInt(ctx context.Context, args ...string) (int64, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return 0, err
	}
	if v.Kind != proto.KindInteger {
		return 0, c.fail(strings.ToUpper(args[0]), &ServerError{
			Message: "unexpected reply " + v.String(),
		})
	}
	return v.Int, nil
}

// doNullableInt issues a command whose reply is an integer or nil
// (ZRANK for a missing member). The bool result reports presence.
func (c *Conn) doNullableInt(ctx context.Context, args ...string) (int64, bool, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return 0, false, err
	}
	if v.IsNil() {
		return 0, false, nil
	}
	if v.Kind != proto.KindInteger {
		return 0, false, c.fail(strings.ToUpper(args[0]), &ServerError{
			Message: "unexpected reply " + v.String(),
		})
	}
	return v.Int, true, nil
}

// doBool issues a command whose reply is an integer or boolean flag.
func (c *Conn) doBool(ctx context.Context, args ...string) (bool, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return false, err
	}
	switch v.Kind {
	case proto.KindBoolean:
		return v.Bool, nil
	case proto.KindInteger:
		return v.Int != 0, nil
	}
	return false, c.fail(strings.ToUpper(args[0]), &ServerError{
		Message: "unexpected reply " + v.String(),
	})
}

// doString issues a command whose reply is a nullable string. The
// bool result reports presence.
func (c *Conn) doString(ctx context.Context, args ...string) (string, bool, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return "", false, err
	}
	if v.IsNil() {
		return "", false, nil
	}
	return v.Text(), true, nil
}

// doFloat issues a command whose reply is a double (RESP3) or a bulk
// string holding decimal text (RESP2).
func (c *Conn) doFloat(ctx context.Context, args ...string) (float64, bool, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return 0, false, err
	}
	switch v.Kind {
	case proto.KindNil:
		return 0, false, nil
	case proto.KindDouble:
		return v.Float, true, nil
	}
	f, parseErr := strconv.ParseFloat(v.Text(), 64)
	if parseErr != nil {
		return 0, false, c.fail(strings.ToUpper(args[0]), &ServerError{
			Message: "unexpected reply " + v.String(),
		})
	}
	return f, true, nil
}

// doStrings issues a command whose reply is an array of strings.
func (c *Conn) doStrings(ctx context.Context, args ...string) ([]string, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		out = append(out, item.Text())
	}
	return out, nil
}

// doNullableStrings issues a command whose reply is an array of
// nullable strings (MGET, HMGET); missing entries are nil.
func (c *Conn) doNullableStrings(ctx context.Context, args ...string) ([]*string, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return nil, err
	}
	out := make([]*string, 0, len(v.Items))
	for _, item := range v.Items {
		if item.IsNil() {
			out = append(out, nil)
			continue
		}
		s := item.Text()
		out = append(out, &s)
	}
	return out, nil
}

// doInts issues a command whose reply is an array of integers.
func (c *Conn) doInts(ctx context.Context, args ...string) ([]int64, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(v.Items))
	for _, item := range v.Items {
		out = append(out, item.Int)
	}
	return out, nil
}

// doStringMap issues a command whose reply is a field/value map: a
// RESP3 map, or a RESP2 flat array of alternating fields and values.
func (c *Conn) doStringMap(ctx context.Context, args ...string) (map[string]string, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return nil, err
	}
	return valueToStringMap(v), nil
}

// itemScore decodes a score element, which arrives as a RESP3 double
// or decimal bulk text on RESP2.
func itemScore(v proto.Value) (float64, error) {
	if v.Kind == proto.KindDouble {
		return v.Float, nil
	}
	f, err := strconv.ParseFloat(v.Text(), 64)
	if err != nil {
		return 0, &ServerError{Message: "unexpected score " + v.String()}
	}
	return f, nil
}

func valueToStringMap(v proto.Value) map[string]string {
	out := make(map[string]string)
	switch v.Kind {
	case proto.KindMap:
		for _, p := range v.Pairs {
			out[p.Key.Text()] = p.Val.Text()
		}
	case proto.KindArray, proto.KindSet:
		for i := 0; i+1 < len(v.Items); i += 2 {
			out[v.Items[i].Text()] = v.Items[i+1].Text()
		}
	}
	return out
}
