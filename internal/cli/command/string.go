package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redisgate-go/internal/client"
)

// StringCommand returns the string subcommand group.
func StringCommand() *cli.Command {
	return &cli.Command{
		Name:    "string",
		Aliases: []string{"str"},
		Usage:   "String commands",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get a key's value",
				ArgsUsage: "KEY",
				Action:    stringGet,
			},
			{
				Name:      "set",
				Usage:     "Set a key's value",
				ArgsUsage: "KEY VALUE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "nx",
						Usage: "Only set if the key does not exist",
					},
					&cli.Int64Flag{
						Name:  "ex",
						Usage: "Expire after this many seconds",
					},
				},
				Action: stringSet,
			},
			{
				Name:      "mget",
				Usage:     "Get multiple keys",
				ArgsUsage: "KEY...",
				Action:    stringMGet,
			},
			{
				Name:      "append",
				Usage:     "Append to a key's value",
				ArgsUsage: "KEY VALUE",
				Action:    stringAppend,
			},
			{
				Name:      "strlen",
				Usage:     "Value length of a key",
				ArgsUsage: "KEY",
				Action:    stringStrlen,
			},
			{
				Name:      "incr",
				Usage:     "Increment a counter",
				ArgsUsage: "KEY [DELTA]",
				Action:    stringIncr,
			},
			{
				Name:      "decr",
				Usage:     "Decrement a counter",
				ArgsUsage: "KEY [DELTA]",
				Action:    stringDecr,
			},
		},
	}
}

func stringGet(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		val, ok, err := conn.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("key %q not found", key)
		}
		return val, nil
	})
}

func stringSet(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and value required")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		switch {
		case c.Bool("nx"):
			ok, err := conn.SetNX(ctx, key, value)
			if err != nil {
				return nil, err
			}
			if !ok {
				return "not set (key exists)", nil
			}
			return "OK", nil
		case c.Int64("ex") > 0:
			if err := conn.SetEX(ctx, key, value, c.Int64("ex")); err != nil {
				return nil, err
			}
			return "OK", nil
		default:
			if err := conn.Set(ctx, key, value); err != nil {
				return nil, err
			}
			return "OK", nil
		}
	})
}

func stringMGet(c *cli.Context) error {
	keys := c.Args().Slice()
	if len(keys) == 0 {
		return fmt.Errorf("at least one key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		vals, err := conn.MGet(ctx, keys...)
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(keys))
		for i, key := range keys {
			if vals[i] == nil {
				out[key] = nil
				continue
			}
			out[key] = *vals[i]
		}
		return out, nil
	})
}

func stringAppend(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and value required")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.Append(ctx, key, value)
	})
}

func stringStrlen(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.Strlen(ctx, key)
	})
}

func stringIncr(c *cli.Context) error {
	return counterAction(c, func(ctx context.Context, conn *client.Conn, key string, delta int64, hasDelta bool) (int64, error) {
		if hasDelta {
			return conn.IncrBy(ctx, key, delta)
		}
		return conn.Incr(ctx, key)
	})
}

func stringDecr(c *cli.Context) error {
	return counterAction(c, func(ctx context.Context, conn *client.Conn, key string, delta int64, hasDelta bool) (int64, error) {
		if hasDelta {
			return conn.DecrBy(ctx, key, delta)
		}
		return conn.Decr(ctx, key)
	})
}

func counterAction(c *cli.Context, fn func(context.Context, *client.Conn, string, int64, bool) (int64, error)) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	var delta int64
	hasDelta := c.Args().Len() > 1
	if hasDelta {
		var err error
		delta, err = strconv.ParseInt(c.Args().Get(1), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid delta %q", c.Args().Get(1))
		}
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return fn(ctx, conn, key, delta, hasDelta)
	})
}
