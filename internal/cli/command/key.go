package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redisgate-go/internal/client"
)

// KeyCommand returns the key subcommand group.
func KeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "key",
		Usage: "Generic key commands",
		Subcommands: []*cli.Command{
			{
				Name:      "del",
				Usage:     "Delete keys",
				ArgsUsage: "KEY...",
				Action:    keyDel,
			},
			{
				Name:      "exists",
				Usage:     "Check whether a key exists",
				ArgsUsage: "KEY",
				Action:    keyExists,
			},
			{
				Name:      "expire",
				Usage:     "Set a key's TTL in seconds",
				ArgsUsage: "KEY SECONDS",
				Action:    keyExpire,
			},
			{
				Name:      "ttl",
				Usage:     "Remaining TTL of a key in seconds",
				ArgsUsage: "KEY",
				Action:    keyTTL,
			},
			{
				Name:      "persist",
				Usage:     "Remove a key's TTL",
				ArgsUsage: "KEY",
				Action:    keyPersist,
			},
			{
				Name:      "type",
				Usage:     "Value kind stored at a key",
				ArgsUsage: "KEY",
				Action:    keyType,
			},
			{
				Name:      "rename",
				Usage:     "Rename a key",
				ArgsUsage: "KEY NEWKEY",
				Action:    keyRename,
			},
			{
				Name:      "list",
				Usage:     "List keys matching a pattern",
				ArgsUsage: "[PATTERN]",
				Action:    keyList,
			},
		},
	}
}

func keyDel(c *cli.Context) error {
	keys := c.Args().Slice()
	if len(keys) == 0 {
		return fmt.Errorf("at least one key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.Del(ctx, keys...)
	})
}

func keyExists(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.Exists(ctx, key)
	})
}

func keyExpire(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and seconds required")
	}
	key := c.Args().Get(0)
	seconds, err := strconv.ParseInt(c.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seconds %q", c.Args().Get(1))
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.Expire(ctx, key, seconds)
	})
}

func keyTTL(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.TTL(ctx, key)
	})
}

func keyPersist(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.Persist(ctx, key)
	})
}

func keyType(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		kind, err := conn.Type(ctx, key)
		if err != nil {
			return nil, err
		}
		return kind.String(), nil
	})
}

func keyRename(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and new key required")
	}
	key, newKey := c.Args().Get(0), c.Args().Get(1)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		if err := conn.Rename(ctx, key, newKey); err != nil {
			return nil, err
		}
		return "OK", nil
	})
}

func keyList(c *cli.Context) error {
	pattern := c.Args().First()
	if pattern == "" {
		pattern = "*"
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.Keys(ctx, pattern)
	})
}
