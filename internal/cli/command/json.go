package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redisgate-go/internal/client"
)

// JSONCommand returns the RedisJSON subcommand group.
func JSONCommand() *cli.Command {
	return &cli.Command{
		Name:  "json",
		Usage: "RedisJSON document commands",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "JSON value at a path",
				ArgsUsage: "KEY [PATH...]",
				Action:    jsonGet,
			},
			{
				Name:      "set",
				Usage:     "Store a JSON value at a path",
				ArgsUsage: "KEY PATH VALUE",
				Action:    jsonSet,
			},
			{
				Name:      "del",
				Usage:     "Delete the value at a path",
				ArgsUsage: "KEY PATH",
				Action:    jsonDel,
			},
			{
				Name:      "type",
				Usage:     "JSON type at a path",
				ArgsUsage: "KEY PATH",
				Action:    jsonType,
			},
			{
				Name:      "arrlen",
				Usage:     "Length of the array at a path",
				ArgsUsage: "KEY PATH",
				Action:    jsonArrLen,
			},
			{
				Name:      "objkeys",
				Usage:     "Key names of the object at a path",
				ArgsUsage: "KEY PATH",
				Action:    jsonObjKeys,
			},
		},
	}
}

func jsonGet(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	paths := c.Args().Tail()
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		doc, ok, err := conn.JSONGet(ctx, key, paths...)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("key %q not found", key)
		}
		return doc, nil
	})
}

func jsonSet(c *cli.Context) error {
	if c.Args().Len() < 3 {
		return fmt.Errorf("key, path and value required")
	}
	key, path, value := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		if err := conn.JSONSet(ctx, key, path, value); err != nil {
			return nil, err
		}
		return "OK", nil
	})
}

func jsonDel(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and path required")
	}
	key, path := c.Args().Get(0), c.Args().Get(1)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.JSONDel(ctx, key, path)
	})
}

func jsonType(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and path required")
	}
	key, path := c.Args().Get(0), c.Args().Get(1)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		typ, ok, err := conn.JSONType(ctx, key, path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("path %q not found", path)
		}
		return typ, nil
	})
}

func jsonArrLen(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and path required")
	}
	key, path := c.Args().Get(0), c.Args().Get(1)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.JSONArrLen(ctx, key, path)
	})
}

func jsonObjKeys(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and path required")
	}
	key, path := c.Args().Get(0), c.Args().Get(1)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.JSONObjKeys(ctx, key, path)
	})
}
