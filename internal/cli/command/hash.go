package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redisgate-go/internal/client"
	"github.com/yndnr/redisgate-go/internal/core/domain"
)

// HashCommand returns the hash subcommand group.
func HashCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash",
		Usage: "Hash commands",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get a hash field",
				ArgsUsage: "KEY FIELD",
				Action:    hashGet,
			},
			{
				Name:      "set",
				Usage:     "Set hash fields",
				ArgsUsage: "KEY FIELD VALUE [FIELD VALUE...]",
				Action:    hashSet,
			},
			{
				Name:      "del",
				Usage:     "Delete hash fields",
				ArgsUsage: "KEY FIELD...",
				Action:    hashDel,
			},
			{
				Name:      "getall",
				Usage:     "All fields and values of a hash",
				ArgsUsage: "KEY",
				Action:    hashGetAll,
			},
			{
				Name:      "scan",
				Usage:     "Scan a hash's fields",
				ArgsUsage: "KEY",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "match",
						Usage: "Filter field names by pattern",
					},
					&cli.Int64Flag{
						Name:  "count",
						Usage: "Page size hint",
					},
				},
				Action: hashScan,
			},
			{
				Name:      "expire",
				Usage:     "Set per-field TTLs in seconds",
				ArgsUsage: "KEY SECONDS FIELD...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "condition",
						Usage: "TTL update condition: nx, xx, gt, lt",
					},
				},
				Action: hashExpire,
			},
			{
				Name:      "ttl",
				Usage:     "Remaining per-field TTLs in seconds",
				ArgsUsage: "KEY FIELD...",
				Action:    hashTTL,
			},
			{
				Name:      "persist",
				Usage:     "Remove per-field TTLs",
				ArgsUsage: "KEY FIELD...",
				Action:    hashPersist,
			},
		},
	}
}

func hashGet(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and field required")
	}
	key, field := c.Args().Get(0), c.Args().Get(1)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		val, ok, err := conn.HGet(ctx, key, field)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("field %q not found", field)
		}
		return val, nil
	})
}

func hashSet(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 3 || len(args)%2 != 1 {
		return fmt.Errorf("key plus field/value pairs required")
	}
	key := args[0]
	fields := make(map[string]string, (len(args)-1)/2)
	for i := 1; i < len(args); i += 2 {
		fields[args[i]] = args[i+1]
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		if err := conn.HMSet(ctx, key, fields); err != nil {
			return nil, err
		}
		return "OK", nil
	})
}

func hashDel(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("key and at least one field required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.HDel(ctx, args[0], args[1:]...)
	})
}

func hashGetAll(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.HGetAll(ctx, key)
	})
}

func hashScan(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.HScan(ctx, key, c.String("match"), c.Int64("count"))
	})
}

func hashExpire(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 3 {
		return fmt.Errorf("key, seconds and at least one field required")
	}
	seconds, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seconds %q", args[1])
	}
	opt, err := parseExpireOption(c.String("condition"))
	if err != nil {
		return err
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		results, err := conn.HExpire(ctx, args[0], seconds, opt, args[2:]...)
		if err != nil {
			return nil, err
		}
		return expireResultRows(args[2:], results), nil
	})
}

func hashTTL(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("key and at least one field required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		ttls, err := conn.HTTL(ctx, args[0], args[1:]...)
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(ttls))
		for i, field := range args[1:] {
			out[field] = ttls[i]
		}
		return out, nil
	})
}

func hashPersist(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("key and at least one field required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		results, err := conn.HPersist(ctx, args[0], args[1:]...)
		if err != nil {
			return nil, err
		}
		return expireResultRows(args[1:], results), nil
	})
}

func parseExpireOption(name string) (domain.ExpireOption, error) {
	switch name {
	case "":
		return domain.ExpireAlways, nil
	case "nx":
		return domain.ExpireNX, nil
	case "xx":
		return domain.ExpireXX, nil
	case "gt":
		return domain.ExpireGT, nil
	case "lt":
		return domain.ExpireLT, nil
	default:
		return domain.ExpireAlways, fmt.Errorf("unknown condition %q", name)
	}
}

func expireResultRows(fields []string, results []domain.ExpireResult) map[string]string {
	out := make(map[string]string, len(results))
	for i, field := range fields {
		if i < len(results) {
			out[field] = results[i].String()
		}
	}
	return out
}
