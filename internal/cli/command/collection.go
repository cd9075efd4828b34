package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redisgate-go/internal/client"
)

// ListCommand returns the list subcommand group.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List commands",
		Subcommands: []*cli.Command{
			{
				Name:      "push",
				Usage:     "Push values onto a list",
				ArgsUsage: "KEY VALUE...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "right",
						Usage: "Append instead of prepend",
					},
				},
				Action: listPush,
			},
			{
				Name:      "pop",
				Usage:     "Pop a value from a list",
				ArgsUsage: "KEY",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "right",
						Usage: "Pop from the tail instead of the head",
					},
				},
				Action: listPop,
			},
			{
				Name:      "range",
				Usage:     "Elements between two indexes",
				ArgsUsage: "KEY START STOP",
				Action:    listRange,
			},
			{
				Name:      "len",
				Usage:     "List length",
				ArgsUsage: "KEY",
				Action:    listLen,
			},
		},
	}
}

func listPush(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("key and at least one value required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		if c.Bool("right") {
			return conn.RPush(ctx, args[0], args[1:]...)
		}
		return conn.LPush(ctx, args[0], args[1:]...)
	})
}

func listPop(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		var val string
		var ok bool
		var err error
		if c.Bool("right") {
			val, ok, err = conn.RPop(ctx, key)
		} else {
			val, ok, err = conn.LPop(ctx, key)
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("list %q is empty", key)
		}
		return val, nil
	})
}

func listRange(c *cli.Context) error {
	if c.Args().Len() < 3 {
		return fmt.Errorf("key, start and stop required")
	}
	key := c.Args().Get(0)
	start, err := strconv.ParseInt(c.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid start %q", c.Args().Get(1))
	}
	stop, err := strconv.ParseInt(c.Args().Get(2), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid stop %q", c.Args().Get(2))
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.LRange(ctx, key, start, stop)
	})
}

func listLen(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.LLen(ctx, key)
	})
}

// SetCommand returns the set subcommand group.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "Set commands",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add members to a set",
				ArgsUsage: "KEY MEMBER...",
				Action:    setAdd,
			},
			{
				Name:      "rem",
				Usage:     "Remove members from a set",
				ArgsUsage: "KEY MEMBER...",
				Action:    setRem,
			},
			{
				Name:      "members",
				Usage:     "All members of a set",
				ArgsUsage: "KEY",
				Action:    setMembers,
			},
			{
				Name:      "ismember",
				Usage:     "Check set membership",
				ArgsUsage: "KEY MEMBER",
				Action:    setIsMember,
			},
			{
				Name:      "card",
				Usage:     "Set cardinality",
				ArgsUsage: "KEY",
				Action:    setCard,
			},
		},
	}
}

func setAdd(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("key and at least one member required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.SAdd(ctx, args[0], args[1:]...)
	})
}

func setRem(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("key and at least one member required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.SRem(ctx, args[0], args[1:]...)
	})
}

func setMembers(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.SMembers(ctx, key)
	})
}

func setIsMember(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and member required")
	}
	key, member := c.Args().Get(0), c.Args().Get(1)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.SIsMember(ctx, key, member)
	})
}

func setCard(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.SCard(ctx, key)
	})
}

// ZSetCommand returns the sorted-set subcommand group.
func ZSetCommand() *cli.Command {
	return &cli.Command{
		Name:  "zset",
		Usage: "Sorted set commands",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add members with scores",
				ArgsUsage: "KEY SCORE MEMBER [SCORE MEMBER...]",
				Action:    zsetAdd,
			},
			{
				Name:      "range",
				Usage:     "Members between two ranks",
				ArgsUsage: "KEY START STOP",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "scores",
						Usage: "Include scores",
					},
				},
				Action: zsetRange,
			},
			{
				Name:      "score",
				Usage:     "Score of a member",
				ArgsUsage: "KEY MEMBER",
				Action:    zsetScore,
			},
			{
				Name:      "rem",
				Usage:     "Remove members",
				ArgsUsage: "KEY MEMBER...",
				Action:    zsetRem,
			},
			{
				Name:      "card",
				Usage:     "Sorted set cardinality",
				ArgsUsage: "KEY",
				Action:    zsetCard,
			},
		},
	}
}

func zsetAdd(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 3 || len(args)%2 != 1 {
		return fmt.Errorf("key plus score/member pairs required")
	}
	key := args[0]
	members := make([]client.ZMember, 0, (len(args)-1)/2)
	for i := 1; i < len(args); i += 2 {
		score, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return fmt.Errorf("invalid score %q", args[i])
		}
		members = append(members, client.ZMember{Member: args[i+1], Score: score})
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.ZAdd(ctx, key, members...)
	})
}

func zsetRange(c *cli.Context) error {
	if c.Args().Len() < 3 {
		return fmt.Errorf("key, start and stop required")
	}
	key := c.Args().Get(0)
	start, err := strconv.ParseInt(c.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid start %q", c.Args().Get(1))
	}
	stop, err := strconv.ParseInt(c.Args().Get(2), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid stop %q", c.Args().Get(2))
	}
	withScores := c.Bool("scores")
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		members, err := conn.ZRange(ctx, key, start, stop, withScores)
		if err != nil {
			return nil, err
		}
		if !withScores {
			names := make([]string, 0, len(members))
			for _, m := range members {
				names = append(names, m.Member)
			}
			return names, nil
		}
		return members, nil
	})
}

func zsetScore(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("key and member required")
	}
	key, member := c.Args().Get(0), c.Args().Get(1)
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		score, ok, err := conn.ZScore(ctx, key, member)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("member %q not found", member)
		}
		return score, nil
	})
}

func zsetRem(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("key and at least one member required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.ZRem(ctx, args[0], args[1:]...)
	})
}

func zsetCard(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.ZCard(ctx, key)
	})
}
