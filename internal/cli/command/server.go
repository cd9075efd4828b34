package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redisgate-go/internal/client"
)

// ServerCommand returns the server subcommand group.
func ServerCommand() *cli.Command {
	return &cli.Command{
		Name:    "server",
		Aliases: []string{"srv"},
		Usage:   "Server commands",
		Subcommands: []*cli.Command{
			{
				Name:      "ping",
				Usage:     "Check server liveness",
				ArgsUsage: "[MESSAGE]",
				Action:    serverPing,
			},
			{
				Name:   "dbsize",
				Usage:  "Number of keys in the selected database",
				Action: serverDBSize,
			},
			{
				Name:      "info",
				Usage:     "Raw server information",
				ArgsUsage: "[SECTION]",
				Action:    serverInfo,
			},
			{
				Name:   "keyspace",
				Usage:  "Per-database keyspace statistics",
				Action: serverKeyspace,
			},
			{
				Name:  "flushdb",
				Usage: "Remove every key from the selected database",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm the flush",
					},
				},
				Action: serverFlushDB,
			},
		},
	}
}

func serverPing(c *cli.Context) error {
	message := c.Args().First()
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.Ping(ctx, message)
	})
}

func serverDBSize(c *cli.Context) error {
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.DBSize(ctx)
	})
}

func serverInfo(c *cli.Context) error {
	section := c.Args().First()
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.Info(ctx, section)
	})
}

func serverKeyspace(c *cli.Context) error {
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.Keyspace(ctx)
	})
}

func serverFlushDB(c *cli.Context) error {
	if !c.Bool("yes") {
		return fmt.Errorf("flushdb removes every key; pass --yes to confirm")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		if err := conn.FlushDB(ctx); err != nil {
			return nil, err
		}
		return "OK", nil
	})
}
