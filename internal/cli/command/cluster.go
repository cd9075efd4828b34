package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redisgate-go/internal/client"
)

// ClusterCommand returns the cluster subcommand group.
func ClusterCommand() *cli.Command {
	return &cli.Command{
		Name:  "cluster",
		Usage: "Cluster commands",
		Subcommands: []*cli.Command{
			{
				Name:   "info",
				Usage:  "Raw cluster state",
				Action: clusterInfo,
			},
			{
				Name:   "nodes",
				Usage:  "Raw node descriptions",
				Action: clusterNodes,
			},
			{
				Name:   "slots",
				Usage:  "Slot-to-node assignments",
				Action: clusterSlots,
			},
			{
				Name:      "keyslot",
				Usage:     "Hash slot a key maps to",
				ArgsUsage: "KEY",
				Action:    clusterKeySlot,
			},
			{
				Name:      "keys-in-slot",
				Usage:     "Key names held in a slot",
				ArgsUsage: "SLOT [COUNT]",
				Action:    clusterKeysInSlot,
			},
			{
				Name:   "myid",
				Usage:  "This node's cluster identifier",
				Action: clusterMyID,
			},
		},
	}
}

func clusterInfo(c *cli.Context) error {
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.ClusterInfo(ctx)
	})
}

func clusterNodes(c *cli.Context) error {
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.ClusterNodes(ctx)
	})
}

func clusterSlots(c *cli.Context) error {
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		raw, err := conn.ClusterSlots(ctx)
		if err != nil {
			return nil, err
		}
		// Decode so the formatter renders structure instead of one
		// opaque JSON string.
		var slots any
		if err := json.Unmarshal([]byte(raw), &slots); err != nil {
			return raw, nil
		}
		return slots, nil
	})
}

func clusterKeySlot(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.KeySlot(ctx, key)
	})
}

func clusterKeysInSlot(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("slot required")
	}
	slot, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid slot %q", c.Args().Get(0))
	}
	count := int64(100)
	if c.Args().Len() > 1 {
		count, err = strconv.ParseInt(c.Args().Get(1), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid count %q", c.Args().Get(1))
		}
	}
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.GetKeysInSlot(ctx, slot, count)
	})
}

func clusterMyID(c *cli.Context) error {
	return withConn(c, func(ctx context.Context, conn *client.Conn) (any, error) {
		return conn.MyID(ctx)
	})
}
