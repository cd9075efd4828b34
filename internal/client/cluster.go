package client

import (
	"context"
	"strconv"

	"github.com/yndnr/redisgate-go/internal/normalize"
)

// ClusterInfo returns the raw CLUSTER INFO text.
func (c *Conn) ClusterInfo(ctx context.Context) (string, error) {
	s, _, err := c.doString(ctx, "CLUSTER", "INFO")
	return s, err
}

// ClusterNodes returns the raw CLUSTER NODES text, one node per line.
func (c *Conn) ClusterNodes(ctx context.Context) (string, error) {
	s, _, err := c.doString(ctx, "CLUSTER", "NODES")
	return s, err
}

// ClusterSlots returns the slot map as JSON. The reply's nested
// arrays of ranges and node entries are normalized rather than
// decoded into structs, so newer server fields survive untouched.
func (c *Conn) ClusterSlots(ctx context.Context) (string, error) {
	v, err := c.Do(ctx, "CLUSTER", "SLOTS")
	if err != nil {
		return "", err
	}
	out, nerr := normalize.JSON(v)
	if nerr != nil {
		return "", c.fail("CLUSTER", nerr)
	}
	return out, nil
}

// ClusterShards returns the shard topology as JSON.
func (c *Conn) ClusterShards(ctx context.Context) (string, error) {
	v, err := c.Do(ctx, "CLUSTER", "SHARDS")
	if err != nil {
		return "", err
	}
	out, nerr := normalize.JSON(v)
	if nerr != nil {
		return "", c.fail("CLUSTER", nerr)
	}
	return out, nil
}

// KeySlot returns the hash slot a key maps to.
func (c *Conn) KeySlot(ctx context.Context, key string) (int64, error) {
	return c.doInt(ctx, "CLUSTER", "KEYSLOT", key)
}

// CountKeysInSlot returns the number of keys the node holds in slot.
func (c *Conn) CountKeysInSlot(ctx context.Context, slot int64) (int64, error) {
	return c.doInt(ctx, "CLUSTER", "COUNTKEYSINSLOT", strconv.FormatInt(slot, 10))
}

// GetKeysInSlot returns up to count key names from slot.
func (c *Conn) GetKeysInSlot(ctx context.Context, slot, count int64) ([]string, error) {
	return c.doStrings(ctx, "CLUSTER", "GETKEYSINSLOT",
		strconv.FormatInt(slot, 10), strconv.FormatInt(count, 10))
}

// MyID returns the node's cluster identifier.
func (c *Conn) MyID(ctx context.Context) (string, error) {
	s, _, err := c.doString(ctx, "CLUSTER", "MYID")
	return s, err
}

// Replicas returns the raw replica descriptions for a master node.
func (c *Conn) Replicas(ctx context.Context, nodeID string) ([]string, error) {
	return c.doStrings(ctx, "CLUSTER", "REPLICAS", nodeID)
}
