package client

import (
	"context"
	"strconv"
	"strings"

	"github.com/yndnr/redisgate-go/internal/core/domain"
)

// KeyspaceDB describes one database line from INFO keyspace.
type KeyspaceDB struct {
	DB      int   `json:"db"`
	Keys    int64 `json:"keys"`
	Expires int64 `json:"expires"`
	AvgTTL  int64 `json:"avg_ttl"`
}

// KeyspaceInfo summarizes the server's keyspace across databases.
type KeyspaceInfo struct {
	Databases []KeyspaceDB `json:"databases"`
	TotalKeys int64        `json:"total_keys"`
}

// Ping checks liveness. An optional message is echoed back; with no
// message the server answers PONG.
func (c *Conn) Ping(ctx context.Context, message string) (string, error) {
	if message == "" {
		return c.doStatus(ctx, "PING")
	}
	return c.doStatus(ctx, "PING", message)
}

// DBSize returns the number of keys in the selected database.
func (c *Conn) DBSize(ctx context.Context) (int64, error) {
	return c.doInt(ctx, "DBSIZE")
}

// FlushDB removes every key from the selected database.
func (c *Conn) FlushDB(ctx context.Context) error {
	_, err := c.doStatus(ctx, "FLUSHDB")
	return err
}

// Info returns the raw INFO text, optionally restricted to one
// section.
func (c *Conn) Info(ctx context.Context, section string) (string, error) {
	args := []string{"INFO"}
	if section != "" {
		args = append(args, section)
	}
	s, _, err := c.doString(ctx, args...)
	return s, err
}

// Keyspace fetches INFO keyspace and parses the per-database lines.
func (c *Conn) Keyspace(ctx context.Context) (KeyspaceInfo, error) {
	raw, err := c.Info(ctx, "keyspace")
	if err != nil {
		return KeyspaceInfo{}, err
	}
	info, perr := parseKeyspace(raw)
	if perr != nil {
		return KeyspaceInfo{}, c.fail("INFO", perr)
	}
	return info, nil
}

// TotalKeys sums the key counts across all databases reported by
// INFO keyspace.
func (c *Conn) TotalKeys(ctx context.Context) (int64, error) {
	info, err := c.Keyspace(ctx)
	if err != nil {
		return 0, err
	}
	return info.TotalKeys, nil
}

// parseKeyspace reads lines of the form
//
//	db0:keys=4,expires=1,avg_ttl=0
//
// skipping comments and blanks. Lines that do not match the db prefix
// are ignored rather than rejected; the server is free to add
// sections.
func parseKeyspace(raw string) (KeyspaceInfo, error) {
	var info KeyspaceInfo
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, rest, ok := strings.Cut(line, ":")
		if !ok || !strings.HasPrefix(name, "db") {
			continue
		}
		dbnum, err := strconv.Atoi(strings.TrimPrefix(name, "db"))
		if err != nil {
			return KeyspaceInfo{}, domain.ErrUpstream.WithDetails(
				"malformed keyspace line " + strconv.Quote(line))
		}
		db := KeyspaceDB{DB: dbnum}
		for _, kv := range strings.Split(rest, ",") {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				continue
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				continue
			}
			switch k {
			case "keys":
				db.Keys = n
			case "expires":
				db.Expires = n
			case "avg_ttl":
				db.AvgTTL = n
			}
		}
		info.Databases = append(info.Databases, db)
		info.TotalKeys += db.Keys
	}
	return info, nil
}
