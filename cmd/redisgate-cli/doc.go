// Package main provides the entry point for redisgate-cli.
//
// The CLI exposes the command facade from a terminal:
//
//   - Data commands grouped by type (string, key, hash, list, set, zset)
//   - Server and cluster inspection
//   - RedisJSON document commands
//   - Saved connection profiles with sealed credentials
//
// Usage:
//
//	redisgate-cli [command] [flags]
//	redisgate-cli --host 10.0.0.5 string get greeting
//	redisgate-cli -P prod server keyspace -o json
package main
