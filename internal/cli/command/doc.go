// Package command defines the redisgate-cli command tree.
//
// It builds on urfave/cli/v2. Commands are grouped by data type
// (string, key, hash, list, set, zset) plus server, cluster, json and
// profile groups. Every command dials with the resolved connection
// settings, runs one operation, renders the result with the selected
// output formatter and disconnects.
package command
