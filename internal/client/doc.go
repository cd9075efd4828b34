// Package client implements the RedisGate command facade.
//
// A Client holds a connection configuration; Dial establishes a Conn.
// Each Conn exclusively owns one underlying network connection and is
// synchronous and blocking per call: callers must serialize access to
// a shared Conn themselves. The configured timeout bounds connection
// establishment only, not individual command round trips, and there is
// no cancellation once a command has been written.
//
// Most methods are one-to-one command passthroughs. Replies that carry
// structure (CLUSTER SLOTS, keyspace statistics) are routed through
// the normalize package; sentinel-integer replies from the hash-field
// expiration family are routed through the domain code mappers.
package client
