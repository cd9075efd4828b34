// Package domain defines the core domain models for RedisGate: the
// client configuration and its connection target grammar, the semantic
// code enumerations for expiration and type-introspection replies, and
// the shared error taxonomy.
//
// Everything in this package is pure data and pure functions; no I/O,
// no shared mutable state.
package domain
