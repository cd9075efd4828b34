// Package tlsroots builds the trust store used for rediss://
// connections.
//
// It loads system roots by default and lets callers add custom CA
// certificates from PEM files or directories, producing a tls.Config
// suitable for dialing a TLS-fronted server.
package tlsroots
