package domain

import (
	"fmt"
	"time"
)

// Connection defaults applied by BuildTarget when a field is unset.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 6379
	DefaultDB   = 0
)

// ClientConfig configures a connection to a Redis server. All fields
// are optional; the zero value connects to 127.0.0.1:6379 database 0
// without credentials or TLS.
//
// The config is consumed once to build a connection target and is not
// retained by the connection.
type ClientConfig struct {
	Host      string `koanf:"host" json:"host,omitempty"`
	Port      int    `koanf:"port" json:"port,omitempty"`
	DB        int    `koanf:"db" json:"db,omitempty"`
	Username  string `koanf:"username" json:"username,omitempty"`
	Password  string `koanf:"password" json:"password,omitempty"`
	UseTLS    bool   `koanf:"tls" json:"tls,omitempty"`
	TimeoutMS int    `koanf:"timeout_ms" json:"timeout_ms,omitempty"`
}

// BuildTarget assembles the canonical connection target string:
//
//	scheme://[username[:password]@]host:port/db
//
// with scheme redis (plain) or rediss (TLS). The builder is total; any
// combination of fields produces a string.
//
// Credential and host fields are interpolated without escaping, for
// compatibility with the established target grammar. Values containing
// ':', '@' or '/' therefore produce an ambiguous target.
func (c ClientConfig) BuildTarget() string {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}

	scheme := "redis"
	if c.UseTLS {
		scheme = "rediss"
	}

	auth := ""
	switch {
	case c.Username != "" && c.Password != "":
		auth = c.Username + ":" + c.Password + "@"
	case c.Password != "":
		auth = ":" + c.Password + "@"
	}

	return fmt.Sprintf("%s://%s%s:%d/%d", scheme, auth, host, port, c.DB)
}

// Addr returns the host:port dial address with defaults applied.
func (c ClientConfig) Addr() string {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// DialTimeout returns the connection establishment timeout, or zero
// when none is configured. The timeout bounds only connection
// establishment, never an individual command round trip.
func (c ClientConfig) DialTimeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
