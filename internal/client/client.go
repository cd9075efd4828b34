package client

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"strconv"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/redisgate-go/internal/core/domain"
	"github.com/yndnr/redisgate-go/internal/proto"
	"github.com/yndnr/redisgate-go/internal/telemetry/logger"
	"github.com/yndnr/redisgate-go/internal/telemetry/metric"
)

// Client creates connections to a Redis server from a configuration.
type Client struct {
	cfg     domain.ClientConfig
	log     logger.Logger
	metrics *metric.Registry
	scan    *rate.Limiter
	tlsConf *tls.Config
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithMetrics sets the metrics registry recording command
// observations.
func WithMetrics(reg *metric.Registry) Option {
	return func(c *Client) {
		c.metrics = reg
	}
}

// WithScanLimiter bounds the page fetch rate of scan loops. Scans
// accumulate all pages synchronously; the limiter spreads that load
// instead of hammering the server.
func WithScanLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.scan = l
	}
}

// WithTLSConfig overrides the TLS configuration used when the client
// config enables TLS.
func WithTLSConfig(conf *tls.Config) Option {
	return func(c *Client) {
		c.tlsConf = conf
	}
}

// New creates a Client from a configuration.
func New(cfg domain.ClientConfig, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Target returns the canonical connection target string for the
// client's configuration.
func (c *Client) Target() string {
	return c.cfg.BuildTarget()
}

// Dial establishes a connection using the background context.
func (c *Client) Dial() (*Conn, error) {
	return c.DialContext(context.Background())
}

// DialContext establishes a connection. The configured timeout (and
// the context deadline, if tighter) bounds establishment only; once
// connected, commands have no deadline.
func (c *Client) DialContext(ctx context.Context) (*Conn, error) {
	addr := c.cfg.Addr()

	dialer := net.Dialer{Timeout: c.cfg.DialTimeout()}
	netConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, domain.ErrUpstream.WithDetails("dial " + addr).WithCause(err)
	}

	if c.cfg.UseTLS {
		conf := c.tlsConf
		if conf == nil {
			conf = &tls.Config{}
		}
		if conf.ServerName == "" {
			conf = conf.Clone()
			host, _, splitErr := net.SplitHostPort(addr)
			if splitErr == nil {
				conf.ServerName = host
			}
		}
		tlsConn := tls.Client(netConn, conf)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			netConn.Close()
			return nil, domain.ErrUpstream.WithDetails("tls handshake " + addr).WithCause(err)
		}
		netConn = tlsConn
	}

	conn := &Conn{
		id:      ulid.Make().String(),
		netConn: netConn,
		r:       proto.NewReader(netConn),
		w:       proto.NewWriter(netConn),
		log:     c.log,
		metrics: c.metrics,
		scan:    c.scan,
	}

	if err := conn.handshake(ctx, c.cfg); err != nil {
		conn.Close()
		return nil, err
	}

	c.log.Debug("connected",
		"conn_id", conn.id,
		"addr", addr,
		"tls", c.cfg.UseTLS,
		"db", c.cfg.DB,
	)
	return conn, nil
}

// DialDB establishes a connection and switches it to the given
// database, overriding the configured one.
func (c *Client) DialDB(ctx context.Context, db int) (*Conn, error) {
	conn, err := c.DialContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := conn.Select(ctx, db); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// handshake negotiates RESP3 and authenticates. Servers too old for
// HELLO keep speaking RESP2, which the reader handles transparently.
func (conn *Conn) handshake(ctx context.Context, cfg domain.ClientConfig) error {
	args := []string{"HELLO", "3"}
	if cfg.Password != "" {
		user := cfg.Username
		if user == "" {
			user = "default"
		}
		args = append(args, "AUTH", user, cfg.Password)
	}

	_, err := conn.Do(ctx, args...)
	if err != nil {
		var srvErr *ServerError
		if !errors.As(err, &srvErr) {
			return err
		}
		// Pre-RESP3 server: fall back to plain AUTH when credentials
		// are configured, otherwise carry on with RESP2.
		if cfg.Password != "" {
			authArgs := []string{"AUTH", cfg.Password}
			if cfg.Username != "" {
				authArgs = []string{"AUTH", cfg.Username, cfg.Password}
			}
			if _, err := conn.Do(ctx, authArgs...); err != nil {
				return err
			}
		}
	}

	if cfg.DB != 0 {
		if err := conn.Select(ctx, cfg.DB); err != nil {
			return err
		}
	}
	return nil
}

// Select switches the connection to the given database index.
func (conn *Conn) Select(ctx context.Context, db int) error {
	_, err := conn.doStatus(ctx, "SELECT", strconv.Itoa(db))
	return err
}
