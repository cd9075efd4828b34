package client

import (
	"context"
	"testing"

	"github.com/yndnr/redisgate-go/internal/core/domain"
)

func TestHandshake_RESP3(t *testing.T) {
	conn := scriptedConn(t,
		"%2\r\n$6\r\nserver\r\n$5\r\nredis\r\n$5\r\nproto\r\n:3\r\n")
	err := conn.handshake(context.Background(), domain.ClientConfig{})
	if err != nil {
		t.Errorf("handshake() error = %v", err)
	}
}

func TestHandshake_RESP2Fallback(t *testing.T) {
	// A server too old for HELLO rejects it; no credentials means the
	// connection simply continues speaking RESP2.
	conn := scriptedConn(t, "-ERR unknown command 'HELLO'\r\n")
	err := conn.handshake(context.Background(), domain.ClientConfig{})
	if err != nil {
		t.Errorf("handshake() error = %v", err)
	}
}

func TestHandshake_RESP2FallbackAuth(t *testing.T) {
	conn := scriptedConn(t,
		"-ERR unknown command 'HELLO'\r\n",
		"+OK\r\n")
	cfg := domain.ClientConfig{Password: "hunter2"}
	if err := conn.handshake(context.Background(), cfg); err != nil {
		t.Errorf("handshake() error = %v", err)
	}
}

func TestHandshake_SelectsDatabase(t *testing.T) {
	conn := scriptedConn(t,
		"%1\r\n$5\r\nproto\r\n:3\r\n",
		"+OK\r\n")
	cfg := domain.ClientConfig{DB: 3}
	if err := conn.handshake(context.Background(), cfg); err != nil {
		t.Errorf("handshake() error = %v", err)
	}
}

func TestClient_Target(t *testing.T) {
	c := New(domain.ClientConfig{Host: "10.0.0.1", Port: 6380, DB: 1})
	if got := c.Target(); got != "redis://10.0.0.1:6380/1" {
		t.Errorf("Target() = %q", got)
	}
}
