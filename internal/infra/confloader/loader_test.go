package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "client:\n  host: redis.internal\n  port: 6380\n  tls: true\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	l := NewLoader(WithConfigFile(path))
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if got := l.GetString("client.host"); got != "redis.internal" {
		t.Errorf("client.host = %q, want %q", got, "redis.internal")
	}
	if got := l.GetInt("client.port"); got != 6380 {
		t.Errorf("client.port = %d, want 6380", got)
	}
	if !l.GetBool("client.tls") {
		t.Error("client.tls = false, want true")
	}
}

func TestLoader_LoadFile_Missing(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile() should fail for a missing file")
	}
}

func TestLoader_EnvTransform(t *testing.T) {
	t.Setenv("REDISGATE_CLIENT_HOST", "env-host")
	t.Setenv("REDISGATE_CLIENT_DB", "3")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if got := l.GetString("client.host"); got != "env-host" {
		t.Errorf("client.host = %q, want %q", got, "env-host")
	}
	if got := l.GetInt("client.db"); got != 3 {
		t.Errorf("client.db = %d, want 3", got)
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("client:\n  host: file-host\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REDISGATE_CLIENT_HOST", "env-host")

	var cfg struct {
		Client struct {
			Host string `koanf:"host"`
		} `koanf:"client"`
	}

	l := NewLoader(WithConfigFile(path))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Client.Host != "env-host" {
		t.Errorf("Client.Host = %q, want %q", cfg.Client.Host, "env-host")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"client": map[string]any{"host": "map-host"}}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if got := l.GetString("client.host"); got != "map-host" {
		t.Errorf("client.host = %q, want %q", got, "map-host")
	}
}

func TestLoader_CustomEnvPrefix(t *testing.T) {
	t.Setenv("APP_SERVER_NAME", "alt")
	t.Setenv("REDISGATE_SERVER_NAME", "ignored")

	l := NewLoader(WithEnvPrefix("APP_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := l.GetString("server.name"); got != "alt" {
		t.Errorf("server.name = %q, want %q", got, "alt")
	}
}

func TestMapProvider_ReadBytes(t *testing.T) {
	if _, err := (mapProvider{}).ReadBytes(); err == nil {
		t.Error("ReadBytes() should not be supported")
	}
}
