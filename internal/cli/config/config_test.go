package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/redisgate-go/internal/core/domain"
	"github.com/yndnr/redisgate-go/pkg/crypto/seal"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "pass")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultOutput != "table" {
		t.Errorf("DefaultOutput = %q, want %q", cfg.DefaultOutput, "table")
	}
	if cfg.Profiles == nil || len(cfg.Profiles) != 0 {
		t.Errorf("Profiles = %v, want empty map", cfg.Profiles)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")

	in := Default()
	in.DefaultProfile = "prod"
	in.Profiles["prod"] = Profile{
		Host:     "redis.internal",
		Port:     6380,
		DB:       2,
		Username: "app",
		Password: "hunter2",
		TLS:      true,
	}

	if err := Save(in, path, "passphrase"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if strings.Contains(string(raw), "hunter2") {
		t.Fatal("saved config contains the plaintext password")
	}
	if !strings.Contains(string(raw), "sealed:v1:") {
		t.Fatal("saved config missing sealed password armor")
	}

	out, err := Load(path, "passphrase")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p, ok := out.Profiles["prod"]
	if !ok {
		t.Fatal("Load() dropped profile prod")
	}
	if p.Password != "hunter2" {
		t.Errorf("Password = %q, want %q", p.Password, "hunter2")
	}
	if p.Host != "redis.internal" || p.Port != 6380 || p.DB != 2 || !p.TLS {
		t.Errorf("profile = %+v", p)
	}
	if out.DefaultProfile != "prod" {
		t.Errorf("DefaultProfile = %q, want %q", out.DefaultProfile, "prod")
	}
}

func TestSave_DoesNotMutateInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")

	in := Default()
	in.Profiles["dev"] = Profile{Host: "localhost", Port: 6379, Password: "secret"}

	if err := Save(in, path, "passphrase"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if in.Profiles["dev"].Password != "secret" {
		t.Errorf("Save() mutated the input profile: %q", in.Profiles["dev"].Password)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	data := "profiles:\n  dev:\n    host: file-host\n    port: 6379\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("REDISGATE_PROFILES_DEV_HOST", "env-host")

	cfg, err := Load(path, "passphrase")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p := cfg.Profiles["dev"]
	if p.Host != "env-host" {
		t.Errorf("Host = %q, want %q", p.Host, "env-host")
	}
	if p.Port != 6379 {
		t.Errorf("Port = %d, want 6379 from the file layer", p.Port)
	}
}

func TestLoad_EnvWithoutFile(t *testing.T) {
	t.Setenv("REDISGATE_PROFILES_CI_HOST", "ci.redis.local")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "passphrase")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profiles["ci"].Host != "ci.redis.local" {
		t.Errorf("Host = %q, want %q", cfg.Profiles["ci"].Host, "ci.redis.local")
	}
}

func TestLoad_WrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")

	in := Default()
	in.Profiles["dev"] = Profile{Host: "localhost", Port: 6379, Password: "secret"}
	if err := Save(in, path, "right"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := Load(path, "wrong"); err == nil {
		t.Error("Load() should fail when the passphrase cannot open a profile password")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("profiles: [not a map"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(path, "passphrase")
	if !errors.Is(err, domain.ErrConfig) {
		t.Errorf("Load() error = %v, want ErrConfig", err)
	}
}

func TestLoad_PlaintextPasswordPassthrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	data := "profiles:\n  dev:\n    host: localhost\n    port: 6379\n    password: plain\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, "passphrase")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profiles["dev"].Password != "plain" {
		t.Errorf("Password = %q, want %q", cfg.Profiles["dev"].Password, "plain")
	}
}

func TestSave_EmptyPasswordStaysEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")

	in := Default()
	in.Profiles["dev"] = Profile{Host: "localhost", Port: 6379}
	if err := Save(in, path, "passphrase"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if strings.Contains(string(raw), "sealed:") {
		t.Errorf("empty password should not be sealed: %s", raw)
	}
}

func TestSave_AlreadySealedPassthrough(t *testing.T) {
	armored, err := seal.Seal("passphrase", "secret")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "cli.yaml")
	in := Default()
	in.Profiles["dev"] = Profile{Host: "localhost", Port: 6379, Password: armored}
	if err := Save(in, path, "passphrase"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := Load(path, "passphrase")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out.Profiles["dev"].Password != "secret" {
		t.Errorf("Password = %q, want %q", out.Profiles["dev"].Password, "secret")
	}
}

func TestPassphrase(t *testing.T) {
	t.Setenv(PassphraseEnv, "")
	if got := Passphrase(); got != fallbackPassphrase {
		t.Errorf("Passphrase() = %q, want fallback", got)
	}

	t.Setenv(PassphraseEnv, "from-env")
	if got := Passphrase(); got != "from-env" {
		t.Errorf("Passphrase() = %q, want %q", got, "from-env")
	}
}

func TestProfile_ClientConfig(t *testing.T) {
	p := Profile{Host: "h", Port: 7000, DB: 1, Username: "u", Password: "pw", TLS: true}
	cc := p.ClientConfig()
	if cc.Host != "h" || cc.Port != 7000 || cc.DB != 1 || cc.Username != "u" || cc.Password != "pw" || !cc.UseTLS {
		t.Errorf("ClientConfig() = %+v", cc)
	}
}
