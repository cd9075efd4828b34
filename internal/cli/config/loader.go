package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/redisgate-go/internal/core/domain"
	"github.com/yndnr/redisgate-go/internal/infra/confloader"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".redisgate", "cli.yaml")
}

// Load reads the CLI configuration, layering REDISGATE_* environment
// variables over the file. A missing file yields defaults with only
// the environment layer applied. Sealed profile passwords are opened
// with passphrase; profiles whose password cannot be opened fail the
// load rather than silently carrying ciphertext into a connection
// attempt.
func Load(path, passphrase string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	opts := []confloader.Option{confloader.WithConfigFile(path)}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		opts = nil
	}
	l := confloader.NewLoader(opts...)

	cfg := Default()
	if err := l.Load(cfg); err != nil {
		return nil, domain.ErrConfig.WithDetails(path).WithCause(err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}

	if err := openSecrets(cfg, passphrase); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the CLI configuration, sealing profile passwords first.
// The file is written with mode 0600 inside a 0700 directory.
func Save(cfg *CLIConfig, path, passphrase string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	out := *cfg
	out.Profiles = make(map[string]Profile, len(cfg.Profiles))
	for name, p := range cfg.Profiles {
		sealed, err := sealSecret(p.Password, passphrase)
		if err != nil {
			return fmt.Errorf("seal password for profile %s: %w", name, err)
		}
		p.Password = sealed
		out.Profiles[name] = p
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
