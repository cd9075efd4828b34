package config

import (
	"fmt"
	"os"

	"github.com/yndnr/redisgate-go/pkg/crypto/seal"
)

// PassphraseEnv names the environment variable holding the config
// sealing passphrase.
const PassphraseEnv = "REDISGATE_CONFIG_KEY"

// fallbackPassphrase protects configs when no passphrase is set. It
// only deters casual file reading; real protection requires setting
// REDISGATE_CONFIG_KEY.
const fallbackPassphrase = "redisgate-local-config"

// Passphrase returns the sealing passphrase from the environment, or
// the built-in fallback.
func Passphrase() string {
	if p := os.Getenv(PassphraseEnv); p != "" {
		return p
	}
	return fallbackPassphrase
}

// sealSecret seals a plaintext password. Empty passwords and values
// already sealed pass through unchanged.
func sealSecret(password, passphrase string) (string, error) {
	if password == "" || seal.IsSealed(password) {
		return password, nil
	}
	return seal.Seal(passphrase, password)
}

// openSecrets opens every sealed profile password in place.
func openSecrets(cfg *CLIConfig, passphrase string) error {
	for name, p := range cfg.Profiles {
		if !seal.IsSealed(p.Password) {
			continue
		}
		plain, err := seal.Open(passphrase, p.Password)
		if err != nil {
			return fmt.Errorf("open password for profile %s: %w", name, err)
		}
		p.Password = plain
		cfg.Profiles[name] = p
	}
	return nil
}
