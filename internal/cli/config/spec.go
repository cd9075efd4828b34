package config

import "github.com/yndnr/redisgate-go/internal/core/domain"

// CLIConfig is the on-disk configuration for redisgate-cli. The yaml
// tags shape Save output; the koanf tags bind the loader.
type CLIConfig struct {
	// DefaultProfile names the profile used when none is given.
	DefaultProfile string `yaml:"default_profile" koanf:"default_profile"`

	// DefaultOutput is the preferred output format: table, json, yaml.
	DefaultOutput string `yaml:"default_output" koanf:"default_output"`

	// Profiles are saved connections by name.
	Profiles map[string]Profile `yaml:"profiles" koanf:"profiles"`
}

// Profile stores one saved connection.
type Profile struct {
	Host     string `yaml:"host" koanf:"host"`
	Port     int    `yaml:"port" koanf:"port"`
	DB       int    `yaml:"db" koanf:"db"`
	Username string `yaml:"username,omitempty" koanf:"username"`

	// Password is sealed at rest; in memory after Load it is plain.
	Password string `yaml:"password,omitempty" koanf:"password"`

	TLS    bool   `yaml:"tls,omitempty" koanf:"tls"`
	CAFile string `yaml:"ca_file,omitempty" koanf:"ca_file"`
}

// ClientConfig converts a profile to connection settings.
func (p Profile) ClientConfig() domain.ClientConfig {
	return domain.ClientConfig{
		Host:     p.Host,
		Port:     p.Port,
		DB:       p.DB,
		Username: p.Username,
		Password: p.Password,
		UseTLS:   p.TLS,
	}
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultOutput: "table",
		Profiles:      make(map[string]Profile),
	}
}
