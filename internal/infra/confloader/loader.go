package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the environment variable prefix.
const DefaultEnvPrefix = "REDISGATE_"

// Loader layers configuration sources onto one koanf tree. Later
// layers win: file, then environment, then any maps the caller adds.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// WithConfigFile sets the configuration file path for Load.
func WithConfigFile(path string) Option {
	return func(l *Loader) { l.filePath = path }
}

// NewLoader creates a configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load layers the configured file and the environment, then decodes
// into target. Flag maps are layered separately with LoadMap before
// this call.
func (l *Loader) Load(target any) error {
	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
	}
	if err := l.LoadEnv(); err != nil {
		return err
	}
	return l.Unmarshal(target)
}

// LoadFile layers a YAML configuration file.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// LoadEnv layers environment variables. A name maps to a config key
// by stripping the prefix, lowercasing and turning underscores into
// dots, so REDISGATE_CLIENT_HOST binds client.host.
func (l *Loader) LoadEnv() error {
	p := env.Provider(l.envPrefix, ".", func(name string) string {
		key := strings.TrimPrefix(name, l.envPrefix)
		return strings.ReplaceAll(strings.ToLower(key), "_", ".")
	})
	if err := l.k.Load(p, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// LoadMap layers a flat map, used for CLI flags and tests.
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(mapProvider(data), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal decodes the merged configuration into target. Struct
// fields bind through their koanf tags.
func (l *Loader) Unmarshal(target any) error {
	if err := l.k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// Dotted-key accessors for callers that want single values without a
// target struct.

func (l *Loader) Get(key string) any          { return l.k.Get(key) }
func (l *Loader) GetString(key string) string { return l.k.String(key) }
func (l *Loader) GetInt(key string) int       { return l.k.Int(key) }
func (l *Loader) GetBool(key string) bool     { return l.k.Bool(key) }

// All returns the merged configuration as a flat map.
func (l *Loader) All() map[string]any {
	return l.k.All()
}
