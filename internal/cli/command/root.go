package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/redisgate-go/internal/cli/config"
	"github.com/yndnr/redisgate-go/internal/cli/output"
	"github.com/yndnr/redisgate-go/internal/client"
	"github.com/yndnr/redisgate-go/internal/core/domain"
	"github.com/yndnr/redisgate-go/internal/infra/buildinfo"
	"github.com/yndnr/redisgate-go/internal/infra/tlsroots"
	"github.com/yndnr/redisgate-go/internal/telemetry/logger"
)

const commandTimeout = 30 * time.Second

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "redisgate-cli",
		Usage:   "Redis command-line gateway",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			StringCommand(),
			KeyCommand(),
			HashCommand(),
			ListCommand(),
			SetCommand(),
			ZSetCommand(),
			ServerCommand(),
			ClusterCommand(),
			JSONCommand(),
			ProfileCommand(),
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"), config.Passphrase())
			if err != nil {
				return err
			}
			c.App.Metadata["cliConfig"] = cfg
			return nil
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Aliases: []string{"H"},
			Usage:   "Server host",
			EnvVars: []string{"REDISGATE_HOST"},
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Server port",
			EnvVars: []string{"REDISGATE_PORT"},
		},
		&cli.IntFlag{
			Name:    "db",
			Aliases: []string{"n"},
			Usage:   "Database index",
			EnvVars: []string{"REDISGATE_DB"},
		},
		&cli.StringFlag{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "Username for authentication",
			EnvVars: []string{"REDISGATE_USER"},
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"a"},
			Usage:   "Password for authentication",
			EnvVars: []string{"REDISGATE_PASSWORD"},
		},
		&cli.BoolFlag{
			Name:    "tls",
			Usage:   "Connect with TLS (rediss)",
			EnvVars: []string{"REDISGATE_TLS"},
		},
		&cli.StringFlag{
			Name:    "ca-file",
			Usage:   "Custom CA certificate file for TLS",
			EnvVars: []string{"REDISGATE_CA_FILE"},
		},
		&cli.IntFlag{
			Name:    "timeout-ms",
			Usage:   "Connection timeout in milliseconds",
			EnvVars: []string{"REDISGATE_TIMEOUT_MS"},
			Value:   5000,
		},
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"P"},
			Usage:   "Saved connection profile to use",
			EnvVars: []string{"REDISGATE_PROFILE"},
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "CLI config file path",
			EnvVars: []string{"REDISGATE_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			EnvVars: []string{"REDISGATE_OUTPUT"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

func cliConfig(c *cli.Context) *config.CLIConfig {
	if cfg, ok := c.App.Metadata["cliConfig"].(*config.CLIConfig); ok {
		return cfg
	}
	return config.Default()
}

// resolveConfig merges the selected profile with flag overrides.
// Flags win over the profile, the profile over defaults.
func resolveConfig(c *cli.Context) (domain.ClientConfig, *config.Profile, error) {
	cliCfg := cliConfig(c)

	var cfg domain.ClientConfig
	var prof *config.Profile

	name := c.String("profile")
	if name == "" {
		name = cliCfg.DefaultProfile
	}
	if name != "" {
		p, ok := cliCfg.Profiles[name]
		if !ok {
			return cfg, nil, fmt.Errorf("unknown profile %q", name)
		}
		cfg = p.ClientConfig()
		prof = &p
	}

	if c.IsSet("host") {
		cfg.Host = c.String("host")
	}
	if c.IsSet("port") {
		cfg.Port = c.Int("port")
	}
	if c.IsSet("db") {
		cfg.DB = c.Int("db")
	}
	if c.IsSet("user") {
		cfg.Username = c.String("user")
	}
	if c.IsSet("password") {
		cfg.Password = c.String("password")
	}
	if c.IsSet("tls") {
		cfg.UseTLS = c.Bool("tls")
	}
	cfg.TimeoutMS = c.Int("timeout-ms")

	return cfg, prof, nil
}

// withConn dials, runs fn, renders its result and disconnects.
func withConn(c *cli.Context, fn func(context.Context, *client.Conn) (any, error)) error {
	cfg, prof, err := resolveConfig(c)
	if err != nil {
		return err
	}

	log := logger.Nop()
	if c.Bool("verbose") {
		lcfg := logger.DefaultConfig()
		lcfg.Level = "debug"
		log = logger.New(lcfg)
	}

	opts := []client.Option{
		client.WithLogger(log),
		client.WithScanLimiter(rate.NewLimiter(rate.Limit(100), 10)),
	}

	caFile := c.String("ca-file")
	if caFile == "" && prof != nil {
		caFile = prof.CAFile
	}
	if cfg.UseTLS && caFile != "" {
		pool, err := tlsroots.NewPool()
		if err != nil {
			return err
		}
		if err := pool.AddCertFile(caFile); err != nil {
			return err
		}
		opts = append(opts, client.WithTLSConfig(pool.ClientConfig("")))
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	conn, err := client.New(cfg, opts...).DialContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	result, err := fn(ctx, conn)
	if err != nil {
		return err
	}
	return render(c, result)
}

// render writes a result in the selected output format.
func render(c *cli.Context, data any) error {
	format := output.Format(c.String("output"))
	if format == "" {
		format = output.Format(cliConfig(c).DefaultOutput)
	}
	return output.NewFormatter(format).Format(c.App.Writer, data)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
