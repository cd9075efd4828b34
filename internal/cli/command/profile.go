package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redisgate-go/internal/cli/config"
	"github.com/yndnr/redisgate-go/internal/cli/output"
	"github.com/yndnr/redisgate-go/internal/infra/confloader"
	"github.com/yndnr/redisgate-go/internal/telemetry/logger"
)

// ProfileCommand returns the profile subcommand group for saved
// connections.
func ProfileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage saved connection profiles",
		Subcommands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Save the current connection flags as a profile",
				ArgsUsage: "NAME",
				Action:    profileSave,
			},
			{
				Name:   "list",
				Usage:  "List saved profiles",
				Action: profileList,
			},
			{
				Name:      "use",
				Usage:     "Set the default profile",
				ArgsUsage: "NAME",
				Action:    profileUse,
			},
			{
				Name:      "remove",
				Usage:     "Remove a saved profile",
				ArgsUsage: "NAME",
				Action:    profileRemove,
			},
			{
				Name:      "target",
				Usage:     "Show a profile's connection target",
				ArgsUsage: "[NAME]",
				Action:    profileTarget,
			},
			{
				Name:   "watch",
				Usage:  "Follow the config file and reload profiles on change",
				Action: profileWatch,
			},
		},
	}
}

func profileSave(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("profile name required")
	}

	cfg := cliConfig(c)
	cfg.Profiles[name] = config.Profile{
		Host:     c.String("host"),
		Port:     c.Int("port"),
		DB:       c.Int("db"),
		Username: c.String("user"),
		Password: c.String("password"),
		TLS:      c.Bool("tls"),
		CAFile:   c.String("ca-file"),
	}
	if cfg.DefaultProfile == "" {
		cfg.DefaultProfile = name
	}

	if err := config.Save(cfg, c.String("config"), config.Passphrase()); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "profile %q saved\n", name)
	return nil
}

func profileList(c *cli.Context) error {
	cfg := cliConfig(c)

	t := &output.Table{Headers: []string{"NAME", "TARGET", "DEFAULT"}}
	for name, p := range cfg.Profiles {
		mark := ""
		if name == cfg.DefaultProfile {
			mark = "*"
		}
		shown := p
		if shown.Password != "" {
			shown.Password = "***"
		}
		t.AddRow(name, shown.ClientConfig().BuildTarget(), mark)
	}
	return render(c, t)
}

func profileUse(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("profile name required")
	}
	cfg := cliConfig(c)
	if _, ok := cfg.Profiles[name]; !ok {
		return fmt.Errorf("unknown profile %q", name)
	}
	cfg.DefaultProfile = name
	if err := config.Save(cfg, c.String("config"), config.Passphrase()); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "default profile set to %q\n", name)
	return nil
}

func profileRemove(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("profile name required")
	}
	cfg := cliConfig(c)
	if _, ok := cfg.Profiles[name]; !ok {
		return fmt.Errorf("unknown profile %q", name)
	}
	delete(cfg.Profiles, name)
	if cfg.DefaultProfile == name {
		cfg.DefaultProfile = ""
	}
	if err := config.Save(cfg, c.String("config"), config.Passphrase()); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "profile %q removed\n", name)
	return nil
}

func profileWatch(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}

	log := logger.Nop()
	if c.Bool("verbose") {
		lcfg := logger.DefaultConfig()
		lcfg.Level = "debug"
		log = logger.New(lcfg)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchConfig(ctx, path, log, c.App.Writer, c.App.ErrWriter,
		func(cfg *config.CLIConfig) {
			c.App.Metadata["cliConfig"] = cfg
		})
}

// watchConfig follows path until ctx is cancelled, reloading the CLI
// configuration on every change and reporting whether the new
// contents still load. onReload receives each successfully reloaded
// config.
func watchConfig(ctx context.Context, path string, log logger.Logger,
	out, errOut io.Writer, onReload func(*config.CLIConfig)) error {

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return fmt.Errorf("start config watcher: %w", err)
	}

	if err := w.Watch(path); err != nil {
		w.Stop()
		return err
	}

	w.OnChange(func(changed string) {
		// The watcher covers the parent directory; ignore siblings.
		if filepath.Base(changed) != filepath.Base(path) {
			return
		}
		cfg, err := config.Load(path, config.Passphrase())
		if err != nil {
			fmt.Fprintf(errOut, "reload failed: %v\n", err)
			return
		}
		if onReload != nil {
			onReload(cfg)
		}
		fmt.Fprintf(out, "config reloaded: %d profile(s), default %q\n",
			len(cfg.Profiles), cfg.DefaultProfile)
	})

	fmt.Fprintf(out, "watching %s\n", path)
	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	w.Start()
	return nil
}

func profileTarget(c *cli.Context) error {
	cfg, _, err := resolveConfig(c)
	if err != nil {
		return err
	}
	// Redact before printing; the target embeds credentials verbatim.
	if cfg.Password != "" {
		cfg.Password = "***"
	}
	fmt.Fprintln(c.App.Writer, cfg.BuildTarget())
	return nil
}
