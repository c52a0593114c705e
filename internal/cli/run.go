package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/RevCBH/matrixleader/internal/config"
	"github.com/RevCBH/matrixleader/internal/leader"
	"github.com/RevCBH/matrixleader/internal/logfields"
	"github.com/RevCBH/matrixleader/internal/metrics"
	"github.com/RevCBH/matrixleader/internal/travis"
)

// runLeader loads configuration and runs this job's part in leader election.
// A minion returns nil at once; everything that should fail the CI step is
// returned as an error.
func (a *App) runLeader(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath:    a.opts.ConfigPath,
		RequireConfig: flags.Changed("config"),
		EnvFile:       a.opts.EnvFile,
		Overrides:     a.opts.flagOverrides(flags),
	})
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	signals := NewSignalHandler(cancel, logger)
	signals.Start()
	defer signals.Stop()

	client := travis.NewClient(cfg.TravisEntry, travis.WithLogger(logger))

	coordOpts := []leader.Option{leader.WithLogger(logger)}

	var prom *metrics.PrometheusRecorder
	if cfg.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		coordOpts = append(coordOpts, leader.WithRecorder(prom))
	}

	if a.opts.Verbose {
		display := NewMatrixDisplay(cmd.ErrOrStderr(), DisplayConfig{UseColor: isTerminal(cmd.ErrOrStderr())})
		coordOpts = append(coordOpts, leader.WithObserver(display.Observe))
	}

	out, runErr := leader.NewCoordinator(cfg, client, coordOpts...).Run(ctx)

	if prom != nil && out.Role == leader.RoleLeader {
		if err := prom.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("Could not write metrics", logfields.Path(cfg.MetricsFile), logfields.Error(err))
		}
	}

	return runErr
}

// flagOverrides returns setters for the flags given explicitly on the
// command line, so unset flags never mask file or default values.
func (o *Options) flagOverrides(flags *pflag.FlagSet) []func(*config.Config) {
	var overrides []func(*config.Config)
	set := func(name string, apply func(*config.Config)) {
		if flags.Changed(name) {
			overrides = append(overrides, apply)
		}
	}

	set("travis_entry", func(c *config.Config) { c.TravisEntry = o.TravisEntry })
	set("is_master", func(c *config.Config) { c.IsMaster = o.IsMaster })
	set("master_number", func(c *config.Config) { c.MasterNumber = o.MasterNumber })
	set("poll", func(c *config.Config) { c.Poll = o.Poll })
	set("export_file", func(c *config.Config) { c.ExportFile = o.ExportFile })
	set("max_wait", func(c *config.Config) { c.MaxWait = o.MaxWait })
	set("metrics_file", func(c *config.Config) { c.MetricsFile = o.MetricsFile })
	set("log_level", func(c *config.Config) { c.LogLevel = o.LogLevel })

	return overrides
}

// newLogger builds the text logger used for the whole run
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
