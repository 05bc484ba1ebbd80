package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/opt-labs/solverd/internal/cliconfig"
	"github.com/opt-labs/solverd/internal/server"
	"github.com/opt-labs/solverd/pkg/log"
)

const helpDescription = `
Serve linear and mixed-integer optimization problems over a JSON API.

Highlights:
  - Accepts complete problems or chunked NDJSON streams for large models.
  - Pluggable engines: HiGHS (LP+MIP, default) and a pure-Go simplex (LP).
  - Validate-only endpoint and a static engine catalog.
  - Configure via file ($HOME/.solverd/config.toml), SOLVERD_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  solverd --listen :9280
  solverd --config /etc/solverd/config.toml --backend simplex --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "solverd",
		Short:   "Linear and mixed-integer optimization solving service",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Precedence: flags > env > file > defaults.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, cfgFile)
		},
	}

	fl := root.Flags()
	fl.StringVarP(&cfgPath, "config", "c", "", "path to TOML config file")
	fl.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "listen address for the solve API")
	fl.StringVar(&cfg.DefaultBackend, "backend", cfg.DefaultBackend, "default engine (auto, highs, simplex)")
	fl.Float64Var(&cfg.SolveTimeLimit, "solve-time-limit", cfg.SolveTimeLimit, "default solve time limit in seconds (0 = no limit)")
	fl.Float64Var(&cfg.GapTolerance, "gap-tolerance", cfg.GapTolerance, "default relative MIP gap (0 = engine default)")
	fl.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable engine output for requests without a solver config")
	fl.IntVar(&cfg.IntegerWarnThreshold, "integer-warn-threshold", cfg.IntegerWarnThreshold, "integer-variable count that triggers a validation warning")
	fl.Int64Var(&cfg.MaxBodyBytes, "max-body-bytes", cfg.MaxBodyBytes, "maximum request body size in bytes")
	fl.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	fl.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	fl.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	fl.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fl.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload solve defaults when the config file changes")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config, cfgFile string) error {
	logger := log.NewZerologAdapter(parseLevel(cfg.LogLevel))

	handler := server.New(logger, settingsFrom(cfg))

	if cfg.Watch && cfgFile != "" && cliconfig.FileExists(cfgFile) {
		watcher := cliconfig.NewWatcher(cfgFile, cfg, logger, func(next cliconfig.Config) {
			handler.UpdateSettings(settingsFrom(next))
		})
		if err := watcher.Start(ctx); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", log.String("addr", cfg.ListenAddr), log.String("version", getVersion()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", log.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func settingsFrom(cfg cliconfig.Config) server.Settings {
	settings := server.DefaultSettings()
	if backend, err := cfg.Backend(); err == nil {
		settings.DefaultBackend = backend
	}
	settings.DefaultTimeLimit = cfg.SolveTimeLimit
	settings.DefaultGapTolerance = cfg.GapTolerance
	settings.Verbose = cfg.Verbose
	settings.IntegerWarnThreshold = cfg.IntegerWarnThreshold
	settings.MaxBodyBytes = cfg.MaxBodyBytes
	return settings
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
