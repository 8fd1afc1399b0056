package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cblog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themer/internal/config"
	"github.com/alexisbeaulieu97/themer/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/themer/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themer/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/themer/internal/loader"
	"github.com/alexisbeaulieu97/themer/internal/logger"
	"github.com/alexisbeaulieu97/themer/internal/orchestrator"
	"github.com/alexisbeaulieu97/themer/internal/overrides"
	"github.com/alexisbeaulieu97/themer/internal/ports"
	"github.com/alexisbeaulieu97/themer/internal/registry"
	"github.com/alexisbeaulieu97/themer/internal/sysmode"
	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// AppContext bundles long-lived services created before a command runs.
type AppContext struct {
	Config    *config.Config
	Logger    ports.Logger
	Store     ports.KVStore
	Registry  *registry.Registry
	Publisher *events.LoggingPublisher
	Loader    *loader.Loader
	Detector  sysmode.Detector

	closers []io.Closer
}

func (a *AppContext) init(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.Load(config.Options{File: flags.configFile, Flags: cmd.Flags()})
	if err != nil {
		return newCommandError("load configuration", valueOrFallback(flags.configFile, "defaults"), err,
			"Check the config file, THEMER_* environment variables and flag values.")
	}
	a.Config = cfg

	log, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return newCommandError("configure logging", cfg.Log.Level, err, "Use --log-level debug|info|warn|error.")
	}
	a.Logger = log

	store, err := openStore(cmd.Context(), cfg.Store)
	if err != nil {
		return newCommandError("open state store", cfg.Store.Path, err,
			"Check the store path permissions or use --store memory.")
	}
	a.Store = store
	if closer, ok := store.(io.Closer); ok {
		a.closers = append(a.closers, closer)
	}

	a.Registry = registry.NewRegistry()
	a.Publisher = events.NewLoggingPublisher(log.With("component", "events"))
	a.Loader = loader.New(a.Registry,
		loader.WithLogger(log.With("component", "loader")),
		loader.WithPublisher(a.Publisher),
		loader.WithDeriveDark(cfg.DeriveDark),
	)
	if a.Detector == nil {
		a.Detector = sysmode.NewTerminalDetector(os.Stdout)
	}
	return nil
}

// CommandContext returns the command context tagged with a fresh
// correlation id and a logger scoped to component.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	ctx, id := logging.CommandContext(cmd.Context())
	return ctx, a.Logger.With("component", component, "command", cmd.Name(), "run_id", id)
}

// Selection returns the theme and requested mode for a command. An explicit
// argument or flag wins, then the persisted selection, then configuration.
func (a *AppContext) Selection(cmd *cobra.Command, args []string) (string, theme.RequestedMode, error) {
	persisted := orchestrator.LoadSelection(a.Store)

	name := a.Config.Theme
	if persisted.Theme != "" {
		name = persisted.Theme
	}
	if cmd.Flags().Changed("theme") || os.Getenv("THEMER_THEME") != "" {
		name = a.Config.Theme
	}
	if len(args) > 0 && args[0] != "" {
		name = args[0]
	}

	raw := a.Config.Mode
	if persisted.Mode != "" {
		raw = string(persisted.Mode)
	}
	if cmd.Flags().Changed("mode") || os.Getenv("THEMER_MODE") != "" {
		raw = a.Config.Mode
	}
	mode, err := theme.ParseMode(raw)
	if err != nil {
		return "", "", newCommandError("select mode", raw, err, "Use --mode light|dark|system.")
	}
	return name, mode, nil
}

// OverrideStore opens the override store for scope.
func (a *AppContext) OverrideStore(scope overrides.Scope) (*overrides.Store, error) {
	return overrides.NewScopedStore(a.Store, scope, a.Logger.With("component", "overrides"))
}

// Watcher builds a system preference watcher using the configured interval.
func (a *AppContext) Watcher() *sysmode.Watcher {
	return sysmode.NewWatcher(a.Detector, a.Config.Watch.PollInterval, a.Logger.With("component", "sysmode"))
}

// Orchestrator wires a pipeline that publishes into sink.
func (a *AppContext) Orchestrator(ctx context.Context, sink ports.StyleSink, store *overrides.Store, name string, mode theme.RequestedMode) (*orchestrator.Orchestrator, error) {
	orch, err := orchestrator.New(ctx, orchestrator.Deps{
		Loader:    a.Loader,
		Overrides: store,
		Sink:      sink,
		Store:     a.Store,
		Watcher:   a.Watcher(),
		Publisher: a.Publisher,
		Logger:    a.Logger.With("component", "orchestrator"),
	}, orchestrator.Options{
		Source:       a.Config.Source,
		Theme:        name,
		Mode:         mode,
		HeaderHeight: a.Config.HeaderHeight,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closerFunc(orch.Close))
	return orch, nil
}

// Close releases everything opened by init, most recent first.
func (a *AppContext) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func newLogger(cfg config.LogConfig, w io.Writer) (ports.Logger, error) {
	if cfg.Format == "json" {
		return logger.New(logger.Options{Level: cfg.Level, Writer: w, Component: "themer"})
	}
	return logging.New(logging.Options{
		Writer:    w,
		Level:     cfg.Level,
		Format:    cfg.Format,
		Formatter: cblog.TextFormatter,
		Layer:     "cli",
	})
}

func openStore(ctx context.Context, cfg config.StoreConfig) (ports.KVStore, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	case config.BackendFile:
		return storage.NewFileStore(cfg.Path)
	case config.BackendSQLite:
		if ctx == nil {
			ctx = context.Background()
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		return storage.NewSQLiteStore(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func valueOrFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
