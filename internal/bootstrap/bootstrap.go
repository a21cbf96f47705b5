// Package bootstrap wires configuration, storage, the remote client, the
// network monitor and the sync engine into the facade the binaries use.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tripgenie/internal/adapters/auth"
	"tripgenie/internal/adapters/httpapi"
	"tripgenie/internal/adapters/netprobe"
	"tripgenie/internal/adapters/sqlite"
	"tripgenie/internal/application"
	"tripgenie/internal/config"
	"tripgenie/internal/logging"
	"tripgenie/internal/network"
	"tripgenie/internal/ports"
	"tripgenie/internal/syncengine"
)

// Options selects where configuration comes from and how the process logs
type Options struct {
	// ConfigPath defaults to config.ConfigPath()
	ConfigPath string
	// DefaultLogFile is used when the config names no log file.
	// Empty logs to stderr.
	DefaultLogFile string
	// Session overrides the sync triggers from the config when set
	Session *application.SessionOptions
}

// App is the wired core of one process
type App struct {
	Loader  *config.Loader
	Config  *config.Config
	Logger  *slog.Logger
	Store   *sqlite.Store
	Monitor *network.Monitor
	Engine  *syncengine.Engine
	Cache   *application.Cache
	Trips   *application.Trips
	Session *application.Session

	closers []func() error
	closed  bool
}

// Open loads the configuration and builds every component. Nothing talks to
// the network until Start.
func Open(opts Options) (*App, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.ConfigPath()
	}

	a := &App{Loader: config.NewLoader(opts.ConfigPath)}
	cfg, err := a.Loader.Load()
	if err != nil {
		return nil, err
	}
	a.Config = cfg

	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = opts.DefaultLogFile
	}
	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   logFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	a.Logger = logger
	a.closers = append(a.closers, closeLog)

	if err := a.wire(opts); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(opts Options) error {
	cfg, logger := a.Config, a.Logger

	store, err := sqlite.Open(cfg.Storage.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	a.Store = store
	a.closers = append(a.closers, store.Close)

	api := httpapi.New(cfg.API.URL, credentials(cfg.API),
		httpapi.WithTimeout(cfg.API.Timeout),
		httpapi.WithGenerateTimeout(cfg.API.GenerateTimeout),
		httpapi.WithLogger(logger),
	)

	source, release, err := netprobe.Open(cfg.Network.Source, cfg.Network.ProbeURL, logger)
	if err != nil {
		return fmt.Errorf("failed to open network source: %w", err)
	}
	a.closers = append(a.closers, func() error { release(); return nil })

	a.Monitor = network.NewMonitor(source, logger)

	engineOpts := syncengine.DefaultOptions()
	engineOpts.AutoSync = cfg.Sync.AutoSync
	engineOpts.Logger = logger
	a.Engine = syncengine.New(store, api, a.Monitor, engineOpts)

	sessionOpts := application.SessionOptions{
		AutoSync:         cfg.Sync.AutoSync,
		SyncOnForeground: cfg.Sync.SyncOnForeground,
		SyncOnMount:      cfg.Sync.SyncOnMount,
	}
	if opts.Session != nil {
		sessionOpts = *opts.Session
	}

	a.Cache = application.NewCache()
	a.Session = application.NewSession(a.Engine, a.Monitor, store, a.Cache, sessionOpts, logger)
	a.Trips = application.NewTrips(application.TripsDeps{
		Store:   store,
		API:     api,
		Planner: api,
		Engine:  a.Engine,
		Network: a.Monitor,
		Cache:   a.Cache,
		Logger:  logger,
	})
	return nil
}

func credentials(cfg config.APIConfig) ports.Credentials {
	if cfg.Token == "" {
		return auth.Anonymous()
	}
	return auth.NewStatic(cfg.Token, cfg.UserID)
}

// Start initializes the network monitor and the session
func (a *App) Start(ctx context.Context) error {
	if err := a.Session.Start(ctx); err != nil {
		return err
	}
	a.Logger.Debug("tripgenie started",
		"config", a.Loader.Path(),
		"database", a.Store.Path(),
		"api", a.Config.API.URL,
	)
	return nil
}

// Close stops the session and releases everything Open acquired, in reverse
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if a.Session != nil {
		a.Session.Close()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if err := a.Loader.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
