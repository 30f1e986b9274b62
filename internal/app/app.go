package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/kv"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/persist"
	"github.com/five82/folio/internal/pixabay"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/render"
	"github.com/five82/folio/internal/state"
	"github.com/five82/folio/internal/ui"
	"github.com/five82/folio/internal/upload"
)

// Options configure the Folio application.
type Options struct {
	ConfigPath string
	EnvPath    string // empty uses ./.env
	PrefsPath  string // empty uses default ~/.config/folio/prefs.toml
	Ephemeral  bool   // keep state in memory only
	Console    bool   // log to stderr as well; never set for the TUI
}

// App holds the wired services shared by the TUI and the CLI commands.
type App struct {
	Config config.Config
	Store  *state.Store
	Loader *render.Loader
	Search *pixabay.Client
	Upload *upload.Service

	closers []io.Closer
}

// Open loads configuration and persisted state and wires every service.
// It fails when stored state cannot be decoded.
func Open(ctx context.Context, opts Options) (*App, error) {
	if err := config.LoadDotEnv(opts.EnvPath); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Ephemeral {
		cfg.Storage.Backend = kv.BackendMemory
	}

	logCloser, err := logging.Init(logging.Config{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: opts.Console,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	a := &App{Config: cfg, closers: []io.Closer{logCloser}}

	store, err := kv.Open(ctx, kv.Options{
		Backend:  cfg.Storage.Backend,
		Path:     cfg.Storage.Path,
		RedisURL: cfg.Storage.RedisURL,
		Prefix:   kv.DefaultRedisPrefix,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	a.closers = append(a.closers, store)

	adapter := persist.New(store)
	initial, err := adapter.Load(ctx)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load gallery: %w", err)
	}
	a.Store = state.New(initial, adapter)

	search, err := pixabay.NewClient(cfg.Pixabay.BaseURL, cfg.Pixabay.APIKey)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("init pixabay client: %w", err)
	}
	a.Search = search
	a.Upload = upload.New(a.Store, cfg.Upload.MaxDimension)
	a.Loader = render.NewLoader()

	log.Info().
		Str("config", cfg.String()).
		Int("photos", len(initial.Photos)).
		Int("albums", len(initial.Albums)).
		Msg("folio started")
	return a, nil
}

// Close releases the store and the log file, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RunTUI starts the terminal UI and blocks until it exits.
func (a *App) RunTUI(ctx context.Context, prefsPath string) error {
	userPrefs, _ := prefs.Load(prefsPath)

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     a.Store,
		Loader:    a.Loader,
		Search:    a.Search,
		Upload:    a.Upload,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		LogPath:   a.Config.Log.File,
	})
}

// Run boots the Folio TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.Console = false
	a, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.RunTUI(ctx, opts.PrefsPath)
}
