package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/cartsync"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/obs"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/shop"
	"github.com/five82/storefront/internal/ui"
)

// Options configure the storefront client.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/storefront/prefs.toml
	Token      string // signs in with this token and remembers it
	Logout     bool   // forgets the remembered token
}

// Engine bundles the wired state components.
type Engine struct {
	Config   config.Config
	Catalog  *catalog.Store
	Cart     *cart.Store
	Sync     *cartsync.Client
	Notes    *notify.Channel
	Logger   *slog.Logger
	API      shop.API
	Notifier notify.Notifier
}

// NewEngine wires the catalog, cart and sync client around api. Nothing talks
// to the network until Start is called.
func NewEngine(ctx context.Context, cfg config.Config, api shop.API, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	notes := notify.NewChannel(32)
	notifier := notify.Multi(notify.Log{Logger: logger}, notes)

	catalogStore := &catalog.Store{}
	cartStore := cart.New(cart.Options{
		Catalog:  catalogStore,
		Notifier: notifier,
		Logger:   logger.With("component", "cart"),
	})
	syncer, err := cartsync.New(ctx, cartsync.Options{
		API:      api,
		Cart:     cartStore,
		Notifier: notifier,
		Logger:   logger.With("component", "cartsync"),
	})
	if err != nil {
		return nil, fmt.Errorf("init cart sync: %w", err)
	}

	return &Engine{
		Config:   cfg,
		Catalog:  catalogStore,
		Cart:     cartStore,
		Sync:     syncer,
		Notes:    notes,
		Logger:   logger,
		API:      api,
		Notifier: notifier,
	}, nil
}

// Start loads the catalog once, starts the optional refresher and restores
// the session when a token is known.
func (e *Engine) Start(ctx context.Context, token string) {
	if err := refreshCatalog(ctx, e.Catalog, e.API, e.Logger); err != nil {
		e.Notifier.Notify(notify.Error, shop.UserMessage(err))
	}
	StartRefresher(ctx, e.Catalog, e.API, e.Config.CatalogRefresh, e.Logger)
	if token != "" {
		e.Sync.SetToken(token)
	}
}

// Run boots the storefront TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := obs.OpenLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logger := obs.NewLogger(logFile, cfg.LogLevel)
	slog.SetDefault(logger)

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	switch {
	case opts.Logout:
		userPrefs.Token = ""
		if err := prefs.Save(opts.PrefsPath, userPrefs); err != nil {
			logger.Warn("save prefs failed", "error", err)
		}
	case opts.Token != "":
		userPrefs.Token = opts.Token
		if err := prefs.Save(opts.PrefsPath, userPrefs); err != nil {
			logger.Warn("save prefs failed", "error", err)
		}
	}

	client, err := shop.NewClient(cfg.BackendURL)
	if err != nil {
		return fmt.Errorf("init shop client: %w", err)
	}

	engine, err := NewEngine(ctx, cfg, client, logger)
	if err != nil {
		return err
	}
	engine.Start(ctx, userPrefs.Token)

	return ui.Run(ui.Options{
		Context:   ctx,
		Catalog:   engine.Catalog,
		Cart:      engine.Cart,
		Sync:      engine.Sync,
		Config:    &engine.Config,
		Notes:     engine.Notes.C(),
		Sort:      userPrefs.SortOption(),
		PrefsPath: opts.PrefsPath,
	})
}
