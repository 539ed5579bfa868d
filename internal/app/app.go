package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/foodikal/internal/config"
	"github.com/five82/foodikal/internal/foodikal"
	"github.com/five82/foodikal/internal/logging"
	"github.com/five82/foodikal/internal/order"
	"github.com/five82/foodikal/internal/prefs"
	"github.com/five82/foodikal/internal/shop"
	"github.com/five82/foodikal/internal/state"
	"github.com/five82/foodikal/internal/ui"
)

const initialLoadTimeout = 15 * time.Second

// Options configure the foodikal application.
type Options struct {
	ConfigPath string // empty uses ~/.config/foodikal/config.toml
	PrefsPath  string // empty uses ~/.config/foodikal/prefs.toml
	EnvFile    string // empty uses .env in the working directory
	Open       string // deep link followed at start
}

// LoadConfig applies the .env file and reads the config file.
func LoadConfig(opts Options) (config.Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Run boots the foodikal TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closer.Close() }()
	logger.Info("starting", "base_url", cfg.BaseURL, "fallback", cfg.UseFallback)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("preferences unavailable, using defaults", "error", err)
	}

	client, err := foodikal.NewClient(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("init foodikal client: %w", err)
	}

	store := &state.Store{}
	if err := seedStore(ctx, cfg, store, client, logger); err != nil {
		return err
	}

	dates, err := order.ParseDates(cfg.DeliveryDates)
	if err != nil {
		return fmt.Errorf("delivery dates: %w", err)
	}

	ctrl := shop.NewController(store, shop.Options{
		Debounce: cfg.PromoDebounce,
		Dates:    dates,
		Defaults: order.Form{
			Name:    userPrefs.Checkout.Name,
			Contact: userPrefs.Checkout.Contact,
			Address: userPrefs.Checkout.Address,
		},
		Logger: logger.With("component", "shop"),
	})

	refreshLogger := logger.With("component", "refresh")
	return ui.Run(ui.Options{
		Context:          ctx,
		Controller:       ctrl,
		API:              client,
		Logger:           logger.With("component", "ui"),
		ThemeName:        userPrefs.Theme,
		PrefsPath:        opts.PrefsPath,
		Prefs:            userPrefs,
		LogPath:          cfg.LogPath(),
		CarouselInterval: cfg.CarouselInterval,
		Open:             opts.Open,
		StartRefresh: func(notify func(state.Change)) {
			NewRefresher(store, client, refreshLogger, notify).
				Start(ctx, cfg.RefreshDelay, cfg.RefreshInterval)
		},
	})
}

// seedStore paints the embedded fallback data, or blocks on the live menu
// when the fallback is disabled or unreadable.
func seedStore(ctx context.Context, cfg config.Config, store *state.Store, source CatalogSource, logger *slog.Logger) error {
	if cfg.UseFallback {
		fb, err := state.LoadFallback()
		if err == nil {
			store.Seed(fb.Catalog(), fb.Banners, state.SourceFallback)
			logger.Info("seeded fallback catalog", "updated", fb.Updated, "items", fb.Catalog().Len())
			return nil
		}
		logger.Warn("fallback data unusable, loading live menu", "error", err)
	}

	loadCtx, cancel := context.WithTimeout(ctx, initialLoadTimeout)
	defer cancel()
	if err := LoadInitial(loadCtx, store, source, logger); err != nil {
		logger.Error("initial menu load failed", "error", err)
		return err
	}
	return nil
}
