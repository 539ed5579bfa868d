package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/foodikal/internal/foodikal"
	"github.com/five82/foodikal/internal/state"
)

const (
	defaultRefreshDelay = 100 * time.Millisecond
	maxBackoff          = 10 * time.Minute
)

// CatalogSource is the part of the service the refresher needs.
type CatalogSource interface {
	FetchMenu(ctx context.Context) (foodikal.Catalog, error)
	FetchBanners(ctx context.Context) ([]foodikal.Banner, error)
}

// Refresher pulls the live menu and banners into the store. Failures are
// logged and recorded on the store; the previous data stays in place.
type Refresher struct {
	store  *state.Store
	source CatalogSource
	logger *slog.Logger
	notify func(state.Change)
}

// NewRefresher builds a refresher. notify is called after a pass that
// swapped data; it may be nil.
func NewRefresher(store *state.Store, source CatalogSource, logger *slog.Logger, notify func(state.Change)) *Refresher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Refresher{store: store, source: source, logger: logger, notify: notify}
}

// Refresh runs one pass. Menu and banners are fetched independently so one
// failing does not hold back the other.
func (r *Refresher) Refresh(ctx context.Context) state.Change {
	var change state.Change

	catalog, err := r.source.FetchMenu(ctx)
	if err == nil {
		err = catalog.Validate()
	}
	if err != nil {
		r.store.RecordError(fmt.Errorf("menu: %w", err))
		r.logger.Warn("menu refresh failed", "error", err)
	} else if r.store.ReplaceCatalog(catalog) {
		change.Catalog = true
		r.logger.Info("menu refreshed", "categories", len(catalog.Categories), "items", catalog.Len())
	} else {
		r.logger.Debug("menu unchanged")
	}

	banners, err := r.source.FetchBanners(ctx)
	if err != nil {
		r.logger.Warn("banner refresh failed", "error", err)
	} else if r.store.ReplaceBanners(banners) {
		change.Banners = true
		r.logger.Info("banners refreshed", "banners", len(banners))
	}

	if change.Any() && r.notify != nil {
		r.notify(change)
	}
	return change
}

// Start launches the background refresh and returns immediately. The first
// pass runs after delay. With a positive interval it repeats, backing off
// while the service keeps failing; otherwise it runs once.
func (r *Refresher) Start(ctx context.Context, delay, interval time.Duration) {
	if delay < 0 {
		delay = defaultRefreshDelay
	}
	go func() {
		wait := delay
		for {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			r.Refresh(ctx)
			if interval <= 0 {
				return
			}
			wait = calculateBackoff(r.store.Snapshot().ConsecutiveFailures, interval)
		}
	}()
}

// LoadInitial fetches the live menu before the UI starts, for setups without
// the embedded fallback. A menu failure is fatal; banners are best effort.
func LoadInitial(ctx context.Context, store *state.Store, source CatalogSource, logger *slog.Logger) error {
	catalog, err := source.FetchMenu(ctx)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	banners, err := source.FetchBanners(ctx)
	if err != nil {
		logger.Warn("initial banner load failed", "error", err)
		banners = nil
	}
	store.Seed(catalog, banners, state.SourceLive)
	return nil
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
