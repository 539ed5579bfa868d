package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/foodikal/internal/foodikal"
)

// Source records where the current catalog came from.
type Source int

const (
	SourceNone Source = iota
	SourceFallback
	SourceLive
)

func (s Source) String() string {
	switch s {
	case SourceFallback:
		return "fallback"
	case SourceLive:
		return "live"
	default:
		return "none"
	}
}

// Snapshot represents the latest catalog data available to the UI.
type Snapshot struct {
	Catalog             foodikal.Catalog
	Banners             []foodikal.Banner
	Source              Source
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// IsOffline returns true when the service has been unreachable for multiple refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store is the catalog store. The refresher writes it, the controller and UI
// read it.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Seed installs initial data without diffing, e.g. the embedded fallback set.
func (s *Store) Seed(catalog foodikal.Catalog, banners []foodikal.Banner, source Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Catalog = catalog.Clone()
	s.snapshot.Banners = cloneBanners(banners)
	s.snapshot.Source = source
	s.snapshot.LastUpdated = time.Now()
}

// ReplaceCatalog swaps in catalog when it differs structurally from the
// current one. It reports whether a swap happened.
func (s *Store) ReplaceCatalog(catalog foodikal.Catalog) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.Source = SourceLive
	if !CatalogChanged(s.snapshot.Catalog, catalog) {
		return false
	}
	s.snapshot.Catalog = catalog.Clone()
	return true
}

// ReplaceBanners swaps in banners when they differ from the current list.
func (s *Store) ReplaceBanners(banners []foodikal.Banner) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !BannersChanged(s.snapshot.Banners, banners) {
		return false
	}
	s.snapshot.Banners = cloneBanners(banners)
	return true
}

// RecordError keeps the previous data but records the failure for visibility.
func (s *Store) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Catalog = s.snapshot.Catalog.Clone()
	snap.Banners = cloneBanners(s.snapshot.Banners)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Catalog returns a copy of the current catalog.
func (s *Store) Catalog() foodikal.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Catalog.Clone()
}

// Banners returns a copy of the current banner list.
func (s *Store) Banners() []foodikal.Banner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBanners(s.snapshot.Banners)
}

// Lookup finds a menu item in the current catalog.
func (s *Store) Lookup(id int) (foodikal.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Catalog.Lookup(id)
}

// Locate finds a menu item and its category in the current catalog.
func (s *Store) Locate(id int) (foodikal.MenuItem, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Catalog.Locate(id)
}

func cloneBanners(items []foodikal.Banner) []foodikal.Banner {
	if len(items) == 0 {
		return nil
	}
	dup := make([]foodikal.Banner, len(items))
	copy(dup, items)
	return dup
}
