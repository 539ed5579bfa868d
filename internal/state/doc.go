// Package state holds the catalog store shared by the refresher, the shop
// controller and the UI.
//
// The store keeps the current catalog and banner list behind a RWMutex and
// hands out deep copies. Replacement is diff-gated: ReplaceCatalog and
// ReplaceBanners only swap when the fresh data differs structurally, so an
// identical refresh performs no swap and triggers no redraw.
//
// Refresh failures are recorded with RecordError; the previous data stays in
// place and remains fully usable.
//
// The embedded fallback.yaml lets the UI paint a complete menu before the
// first network round trip finishes.
package state
