// Package app is the composition root of the foodikal client.
//
// Run loads the .env file and config.toml, opens the log file, reads the
// saved preferences and builds the HTTP client. It then seeds the catalog
// store and hands a shop controller to the terminal UI.
//
// # Startup
//
// By default the store is seeded from the embedded fallback menu so the UI
// paints immediately, and a Refresher replaces it with live data shortly
// after:
//
//	Run()
//	 ├─> config.Load()          config.toml + env overrides
//	 ├─> logging.Open()         <log_dir>/foodikal.log
//	 ├─> state.LoadFallback()   seed store (or LoadInitial when disabled)
//	 ├─> shop.NewController()   cart, promo, checkout
//	 └─> ui.Run()               blocks until quit
//	      └─> Refresher.Start() once the program can receive messages
//
// With use_fallback = false the live menu is fetched before the UI starts
// and a failure aborts startup.
//
// # Refresh
//
// The Refresher fetches menu and banners independently. Failures are logged
// and recorded on the store; previous data stays. Data is swapped only when
// it differs structurally, and the UI is notified only after a swap. With a
// refresh interval configured the pass repeats, backing off exponentially
// while the service keeps failing.
package app
