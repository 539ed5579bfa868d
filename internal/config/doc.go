// Package config loads the foodikal client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/foodikal/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. FOODIKAL_BASE_URL and FOODIKAL_LOG_LEVEL override the file
//
// LoadDotEnv reads a .env file into the environment before Load runs, so the
// overrides can live next to the binary during development. Variables that
// are already exported win over the .env file.
//
// # Default Values
//
//   - Config file: ~/.config/foodikal/config.toml
//   - Service: https://foodikal-ny-cors-wrapper.x-gs-x.workers.dev
//   - Log directory: ~/.local/share/foodikal/logs
//   - Client log: <log_dir>/foodikal.log
//   - Log level: info
//   - Background refresh: once, 100ms after start
//   - Promo debounce: 500ms
//   - Carousel: advances every 5s
//   - Delivery dates: the next 7 days
//   - Fallback menu: enabled
//
// # TOML Format
//
//	base_url = "https://foodikal-ny-cors-wrapper.x-gs-x.workers.dev"
//	log_dir = "~/.local/share/foodikal/logs"
//	log_level = "debug"
//	refresh_delay_ms = 100
//	refresh_interval_s = 300
//	promo_debounce_ms = 500
//	carousel_interval_s = 5
//	delivery_dates = ["2025-12-30", "2025-12-31"]
//	use_fallback = true
//
// All fields are optional. Tilde expansion is performed on log_dir.
// refresh_interval_s = 0 keeps the refresh one-shot; carousel_interval_s = 0
// disables auto-advance. With use_fallback = false the client waits for the
// live menu at start-up and exits if it cannot be loaded.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and invalid values (unknown log level,
// negative durations, malformed dates). Missing config files are not an
// error.
package config
