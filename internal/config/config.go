package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/foodikal/internal/foodikal"
)

// Config holds the client settings.
type Config struct {
	BaseURL          string
	LogDir           string
	LogLevel         string
	RefreshDelay     time.Duration
	RefreshInterval  time.Duration
	PromoDebounce    time.Duration
	CarouselInterval time.Duration
	DeliveryDates    []string
	UseFallback      bool
}

const (
	defaultConfigPath       = "~/.config/foodikal/config.toml"
	defaultLogDir           = "~/.local/share/foodikal/logs"
	defaultLogLevel         = "info"
	defaultRefreshDelay     = 100 * time.Millisecond
	defaultPromoDebounce    = 500 * time.Millisecond
	defaultCarouselInterval = 5 * time.Second

	logFileName = "foodikal.log"
	dateLayout  = "2006-01-02"
)

// Environment variables that override the config file.
const (
	EnvBaseURL  = "FOODIKAL_BASE_URL"
	EnvLogLevel = "FOODIKAL_LOG_LEVEL"
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:          foodikal.DefaultBaseURL,
		LogDir:           mustExpand(defaultLogDir),
		LogLevel:         defaultLogLevel,
		RefreshDelay:     defaultRefreshDelay,
		PromoDebounce:    defaultPromoDebounce,
		CarouselInterval: defaultCarouselInterval,
		UseFallback:      true,
	}
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load locates and parses the config, falling back to defaults when missing.
// FOODIKAL_BASE_URL and FOODIKAL_LOG_LEVEL take precedence over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := cfg.read(file); err != nil {
			return Config{}, err
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) read(r io.Reader) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL          string   `toml:"base_url"`
		LogDir           string   `toml:"log_dir"`
		LogLevel         string   `toml:"log_level"`
		RefreshDelayMS   *int     `toml:"refresh_delay_ms"`
		RefreshIntervalS *int     `toml:"refresh_interval_s"`
		PromoDebounceMS  *int     `toml:"promo_debounce_ms"`
		CarouselS        *int     `toml:"carousel_interval_s"`
		DeliveryDates    []string `toml:"delivery_dates"`
		UseFallback      *bool    `toml:"use_fallback"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		c.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if raw.RefreshDelayMS != nil {
		c.RefreshDelay = time.Duration(*raw.RefreshDelayMS) * time.Millisecond
	}
	if raw.RefreshIntervalS != nil {
		c.RefreshInterval = time.Duration(*raw.RefreshIntervalS) * time.Second
	}
	if raw.PromoDebounceMS != nil {
		c.PromoDebounce = time.Duration(*raw.PromoDebounceMS) * time.Millisecond
	}
	if raw.CarouselS != nil {
		c.CarouselInterval = time.Duration(*raw.CarouselS) * time.Second
	}
	for _, d := range raw.DeliveryDates {
		if d = strings.TrimSpace(d); d != "" {
			c.DeliveryDates = append(c.DeliveryDates, d)
		}
	}
	if raw.UseFallback != nil {
		c.UseFallback = *raw.UseFallback
	}
	return nil
}

// Validate rejects values the client cannot run with.
func (c Config) Validate() error {
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	if c.RefreshDelay < 0 || c.RefreshInterval < 0 || c.PromoDebounce < 0 || c.CarouselInterval < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	for _, d := range c.DeliveryDates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("delivery_dates: %q is not YYYY-MM-DD", d)
		}
	}
	return nil
}

// LogPath returns the client log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return filepath.Join(mustExpand(defaultLogDir), logFileName)
	}
	return filepath.Join(c.LogDir, logFileName)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
