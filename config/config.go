// Package config loads the server configuration from defaults and the
// environment.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultStaticSeriesIDs lists the static document records that are
// multi-episode series. Every other record is classified as a movie.
var DefaultStaticSeriesIDs = []string{
	"campfire-cooking",
	"hunter-x-hunter-hindi",
	"food-wars",
}

// Config is the full server configuration.
type Config struct {
	Port   int          `koanf:"port" validate:"min=1,max=65535"`
	Store  StoreConfig  `koanf:"store"`
	Static StaticConfig `koanf:"static"`
	Log    LogConfig    `koanf:"log"`
	HTTP   HTTPConfig   `koanf:"http"`
}

// StoreConfig holds the relational store connection parameters. When
// either URL or Key is missing the static document backend is used.
type StoreConfig struct {
	URL           string        `koanf:"url"`
	Key           string        `koanf:"key"`
	LegacyURL     string        `koanf:"legacy_url"`
	LegacyKey     string        `koanf:"legacy_key"`
	ProbeInterval time.Duration `koanf:"probe_interval" validate:"gt=0"`
}

// Configured reports whether both connection parameters are present.
func (s StoreConfig) Configured() bool {
	return s.URL != "" && s.Key != ""
}

// StaticConfig configures the fallback document backend.
type StaticConfig struct {
	// Document overrides the bundled document with a file on disk.
	Document  string   `koanf:"document"`
	SeriesIDs []string `koanf:"series_ids" validate:"dive,required"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=console json"`
	File   string `koanf:"file"`
}

// HTTPConfig configures the HTTP middleware stack.
type HTTPConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port: 4000,
		Store: StoreConfig{
			ProbeInterval: 30 * time.Second,
		},
		Static: StaticConfig{
			SeriesIDs: append([]string(nil), DefaultStaticSeriesIDs...),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		HTTP: HTTPConfig{
			CORSOrigins:     []string{"*"},
			RateLimitWindow: time.Minute,
		},
	}
}

// envKeys maps environment variables onto koanf paths. Variables not
// listed here are ignored.
var envKeys = map[string]string{
	"PORT":                      "port",
	"CATALOG_STORE_URL":         "store.url",
	"CATALOG_STORE_KEY":         "store.key",
	"SUPABASE_URL":              "store.legacy_url",
	"SUPABASE_ANON_KEY":         "store.legacy_key",
	"STORE_PROBE_INTERVAL":      "store.probe_interval",
	"CATALOG_STATIC_DOCUMENT":   "static.document",
	"CATALOG_STATIC_SERIES_IDS": "static.series_ids",
	"LOG_LEVEL":                 "log.level",
	"LOG_FORMAT":                "log.format",
	"LOG_FILE":                  "log.file",
	"CORS_ORIGINS":              "http.cors_origins",
	"RATE_LIMIT_REQUESTS":       "http.rate_limit_requests",
	"RATE_LIMIT_WINDOW":         "http.rate_limit_window",
}

// sliceKeys are parsed from comma-separated environment values.
var sliceKeys = map[string]bool{
	"static.series_ids": true,
	"http.cors_origins": true,
}

// Load builds the configuration: defaults first, then environment
// variables on top. The result is validated.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.Store.URL = cmp.Or(cfg.Store.URL, cfg.Store.LegacyURL)
	cfg.Store.Key = cmp.Or(cfg.Store.Key, cfg.Store.LegacyKey)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envValue maps one environment variable onto its koanf path. Unknown
// and empty variables are skipped.
func envValue(key, value string) (string, interface{}) {
	path, ok := envKeys[key]
	if !ok || strings.TrimSpace(value) == "" {
		return "", nil
	}
	if sliceKeys[path] {
		return path, splitList(value)
	}
	return path, value
}

func splitList(raw string) []string {
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
