package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.False(t, cfg.Store.Configured())
	assert.Equal(t, DefaultStaticSeriesIDs, cfg.Static.SeriesIDs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, time.Minute, cfg.HTTP.RateLimitWindow)
	assert.Equal(t, 30*time.Second, cfg.Store.ProbeInterval)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("CATALOG_STORE_URL", "postgres://catalog@db:5432/aniverse")
	t.Setenv("CATALOG_STORE_KEY", "secret")
	t.Setenv("CATALOG_STATIC_SERIES_IDS", "one, two ,,three")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("RATE_LIMIT_REQUESTS", "50")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("STORE_PROBE_INTERVAL", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.True(t, cfg.Store.Configured())
	assert.Equal(t, "secret", cfg.Store.Key)
	assert.Equal(t, []string{"one", "two", "three"}, cfg.Static.SeriesIDs)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 50, cfg.HTTP.RateLimitRequests)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RateLimitWindow)
	assert.Equal(t, 5*time.Second, cfg.Store.ProbeInterval)
}

func TestLoad_SupabaseAliases(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "file:catalog.db")
	t.Setenv("SUPABASE_ANON_KEY", "anon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file:catalog.db", cfg.Store.URL)
	assert.Equal(t, "anon", cfg.Store.Key)
	assert.True(t, cfg.Store.Configured())
}

func TestLoad_CatalogVariablesWinOverAliases(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "file:old.db")
	t.Setenv("CATALOG_STORE_URL", "file:new.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file:new.db", cfg.Store.URL)
	assert.False(t, cfg.Store.Configured(), "key is still missing")
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"LOG_LEVEL":           "loud",
		"LOG_FORMAT":          "xml",
		"PORT":                "70000",
		"RATE_LIMIT_REQUESTS": "-1",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestStoreConfig_Configured(t *testing.T) {
	assert.False(t, StoreConfig{}.Configured())
	assert.False(t, StoreConfig{URL: "file:x.db"}.Configured())
	assert.False(t, StoreConfig{Key: "k"}.Configured())
	assert.True(t, StoreConfig{URL: "file:x.db", Key: "k"}.Configured())
}

func TestEnvValue(t *testing.T) {
	path, value := envValue("UNRELATED", "x")
	assert.Empty(t, path)
	assert.Nil(t, value)

	path, _ = envValue("LOG_LEVEL", "  ")
	assert.Empty(t, path, "blank values are skipped")

	path, value = envValue("CORS_ORIGINS", "a, b")
	assert.Equal(t, "http.cors_origins", path)
	assert.Equal(t, []string{"a", "b"}, value)
}
