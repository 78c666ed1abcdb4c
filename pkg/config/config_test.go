package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Scrape.PageSize)
	assert.Equal(t, 60*time.Second, cfg.Catalog.RequestTimeout)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty api url", func(c *Config) { c.Catalog.APIURL = "" }},
		{"zero timeout", func(c *Config) { c.Catalog.RequestTimeout = 0 }},
		{"empty listen addr", func(c *Config) { c.Server.ListenAddr = "" }},
		{"empty base url", func(c *Config) { c.Scrape.BaseURL = "" }},
		{"zero page size", func(c *Config) { c.Scrape.PageSize = 0 }},
		{"zero workers", func(c *Config) { c.Download.ScreenshotWorkers = 0 }},
		{"too many workers", func(c *Config) { c.Download.ScreenshotWorkers = 11 }},
		{"zero rpm", func(c *Config) { c.Download.RequestsPerMinute = 0 }},
		{"empty output dir", func(c *Config) { c.Output.BaseDirectory = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
catalog:
  api_url: http://media-box:5000
scrape:
  base_url: https://videos.example.org
output:
  base_directory: /data/downloads
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "http://media-box:5000", cfg.Catalog.APIURL)
	assert.Equal(t, "https://videos.example.org", cfg.Scrape.BaseURL)
	assert.Equal(t, "/data/downloads", cfg.Output.BaseDirectory)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unspecified values keep their defaults.
	assert.Equal(t, 10, cfg.Scrape.PageSize)
}

func TestLoadFromFileMissingPathIsNotAnError(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.LoadFromFile(""))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TRAILERDL_API_URL", "http://other:5000")
	t.Setenv("TRAILERDL_OUTPUT_DIR", "/env/downloads")
	t.Setenv("TRAILERDL_REQUESTS_PER_MINUTE", "12")
	t.Setenv("TRAILERDL_LOG_LEVEL", "warn")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "http://other:5000", cfg.Catalog.APIURL)
	assert.Equal(t, "/env/downloads", cfg.Output.BaseDirectory)
	assert.Equal(t, 12, cfg.Download.RequestsPerMinute)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"api-url":            "http://flag:5000",
		"output":             "/flag/downloads",
		"screenshot-workers": 5,
		"log-level":          "debug",
	})

	assert.Equal(t, "http://flag:5000", cfg.Catalog.APIURL)
	assert.Equal(t, "/flag/downloads", cfg.Output.BaseDirectory)
	assert.Equal(t, 5, cfg.Download.ScreenshotWorkers)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Catalog.APIURL = "http://saved:5000"
	require.NoError(t, cfg.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, "http://saved:5000", loaded.Catalog.APIURL)
}
