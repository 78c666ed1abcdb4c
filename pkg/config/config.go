package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for trailerdl
type Config struct {
	// Catalog API settings (the collaborator the client talks to)
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`

	// Backend server settings
	Server ServerConfig `yaml:"server" json:"server"`

	// Scraping engine settings
	Scrape ScrapeConfig `yaml:"scrape" json:"scrape"`

	// Asset download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// CatalogConfig holds settings for the catalog API client
type CatalogConfig struct {
	APIURL         string        `yaml:"api_url" json:"api_url"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// ServerConfig holds settings for the backend HTTP server
type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr" json:"listen_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	ScrapeCommand   string        `yaml:"scrape_command" json:"scrape_command"`
}

// ScrapeConfig holds settings for the catalog scraping engine
type ScrapeConfig struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	PageSize  int    `yaml:"page_size" json:"page_size"`
}

// DownloadConfig holds asset download settings
type DownloadConfig struct {
	DownloadTimeout   time.Duration `yaml:"download_timeout" json:"download_timeout"`
	ScreenshotWorkers int           `yaml:"screenshot_workers" json:"screenshot_workers"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			APIURL:         "http://127.0.0.1:5000",
			RequestTimeout: 60 * time.Second,
		},
		Server: ServerConfig{
			ListenAddr:      "127.0.0.1:5000",
			ShutdownTimeout: 10 * time.Second,
			ScrapeCommand:   "",
		},
		Scrape: ScrapeConfig{
			BaseURL:   "https://catalog.example.com",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			PageSize:  10,
		},
		Download: DownloadConfig{
			DownloadTimeout:   60 * time.Second,
			ScreenshotWorkers: 3,
			RequestsPerMinute: 30,
		},
		Output: OutputConfig{
			BaseDirectory: "./downloads",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if apiURL := os.Getenv("TRAILERDL_API_URL"); apiURL != "" {
		c.Catalog.APIURL = apiURL
	}
	if addr := os.Getenv("TRAILERDL_LISTEN_ADDR"); addr != "" {
		c.Server.ListenAddr = addr
	}
	if cmd := os.Getenv("TRAILERDL_SCRAPE_COMMAND"); cmd != "" {
		c.Server.ScrapeCommand = cmd
	}
	if baseURL := os.Getenv("TRAILERDL_CATALOG_BASE_URL"); baseURL != "" {
		c.Scrape.BaseURL = baseURL
	}
	if userAgent := os.Getenv("TRAILERDL_USER_AGENT"); userAgent != "" {
		c.Scrape.UserAgent = userAgent
	}

	if rpm := os.Getenv("TRAILERDL_REQUESTS_PER_MINUTE"); rpm != "" {
		var val int
		fmt.Sscanf(rpm, "%d", &val)
		if val > 0 {
			c.Download.RequestsPerMinute = val
		}
	}
	if workers := os.Getenv("TRAILERDL_SCREENSHOT_WORKERS"); workers != "" {
		var val int
		fmt.Sscanf(workers, "%d", &val)
		if val > 0 {
			c.Download.ScreenshotWorkers = val
		}
	}

	if outputDir := os.Getenv("TRAILERDL_OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if logLevel := os.Getenv("TRAILERDL_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".trailerdl.yaml",
		".trailerdl.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "trailerdl", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "trailerdl", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".trailerdl.yaml"),
		filepath.Join(os.Getenv("HOME"), ".trailerdl.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Catalog.APIURL == "" {
		errs = append(errs, errors.New("catalog API URL is required"))
	}
	if c.Catalog.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server listen address is required"))
	}

	if c.Scrape.BaseURL == "" {
		errs = append(errs, errors.New("catalog base URL is required"))
	}
	if c.Scrape.PageSize <= 0 {
		errs = append(errs, errors.New("page size must be positive"))
	}

	if c.Download.DownloadTimeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}
	if c.Download.ScreenshotWorkers <= 0 {
		errs = append(errs, errors.New("screenshot workers must be positive"))
	}
	if c.Download.ScreenshotWorkers > 10 {
		errs = append(errs, errors.New("screenshot workers should not exceed 10"))
	}
	if c.Download.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}

	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if apiURL, ok := flags["api-url"].(string); ok && apiURL != "" {
		c.Catalog.APIURL = apiURL
	}
	if addr, ok := flags["listen"].(string); ok && addr != "" {
		c.Server.ListenAddr = addr
	}
	if baseURL, ok := flags["catalog-url"].(string); ok && baseURL != "" {
		c.Scrape.BaseURL = baseURL
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if workers, ok := flags["screenshot-workers"].(int); ok && workers > 0 {
		c.Download.ScreenshotWorkers = workers
	}
	if rpm, ok := flags["requests-per-minute"].(int); ok && rpm > 0 {
		c.Download.RequestsPerMinute = rpm
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".trailerdl.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
