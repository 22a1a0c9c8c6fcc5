package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PlaceholderAPIKey is the value shipped in the sample config.
const PlaceholderAPIKey = "your-youtube-api-key-here"

const (
	defaultPort            = 8080
	defaultBaseURL         = "https://youtube.googleapis.com"
	apiPathSuffix          = "/youtube/v3"
	defaultTimeout         = 10
	defaultMaxResults      = 25
	defaultShutdownTimeout = 5
)

// Config application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	YouTube YouTubeConfig `yaml:"youtube"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	Port            int      `yaml:"port"`
	Enabled         bool     `yaml:"enabled"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	ShutdownTimeout int      `yaml:"shutdown_timeout"` // seconds
}

// YouTubeConfig upstream API configuration
type YouTubeConfig struct {
	APIKey            string  `yaml:"api_key"`
	BaseURL           string  `yaml:"base_url"`
	Timeout           int     `yaml:"timeout"`             // seconds, per upstream call
	RequestsPerSecond float64 `yaml:"requests_per_second"` // 0 = unlimited
	Proxy             string  `yaml:"proxy"`
}

// SearchConfig search defaults
type SearchConfig struct {
	DefaultMaxResults int `yaml:"default_max_results"`
}

// LoggingConfig logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // json, console
	Output     string `yaml:"output"` // console, file, both
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxAge     int    `yaml:"max_age"`  // days
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

// Load reads the config file, applies .env files and environment overrides,
// then validates the result.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(path); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML config data, applies environment overrides and validates.
func Parse(data []byte) (*Config, error) {
	cfg := Config{Server: ServerConfig{Enabled: true}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFiles loads .env.local and .env from the config directory and the
// working directory. Variables already set in the environment win.
func loadEnvFiles(confPath string) error {
	dirs := []string{filepath.Dir(confPath)}
	if cwd, err := os.Getwd(); err == nil && filepath.Clean(cwd) != filepath.Clean(dirs[0]) {
		dirs = append(dirs, cwd)
	}

	var files []string
	for _, dir := range dirs {
		for _, name := range []string{".env.local", ".env"} {
			fp := filepath.Join(dir, name)
			if _, err := os.Stat(fp); err == nil {
				files = append(files, fp)
			}
		}
	}
	if len(files) == 0 {
		return nil
	}
	return godotenv.Load(files...)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.YouTube.APIKey = v
	}
	if v := os.Getenv("YOUTUBE_API_BASE_URL"); v != "" {
		c.YouTube.BaseURL = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate fills defaults and rejects invalid settings
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultBaseURL
	}
	// base_url is the API root; the client appends youtube/v3/<resource>
	c.YouTube.BaseURL = strings.TrimRight(c.YouTube.BaseURL, "/")
	c.YouTube.BaseURL = strings.TrimSuffix(c.YouTube.BaseURL, apiPathSuffix)
	if c.YouTube.Timeout <= 0 {
		c.YouTube.Timeout = defaultTimeout
	}
	if c.YouTube.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid youtube.requests_per_second: %v", c.YouTube.RequestsPerSecond)
	}

	if c.Search.DefaultMaxResults <= 0 {
		c.Search.DefaultMaxResults = defaultMaxResults
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	switch c.Logging.Output {
	case "console":
	case "file", "both":
		if c.Logging.File == "" {
			return fmt.Errorf("logging.file is required when output is %q", c.Logging.Output)
		}
	default:
		return fmt.Errorf("invalid logging.output: %q", c.Logging.Output)
	}
	if c.Logging.MaxSize <= 0 {
		c.Logging.MaxSize = 100
	}
	if c.Logging.MaxAge <= 0 {
		c.Logging.MaxAge = 30
	}

	return nil
}

// APIKeyConfigured reports whether a usable API key is set
func (c *YouTubeConfig) APIKeyConfigured() bool {
	return c.APIKey != "" && c.APIKey != PlaceholderAPIKey
}

// RequestTimeout per-call upstream timeout
func (c *YouTubeConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
