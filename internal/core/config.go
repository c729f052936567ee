package core

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the client settings read from the .taskerrc file.
type Config struct {
	ServerURL       string
	RequestTimeout  time.Duration
	PageSize        int32
	SearchPageSize  int32
	SettlingWindow  time.Duration
	AnalyticsWindow time.Duration
	EventLogPath    string
}

// ConfigManager loads and validates client configuration.
type ConfigManager interface {
	Load() (*Config, error)
}

// viperConfigManager implements ConfigManager using Viper for reading the
// YAML .taskerrc file.
type viperConfigManager struct {
	basePath string
}

// NewConfigManager creates a ConfigManager that reads .taskerrc relative to
// basePath.
func NewConfigManager(basePath string) ConfigManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultConfig returns a Config populated with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		ServerURL:       "http://localhost:3001",
		RequestTimeout:  10 * time.Second,
		PageSize:        100,
		SearchPageSize:  50,
		SettlingWindow:  500 * time.Millisecond,
		AnalyticsWindow: 30 * 24 * time.Hour,
		EventLogPath:    "tasker-events.jsonl",
	}
}

// Load reads the .taskerrc file from the base path. If the file does not
// exist, defaults are returned.
func (cm *viperConfigManager) Load() (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName(".taskerrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("server.url", cfg.ServerURL)
	v.SetDefault("server.timeout_seconds", int(cfg.RequestTimeout/time.Second))
	v.SetDefault("sync.page_size", int(cfg.PageSize))
	v.SetDefault("search.page_size", int(cfg.SearchPageSize))
	v.SetDefault("search.settling_window_ms", int(cfg.SettlingWindow/time.Millisecond))
	v.SetDefault("analytics.window_days", int(cfg.AnalyticsWindow/(24*time.Hour)))
	v.SetDefault("events.path", cfg.EventLogPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .taskerrc: %w", err)
	}

	cfg.ServerURL = v.GetString("server.url")
	cfg.RequestTimeout = time.Duration(v.GetInt("server.timeout_seconds")) * time.Second
	cfg.PageSize = int32(v.GetInt("sync.page_size"))
	cfg.SearchPageSize = int32(v.GetInt("search.page_size"))
	cfg.SettlingWindow = time.Duration(v.GetInt("search.settling_window_ms")) * time.Millisecond
	cfg.AnalyticsWindow = time.Duration(v.GetInt("analytics.window_days")) * 24 * time.Hour
	cfg.EventLogPath = v.GetString("events.path")

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.ServerURL == "" {
		return fmt.Errorf("server.url must not be empty")
	}
	if cfg.PageSize <= 0 {
		return fmt.Errorf("sync.page_size must be positive, got %d", cfg.PageSize)
	}
	if cfg.SearchPageSize <= 0 {
		return fmt.Errorf("search.page_size must be positive, got %d", cfg.SearchPageSize)
	}
	if cfg.SettlingWindow <= 0 {
		return fmt.Errorf("search.settling_window_ms must be positive")
	}
	if cfg.AnalyticsWindow <= 0 {
		return fmt.Errorf("analytics.window_days must be positive")
	}
	return nil
}
