package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Detector DetectorConfig `mapstructure:"detector"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Store    StoreConfig    `mapstructure:"store"`
	LogLevel string         `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// GeminiConfig holds settings for the recipe-generation collaborator.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DetectorConfig holds settings for the ingredient-detection collaborator.
type DetectorConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	BaseURL    string        `mapstructure:"base_url"`
	Model      string        `mapstructure:"model"`
	Confidence float64       `mapstructure:"confidence"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds settings for the detection-result cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Addr    string        `mapstructure:"addr"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// StoreConfig selects and configures the recipe store backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "file" or "postgres"
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// LoadConfig reads configuration from the environment with sensible defaults.
func LoadConfig() (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")
	viper.BindEnv("detector.enabled", "DETECTOR_ENABLED")
	viper.BindEnv("detector.base_url", "DETECTOR_BASE_URL")
	viper.BindEnv("detector.model", "DETECTOR_MODEL")
	viper.BindEnv("detector.confidence", "DETECTOR_CONFIDENCE")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.addr", "REDIS_ADDR")
	viper.BindEnv("store.driver", "STORE_DRIVER")
	viper.BindEnv("store.path", "STORE_PATH")
	viper.BindEnv("store.dsn", "DATABASE_URL")
	viper.BindEnv("log_level", "LOG_LEVEL")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	// Must outlast the synthesis timeout or slow generations get cut off
	// mid-response.
	viper.SetDefault("server.write_timeout", "60s")
	viper.SetDefault("server.cors_origins", []string{"http://localhost:8081"})

	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("gemini.timeout", "45s")

	viper.SetDefault("detector.enabled", false)
	viper.SetDefault("detector.base_url", "http://localhost:9090")
	viper.SetDefault("detector.model", "yolov7-ingredients")
	viper.SetDefault("detector.confidence", 0.5)
	viper.SetDefault("detector.timeout", "60s")

	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.addr", "localhost:6379")
	viper.SetDefault("cache.ttl", "24h")

	viper.SetDefault("store.driver", "file")
	viper.SetDefault("store.path", "recipe_database.json")

	viper.SetDefault("log_level", "info")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.Store.Driver {
	case "file":
		if config.Store.Path == "" {
			return fmt.Errorf("store path is required for the file driver")
		}
	case "postgres":
		if config.Store.DSN == "" {
			return fmt.Errorf("store dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	if config.Detector.Enabled {
		if config.Detector.BaseURL == "" {
			return fmt.Errorf("detector base url is required")
		}
		if config.Detector.Confidence <= 0 || config.Detector.Confidence > 1 {
			return fmt.Errorf("detector confidence must be in (0,1]")
		}
	}

	if config.Cache.Enabled && config.Cache.TTL <= 0 {
		return fmt.Errorf("invalid cache ttl")
	}

	return nil
}
