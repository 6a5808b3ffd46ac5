// Package config loads and validates site API configuration via Viper.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server      ServerConfig  `mapstructure:"server"`
	Logging     LoggingConfig `mapstructure:"logging"`
	Storage     StorageConfig `mapstructure:"storage"`
	Contact     ContactConfig `mapstructure:"contact"`
	News        NewsConfig    `mapstructure:"news"`
	Environment string        `mapstructure:"environment"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Storage backends selectable via storage.backend.
const (
	StorageBackendFile   = "file"
	StorageBackendMemory = "memory"
)

// StorageConfig sets where the submission collection document lives.
type StorageConfig struct {
	Backend    string `mapstructure:"backend"`
	GCSBucket  string `mapstructure:"gcs_bucket"`
	GCSProject string `mapstructure:"gcs_project"`
	ObjectName string `mapstructure:"object_name"`
	LocalDir   string `mapstructure:"local_dir"`
}

// ContactConfig governs the intake pipeline.
type ContactConfig struct {
	MaxSubmissions int `mapstructure:"max_submissions"`
}

// NewsConfig governs feed fetching and aggregation.
type NewsConfig struct {
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds"`
	PerSourceMax        int `mapstructure:"per_source_max"`
	MaxItems            int `mapstructure:"max_items"`
	CacheMinutes        int `mapstructure:"cache_minutes"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.development", true)
	v.SetDefault("environment", "development")
	v.SetDefault("storage.backend", StorageBackendFile)
	// Empty defaults register the keys with viper so env-only values
	// (SITE_STORAGE_GCS_BUCKET on Cloud Run) survive Unmarshal.
	v.SetDefault("storage.gcs_bucket", "")
	v.SetDefault("storage.gcs_project", "")
	v.SetDefault("storage.object_name", "contact-submissions.json")
	v.SetDefault("storage.local_dir", "data")
	v.SetDefault("contact.max_submissions", 1000)
	v.SetDefault("news.fetch_timeout_seconds", 8)
	v.SetDefault("news.per_source_max", 3)
	v.SetDefault("news.max_items", 9)
	v.SetDefault("news.cache_minutes", 30)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	switch c.Storage.Backend {
	case StorageBackendFile, StorageBackendMemory:
	default:
		return fmt.Errorf("storage.backend must be %q or %q", StorageBackendFile, StorageBackendMemory)
	}
	if c.Storage.ObjectName == "" {
		return fmt.Errorf("storage.object_name must be set")
	}
	if c.Storage.LocalDir == "" {
		return fmt.Errorf("storage.local_dir must be set")
	}
	if c.Contact.MaxSubmissions <= 0 {
		return fmt.Errorf("contact.max_submissions must be > 0")
	}
	if c.News.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("news.fetch_timeout_seconds must be > 0")
	}
	if c.News.PerSourceMax <= 0 {
		return fmt.Errorf("news.per_source_max must be > 0")
	}
	if c.News.MaxItems <= 0 {
		return fmt.Errorf("news.max_items must be > 0")
	}
	return nil
}

// RemoteStorageEligible reports whether the GCS backend may be used.
// Remote storage is only selected in a production-like environment
// (explicit production setting, or a managed platform that sets
// K_SERVICE) when a bucket is configured. This keeps local development
// off the production bucket unless explicitly opted in.
func (c Config) RemoteStorageEligible() bool {
	if c.Storage.Backend != StorageBackendFile || c.Storage.GCSBucket == "" {
		return false
	}
	return c.Environment == "production" || os.Getenv("K_SERVICE") != ""
}

// FetchTimeout converts the per-attempt feed timeout into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.News.FetchTimeoutSeconds) * time.Second
}

// CacheTTL converts the aggregation cache interval into a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.News.CacheMinutes) * time.Minute
}
