// Package config provides configuration management for the scanner.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/motscan/motscan/internal/logger"
)

// Default configuration values.
const (
	defaultMaxConcurrentFetches = 3
	defaultMaxConcurrentSources = 4
	defaultFetchTimeoutSec      = 15
	defaultMaxURLsPerSource     = 8
	defaultCircuitThreshold     = 5
	defaultCircuitRecoverySec   = 60
	defaultMaxRetries           = 3
	defaultRetryBaseDelayMs     = 500
	defaultRetryMaxDelaySec     = 30
	defaultSourcesFile          = "sources.yml"
	defaultFixturesDir          = "fixtures"
	defaultStorageBackend       = "csv"
	defaultCSVDir               = "data"
	defaultDBHost               = "localhost"
	defaultDBPort               = "5432"
	defaultDBUser               = "postgres"
	defaultDBName               = "motscan"
	defaultDBSSLMode            = "disable"
	defaultUserAgent            = "motscan/1.0"
)

// Storage backends.
const (
	StorageCSV      = "csv"
	StoragePostgres = "postgres"
)

// Config is the application configuration.
type Config struct {
	// OfflineMode loads fixtures instead of fetching over the network.
	OfflineMode bool `mapstructure:"offline_mode"`
	// FixturesDir holds pre-fetched HTML documents for offline mode.
	FixturesDir string `mapstructure:"fixtures_dir"`
	// SourcesFile is the path of the sources YAML file.
	SourcesFile string `mapstructure:"sources_file"`
	// UserAgent sent with every fetch.
	UserAgent string `mapstructure:"user_agent"`

	Crawl   CrawlConfig   `mapstructure:"crawl"`
	Circuit CircuitConfig `mapstructure:"circuit"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging logger.Config `mapstructure:"logging"`
}

// CrawlConfig bounds the concurrent crawl.
type CrawlConfig struct {
	MaxConcurrentFetches int           `mapstructure:"max_concurrent_fetches"`
	MaxConcurrentSources int           `mapstructure:"max_concurrent_sources"`
	FetchTimeout         time.Duration `mapstructure:"fetch_timeout"`
	MaxURLsPerSource     int           `mapstructure:"max_urls_per_source"`
}

// CircuitConfig configures the per-source circuit breaker.
type CircuitConfig struct {
	FailureThreshold int           `mapstructure:"failure_threshold"`
	RecoveryTimeout  time.Duration `mapstructure:"recovery_timeout"`
}

// RetryConfig configures retry-with-backoff for network calls.
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
	MaxDelay   time.Duration `mapstructure:"max_delay"`
}

// StorageConfig selects and configures the storage sink.
type StorageConfig struct {
	Backend  string         `mapstructure:"backend"`
	CSV      CSVConfig      `mapstructure:"csv"`
	Database DatabaseConfig `mapstructure:"database"`
}

// CSVConfig configures the CSV sink.
type CSVConfig struct {
	Dir string `mapstructure:"dir"`
}

// DatabaseConfig configures the Postgres sink.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// Setup configures Viper for environment variable and config file reading.
// Must be called before Load.
func Setup(cfgFile string) {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("MOTSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()

	// Config file is optional; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("offline_mode", false)
	viper.SetDefault("fixtures_dir", defaultFixturesDir)
	viper.SetDefault("sources_file", defaultSourcesFile)
	viper.SetDefault("user_agent", defaultUserAgent)

	viper.SetDefault("crawl.max_concurrent_fetches", defaultMaxConcurrentFetches)
	viper.SetDefault("crawl.max_concurrent_sources", defaultMaxConcurrentSources)
	viper.SetDefault("crawl.fetch_timeout", defaultFetchTimeoutSec*time.Second)
	viper.SetDefault("crawl.max_urls_per_source", defaultMaxURLsPerSource)

	viper.SetDefault("circuit.failure_threshold", defaultCircuitThreshold)
	viper.SetDefault("circuit.recovery_timeout", defaultCircuitRecoverySec*time.Second)

	viper.SetDefault("retry.max_retries", defaultMaxRetries)
	viper.SetDefault("retry.base_delay", defaultRetryBaseDelayMs*time.Millisecond)
	viper.SetDefault("retry.max_delay", defaultRetryMaxDelaySec*time.Second)

	viper.SetDefault("storage.backend", defaultStorageBackend)
	viper.SetDefault("storage.csv.dir", defaultCSVDir)
	viper.SetDefault("storage.database.host", defaultDBHost)
	viper.SetDefault("storage.database.port", defaultDBPort)
	viper.SetDefault("storage.database.user", defaultDBUser)
	viper.SetDefault("storage.database.dbname", defaultDBName)
	viper.SetDefault("storage.database.sslmode", defaultDBSSLMode)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.encoding", "console")
}

// Load unmarshals the configuration and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for impossible values.
func (c *Config) Validate() error {
	if c.Crawl.MaxConcurrentFetches <= 0 {
		return errors.New("crawl.max_concurrent_fetches must be positive")
	}
	if c.Crawl.MaxConcurrentSources <= 0 {
		return errors.New("crawl.max_concurrent_sources must be positive")
	}
	if c.Crawl.FetchTimeout <= 0 {
		return errors.New("crawl.fetch_timeout must be positive")
	}
	if c.Circuit.FailureThreshold <= 0 {
		return errors.New("circuit.failure_threshold must be positive")
	}
	if c.Retry.MaxRetries < 0 {
		return errors.New("retry.max_retries cannot be negative")
	}
	if c.Storage.Backend != StorageCSV && c.Storage.Backend != StoragePostgres {
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
