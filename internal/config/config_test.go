package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Viper state is global, so these tests never run in parallel.

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	Setup("")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.OfflineMode)
	assert.Equal(t, "sources.yml", cfg.SourcesFile)
	assert.Equal(t, "fixtures", cfg.FixturesDir)
	assert.Equal(t, "motscan/1.0", cfg.UserAgent)

	assert.Equal(t, 3, cfg.Crawl.MaxConcurrentFetches)
	assert.Equal(t, 4, cfg.Crawl.MaxConcurrentSources)
	assert.Equal(t, 15*time.Second, cfg.Crawl.FetchTimeout)
	assert.Equal(t, 8, cfg.Crawl.MaxURLsPerSource)

	assert.Equal(t, 5, cfg.Circuit.FailureThreshold)
	assert.Equal(t, time.Minute, cfg.Circuit.RecoveryTimeout)

	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.BaseDelay)
	assert.Equal(t, 30*time.Second, cfg.Retry.MaxDelay)

	assert.Equal(t, StorageCSV, cfg.Storage.Backend)
	assert.Equal(t, "data", cfg.Storage.CSV.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("MOTSCAN_OFFLINE_MODE", "true")
	t.Setenv("MOTSCAN_CRAWL_MAX_CONCURRENT_FETCHES", "7")
	t.Setenv("MOTSCAN_STORAGE_BACKEND", "postgres")
	Setup("")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.OfflineMode)
	assert.Equal(t, 7, cfg.Crawl.MaxConcurrentFetches)
	assert.Equal(t, StoragePostgres, cfg.Storage.Backend)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Crawl: CrawlConfig{
				MaxConcurrentFetches: 3,
				MaxConcurrentSources: 4,
				FetchTimeout:         15 * time.Second,
			},
			Circuit: CircuitConfig{FailureThreshold: 5},
			Retry:   RetryConfig{MaxRetries: 3},
			Storage: StorageConfig{Backend: StorageCSV},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fetches", func(c *Config) { c.Crawl.MaxConcurrentFetches = 0 }},
		{"zero sources", func(c *Config) { c.Crawl.MaxConcurrentSources = 0 }},
		{"zero timeout", func(c *Config) { c.Crawl.FetchTimeout = 0 }},
		{"zero threshold", func(c *Config) { c.Circuit.FailureThreshold = 0 }},
		{"negative retries", func(c *Config) { c.Retry.MaxRetries = -1 }},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "elasticsearch" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
