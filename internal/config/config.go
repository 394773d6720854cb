package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for tunables that rarely change per run.
const (
	DefaultConcurrency     = 4
	DefaultHighValueCutoff = 100000
	DefaultClaimsPerDay    = 50
	DefaultFeeFraction     = 0.02
	// DefaultCacheQuotaBytes is 5 MiB per user, matching what a browser
	// localStorage consumer of the cache can realistically hold.
	DefaultCacheQuotaBytes = 5 << 20
)

// Config holds all runtime configuration for a claimload run.
type Config struct {
	DSN          string
	MappingsPath string // empty means embedded defaults
	LogFormat    string // "text" or "json"

	Scheme     string
	InputPath  string // processed-batch JSON for stats/roi
	OutputPath string // "-" or empty means stdout

	UserID   string
	CacheKey string

	DenialScenario    string
	FirstPassScenario string

	// Tunables, overridable from a YAML file.
	Concurrency     int     `yaml:"concurrency"`
	HighValueCutoff float64 `yaml:"high_value_cutoff"`
	ClaimsPerDay    int     `yaml:"claims_per_day"`
	FeeFraction     float64 `yaml:"fee_fraction"`
	CacheQuotaBytes int64   `yaml:"cache_quota_bytes"`
}

// LoadFromFile merges YAML overrides into the config. Flag values set to
// zero pick up the file's values; the file never overrides an explicit
// non-zero flag.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var overrides Config
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.Concurrency == 0 {
		c.Concurrency = overrides.Concurrency
	}
	if c.HighValueCutoff == 0 {
		c.HighValueCutoff = overrides.HighValueCutoff
	}
	if c.ClaimsPerDay == 0 {
		c.ClaimsPerDay = overrides.ClaimsPerDay
	}
	if c.FeeFraction == 0 {
		c.FeeFraction = overrides.FeeFraction
	}
	if c.CacheQuotaBytes == 0 {
		c.CacheQuotaBytes = overrides.CacheQuotaBytes
	}
	return nil
}

// ApplyDefaults fills remaining zero tunables.
func (c *Config) ApplyDefaults() {
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.HighValueCutoff == 0 {
		c.HighValueCutoff = DefaultHighValueCutoff
	}
	if c.ClaimsPerDay == 0 {
		c.ClaimsPerDay = DefaultClaimsPerDay
	}
	if c.FeeFraction == 0 {
		c.FeeFraction = DefaultFeeFraction
	}
	if c.CacheQuotaBytes == 0 {
		c.CacheQuotaBytes = DefaultCacheQuotaBytes
	}
}

// Validate checks value ranges after defaults are applied.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	if c.HighValueCutoff < 0 {
		return fmt.Errorf("high_value_cutoff must be >= 0, got %v", c.HighValueCutoff)
	}
	if c.ClaimsPerDay < 1 {
		return fmt.Errorf("claims_per_day must be >= 1, got %d", c.ClaimsPerDay)
	}
	if c.FeeFraction < 0 || c.FeeFraction > 0.10 {
		return fmt.Errorf("fee_fraction must be in [0, 0.10], got %v", c.FeeFraction)
	}
	if c.CacheQuotaBytes < 0 {
		return fmt.Errorf("cache_quota_bytes must be >= 0, got %d", c.CacheQuotaBytes)
	}
	return nil
}

// ValidateWithDSN additionally requires a database connection string.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}
