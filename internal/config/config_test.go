package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claimload.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, "concurrency: 8\nhigh_value_cutoff: 250000\nclaims_per_day: 75\n")

	var cfg Config
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Concurrency != 8 || cfg.HighValueCutoff != 250000 || cfg.ClaimsPerDay != 75 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadFromFile_FlagsWin(t *testing.T) {
	path := writeConfig(t, "concurrency: 8\n")

	cfg := Config{Concurrency: 2}
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("concurrency = %d, explicit flag must win over file", cfg.Concurrency)
	}
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	path := writeConfig(t, "concurrency: [not a number\n")
	var cfg Config
	if err := cfg.LoadFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Concurrency != DefaultConcurrency ||
		cfg.HighValueCutoff != DefaultHighValueCutoff ||
		cfg.ClaimsPerDay != DefaultClaimsPerDay ||
		cfg.FeeFraction != DefaultFeeFraction ||
		cfg.CacheQuotaBytes != DefaultCacheQuotaBytes {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero concurrency", func(c *Config) { c.Concurrency = -1 }},
		{"negative cutoff", func(c *Config) { c.HighValueCutoff = -1 }},
		{"negative claims per day", func(c *Config) { c.ClaimsPerDay = -5 }},
		{"fee over cap", func(c *Config) { c.FeeFraction = 0.5 }},
		{"negative quota", func(c *Config) { c.CacheQuotaBytes = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tc.mut(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateWithDSN(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if err := cfg.ValidateWithDSN(); err == nil {
		t.Fatal("expected error without DSN")
	}
	cfg.DSN = "postgresql://localhost/test"
	if err := cfg.ValidateWithDSN(); err != nil {
		t.Fatalf("ValidateWithDSN: %v", err)
	}
}
