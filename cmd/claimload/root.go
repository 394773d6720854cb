package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eyther/claimstats/internal/config"
	"github.com/eyther/claimstats/internal/exitcode"
	"github.com/eyther/claimstats/internal/payer"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "claimload",
	Short: "Hospital claim extract normalizer and RCM analytics",
	Long: "Decodes payer claim extracts (CSV/XLSX/Parquet), normalizes them into a\n" +
		"canonical claim record, and computes revenue-cycle metrics and ROI projections.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string for the result cache (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.MappingsPath, "mappings", "", "Payer mapping table YAML (default: embedded table)")
	pf.StringVar(&configPath, "config", "", "YAML config file with tunable overrides")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}

// setupConfig merges the override file and applies defaults. Called at
// the top of every RunE after flags are bound.
func setupConfig() error {
	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			return err
		}
	}
	cfg.ApplyDefaults()
	return cfg.Validate()
}

// loadMappings returns the mapping table from --mappings or the embedded
// defaults.
func loadMappings() ([]payer.Mapping, error) {
	if cfg.MappingsPath != "" {
		return payer.LoadFile(cfg.MappingsPath)
	}
	return payer.LoadDefault()
}

// writeJSON writes v as indented JSON to path, stdout when path is empty
// or "-".
func writeJSON(path string, v any) error {
	out := os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// readJSON reads an input document produced by an earlier subcommand.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse input file: %w", err)
	}
	return nil
}
