package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eyther/claimstats/internal/cache"
	"github.com/eyther/claimstats/internal/db"
	"github.com/eyther/claimstats/internal/exitcode"
	"github.com/eyther/claimstats/internal/logging"
	"github.com/eyther/claimstats/internal/model"
	"github.com/eyther/claimstats/internal/process"
)

var processCmd = &cobra.Command{
	Use:   "process <file>...",
	Short: "Decode, identify, and normalize a batch of claim files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

func init() {
	f := processCmd.Flags()
	f.IntVar(&cfg.Concurrency, "concurrency", 0, "Max files decoded in parallel (default 4)")
	f.StringVar(&cfg.OutputPath, "out", "-", "Output path for the batch result JSON (- for stdout)")
	f.StringVar(&cfg.UserID, "cache-user", "", "Persist the consolidated batch to the cache under this user id")
	f.StringVar(&cfg.CacheKey, "cache-key", "consolidated", "Cache key for the persisted batch")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := setupConfig(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if cfg.UserID != "" {
		if err := cfg.ValidateWithDSN(); err != nil {
			log.Error().Err(err).Msg("--cache-user requires a database connection")
			os.Exit(exitcode.UsageError)
		}
	}

	mappings, err := loadMappings()
	if err != nil {
		log.Error().Err(err).Msg("mapping table invalid")
		os.Exit(exitcode.ValidationError)
	}

	proc := &process.Processor{
		Mappings:    mappings,
		Log:         log,
		Concurrency: cfg.Concurrency,
	}
	result, err := proc.Process(ctx, args)
	if err != nil {
		log.Error().Err(err).Msg("batch processing failed")
		os.Exit(exitcode.DecodeError)
	}

	if cfg.UserID != "" {
		persistBatch(ctx, log, result)
	}

	if err := writeJSON(cfg.OutputPath, result); err != nil {
		log.Error().Err(err).Msg("write result failed")
		os.Exit(exitcode.DecodeError)
	}

	if result.Stats.FailedFiles > 0 {
		log.Warn().
			Int("failed", result.Stats.FailedFiles).
			Int("total", result.Stats.TotalFiles).
			Msg("batch completed with failures")
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}

// persistBatch caches the compressed claim set. A quota failure degrades
// to persisting the batch metadata only; the batch result itself is
// already complete, so nothing else fails.
func persistBatch(ctx context.Context, log zerolog.Logger, result *model.ProcessingResult) {
	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(exitcode.DBConnError)
	}

	store := cache.NewStore(pool, cfg.CacheQuotaBytes, log)
	err = store.Set(ctx, cfg.UserID, cfg.CacheKey, cache.Compress(result.ConsolidatedData))
	if errors.Is(err, cache.ErrQuotaExceeded) {
		log.Warn().Err(err).Msg("cache quota exceeded, persisting batch metadata only")
		meta := struct {
			BatchID string              `json:"batchId"`
			Files   []model.FileSummary `json:"files"`
			Stats   model.BatchStats    `json:"stats"`
		}{result.BatchID, result.Files, result.Stats}
		if err := store.Set(ctx, cfg.UserID, cfg.CacheKey+".meta", meta); err != nil {
			log.Error().Err(err).Msg("metadata cache write failed")
		}
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("cache write failed")
		os.Exit(exitcode.DBConnError)
	}
	log.Info().Str("user", cfg.UserID).Str("key", cfg.CacheKey).Msg("batch cached")
}
