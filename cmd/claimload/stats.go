package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/eyther/claimstats/internal/exitcode"
	"github.com/eyther/claimstats/internal/logging"
	"github.com/eyther/claimstats/internal/model"
	"github.com/eyther/claimstats/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compute dashboard metrics from a processed batch",
	RunE:  runStats,
}

func init() {
	f := statsCmd.Flags()
	f.StringVar(&cfg.InputPath, "in", "", "Processed batch JSON from `claimload process` (required)")
	f.StringVar(&cfg.Scheme, "scheme", "multi", "Metrics scheme: maa, rghs, or multi")
	f.StringVar(&cfg.OutputPath, "out", "-", "Output path for the stats JSON (- for stdout)")
	f.Float64Var(&cfg.HighValueCutoff, "high-value-cutoff", 0, "High-value claim threshold (default 100000)")
	_ = statsCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := setupConfig(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	scheme, err := stats.ParseScheme(cfg.Scheme)
	if err != nil {
		log.Error().Err(err).Msg("invalid scheme")
		os.Exit(exitcode.UsageError)
	}

	var batch model.ProcessingResult
	if err := readJSON(cfg.InputPath, &batch); err != nil {
		log.Error().Err(err).Msg("read batch failed")
		os.Exit(exitcode.ValidationError)
	}

	opts := stats.Options{
		HighValueCutoff: cfg.HighValueCutoff,
		HasQueryData:    hasQueryData(batch.ConsolidatedData),
		Log:             log,
	}

	var result *model.DashboardStats
	var ctr stats.Counters
	switch scheme {
	case stats.SchemeRGHS:
		approvals, payments := stats.SplitPaymentRecords(batch.ConsolidatedData)
		result, ctr = stats.ComputeRGHS(approvals, payments, opts)
	default:
		result, ctr = stats.Compute(scheme, batch.ConsolidatedData, nil, opts)
	}
	if result == nil {
		log.Error().Msg("no claims to compute stats from")
		os.Exit(exitcode.ComputeError)
	}

	log.Info().
		Int("claims", result.TotalClaims).
		Int("rows_seen", ctr.RowsSeen).
		Int("unclassified", ctr.RowsUnclassified).
		Int("date_outliers", ctr.DateOutliers).
		Msg("stats computed")

	if err := writeJSON(cfg.OutputPath, result); err != nil {
		log.Error().Err(err).Msg("write stats failed")
		os.Exit(exitcode.ComputeError)
	}
	return nil
}

// hasQueryData reports whether any row carries query tracking columns;
// payers without them get nil first-pass metrics instead of a bogus 100%.
func hasQueryData(claims []model.StandardizedClaim) bool {
	for _, c := range claims {
		if c.QueryRaised > 0 || c.DaysToPayment > 0 {
			return true
		}
	}
	return false
}
