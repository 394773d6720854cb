package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/eyther/claimstats/internal/exitcode"
	"github.com/eyther/claimstats/internal/logging"
	"github.com/eyther/claimstats/internal/model"
	"github.com/eyther/claimstats/internal/opportunity"
)

var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Project savings and ROI from computed stats",
	RunE:  runROI,
}

func init() {
	f := roiCmd.Flags()
	f.StringVar(&cfg.InputPath, "in", "", "Stats JSON from `claimload stats` (required)")
	f.StringVar(&cfg.OutputPath, "out", "-", "Output path for the projection JSON (- for stdout)")
	f.StringVar(&cfg.DenialScenario, "denial-scenario", "Moderate", "Denial target: Conservative, Moderate, or Aggressive")
	f.StringVar(&cfg.FirstPassScenario, "first-pass-scenario", "Good", "First-pass target: Moderate, Good, or Excellent")
	f.IntVar(&cfg.ClaimsPerDay, "claims-per-day", 0, "Claims one expert processes per day (default 50)")
	f.Float64Var(&cfg.FeeFraction, "fee", 0, "Service fee as a fraction of approved revenue (default 0.02, max 0.10)")
	_ = roiCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(roiCmd)
}

func runROI(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := setupConfig(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var dashboard model.DashboardStats
	if err := readJSON(cfg.InputPath, &dashboard); err != nil {
		log.Error().Err(err).Msg("read stats failed")
		os.Exit(exitcode.ValidationError)
	}

	savings := opportunity.ProjectSavings(&dashboard, cfg.DenialScenario, cfg.FirstPassScenario, cfg.ClaimsPerDay)
	roi := opportunity.ComputeROI(savings.TotalSavings, &dashboard, cfg.FeeFraction)

	log.Info().
		Float64("total_savings", savings.TotalSavings).
		Float64("roi_multiple", roi.RoiMultiple).
		Msg("projection computed")

	out := struct {
		Savings model.SavingsBreakdown `json:"savings"`
		ROI     model.ROIResult        `json:"roi"`
	}{savings, roi}
	if err := writeJSON(cfg.OutputPath, out); err != nil {
		log.Error().Err(err).Msg("write projection failed")
		os.Exit(exitcode.ComputeError)
	}
	return nil
}
