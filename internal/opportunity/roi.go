package opportunity

import (
	"math"

	"github.com/eyther/claimstats/internal/model"
)

const (
	// DefaultFeeFraction is the service fee as a share of approved
	// revenue.
	DefaultFeeFraction = 0.02
	maxFeeFraction     = 0.10

	// Report caps. Tiny fees make the raw multiple explode toward
	// infinity; the raw values stay on the result for inspection.
	roiMultipleCap  = 1000
	paybackWeeksCap = 520
)

// ComputeROI prices totalSavings against a fee on approved revenue.
// Returns a zero-valued result when there is nothing to price.
func ComputeROI(totalSavings float64, stats *model.DashboardStats, feeFraction float64) model.ROIResult {
	var out model.ROIResult
	if stats == nil || totalSavings <= 0 ||
		math.IsNaN(totalSavings) || math.IsInf(totalSavings, 0) ||
		math.IsNaN(stats.TotalApprovedAmount) || math.IsInf(stats.TotalApprovedAmount, 0) {
		return out
	}

	fee := math.Max(0, stats.TotalApprovedAmount) *
		math.Max(0, math.Min(feeFraction, maxFeeFraction))

	out.Fee = fee
	out.NetSavings = math.Max(0, totalSavings-fee)
	out.MonthlySavings = totalSavings / 12

	if fee > 0 {
		out.RawRoiMultiple = totalSavings / fee
		out.RoiMultiple = math.Min(out.RawRoiMultiple, roiMultipleCap)
		out.RawPaybackWeeks = fee / (totalSavings / 52)
		out.PaybackWeeks = math.Min(out.RawPaybackWeeks, paybackWeeksCap)
	}
	return out
}
