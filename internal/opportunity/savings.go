// Package opportunity projects what a claims operation could save by
// lowering denials, raising first-pass rates, and avoiding processing
// headcount, then expresses those savings as an ROI over a service fee.
package opportunity

import (
	"math"

	"github.com/eyther/claimstats/internal/model"
)

// Improvement scenarios, as target rates. Keys are the names exposed on
// the CLI.
var (
	DenialScenarios = map[string]float64{
		"Conservative": 0.05,
		"Moderate":     0.03,
		"Aggressive":   0.02,
	}
	FirstPassScenarios = map[string]float64{
		"Moderate":  0.60,
		"Good":      0.70,
		"Excellent": 0.80,
	}
)

const (
	// Default targets when a scenario name is unknown.
	defaultDenialTarget    = 0.03
	defaultFirstPassTarget = 0.70

	// avgClaimValueCap keeps one mispunched amount from inflating every
	// projection.
	avgClaimValueCap = 5000000

	// Clean claims settle ~9 days sooner than queried ones (the 20-day
	// vs 11-day spread), so each one frees working capital for 9 days.
	cleanClaimDaysSaved = 9
	workingCapitalRate  = 0.12 / 365

	// Staffing model: one doctor supervises ten claim experts.
	expertsPerDoctor  = 10
	expertMonthlyCost = 15000
	doctorMonthlyCost = 40000

	// Throughput is projected at 4x observed daily volume; observed
	// volume reflects only the payers already onboarded.
	volumeProjectionFactor = 4
)

// ProjectSavings sizes the annual opportunity for the operation described
// by stats. Unknown scenario names fall back to the moderate targets.
// Returns a zero-valued breakdown when stats cannot support the math.
func ProjectSavings(stats *model.DashboardStats, denialScenario, firstPassScenario string, claimsPerDay int) model.SavingsBreakdown {
	var out model.SavingsBreakdown
	if stats == nil || stats.TotalClaims <= 0 ||
		math.IsNaN(stats.AverageClaimAmount) || math.IsInf(stats.AverageClaimAmount, 0) {
		return out
	}

	avgClaim := math.Min(stats.AverageClaimAmount, avgClaimValueCap)
	total := stats.TotalClaims

	out.DenialRecovery, out.ClaimsSaved = denialReduction(
		stats.DenialRate/100, denialTarget(denialScenario), total, avgClaim)

	if stats.FirstPassRate != nil {
		out.WorkingCapitalSavings, out.AdditionalCleanClaims = firstPassImprovement(
			*stats.FirstPassRate/100, firstPassTarget(firstPassScenario), total, avgClaim)
	}

	out.Staffing = staffingAvoidance(stats, claimsPerDay)
	if out.Staffing != nil {
		out.StaffingCostAvoidance = out.Staffing.TotalAnnualCost
	}

	out.TotalSavings = out.DenialRecovery + out.WorkingCapitalSavings + out.StaffingCostAvoidance
	return out
}

func denialTarget(scenario string) float64 {
	if t, ok := DenialScenarios[scenario]; ok {
		return t
	}
	return defaultDenialTarget
}

func firstPassTarget(scenario string) float64 {
	if t, ok := FirstPassScenarios[scenario]; ok {
		return t
	}
	return defaultFirstPassTarget
}

// denialReduction values the claims that would clear adjudication at the
// target denial rate. Whole claims only, floored, never negative: an
// operation already below target saves nothing here.
func denialReduction(currentRate, targetRate float64, totalClaims int, avgClaim float64) (recovery float64, claimsSaved int) {
	current := int(math.Floor(currentRate * float64(totalClaims)))
	target := int(math.Floor(targetRate * float64(totalClaims)))
	claimsSaved = current - target
	if claimsSaved < 0 {
		claimsSaved = 0
	}
	return float64(claimsSaved) * avgClaim, claimsSaved
}

// firstPassImprovement values the working capital freed when more claims
// settle without a query round trip.
func firstPassImprovement(currentRate, targetRate float64, totalClaims int, avgClaim float64) (savings float64, additionalClean int) {
	current := int(math.Floor(currentRate * float64(totalClaims)))
	target := int(math.Floor(targetRate * float64(totalClaims)))
	additionalClean = target - current
	if additionalClean < 0 {
		additionalClean = 0
	}
	savings = float64(additionalClean) * avgClaim * cleanClaimDaysSaved * workingCapitalRate
	return savings, additionalClean
}

// staffingAvoidance estimates the processing team a hospital no longer
// needs to hire. It only applies once the operation is already running
// clean (denials under 5%, first pass above 60%); a struggling operation
// needs the staff regardless.
func staffingAvoidance(stats *model.DashboardStats, claimsPerDay int) *model.StaffingEstimate {
	if claimsPerDay <= 0 || stats.DenialRate >= 5 {
		return nil
	}
	if stats.FirstPassRate == nil || *stats.FirstPassRate <= 60 {
		return nil
	}
	if stats.MinAdmissionDate == nil || stats.MaxAdmissionDate == nil {
		return nil
	}

	daysInRange := stats.MaxAdmissionDate.Sub(*stats.MinAdmissionDate).Hours() / 24
	if daysInRange <= 0 {
		return nil
	}

	dailyClaims := int(math.Round(float64(stats.TotalClaims) / daysInRange))
	projected := dailyClaims * volumeProjectionFactor
	experts := int(math.Ceil(float64(projected) / float64(claimsPerDay)))
	doctors := int(math.Ceil(float64(experts) / expertsPerDoctor))

	expertAnnual := float64(experts * expertMonthlyCost * 12)
	doctorAnnual := float64(doctors * doctorMonthlyCost * 12)

	return &model.StaffingEstimate{
		DailyClaims:      dailyClaims,
		ClaimsPerDay:     claimsPerDay,
		ClaimExperts:     experts,
		Doctors:          doctors,
		ExpertAnnualCost: expertAnnual,
		DoctorAnnualCost: doctorAnnual,
		TotalAnnualCost:  expertAnnual + doctorAnnual,
	}
}
