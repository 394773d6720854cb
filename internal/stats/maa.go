package stats

import (
	"math"

	"github.com/eyther/claimstats/internal/aggregate"
	"github.com/eyther/claimstats/internal/model"
	"github.com/eyther/claimstats/internal/normalize"
)

// Fallback processing times, in days, used for the query-delay spread
// when the extract has no usable days-to-payment data. Industry figures:
// queried claims settle in ~20 days, clean claims in ~11.
const (
	fallbackQueryDays = 20
	fallbackCleanDays = 11
)

// ComputeMAA is the single-payer approval-scheme arm. Counts and claim
// values come from id-grouped claims; paid revenue comes from the raw
// rows so that mixed-status groups do not lose paid line items.
func ComputeMAA(claims []model.StandardizedClaim, opts Options) (*model.DashboardStats, Counters) {
	var ctr Counters
	ctr.RowsSeen = len(claims)
	if len(claims) == 0 {
		return nil, ctr
	}

	grouped := aggregate.ByClaim(claims)
	total := len(grouped)
	if total == 0 {
		return nil, ctr
	}

	s := &model.DashboardStats{TotalClaims: total}

	for _, c := range grouped {
		paid := IsPaidStatus(c.Status)
		approved := IsApprovedStatus(c.Status)
		rejected := IsRejectedStatus(c.Status)
		pending := IsPendingStatus(c.Status)
		if paid {
			s.PaidClaims++
		}
		if approved {
			s.ApprovedClaims++
		}
		if rejected {
			s.RejectedClaims++
		}
		if pending {
			s.PendingClaims++
		}
		if !paid && !approved && !rejected && !pending {
			ctr.RowsUnclassified++
		}

		s.TotalClaimValue += c.ClaimedAmount
		s.TotalApprovedAmount += c.ApprovedAmount
		if c.ClaimedAmount > opts.cutoff() {
			s.HighValueClaimsPercentage++ // count for now, scaled below
		}
	}

	// Paid revenue over raw rows, not groups: a claim whose group status
	// reads pending may still carry paid line items.
	for _, c := range claims {
		if IsPaidStatus(c.Status) {
			s.TotalPaidAmount += realizedAmount(c)
		}
		if IsRejectedStatus(c.Status) {
			s.RevenueLeakage += c.ClaimedAmount
			s.RejectedAmount += amountOrFallback(c.ClaimedAmount, c.ApprovedAmount)
		}
		if IsPendingStatus(c.Status) {
			s.PendingAmount += amountOrFallback(c.ApprovedAmount, c.ClaimedAmount)
		}
		if IsApprovedStatus(c.Status) && !IsPaidStatus(c.Status) {
			s.ApprovedUnpaidAmount += c.ApprovedAmount
		}
		if isQueryOrPending(c.Status) {
			s.RevenueStuckInQuery += amountOrFallback(c.ClaimedAmount, c.ApprovedAmount)
		}
	}

	s.DenialRate = pct(float64(s.RejectedClaims), float64(total))
	s.RevenueLeakageRate = pct(s.RevenueLeakage, s.TotalClaimValue)
	s.CollectionEfficiency = pct(s.TotalPaidAmount, s.TotalApprovedAmount)
	s.CollectionEfficiencyOverflow = s.CollectionEfficiency > 100
	if s.CollectionEfficiencyOverflow {
		opts.Log.Warn().
			Float64("collection_efficiency", s.CollectionEfficiency).
			Msg("collection efficiency exceeds 100%, paid rows outstrip grouped approvals")
	}

	s.AverageClaimAmount = math.Max(0, math.Min(s.TotalClaimValue/float64(total), averageClaimCap))
	s.HighValueClaimsPercentage = pct(s.HighValueClaimsPercentage, float64(total))

	if opts.HasQueryData {
		var clean, queried int
		var queryDays, cleanDays []float64
		for _, c := range grouped {
			if c.QueryRaised > 0 {
				queried++
				if c.DaysToPayment > 0 {
					queryDays = append(queryDays, c.DaysToPayment)
				}
			} else {
				clean++
				if c.DaysToPayment > 0 {
					cleanDays = append(cleanDays, c.DaysToPayment)
				}
			}
		}
		s.FirstPassRate = ptr(pct(float64(clean), float64(total)))
		s.QueryIncidence = ptr(pct(float64(queried), float64(total)))

		s.QueryAvgDays = ptr(fallbackQueryDays)
		if m := mean(queryDays); m != nil {
			s.QueryAvgDays = m
		}
		s.CleanAvgDays = ptr(fallbackCleanDays)
		if m := mean(cleanDays); m != nil {
			s.CleanAvgDays = m
		}
	}

	s.AvgLengthOfStay = avgStay(grouped, &ctr)
	s.AvgDischargeToPaymentDays, s.QueryCausedDelay = dischargeToPayment(grouped, opts.HasQueryData, &ctr)

	s.ReimbursementScore, s.EfficiencyScore, s.CashFlowScore, s.HealthScore =
		performanceScores(s.RevenueLeakageRate, s.DenialRate, s.QueryIncidence, s.CollectionEfficiency)

	s.MinAdmissionDate, s.MaxAdmissionDate = admissionDateRange(claims)
	s.ClaimsByStatus = statusBuckets(grouped)

	opts.Log.Debug().
		Int("claims", total).
		Int("rows", len(claims)).
		Int("unclassified", ctr.RowsUnclassified).
		Msg("computed approval-scheme stats")
	return s, ctr
}

// avgStay averages admission-to-discharge durations, discarding negative
// spans and stays over a year as data errors.
func avgStay(grouped []model.AggregatedClaim, ctr *Counters) *float64 {
	var days []float64
	for _, c := range grouped {
		if c.ServiceDate == nil || c.DischargeDate == nil {
			continue
		}
		d := normalize.DaysBetween(*c.ServiceDate, *c.DischargeDate)
		if d < 0 || d > 365 {
			ctr.DateOutliers++
			continue
		}
		days = append(days, d)
	}
	return mean(days)
}

// dischargeToPayment measures how long paid claims wait for money after
// discharge, and how much of that wait queries add. Spans under half a
// day are treated as bookkeeping artifacts and skipped.
func dischargeToPayment(grouped []model.AggregatedClaim, hasQueryData bool, ctr *Counters) (avg, queryDelay *float64) {
	var all, queried, clean []float64
	for _, c := range grouped {
		if !IsPaidStatus(c.Status) || c.DischargeDate == nil || c.PaymentDate == nil {
			continue
		}
		d := normalize.DaysBetween(*c.DischargeDate, *c.PaymentDate)
		if d < 0.5 {
			ctr.DeltaOutliers++
			continue
		}
		all = append(all, d)
		if !hasQueryData {
			continue
		}
		if c.QueryRaised > 0 {
			queried = append(queried, d)
		} else {
			clean = append(clean, d)
		}
	}

	avg = mean(all)
	qm, cm := mean(queried), mean(clean)
	if qm != nil && cm != nil {
		queryDelay = ptr(*qm - *cm)
	}
	return avg, queryDelay
}

// performanceScores derives the composite report-card numbers from the
// core rates. Health is capped at 90: no claims operation is perfect.
func performanceScores(leakageRate, denialRate float64, queryIncidence *float64, collectionEfficiency float64) (reimbursement, efficiency, cashFlow, health float64) {
	qi := 0.0
	if queryIncidence != nil {
		qi = *queryIncidence
	}
	reimbursement = math.Max(0, 100-leakageRate*1.5)
	efficiency = math.Max(0, 100-denialRate*2-qi*0.8)
	cashFlow = math.Min(100, collectionEfficiency*0.7)
	health = math.Min(90, reimbursement*0.4+efficiency*0.4+cashFlow*0.2)
	return reimbursement, efficiency, cashFlow, health
}
