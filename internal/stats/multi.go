package stats

import (
	"strings"
	"time"

	"github.com/eyther/claimstats/internal/model"
)

// Payer-name routing for mixed batches. Identification is by name
// fragment so renamed extracts ("RGHS", "RGHS TMS 2.0") still route.
func isPaymentTrackerPayer(name string) bool {
	return strings.Contains(strings.ToLower(name), "payment tracker")
}

func isRGHSPayer(name string) bool {
	return strings.Contains(strings.ToLower(name), "rghs")
}

// SplitPaymentRecords partitions a consolidated claim set into approval
// rows and payment-tracker rows for the dual-file arm.
func SplitPaymentRecords(claims []model.StandardizedClaim) (approvals, payments []model.StandardizedClaim) {
	for _, c := range claims {
		if isPaymentTrackerPayer(c.PayerName) {
			payments = append(payments, c)
		} else {
			approvals = append(approvals, c)
		}
	}
	return approvals, payments
}

// ComputeMulti consolidates a mixed-payer claim set. Rows are routed by
// payer to the arm that understands their scheme; the sub-results are
// then combined by summing absolute amounts and recomputing every rate
// from the combined numerators and denominators. Averaging the
// sub-results' rates would weight a 10-claim payer equal to a
// 10,000-claim payer, so rates are never averaged.
func ComputeMulti(claims []model.StandardizedClaim, opts Options) (*model.DashboardStats, Counters) {
	var ctr Counters
	ctr.RowsSeen = len(claims)
	if len(claims) == 0 {
		return nil, ctr
	}

	var tms, payments, approval []model.StandardizedClaim
	for _, c := range claims {
		switch {
		case isPaymentTrackerPayer(c.PayerName):
			payments = append(payments, c)
		case isRGHSPayer(c.PayerName):
			tms = append(tms, c)
		default:
			approval = append(approval, c)
		}
	}

	// Query metrics only exist when the approval-scheme rows carry them.
	maaOpts := opts
	maaOpts.HasQueryData = opts.HasQueryData && len(approval) > 0

	var rghs, maa *model.DashboardStats
	if len(tms) > 0 || len(payments) > 0 {
		var sub Counters
		rghs, sub = ComputeRGHS(tms, payments, opts)
		ctr.RowsUnclassified += sub.RowsUnclassified
		ctr.DateOutliers += sub.DateOutliers
		ctr.DeltaOutliers += sub.DeltaOutliers
	}
	if len(approval) > 0 {
		var sub Counters
		maa, sub = ComputeMAA(approval, maaOpts)
		ctr.RowsUnclassified += sub.RowsUnclassified
		ctr.DateOutliers += sub.DateOutliers
		ctr.DeltaOutliers += sub.DeltaOutliers
	}

	switch {
	case rghs == nil && maa == nil:
		return nil, ctr
	case rghs == nil:
		return maa, ctr
	case maa == nil:
		return rghs, ctr
	}

	s := &model.DashboardStats{
		TotalClaims:    rghs.TotalClaims + maa.TotalClaims,
		PaidClaims:     rghs.PaidClaims + maa.PaidClaims,
		ApprovedClaims: rghs.ApprovedClaims + maa.ApprovedClaims,
		RejectedClaims: rghs.RejectedClaims + maa.RejectedClaims,
		PendingClaims:  rghs.PendingClaims + maa.PendingClaims,

		TotalClaimValue:     rghs.TotalClaimValue + maa.TotalClaimValue,
		TotalApprovedAmount: rghs.TotalApprovedAmount + maa.TotalApprovedAmount,
		TotalPaidAmount:     rghs.TotalPaidAmount + maa.TotalPaidAmount,

		RevenueLeakage:       rghs.RevenueLeakage + maa.RevenueLeakage,
		ApprovedUnpaidAmount: rghs.ApprovedUnpaidAmount + maa.ApprovedUnpaidAmount,
		RevenueStuckInQuery:  rghs.RevenueStuckInQuery + maa.RevenueStuckInQuery,
		RejectedAmount:       rghs.RevenueLeakage + maa.RejectedAmount,
		PendingAmount:        rghs.RevenueStuckInQuery + maa.PendingAmount,

		// Approval-scheme exclusives pass through; nil when MAA data is
		// missing the underlying columns.
		FirstPassRate:             maa.FirstPassRate,
		QueryIncidence:            maa.QueryIncidence,
		QueryAvgDays:              maa.QueryAvgDays,
		CleanAvgDays:              maa.CleanAvgDays,
		AvgLengthOfStay:           maa.AvgLengthOfStay,
		AvgDischargeToPaymentDays: maa.AvgDischargeToPaymentDays,
		QueryCausedDelay:          maa.QueryCausedDelay,

		PayerBreakdown: map[string]*model.DashboardStats{
			"rghs": rghs,
			"maa":  maa,
		},
	}

	totalClaims := float64(s.TotalClaims)
	s.DenialRate = pct(float64(s.RejectedClaims), totalClaims)
	s.RevenueLeakageRate = pct(s.RevenueLeakage, s.TotalClaimValue)
	s.AverageClaimAmount = s.TotalClaimValue / totalClaims
	s.HighValueClaimsPercentage = (rghs.HighValueClaimsPercentage*float64(rghs.TotalClaims) +
		maa.HighValueClaimsPercentage*float64(maa.TotalClaims)) / totalClaims

	// Dual-file money only becomes collectible once approved and tracked,
	// so its denominator is realizable revenue, not raw approvals.
	rghsRealizable := rghs.ApprovedUnpaidAmount + rghs.TotalPaidAmount
	s.CollectionEfficiency = pct(s.TotalPaidAmount, rghsRealizable+maa.TotalApprovedAmount)
	s.CollectionEfficiencyOverflow = s.CollectionEfficiency > 100

	s.ReimbursementScore, s.EfficiencyScore, s.CashFlowScore, s.HealthScore =
		performanceScores(s.RevenueLeakageRate, s.DenialRate, s.QueryIncidence, s.CollectionEfficiency)

	s.MinAdmissionDate, s.MaxAdmissionDate = combineDateRange(rghs, maa)
	s.ClaimsByStatus = mergeBuckets(rghs.ClaimsByStatus, maa.ClaimsByStatus)

	opts.Log.Debug().
		Int("rghs_claims", rghs.TotalClaims).
		Int("maa_claims", maa.TotalClaims).
		Float64("denial_rate", s.DenialRate).
		Msg("consolidated multi-payer stats")
	return s, ctr
}

func combineDateRange(a, b *model.DashboardStats) (min, max *time.Time) {
	for _, s := range []*model.DashboardStats{a, b} {
		if s.MinAdmissionDate != nil && (min == nil || s.MinAdmissionDate.Before(*min)) {
			min = s.MinAdmissionDate
		}
		if s.MaxAdmissionDate != nil && (max == nil || s.MaxAdmissionDate.After(*max)) {
			max = s.MaxAdmissionDate
		}
	}
	return min, max
}

func mergeBuckets(a, b map[string]model.StatusBucket) map[string]model.StatusBucket {
	out := make(map[string]model.StatusBucket, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		merged := out[k]
		merged.Count += v.Count
		merged.Amount += v.Amount
		out[k] = merged
	}
	return out
}
