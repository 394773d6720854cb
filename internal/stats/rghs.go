package stats

import (
	"math"
	"strings"

	"github.com/eyther/claimstats/internal/model"
	"github.com/eyther/claimstats/internal/normalize"
)

// rghsSettledStatus is the exact adjudication-complete status; amounts
// under it are approved and awaiting disbursement unless the payment
// tracker already shows the claim paid.
const rghsSettledStatus = "claim approved by claim unit"

// ComputeRGHS is the dual-file arm: tms rows carry approval state, and
// payment records carry money actually disbursed. Claim value and paid
// revenue come exclusively from the payment records, because the
// approval file's claimed amounts double-count resubmissions. OPD rows
// are excluded up front.
func ComputeRGHS(tms, payments []model.StandardizedClaim, opts Options) (*model.DashboardStats, Counters) {
	var ctr Counters
	ctr.RowsSeen = len(tms) + len(payments)

	inpatient := make([]model.StandardizedClaim, 0, len(tms))
	for _, c := range tms {
		if strings.Contains(strings.ToUpper(c.Status), "OPD") {
			continue
		}
		inpatient = append(inpatient, c)
	}
	if len(inpatient) == 0 {
		return nil, ctr
	}

	total := len(inpatient)
	s := &model.DashboardStats{TotalClaims: total}

	paidIDs := make(map[string]bool, len(payments))
	for _, p := range payments {
		paidIDs[p.ClaimID] = true
		s.TotalPaidAmount += p.PaidAmount
		s.TotalClaimValue += p.ClaimedAmount
	}

	var tmsApproved, trackerApproved float64
	var queryRows int
	for _, c := range inpatient {
		up := strings.ToUpper(c.Status)
		approved := strings.Contains(up, "APPROVED")
		rejected := strings.Contains(up, "REJECT")
		pending := strings.Contains(up, "PENDING")
		if approved {
			s.ApprovedClaims++
		}
		if rejected {
			s.RejectedClaims++
			s.RevenueLeakage += c.ClaimedAmount
		}
		if pending {
			s.PendingClaims++
			s.RevenueStuckInQuery += c.ClaimedAmount
		}
		if !approved && !rejected && !pending {
			ctr.RowsUnclassified++
		}
		if pending || c.QueryStatus != "" {
			queryRows++
		}

		tmsApproved += c.ApprovedAmount
		if strings.ToLower(c.Status) == rghsSettledStatus && !paidIDs[c.ClaimID] {
			s.ApprovedUnpaidAmount += c.ApprovedAmount
		}
		if c.ClaimedAmount > opts.cutoff() {
			s.HighValueClaimsPercentage++
		}
	}

	// Payment happens in a separate cycle, so approval is the terminal
	// state the approval file can show.
	s.PaidClaims = s.ApprovedClaims

	for _, p := range payments {
		trackerApproved += p.ApprovedAmount
	}
	s.TotalApprovedAmount = math.Max(tmsApproved, trackerApproved)

	realizable := s.ApprovedUnpaidAmount + s.TotalPaidAmount
	s.CollectionEfficiency = pct(s.TotalPaidAmount, realizable)
	s.CollectionEfficiencyOverflow = s.CollectionEfficiency > 100

	s.DenialRate = pct(float64(s.RejectedClaims), float64(total))
	s.RevenueLeakageRate = pct(s.RevenueLeakage, s.TotalClaimValue)
	s.QueryIncidence = ptr(pct(float64(queryRows), float64(total)))
	s.RejectedAmount = s.RevenueLeakage
	s.PendingAmount = s.RevenueStuckInQuery
	s.AverageClaimAmount = s.TotalClaimValue / float64(total)
	s.HighValueClaimsPercentage = pct(s.HighValueClaimsPercentage, float64(total))

	s.AvgLengthOfStay = rghsAvgStay(inpatient, &ctr)
	s.MinAdmissionDate, s.MaxAdmissionDate = admissionDateRange(inpatient)
	s.ClaimsByStatus = rghsStatusBuckets(inpatient)

	s.ReimbursementScore = math.Max(0, 100-s.RevenueLeakageRate*1.5)
	s.EfficiencyScore = math.Max(0, 100-s.DenialRate*2-*s.QueryIncidence*0.8)
	s.CashFlowScore = math.Min(100, s.CollectionEfficiency*0.7)
	s.HealthScore = math.Min(90,
		(100-s.DenialRate)*0.4+s.CollectionEfficiency*0.4+(100-*s.QueryIncidence)*0.2)

	opts.Log.Debug().
		Int("tms_rows", len(tms)).
		Int("inpatient_rows", total).
		Int("payment_rows", len(payments)).
		Float64("paid", s.TotalPaidAmount).
		Msg("computed dual-file stats")
	return s, ctr
}

func rghsAvgStay(claims []model.StandardizedClaim, ctr *Counters) *float64 {
	var days []float64
	for _, c := range claims {
		if c.ServiceDate == nil || c.DischargeDate == nil {
			continue
		}
		d := normalize.DaysBetween(*c.ServiceDate, *c.DischargeDate)
		if d <= 0 || d > 365 {
			ctr.DateOutliers++
			continue
		}
		days = append(days, d)
	}
	return mean(days)
}

func rghsStatusBuckets(claims []model.StandardizedClaim) map[string]model.StatusBucket {
	out := make(map[string]model.StatusBucket, 8)
	for _, c := range claims {
		status := c.Status
		if status == "" {
			status = "Unknown"
		}
		b := out[status]
		b.Count++
		b.Amount += c.ClaimedAmount
		out[status] = b
	}
	return out
}
