package stats

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/eyther/claimstats/internal/model"
)

// DefaultHighValueCutoff marks claims large enough to deserve individual
// review, in the payer's currency unit.
const DefaultHighValueCutoff = 100000

// averageClaimCap bounds the reported per-claim average; extracts with
// mispunched amounts otherwise poison every downstream projection.
const averageClaimCap = 10000000

// Options tunes a computation run.
type Options struct {
	// HighValueCutoff overrides DefaultHighValueCutoff when > 0.
	HighValueCutoff float64
	// HasQueryData declares that the payer records query counts, enabling
	// first-pass and query-incidence metrics. Payers that never map
	// queryRaised leave these nil.
	HasQueryData bool
	Log          zerolog.Logger
}

func (o Options) cutoff() float64 {
	if o.HighValueCutoff > 0 {
		return o.HighValueCutoff
	}
	return DefaultHighValueCutoff
}

// Counters is per-run telemetry: how many rows fed the engine and how
// many fell outside the classifiable vocabularies or sane date ranges.
type Counters struct {
	RowsSeen         int
	RowsUnclassified int
	DateOutliers     int
	DeltaOutliers    int
}

// Compute dispatches to the arm for the given scheme. claims are the
// approval-side rows; paymentRecords carry disbursements for dual-file
// schemes and are ignored by the MAA arm. Returns nil stats on empty
// input.
func Compute(scheme Scheme, claims, paymentRecords []model.StandardizedClaim, opts Options) (*model.DashboardStats, Counters) {
	switch scheme {
	case SchemeRGHS:
		return ComputeRGHS(claims, paymentRecords, opts)
	case SchemeMulti:
		return ComputeMulti(append(append([]model.StandardizedClaim{}, claims...), paymentRecords...), opts)
	default:
		return ComputeMAA(claims, opts)
	}
}

func pct(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

func ptr(v float64) *float64 { return &v }

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return ptr(sum / float64(len(values)))
}

// realizedAmount is what a paid row actually brought in: the recorded
// paid amount when the extract carries one, the approved amount otherwise
// (approval schemes disburse the approved figure).
func realizedAmount(c model.StandardizedClaim) float64 {
	if c.PaidAmount != 0 {
		return c.PaidAmount
	}
	return c.ApprovedAmount
}

// amountOrFallback prefers the first amount, falling back when unset.
func amountOrFallback(primary, fallback float64) float64 {
	if primary != 0 {
		return primary
	}
	return fallback
}

func admissionDateRange(claims []model.StandardizedClaim) (min, max *time.Time) {
	for _, c := range claims {
		if c.ServiceDate == nil {
			continue
		}
		if min == nil || c.ServiceDate.Before(*min) {
			t := *c.ServiceDate
			min = &t
		}
		if max == nil || c.ServiceDate.After(*max) {
			t := *c.ServiceDate
			max = &t
		}
	}
	return min, max
}

// statusBuckets tallies count and claimed amount per raw status string.
func statusBuckets(claims []model.AggregatedClaim) map[string]model.StatusBucket {
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
