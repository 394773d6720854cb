// Package aggregate rolls line-item claim rows up to claim level. Payer
// extracts emit one row per package/line item; every metric that counts
// claims must run on the rolled-up records.
package aggregate

import "github.com/eyther/claimstats/internal/model"

// ByClaim groups rows by claim id. The first row of each group supplies
// the descriptive fields; money fields are summed across the group and
// queryRaised/daysToPayment take the maximum observed value (the
// conservative estimate for per-claim counters recorded per line item).
// Rows without a claim id are skipped; the mapper drops those upstream.
//
// Aggregating an already-unique-by-id set is a no-op on every value: the
// sum of one term is that term.
func ByClaim(claims []model.StandardizedClaim) []model.AggregatedClaim {
	if len(claims) == 0 {
		return nil
	}

	byID := make(map[string]*model.AggregatedClaim, len(claims))
	order := make([]string, 0, len(claims))

	for _, row := range claims {
		if row.ClaimID == "" {
			continue
		}
		agg, ok := byID[row.ClaimID]
		if !ok {
			first := row
			// Money fields restart at zero; the component loop below adds
			// every row's share, including this first one.
			first.ClaimedAmount = 0
			first.ApprovedAmount = 0
			first.PaidAmount = 0
			first.QueryRaised = 0
			first.DaysToPayment = 0
			agg = &model.AggregatedClaim{StandardizedClaim: first}
			byID[row.ClaimID] = agg
			order = append(order, row.ClaimID)
		}

		agg.ClaimedAmount += row.ClaimedAmount
		agg.ApprovedAmount += row.ApprovedAmount
		agg.PaidAmount += row.PaidAmount
		if row.QueryRaised > agg.QueryRaised {
			agg.QueryRaised = row.QueryRaised
		}
		if row.DaysToPayment > agg.DaysToPayment {
			agg.DaysToPayment = row.DaysToPayment
		}
		agg.Components = append(agg.Components, row)
	}

	out := make([]model.AggregatedClaim, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}
