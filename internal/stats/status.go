package stats

import "strings"

// Status predicates. Each payer writes free-text statuses, so
// classification is by case-insensitive vocabulary match. The paid and
// rejected vocabularies are disjoint: no status string may satisfy both.

// IsPaidStatus reports whether a claim has been disbursed.
func IsPaidStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "claim paid") || s == "success" || strings.Contains(s, "payment done")
}

// IsApprovedStatus reports whether a claim cleared adjudication.
func IsApprovedStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "approved") || s == "success"
}

// IsRejectedStatus reports whether a claim was denied. "reject" also
// covers "rejected" and the parenthesized reviewer variants.
func IsRejectedStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "reject") || s == "failed"
}

// IsPendingStatus reports whether a claim is still in flight.
func IsPendingStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "pending") ||
		strings.Contains(s, "in progress") ||
		strings.Contains(s, "under review")
}

// isQueryOrPending matches the wider vocabulary used for revenue stuck
// in query: anything queried or not yet adjudicated.
func isQueryOrPending(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "query") || IsPendingStatus(status)
}
