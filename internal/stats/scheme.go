// Package stats computes dashboard metrics from standardized claims.
// Each payer scheme settles claims differently, so the engine carries one
// computation arm per scheme plus a consolidation arm that combines them
// without averaging rates.
package stats

import (
	"fmt"
	"strings"
)

// Scheme selects the metrics arm.
type Scheme string

const (
	// SchemeMAA: single-file approval schemes where payment state rides on
	// the claim status itself.
	SchemeMAA Scheme = "maa"
	// SchemeRGHS: dual-file schemes where approvals and payments arrive in
	// separate extracts joined by claim id.
	SchemeRGHS Scheme = "rghs"
	// SchemeMulti: mixed input, split by payer and consolidated.
	SchemeMulti Scheme = "multi"
)

// ParseScheme maps a CLI flag value to a Scheme.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case SchemeMAA:
		return SchemeMAA, nil
	case SchemeRGHS:
		return SchemeRGHS, nil
	case SchemeMulti:
		return SchemeMulti, nil
	}
	return "", fmt.Errorf("unknown scheme %q (want maa, rghs, or multi)", s)
}
