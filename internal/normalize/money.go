package normalize

import (
	"regexp"
	"strconv"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// ParseMoney parses an amount that may carry currency symbols, grouping
// commas, or stray whitespace ("₹ 1,15,000.50"). Defaults to 0 on failure;
// malformed amounts must not abort a row.
func ParseMoney(s string) float64 {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseCount parses cardinal columns (query counts, day counts) with the
// same tolerance as ParseMoney.
func ParseCount(s string) float64 {
	return ParseMoney(s)
}
