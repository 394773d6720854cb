package normalize

import (
	"regexp"
	"strings"
	"time"
)

// Common date formats found in payer claim extracts. Numeric day/month
// orders are day-first throughout; every supported payer exports Indian
// regional dates.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 January 2006 3:04 PM",
	"2 January 2006 15:04",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// "17,February , 2025 12:00 AM" — MAA portal export style.
var commaDate = regexp.MustCompile(`^(\d{1,2}),([A-Za-z]+)\s*,\s*(\d{4})\s*(.*)$`)

// "17-FEB-25 12.00.00 AM" — payment tracker (Oracle export) style.
var oracleDate = regexp.MustCompile(`^(\d{1,2})-([A-Za-z]+)-(\d{2})\s*(.*)$`)

var monthAbbr = map[string]string{
	"JAN": "January", "FEB": "February", "MAR": "March", "APR": "April",
	"MAY": "May", "JUN": "June", "JUL": "July", "AUG": "August",
	"SEP": "September", "OCT": "October", "NOV": "November", "DEC": "December",
}

// ParseDate attempts to parse a date string in the formats payer extracts
// actually use. Returns nil if the input is empty or unparseable.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if m := commaDate.FindStringSubmatch(s); m != nil {
		candidate := m[1] + " " + m[2] + " " + m[3]
		if tail := strings.TrimSpace(m[4]); tail != "" {
			candidate += " " + tail
		}
		if t := tryFormats(candidate); t != nil {
			return t
		}
	}

	if m := oracleDate.FindStringSubmatch(s); m != nil {
		month := m[2]
		if full, ok := monthAbbr[strings.ToUpper(month)]; ok {
			month = full
		}
		candidate := m[1] + " " + month + " 20" + m[3]
		if tail := strings.TrimSpace(m[4]); tail != "" {
			candidate += " " + strings.ReplaceAll(tail, ".", ":")
		}
		if t := tryFormats(candidate); t != nil {
			return t
		}
	}

	return tryFormats(s)
}

func tryFormats(s string) *time.Time {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	// Time-of-day suffixes vary ("12:00 AM", "12:00:00 AM"); retry the
	// spelled-out layouts with seconds.
	for _, layout := range []string{"2 January 2006 3:04:05 PM", "2 January 2006 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// DaysBetween returns the elapsed days from a to b as a fraction.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}
