package normalize

import (
	"testing"
	"time"
)

func TestParseDate_Formats(t *testing.T) {
	cases := []struct {
		in   string
		want string // YYYY-MM-DD, or "" for nil
	}{
		{"2025-02-01", "2025-02-01"},
		{"05/02/2025", "2025-02-05"},
		{"05-02-2025", "2025-02-05"},
		{"01,February , 2025", "2025-02-01"},
		{" 17,February , 2025 12:00 AM", "2025-02-17"},
		{"17-FEB-25 12.00.00 AM", "2025-02-17"},
		{"3-MAR-25", "2025-03-03"},
		{"January 2, 2025", "2025-01-02"},
		{"2025-02-01T10:30:00", "2025-02-01"},
		{"", ""},
		{"not a date", ""},
		{"99,Nonmonth , 2025", ""},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in)
		if tc.want == "" {
			if got != nil {
				t.Errorf("ParseDate(%q) = %v, want nil", tc.in, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("ParseDate(%q) = nil, want %s", tc.in, tc.want)
			continue
		}
		if got.Format("2006-01-02") != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got.Format("2006-01-02"), tc.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"15000", 15000},
		{"15,000", 15000},
		{"₹1,15,000.50", 115000.50},
		{"Rs. 500", 500},
		{"-250", -250},
		{"", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := ParseMoney(tc.in); got != tc.want {
			t.Errorf("ParseMoney(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCleanHeader(t *testing.T) {
	in := "​Patient  Name \uFEFF"
	if got := CleanHeader(in); got != "Patient Name" {
		t.Errorf("CleanHeader(%q) = %q", in, got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 2, 4, 12, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 3.5 {
		t.Errorf("DaysBetween = %v, want 3.5", got)
	}
}
