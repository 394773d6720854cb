package stats

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eyther/claimstats/internal/model"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testOpts() Options {
	return Options{Log: zerolog.Nop()}
}

func maaClaim(id, status string, claimed, approved float64) model.StandardizedClaim {
	return model.StandardizedClaim{
		ClaimID:        id,
		PatientName:    "Patient " + id,
		HospitalName:   "Hospital",
		Status:         status,
		ClaimedAmount:  claimed,
		ApprovedAmount: approved,
		PayerName:      "MAA Yojana",
	}
}

func TestComputeMAA_EmptyInput(t *testing.T) {
	s, _ := ComputeMAA(nil, testOpts())
	if s != nil {
		t.Fatalf("expected nil stats for empty input, got %+v", s)
	}
}

func TestComputeMAA_DenialAndLeakage(t *testing.T) {
	claims := []model.StandardizedClaim{
		maaClaim("T1", "Claim Paid", 10000, 9500),
		maaClaim("T2", "Claim Paid", 15000, 14000),
		maaClaim("T3", "Claim Paid", 12000, 11000),
		maaClaim("T4", "Claim Rejected (Supervisor)", 20000, 0),
		maaClaim("T5", "Claim Pending", 8000, 0),
	}

	s, ctr := ComputeMAA(claims, testOpts())
	if s == nil {
		t.Fatal("expected stats")
	}
	if s.TotalClaims != 5 || s.PaidClaims != 3 || s.RejectedClaims != 1 || s.PendingClaims != 1 {
		t.Errorf("counts: total=%d paid=%d rejected=%d pending=%d",
			s.TotalClaims, s.PaidClaims, s.RejectedClaims, s.PendingClaims)
	}
	if s.DenialRate != 20.0 {
		t.Errorf("denialRate = %v, want 20.0", s.DenialRate)
	}
	if s.RevenueLeakage != 20000 {
		t.Errorf("revenueLeakage = %v, want 20000", s.RevenueLeakage)
	}
	if ctr.RowsSeen != 5 {
		t.Errorf("rowsSeen = %d", ctr.RowsSeen)
	}
}

func TestComputeMAA_PaidRevenueFallsBackToApproved(t *testing.T) {
	// Approval schemes disburse the approved figure; extracts often leave
	// the paid column zero.
	claims := []model.StandardizedClaim{
		maaClaim("T1", "Claim Paid", 10000, 9500),
	}
	s, _ := ComputeMAA(claims, testOpts())
	if s.TotalPaidAmount != 9500 {
		t.Errorf("totalPaidAmount = %v, want approved fallback 9500", s.TotalPaidAmount)
	}
}

func TestComputeMAA_RateBounds(t *testing.T) {
	claims := []model.StandardizedClaim{
		maaClaim("T1", "Claim Paid", 10000, 9000),
		maaClaim("T2", "Claim Rejected (Analyser)", 5000, 0),
		maaClaim("T3", "Claim Pending", 3000, 0),
	}
	s, _ := ComputeMAA(claims, testOpts())
	for name, v := range map[string]float64{
		"denialRate":         s.DenialRate,
		"revenueLeakageRate": s.RevenueLeakageRate,
		"highValuePct":       s.HighValueClaimsPercentage,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s = %v out of [0,100]", name, v)
		}
	}
}

func TestComputeMAA_CollectionEfficiencyOverflow(t *testing.T) {
	c := maaClaim("T1", "Claim Paid", 10000, 100)
	c.PaidAmount = 150
	s, _ := ComputeMAA([]model.StandardizedClaim{c}, testOpts())
	if s.CollectionEfficiency <= 100 {
		t.Fatalf("collectionEfficiency = %v, expected overflow", s.CollectionEfficiency)
	}
	if !s.CollectionEfficiencyOverflow {
		t.Error("overflow flag not set")
	}
}

func TestComputeMAA_QueryMetrics(t *testing.T) {
	a := maaClaim("T1", "Claim Paid", 10000, 9000)
	a.QueryRaised = 2
	a.DaysToPayment = 25
	b := maaClaim("T2", "Claim Paid", 8000, 7500)
	b.DaysToPayment = 10
	c := maaClaim("T3", "Claim Paid", 6000, 5500)
	c.DaysToPayment = 12

	opts := testOpts()
	opts.HasQueryData = true
	s, _ := ComputeMAA([]model.StandardizedClaim{a, b, c}, opts)

	if s.FirstPassRate == nil || math.Abs(*s.FirstPassRate-66.666666) > 0.001 {
		t.Errorf("firstPassRate = %v, want ~66.67", s.FirstPassRate)
	}
	if s.QueryIncidence == nil || math.Abs(*s.QueryIncidence-33.333333) > 0.001 {
		t.Errorf("queryIncidence = %v, want ~33.33", s.QueryIncidence)
	}
	if s.QueryAvgDays == nil || *s.QueryAvgDays != 25 {
		t.Errorf("queryAvgDays = %v, want 25", s.QueryAvgDays)
	}
	if s.CleanAvgDays == nil || *s.CleanAvgDays != 11 {
		t.Errorf("cleanAvgDays = %v, want 11", s.CleanAvgDays)
	}
}

func TestComputeMAA_QueryMetricsNilWithoutQueryData(t *testing.T) {
	s, _ := ComputeMAA([]model.StandardizedClaim{
		maaClaim("T1", "Claim Paid", 10000, 9000),
	}, testOpts())
	if s.FirstPassRate != nil || s.QueryIncidence != nil {
		t.Errorf("query metrics should be nil without query data: %v %v",
			s.FirstPassRate, s.QueryIncidence)
	}
}

func TestComputeMAA_LengthOfStayAndDateRange(t *testing.T) {
	a := maaClaim("T1", "Claim Paid", 10000, 9000)
	a.ServiceDate = date(2025, time.February, 1)
	a.DischargeDate = date(2025, time.February, 5)
	b := maaClaim("T2", "Claim Paid", 8000, 7000)
	b.ServiceDate = date(2025, time.March, 10)
	b.DischargeDate = date(2025, time.March, 12)
	// Discharge before admission is a data error, not a negative stay.
	c := maaClaim("T3", "Claim Paid", 6000, 5000)
	c.ServiceDate = date(2025, time.April, 10)
	c.DischargeDate = date(2025, time.April, 1)

	s, ctr := ComputeMAA([]model.StandardizedClaim{a, b, c}, testOpts())
	if s.AvgLengthOfStay == nil || *s.AvgLengthOfStay != 3 {
		t.Errorf("avgLengthOfStay = %v, want 3", s.AvgLengthOfStay)
	}
	if ctr.DateOutliers != 1 {
		t.Errorf("dateOutliers = %d, want 1", ctr.DateOutliers)
	}
	if s.MinAdmissionDate == nil || !s.MinAdmissionDate.Equal(*a.ServiceDate) {
		t.Errorf("minAdmissionDate = %v", s.MinAdmissionDate)
	}
	if s.MaxAdmissionDate == nil || !s.MaxAdmissionDate.Equal(*c.ServiceDate) {
		t.Errorf("maxAdmissionDate = %v", s.MaxAdmissionDate)
	}
}

func TestComputeMAA_HealthScoreCapped(t *testing.T) {
	s, _ := ComputeMAA([]model.StandardizedClaim{
		maaClaim("T1", "Claim Paid", 10000, 10000),
	}, testOpts())
	if s.HealthScore > 90 {
		t.Errorf("healthScore = %v, cap is 90", s.HealthScore)
	}
}

func rghsClaim(id, status string, claimed, approved float64) model.StandardizedClaim {
	c := maaClaim(id, status, claimed, approved)
	c.PayerName = "RGHS TMS"
	return c
}

func trackerRecord(id string, claimed, approved, paid float64) model.StandardizedClaim {
	return model.StandardizedClaim{
		ClaimID:        id,
		PatientName:    "Payment Tracker Patient",
		HospitalName:   "Payment Tracker Hospital",
		ClaimedAmount:  claimed,
		ApprovedAmount: approved,
		PaidAmount:     paid,
		PayerName:      "RGHS Payment Tracker",
	}
}

func TestComputeRGHS_PaymentTrackerDrivesMoney(t *testing.T) {
	tms := []model.StandardizedClaim{
		rghsClaim("R1", "Claim Approved by Claim Unit", 30000, 28000),
		rghsClaim("R2", "Claim Approved by Claim Unit", 20000, 18000),
		rghsClaim("R3", "Claim Pending with Claim Unit", 15000, 0),
	}
	payments := []model.StandardizedClaim{
		trackerRecord("R1", 30000, 28000, 28000),
	}

	s, _ := ComputeRGHS(tms, payments, testOpts())
	if s == nil {
		t.Fatal("expected stats")
	}
	if s.TotalClaimValue != 30000 {
		t.Errorf("totalClaimValue = %v, want payment tracker total 30000", s.TotalClaimValue)
	}
	if s.TotalPaidAmount != 28000 {
		t.Errorf("totalPaidAmount = %v, want 28000", s.TotalPaidAmount)
	}
	// R1 is in the tracker, so only R2's approval is still outstanding.
	if s.ApprovedUnpaidAmount != 18000 {
		t.Errorf("approvedUnpaidAmount = %v, want 18000", s.ApprovedUnpaidAmount)
	}
	// paid / (approvedUnpaid + paid) = 28000/46000
	want := 28000.0 / 46000.0 * 100
	if math.Abs(s.CollectionEfficiency-want) > 0.001 {
		t.Errorf("collectionEfficiency = %v, want %v", s.CollectionEfficiency, want)
	}
	if s.PaidClaims != s.ApprovedClaims {
		t.Errorf("paidClaims = %d, want approvedClaims %d", s.PaidClaims, s.ApprovedClaims)
	}
	if s.FirstPassRate != nil {
		t.Error("firstPassRate must be nil for dual-file scheme")
	}
}

func TestComputeRGHS_ExcludesOPD(t *testing.T) {
	tms := []model.StandardizedClaim{
		rghsClaim("R1", "Claim Approved by Claim Unit", 30000, 28000),
		rghsClaim("R2", "OPD CLAIM APPROVED", 500, 500),
	}
	s, _ := ComputeRGHS(tms, nil, testOpts())
	if s.TotalClaims != 1 {
		t.Errorf("totalClaims = %d, OPD rows must be excluded", s.TotalClaims)
	}
}

func TestComputeRGHS_EmptyAfterOPDFilter(t *testing.T) {
	tms := []model.StandardizedClaim{
		rghsClaim("R1", "OPD CLAIM APPROVED", 500, 500),
	}
	if s, _ := ComputeRGHS(tms, nil, testOpts()); s != nil {
		t.Fatalf("expected nil stats, got %+v", s)
	}
}

func TestComputeMulti_CombinedDenialRate(t *testing.T) {
	var claims []model.StandardizedClaim
	for i := 0; i < 100; i++ {
		status := "Claim Approved by Claim Unit"
		if i < 10 {
			status = "Pre Auth Package Rejected"
		}
		claims = append(claims, rghsClaim(idN("R", i), status, 10000, 9000))
	}
	for i := 0; i < 50; i++ {
		status := "Claim Paid"
		if i < 15 {
			status = "Claim Rejected (Supervisor)"
		}
		claims = append(claims, maaClaim(idN("T", i), status, 12000, 11000))
	}

	s, _ := ComputeMulti(claims, testOpts())
	if s == nil {
		t.Fatal("expected stats")
	}
	if s.TotalClaims != 150 || s.RejectedClaims != 25 {
		t.Fatalf("totals: claims=%d rejected=%d", s.TotalClaims, s.RejectedClaims)
	}
	if math.Abs(s.DenialRate-16.666666) > 0.01 {
		t.Errorf("denialRate = %v, want ~16.67 (recomputed, not averaged)", s.DenialRate)
	}
	if s.PayerBreakdown == nil || s.PayerBreakdown["rghs"] == nil || s.PayerBreakdown["maa"] == nil {
		t.Error("payer breakdown missing sub-results")
	}
}

func TestComputeMulti_SinglePayerPassThrough(t *testing.T) {
	claims := []model.StandardizedClaim{
		maaClaim("T1", "Claim Paid", 10000, 9000),
		maaClaim("T2", "Claim Rejected (Analyser)", 5000, 0),
	}
	s, _ := ComputeMulti(claims, testOpts())
	if s == nil || s.TotalClaims != 2 {
		t.Fatalf("stats = %+v", s)
	}
	if s.PayerBreakdown != nil {
		t.Error("single-payer input should not produce a breakdown")
	}
	if s.DenialRate != 50 {
		t.Errorf("denialRate = %v", s.DenialRate)
	}
}

func TestComputeMulti_Empty(t *testing.T) {
	if s, _ := ComputeMulti(nil, testOpts()); s != nil {
		t.Fatalf("expected nil, got %+v", s)
	}
}

func idN(prefix string, n int) string {
	return prefix + string(rune('A'+n/26)) + string(rune('A'+n%26))
}
