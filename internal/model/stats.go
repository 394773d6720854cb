package model

import "time"

// StatusBucket is one entry of the status-wise breakdown.
type StatusBucket struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// DashboardStats is the full statistics bundle for one claim set. It is a
// derived value: always recomputed in full, never patched in place.
//
// Pointer-typed metrics are nil when the underlying payer does not record
// the data needed to compute them. Callers must render nil as "not
// available", never as zero.
type DashboardStats struct {
	TotalClaims    int `json:"totalClaims"`
	PaidClaims     int `json:"paidClaims"`
	ApprovedClaims int `json:"approvedClaims"`
	RejectedClaims int `json:"rejectedClaims"`
	PendingClaims  int `json:"pendingClaims"`

	TotalClaimValue     float64 `json:"totalClaimValue"`
	TotalApprovedAmount float64 `json:"totalApprovedAmount"`
	TotalPaidAmount     float64 `json:"totalPaidAmount"`
	AverageClaimAmount  float64 `json:"averageClaimAmount"`

	RevenueLeakage       float64 `json:"revenueLeakage"`
	RevenueLeakageRate   float64 `json:"revenueLeakageRate"`
	ApprovedUnpaidAmount float64 `json:"approvedUnpaidAmount"`
	RevenueStuckInQuery  float64 `json:"revenueStuckInQuery"`
	RejectedAmount       float64 `json:"rejectedAmount"`
	PendingAmount        float64 `json:"pendingAmount"`

	DenialRate           float64 `json:"denialRate"`
	CollectionEfficiency float64 `json:"collectionEfficiency"`
	// CollectionEfficiencyOverflow marks the >100% case, which the formula
	// permits when paid rows exceed grouped approvals. The value is reported
	// unclamped; this flag tells callers to surface it as suspect.
	CollectionEfficiencyOverflow bool `json:"collectionEfficiencyOverflow"`

	FirstPassRate  *float64 `json:"firstPassRate"`
	QueryIncidence *float64 `json:"queryIncidence"`

	AvgLengthOfStay           *float64 `json:"avgLengthOfStay"`
	AvgDischargeToPaymentDays *float64 `json:"avgDischargeToPaymentDays"`
	QueryAvgDays              *float64 `json:"queryAvgDays"`
	CleanAvgDays              *float64 `json:"cleanAvgDays"`
	QueryCausedDelay          *float64 `json:"queryCausedDelay"`

	HighValueClaimsPercentage float64 `json:"highValueClaimsPercentage"`

	HealthScore        float64 `json:"healthScore"`
	ReimbursementScore float64 `json:"reimbursementScore"`
	EfficiencyScore    float64 `json:"efficiencyScore"`
	CashFlowScore      float64 `json:"cashFlowScore"`

	MinAdmissionDate *time.Time `json:"minAdmissionDate"`
	MaxAdmissionDate *time.Time `json:"maxAdmissionDate"`

	ClaimsByStatus map[string]StatusBucket `json:"claimsByStatus"`

	// PayerBreakdown holds per-payer sub-results when this bundle was
	// produced by multi-payer consolidation; nil otherwise.
	PayerBreakdown map[string]*DashboardStats `json:"payerBreakdown,omitempty"`
}

// SavingsBreakdown is the what-if projection produced by the opportunity
// calculator from a baseline DashboardStats.
type SavingsBreakdown struct {
	DenialRecovery        float64 `json:"denialRecovery"`
	ClaimsSaved           int     `json:"claimsSaved"`
	WorkingCapitalSavings float64 `json:"workingCapitalSavings"`
	AdditionalCleanClaims int     `json:"additionalCleanClaims"`
	StaffingCostAvoidance float64 `json:"staffingCostAvoidance"`
	TotalSavings          float64 `json:"totalSavings"`

	Staffing *StaffingEstimate `json:"staffing,omitempty"`
}

// StaffingEstimate sizes the claim-processing team a hospital would
// otherwise have to hire.
type StaffingEstimate struct {
	DailyClaims      int     `json:"dailyClaims"`
	ClaimsPerDay     int     `json:"claimsPerDay"`
	ClaimExperts     int     `json:"claimExperts"`
	Doctors          int     `json:"doctors"`
	ExpertAnnualCost float64 `json:"expertAnnualCost"`
	DoctorAnnualCost float64 `json:"doctorAnnualCost"`
	TotalAnnualCost  float64 `json:"totalAnnualCost"`
}

// ROIResult applies a bounded fee to total savings. RoiMultiple and
// PaybackWeeks are capped to keep divide-by-near-zero artifacts out of
// reports; the Raw fields keep the uncapped values for inspection.
type ROIResult struct {
	Fee             float64 `json:"fee"`
	NetSavings      float64 `json:"netSavings"`
	RoiMultiple     float64 `json:"roiMultiple"`
	PaybackWeeks    float64 `json:"paybackWeeks"`
	MonthlySavings  float64 `json:"monthlySavings"`
	RawRoiMultiple  float64 `json:"rawRoiMultiple"`
	RawPaybackWeeks float64 `json:"rawPaybackWeeks"`
}
