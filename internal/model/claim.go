package model

import "time"

// StandardizedClaim is the canonical claim record every payer format is
// mapped into. One StandardizedClaim corresponds to one source-file line,
// which may be a single line item of a larger claim.
type StandardizedClaim struct {
	ClaimID       string     `json:"claimId"`
	PatientName   string     `json:"patientName"`
	HospitalName  string     `json:"hospitalName"`
	ServiceDate   *time.Time `json:"serviceDate"`
	DischargeDate *time.Time `json:"dischargeDate"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`

	// Status keeps the payer's own vocabulary ("Claim Paid", "CLAIM APPROVED
	// BY CLAIM UNIT", ...). Classification happens in the stats package.
	Status string `json:"status"`

	ClaimedAmount  float64 `json:"claimedAmount"`
	ApprovedAmount float64 `json:"approvedAmount"`
	PaidAmount     float64 `json:"paidAmount"`

	PayerName string `json:"payerName"`

	// Optional extension attributes; empty/zero when the payer's extract
	// does not carry them.
	Specialty     string  `json:"specialty,omitempty"`
	DistrictName  string  `json:"districtName,omitempty"`
	Gender        string  `json:"gender,omitempty"`
	PackageCode   string  `json:"packageCode,omitempty"`
	QueryStatus   string  `json:"queryStatus,omitempty"`
	QueryRaised   float64 `json:"queryRaised,omitempty"`
	DaysToPayment float64 `json:"daysToPayment,omitempty"`
}

// AggregatedClaim is one claim-level record per distinct claim id. Money
// fields are sums over all component rows; queryRaised and daysToPayment
// are the maximum observed value. Components keeps the source rows for
// drill-down and is never mutated after aggregation.
type AggregatedClaim struct {
	StandardizedClaim
	Components []StandardizedClaim `json:"components"`
}
