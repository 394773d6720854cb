package cache

import (
	"time"

	"github.com/eyther/claimstats/internal/model"
)

// CompactClaim is the short-key wire form used for cached claim sets.
// Claim sets run to hundreds of thousands of rows, and the long JSON
// field names dominate the serialized size; two-letter keys plus
// omitted zero values cut the payload roughly in half.
type CompactClaim struct {
	PayerName     string     `json:"pn,omitempty"`
	ClaimID       string     `json:"ci,omitempty"`
	PatientName   string     `json:"pt,omitempty"`
	HospitalName  string     `json:"hn,omitempty"`
	ServiceDate   *time.Time `json:"sd,omitempty"`
	DischargeDate *time.Time `json:"dd,omitempty"`
	PaymentDate   *time.Time `json:"pd,omitempty"`
	Status        string     `json:"s,omitempty"`
	ClaimedAmount float64    `json:"ca,omitempty"`
	ApprovedAmt   float64    `json:"aa,omitempty"`
	PaidAmount    float64    `json:"pa,omitempty"`

	// Extension fields keep their full names; they are sparse enough
	// that omitempty alone covers them.
	Specialty     string  `json:"specialty,omitempty"`
	DistrictName  string  `json:"districtName,omitempty"`
	Gender        string  `json:"gender,omitempty"`
	PackageCode   string  `json:"packageCode,omitempty"`
	QueryStatus   string  `json:"queryStatus,omitempty"`
	QueryRaised   float64 `json:"queryRaised,omitempty"`
	DaysToPayment float64 `json:"daysToPayment,omitempty"`
}

// Compress packs claims into their compact wire form.
func Compress(claims []model.StandardizedClaim) []CompactClaim {
	out := make([]CompactClaim, len(claims))
	for i, c := range claims {
		out[i] = CompactClaim{
			PayerName:     c.PayerName,
			ClaimID:       c.ClaimID,
			PatientName:   c.PatientName,
			HospitalName:  c.HospitalName,
			ServiceDate:   c.ServiceDate,
			DischargeDate: c.DischargeDate,
			PaymentDate:   c.PaymentDate,
			Status:        c.Status,
			ClaimedAmount: c.ClaimedAmount,
			ApprovedAmt:   c.ApprovedAmount,
			PaidAmount:    c.PaidAmount,
			Specialty:     c.Specialty,
			DistrictName:  c.DistrictName,
			Gender:        c.Gender,
			PackageCode:   c.PackageCode,
			QueryStatus:   c.QueryStatus,
			QueryRaised:   c.QueryRaised,
			DaysToPayment: c.DaysToPayment,
		}
	}
	return out
}

// Decompress restores the canonical form. Compress then Decompress
// preserves every non-empty field.
func Decompress(compact []CompactClaim) []model.StandardizedClaim {
	out := make([]model.StandardizedClaim, len(compact))
	for i, c := range compact {
		out[i] = model.StandardizedClaim{
			PayerName:      c.PayerName,
			ClaimID:        c.ClaimID,
			PatientName:    c.PatientName,
			HospitalName:   c.HospitalName,
			ServiceDate:    c.ServiceDate,
			DischargeDate:  c.DischargeDate,
			PaymentDate:    c.PaymentDate,
			Status:         c.Status,
			ClaimedAmount:  c.ClaimedAmount,
			ApprovedAmount: c.ApprovedAmt,
			PaidAmount:     c.PaidAmount,
			Specialty:      c.Specialty,
			DistrictName:   c.DistrictName,
			Gender:         c.Gender,
			PackageCode:    c.PackageCode,
			QueryStatus:    c.QueryStatus,
			QueryRaised:    c.QueryRaised,
			DaysToPayment:  c.DaysToPayment,
		}
	}
	return out
}
