// Package mapper converts payer-specific rows into standardized claims
// using the declarative column mapping chosen for the file. All downstream
// logic operates on the typed canonical record, never on raw header lookups.
package mapper

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/eyther/claimstats/internal/decode"
	"github.com/eyther/claimstats/internal/model"
	"github.com/eyther/claimstats/internal/normalize"
	"github.com/eyther/claimstats/internal/payer"
)

// Placeholder identity for payment-tracker rows that arrive without
// patient or hospital names.
const (
	placeholderPatient  = "Payment Tracker Patient"
	placeholderHospital = "Payment Tracker Hospital"
)

// MapRow converts one raw row. ok=false means the row fails validation
// (empty claim id, or missing patient identity outside the payment-tracker
// exception) and must be excluded from results.
func MapRow(row decode.Row, m payer.Mapping) (model.StandardizedClaim, bool) {
	// Fold the row keys once so source columns resolve case-insensitively.
	folded := make(map[string]string, len(row))
	for k, v := range row {
		folded[normalize.FoldHeader(k)] = v
	}

	claim := model.StandardizedClaim{PayerName: m.PayerName}
	for src, dst := range m.ColumnMapping {
		field, ok := model.FieldByName(dst)
		if !ok {
			continue // table validation rejects these before use
		}
		raw, present := folded[normalize.FoldHeader(src)]
		setField(&claim, field, raw, present)
	}

	if m.Kind == payer.KindPaymentTracker {
		if claim.PatientName == "" {
			claim.PatientName = placeholderPatient
		}
		if claim.HospitalName == "" {
			claim.HospitalName = placeholderHospital
		}
	}

	if claim.ClaimID == "" {
		return model.StandardizedClaim{}, false
	}
	if claim.PatientName == "" && m.Kind != payer.KindPaymentTracker {
		return model.StandardizedClaim{}, false
	}
	return claim, true
}

// Result summarizes one file's mapping pass.
type Result struct {
	Claims      []model.StandardizedClaim
	RowsSeen    int
	RowsDropped int
}

// MapTable maps every row of a decoded table. Dropped rows are counted,
// never silently discarded.
func MapTable(table *decode.Table, m payer.Mapping, log zerolog.Logger) Result {
	res := Result{RowsSeen: len(table.Rows)}
	for _, row := range table.Rows {
		claim, ok := MapRow(row, m)
		if !ok {
			res.RowsDropped++
			continue
		}
		res.Claims = append(res.Claims, claim)
	}
	if res.RowsDropped > 0 {
		log.Warn().
			Str("payer", m.PayerName).
			Int("rows_dropped", res.RowsDropped).
			Int("rows_seen", res.RowsSeen).
			Msg("rows dropped for missing required fields")
	}
	return res
}

func setField(c *model.StandardizedClaim, field model.CanonicalField, raw string, present bool) {
	switch field.Kind {
	case model.KindDate:
		var t *time.Time
		if present {
			t = normalize.ParseDate(raw)
		}
		switch field.Name {
		case "serviceDate":
			c.ServiceDate = t
		case "dischargeDate":
			c.DischargeDate = t
		case "paymentDate":
			c.PaymentDate = t
		}
	case model.KindMoney, model.KindCount:
		var v float64
		if present {
			if field.Kind == model.KindCount {
				v = normalize.ParseCount(raw)
			} else {
				v = normalize.ParseMoney(raw)
			}
		}
		switch field.Name {
		case "claimedAmount":
			c.ClaimedAmount = v
		case "approvedAmount":
			c.ApprovedAmount = v
		case "paidAmount":
			c.PaidAmount = v
		case "queryRaised":
			c.QueryRaised = v
		case "daysToPayment":
			c.DaysToPayment = v
		}
	default:
		var s string
		if present {
			s = normalize.CleanCell(raw)
		}
		switch field.Name {
		case "claimId":
			c.ClaimID = s
		case "patientName":
			c.PatientName = s
		case "hospitalName":
			c.HospitalName = s
		case "status":
			c.Status = s
		case "specialty":
			c.Specialty = s
		case "districtName":
			c.DistrictName = s
		case "gender":
			c.Gender = s
		case "packageCode":
			c.PackageCode = s
		case "queryStatus":
			c.QueryStatus = s
		}
	}
}
