package model

// FieldKind drives how the mapper coerces a source column value.
type FieldKind int

const (
	KindString FieldKind = iota
	KindMoney
	KindCount
	KindDate
)

// CanonicalField describes one field of the standardized claim schema.
type CanonicalField struct {
	Name     string
	Kind     FieldKind
	Required bool // every payer mapping must map required fields exactly once
}

// CanonicalFields lists the standardized schema in canonical order.
var CanonicalFields = []CanonicalField{
	{Name: "claimId", Kind: KindString, Required: true},
	{Name: "patientName", Kind: KindString, Required: true},
	{Name: "hospitalName", Kind: KindString, Required: true},
	{Name: "serviceDate", Kind: KindDate, Required: true},
	{Name: "dischargeDate", Kind: KindDate, Required: true},
	{Name: "status", Kind: KindString, Required: true},
	{Name: "claimedAmount", Kind: KindMoney, Required: true},
	{Name: "approvedAmount", Kind: KindMoney, Required: true},
	{Name: "paidAmount", Kind: KindMoney, Required: true},
	{Name: "paymentDate", Kind: KindDate, Required: false},
	{Name: "specialty", Kind: KindString, Required: false},
	{Name: "districtName", Kind: KindString, Required: false},
	{Name: "gender", Kind: KindString, Required: false},
	{Name: "packageCode", Kind: KindString, Required: false},
	{Name: "queryStatus", Kind: KindString, Required: false},
	{Name: "queryRaised", Kind: KindCount, Required: false},
	{Name: "daysToPayment", Kind: KindCount, Required: false},
}

// FieldByName returns the canonical field definition, or ok=false.
func FieldByName(name string) (CanonicalField, bool) {
	for _, f := range CanonicalFields {
		if f.Name == name {
			return f, true
		}
	}
	return CanonicalField{}, false
}

// RequiredFieldNames returns the names every mapping must cover.
func RequiredFieldNames() []string {
	var names []string
	for _, f := range CanonicalFields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
