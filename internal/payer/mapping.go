package payer

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eyther/claimstats/internal/model"
	"github.com/eyther/claimstats/internal/normalize"
)

// Kind distinguishes the two record families a payer file can carry.
type Kind string

const (
	// KindApproval files carry claim/approval rows with full patient identity.
	KindApproval Kind = "approval"
	// KindPaymentTracker files carry settlement rows that may lack patient
	// and hospital identity; the mapper substitutes placeholders instead of
	// dropping them.
	KindPaymentTracker Kind = "payment-tracker"
)

// Mapping is the static configuration for one supported payer format.
// Loaded once at process start and never mutated.
type Mapping struct {
	PayerName string `yaml:"payerName"`
	Kind      Kind   `yaml:"kind"`
	// IdentificationHeaders must all be present (case-insensitive substring
	// match) in a file's header row for the file to be claimed.
	IdentificationHeaders []string `yaml:"identificationHeaders"`
	// ColumnMapping maps source column names to canonical field names.
	ColumnMapping map[string]string `yaml:"columnMapping"`
}

//go:embed mappings.yaml
var defaultMappings []byte

// LoadDefault returns the embedded mapping table, validated.
func LoadDefault() ([]Mapping, error) {
	return parse(defaultMappings)
}

// LoadFile reads and validates a mapping table from a YAML file.
func LoadFile(path string) ([]Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]Mapping, error) {
	var doc struct {
		Payers []Mapping `yaml:"payers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse mapping table: %w", err)
	}
	if err := ValidateTable(doc.Payers); err != nil {
		return nil, err
	}
	return doc.Payers, nil
}

// ValidateTable checks the mapping table before first use: every payer must
// be identifiable, and every required canonical field must be mapped exactly
// once per payer. A bad table is a startup error, not a per-file one.
func ValidateTable(mappings []Mapping) error {
	if len(mappings) == 0 {
		return fmt.Errorf("mapping table is empty")
	}

	seenNames := make(map[string]bool)
	for i, m := range mappings {
		label := m.PayerName
		if label == "" {
			label = fmt.Sprintf("mapping at index %d", i)
		}
		if m.PayerName == "" {
			return fmt.Errorf("%s: payerName is required", label)
		}
		if seenNames[m.PayerName] {
			return fmt.Errorf("duplicate payer name %q", m.PayerName)
		}
		seenNames[m.PayerName] = true

		if m.Kind != KindApproval && m.Kind != KindPaymentTracker {
			return fmt.Errorf("%s: unknown kind %q", label, m.Kind)
		}
		if len(m.IdentificationHeaders) == 0 {
			return fmt.Errorf("%s: identificationHeaders must be non-empty", label)
		}

		targets := make(map[string]int)
		for src, dst := range m.ColumnMapping {
			if src == "" {
				return fmt.Errorf("%s: empty source column", label)
			}
			if _, ok := model.FieldByName(dst); !ok {
				return fmt.Errorf("%s: column %q maps to unknown field %q", label, src, dst)
			}
			targets[dst]++
		}
		for _, required := range model.RequiredFieldNames() {
			switch targets[required] {
			case 0:
				return fmt.Errorf("%s: required field %q is not mapped", label, required)
			case 1:
			default:
				return fmt.Errorf("%s: field %q is mapped %d times", label, required, targets[required])
			}
		}
		for dst, n := range targets {
			if n > 1 {
				return fmt.Errorf("%s: field %q is mapped %d times", label, dst, n)
			}
		}
	}
	return nil
}

// Identify determines which payer produced a file from its header names
// alone. Every identification header of a mapping must appear as a
// case-insensitive substring of some file header; the first mapping in
// table order that qualifies wins. Pure function of (headers, mappings).
func Identify(headers []string, mappings []Mapping) (Mapping, bool) {
	folded := make([]string, len(headers))
	for i, h := range headers {
		folded[i] = normalize.FoldHeader(h)
	}

	for _, m := range mappings {
		if matchesAll(folded, m.IdentificationHeaders) {
			return m, true
		}
	}
	return Mapping{}, false
}

func matchesAll(folded []string, idHeaders []string) bool {
	for _, id := range idHeaders {
		want := strings.ToLower(strings.TrimSpace(id))
		found := false
		for _, h := range folded {
			if strings.Contains(h, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
