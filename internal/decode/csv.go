package decode

import (
	"encoding/csv"
	"fmt"
	"os"
)

func readDelimited(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	// Payer exports routinely have ragged rows and stray quotes.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read delimited file: %w", err)
	}
	return fromRecords(records)
}
