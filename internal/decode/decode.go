// Package decode turns uploaded claim extracts (delimited text, xlsx
// spreadsheets, parquet) into ordered string-keyed row tables. It knows
// nothing about payers; identification and mapping happen downstream.
package decode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eyther/claimstats/internal/normalize"
)

// ErrEmptyFile is returned when a file decodes to zero data rows.
var ErrEmptyFile = errors.New("file is empty or has no data rows")

// ErrUnsupportedFormat is returned for file extensions no decoder claims.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Row is one source line keyed by cleaned header name.
type Row map[string]string

// Table is the decoded form of one uploaded file.
type Table struct {
	Headers []string
	Rows    []Row
}

// Open decodes the file at path, dispatching on extension.
func Open(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	case ".xlsx":
		return readWorkbook(path)
	case ".parquet":
		return readParquet(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// fromRecords builds a Table from raw positional records, locating the
// header row first. Spreadsheet exports often lead with blank rows or a
// title line, so the header is the first record within the first ten that
// has at least three non-empty cells; a title record whose first cell
// contains "generic" pushes detection to the next record.
func fromRecords(records [][]string) (*Table, error) {
	headerIdx := -1
	var headers []string

	limit := len(records)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		nonEmpty := 0
		for _, cell := range records[i] {
			if strings.TrimSpace(cell) != "" {
				nonEmpty++
			}
		}
		if nonEmpty >= 3 {
			headerIdx = i
			headers = cleanRecord(records[i])
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrEmptyFile
	}

	if len(headers) > 0 && strings.Contains(strings.ToLower(headers[0]), "generic") {
		if headerIdx+1 >= len(records) {
			return nil, ErrEmptyFile
		}
		headerIdx++
		headers = cleanRecord(records[headerIdx])
	}

	t := &Table{}
	for _, h := range headers {
		if h != "" {
			t.Headers = append(t.Headers, h)
		}
	}
	for _, rec := range records[headerIdx+1:] {
		if isBlank(rec) {
			continue
		}
		row := make(Row, len(t.Headers))
		for col, h := range headers {
			if h == "" {
				continue
			}
			if col < len(rec) {
				row[h] = normalize.CleanCell(rec[col])
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return nil, ErrEmptyFile
	}
	return t, nil
}

// cleanRecord cleans header cells in place, keeping positions. A blank
// header cell stays as an empty placeholder so the cells under it keep
// their column alignment; row building skips the placeholder columns.
func cleanRecord(rec []string) []string {
	out := make([]string, len(rec))
	for i, cell := range rec {
		out[i] = normalize.CleanHeader(cell)
	}
	return out
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
