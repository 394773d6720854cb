package decode

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/eyther/claimstats/internal/normalize"
)

const parquetReadBatch = 256

// readParquet streams a flat parquet file into a Table. Columns are read
// generically because each payer's extract has its own schema; values are
// carried as strings and coerced later by the mapper.
func readParquet(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	var headers []string
	for _, field := range pf.Schema().Fields() {
		headers = append(headers, normalize.CleanHeader(field.Name()))
	}
	if len(headers) == 0 {
		return nil, ErrEmptyFile
	}

	t := &Table{Headers: headers}
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		buf := make([]parquet.Row, parquetReadBatch)
		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				row := make(Row, len(headers))
				for _, h := range headers {
					row[h] = ""
				}
				for _, v := range buf[i] {
					col := int(v.Column())
					if col < 0 || col >= len(headers) || v.IsNull() {
						continue
					}
					row[headers[col]] = normalize.CleanCell(v.String())
				}
				t.Rows = append(t.Rows, row)
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				rows.Close()
				return nil, fmt.Errorf("read parquet rows: %w", readErr)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("close parquet row reader: %w", err)
		}
	}

	if len(t.Rows) == 0 {
		return nil, ErrEmptyFile
	}
	return t, nil
}
