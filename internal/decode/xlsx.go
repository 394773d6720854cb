package decode

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func readWorkbook(path string) (*Table, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	// Only the first sheet carries data in every known payer export.
	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRecords(records)
}
