package model

import "fmt"

// FileError records why a single file in a batch could not be processed.
// File-level failures never abort the batch.
type FileError struct {
	FileName string `json:"fileName"`
	Err      error  `json:"-"`
	Message  string `json:"error"`
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.FileName, e.Message)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// PayerTally tracks per-payer file and record counts within one batch.
type PayerTally struct {
	Files   int `json:"files"`
	Records int `json:"records"`
}

// BatchStats summarizes one batch run. RowsSeen - RowsDropped equals
// TotalRecords across the successful files.
type BatchStats struct {
	TotalFiles      int                   `json:"totalFiles"`
	SuccessfulFiles int                   `json:"successfulFiles"`
	FailedFiles     int                   `json:"failedFiles"`
	TotalRecords    int                   `json:"totalRecords"`
	RowsSeen        int                   `json:"rowsSeen"`
	RowsDropped     int                   `json:"rowsDropped"`
	PayerBreakdown  map[string]PayerTally `json:"payerBreakdown"`
}

// FileSummary records the per-file outcome of a successful decode+map pass.
type FileSummary struct {
	FileName    string `json:"fileName"`
	FileSHA256  string `json:"fileSha256,omitempty"`
	PayerName   string `json:"payerName"`
	RowsSeen    int    `json:"rowsSeen"`
	RowsMapped  int    `json:"rowsMapped"`
	RowsDropped int    `json:"rowsDropped"`
}

// ProcessingResult is the merged outcome of one batch upload. It lives only
// for the duration of a single Process call.
type ProcessingResult struct {
	BatchID          string              `json:"batchId"`
	ConsolidatedData []StandardizedClaim `json:"consolidatedData"`
	Files            []FileSummary       `json:"files"`
	ProcessingErrors []*FileError        `json:"processingErrors"`
	Stats            BatchStats          `json:"stats"`
}
