package decode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestOpen_CSV(t *testing.T) {
	path := writeFile(t, "claims.csv",
		"TID,Patient Name,Status\nT001,Mohan Singh,Claim Paid\nT002,Ram Lal,Pending\n")

	table, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(table.Headers) != 3 {
		t.Fatalf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0]["Patient Name"] != "Mohan Singh" {
		t.Errorf("row 0 = %v", table.Rows[0])
	}
}

func TestOpen_LeadingBlankAndTitleRows(t *testing.T) {
	path := writeFile(t, "titled.csv",
		",,\n"+
			"Generic Report,February 2025,All Hospitals\n"+
			"TID,Patient Name,Status\n"+
			"T001,Mohan Singh,Claim Paid\n")

	table, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if table.Headers[0] != "TID" {
		t.Fatalf("headers = %v, want TID first", table.Headers)
	}
	if len(table.Rows) != 1 || table.Rows[0]["TID"] != "T001" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestOpen_SkipsBlankDataRows(t *testing.T) {
	path := writeFile(t, "gaps.csv",
		"TID,Patient Name,Status\nT001,A,Paid\n,,\nT002,B,Pending\n")

	table, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("expected blank row skipped, got %d rows", len(table.Rows))
	}
}

func TestOpen_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	if _, err := Open(path); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestOpen_HeaderOnly(t *testing.T) {
	path := writeFile(t, "headeronly.csv", "TID,Patient Name,Status\n")
	if _, err := Open(path); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "claims.pdf", "junk")
	if _, err := Open(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/claims.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOpen_BlankInteriorHeader(t *testing.T) {
	// A blank header cell must not shift the columns after it; the cells
	// under it are dropped, not reassigned to the next header.
	path := writeFile(t, "blankcol.csv",
		"TID,Patient Name,,Pkg Rate\nT001,Mohan Singh,some note,15000\n")

	table, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(table.Headers) != 3 {
		t.Fatalf("headers = %v, blank header must not be exposed", table.Headers)
	}
	if table.Rows[0]["Pkg Rate"] != "15000" {
		t.Errorf("Pkg Rate = %q, want 15000", table.Rows[0]["Pkg Rate"])
	}
	if table.Rows[0]["Patient Name"] != "Mohan Singh" {
		t.Errorf("Patient Name = %q", table.Rows[0]["Patient Name"])
	}
}

func TestOpen_RaggedRows(t *testing.T) {
	path := writeFile(t, "ragged.csv",
		"TID,Patient Name,Status,Pkg Rate\nT001,A,Paid\n")

	table, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if table.Rows[0]["Pkg Rate"] != "" {
		t.Errorf("missing trailing cell should default to empty, got %q", table.Rows[0]["Pkg Rate"])
	}
}
