package source

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/borgmon/rollout-board/pkg/models"
	"github.com/borgmon/rollout-board/pkg/schedule"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("SetSheetName: %v", err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "agendamentos.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestXLSXSourceRows(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, DefaultSheet, [][]interface{}{
		{"Data", "Hora", "Nome", "Diretoria"},
		{"05/11/2025", 9.5, "Ana Maria Silva", "DTI"},
		{"06/11/2025", "8h00", "Bruno Costa"},
	})

	rs, err := NewXLSXSource(path, "").Rows()
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}

	if len(rs.Columns) != 4 || rs.Columns[0] != "Data" {
		t.Fatalf("columns = %v", rs.Columns)
	}
	if len(rs.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rs.Rows))
	}

	if got := rs.Cell(0, 0); got.Kind != models.CellText || got.Text != "05/11/2025" {
		t.Fatalf("date cell = %+v", got)
	}
	if got := rs.Cell(0, 1); got.Kind != models.CellNumber || got.Number != 9.5 {
		t.Fatalf("numeric time cell = %+v", got)
	}
	// Trailing empties trimmed by the reader come back as missing cells.
	if got := rs.Cell(1, 3); got.Kind != models.CellMissing {
		t.Fatalf("padded cell = %+v", got)
	}
}

func TestXLSXSourceFeedsIngestion(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, DefaultSheet, [][]interface{}{
		{"Data", "Hora", "Nome"},
		{"05/11/2025", 9.5, "Ana Maria Silva"},
	})

	rs, err := NewXLSXSource(path, DefaultSheet).Rows()
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}

	entries := schedule.BuildEntries(rs)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Time == nil || e.Time.Hour != 9 || e.Time.Minute != 30 {
		t.Fatalf("fractional hour not normalized: %+v", e.Time)
	}
}

func TestXLSXSourceErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewXLSXSource(filepath.Join(t.TempDir(), "missing.xlsx"), "").Rows(); err == nil {
		t.Fatal("missing file should fail")
	}

	path := writeWorkbook(t, "Outra", [][]interface{}{{"Data", "Nome"}})
	if _, err := NewXLSXSource(path, DefaultSheet).Rows(); err == nil {
		t.Fatal("missing sheet should fail")
	}
}
