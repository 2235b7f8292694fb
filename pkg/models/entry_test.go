package models

import "testing"

func TestAbbreviateName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"full name keeps first two words", "Ana Maria Silva Santos", "Ana Maria"},
		{"two words unchanged", "Ana Maria", "Ana Maria"},
		{"single word unchanged", "Ana", "Ana"},
		{"extra whitespace collapsed", "  Ana   Maria  Silva ", "Ana Maria"},
		{"empty stays empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AbbreviateName(tc.in); got != tc.want {
				t.Fatalf("AbbreviateName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestWallClock(t *testing.T) {
	t.Parallel()

	c := WallClock{Hour: 9, Minute: 5}
	if got := c.String(); got != "09:05" {
		t.Fatalf("String() = %q, want %q", got, "09:05")
	}
	if got := c.Minutes(); got != 545 {
		t.Fatalf("Minutes() = %d, want 545", got)
	}

	// Zero value is midnight, a valid time, distinct from a nil *WallClock.
	zero := WallClock{}
	if got := zero.String(); got != "00:00" {
		t.Fatalf("zero String() = %q, want %q", got, "00:00")
	}
}

func TestEntryDisplayName(t *testing.T) {
	t.Parallel()

	e := Entry{Name: "João Pedro Alves Costa"}
	if got := e.DisplayName(); got != "João Pedro" {
		t.Fatalf("DisplayName() = %q, want %q", got, "João Pedro")
	}
}

func TestRowSetCellRaggedRow(t *testing.T) {
	t.Parallel()

	rs := RowSet{
		Columns: []string{"Data", "Hora", "Nome"},
		Rows: [][]CellValue{
			{TextCell("05/11/2025")},
		},
	}

	if got := rs.Cell(0, 0); got.Kind != CellText {
		t.Fatalf("Cell(0,0).Kind = %v, want CellText", got.Kind)
	}
	// Cells past the physical row read as missing.
	if got := rs.Cell(0, 2); got.Kind != CellMissing {
		t.Fatalf("Cell(0,2).Kind = %v, want CellMissing", got.Kind)
	}
	if got := rs.Cell(5, 0); got.Kind != CellMissing {
		t.Fatalf("Cell(5,0).Kind = %v, want CellMissing", got.Kind)
	}
}
