package models

import "time"

// CellKind discriminates the kinds of raw values a tabular source can produce
type CellKind int

const (
	CellMissing CellKind = iota // empty or null cell
	CellText                    // free text
	CellNumber                  // numeric cell
	CellDate                    // native date or datetime
	CellTime                    // native time of day
)

// CellValue is one raw cell from a tabular source. Exactly one of the
// payload fields is meaningful, selected by Kind.
type CellValue struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time // CellDate: may carry a clock component for datetime cells
	Clock  WallClock // CellTime
}

func MissingCell() CellValue {
	return CellValue{Kind: CellMissing}
}

func TextCell(s string) CellValue {
	return CellValue{Kind: CellText, Text: s}
}

func NumberCell(n float64) CellValue {
	return CellValue{Kind: CellNumber, Number: n}
}

func DateCell(t time.Time) CellValue {
	return CellValue{Kind: CellDate, Date: t}
}

func TimeCell(c WallClock) CellValue {
	return CellValue{Kind: CellTime, Clock: c}
}

// RowSet is an ordered batch of raw rows sharing one column schema, as
// produced by a tabular source. Rows are indexed positionally against Columns.
type RowSet struct {
	Columns []string
	Rows    [][]CellValue
}

// Cell returns the value at (row, col), or a missing cell when the row is
// shorter than the schema (ragged rows are common in spreadsheet exports).
func (rs RowSet) Cell(row, col int) CellValue {
	if row < 0 || row >= len(rs.Rows) {
		return MissingCell()
	}
	r := rs.Rows[row]
	if col < 0 || col >= len(r) {
		return MissingCell()
	}
	return r[col]
}
