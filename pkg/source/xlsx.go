package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/borgmon/rollout-board/pkg/models"
)

// DefaultSheet is the worksheet the rollout spreadsheet ships its schedule on.
const DefaultSheet = "Planilha SO"

// XLSXSource reads the appointment spreadsheet from disk. The first row is
// the column schema; every following row becomes a raw row for ingestion.
type XLSXSource struct {
	Path  string
	Sheet string
}

// NewXLSXSource creates a source for the given workbook path. An empty sheet
// name falls back to DefaultSheet.
func NewXLSXSource(path, sheet string) *XLSXSource {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &XLSXSource{Path: path, Sheet: sheet}
}

// Rows opens the workbook and reads the schedule sheet into a raw row set.
func (s *XLSXSource) Rows() (models.RowSet, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return models.RowSet{}, fmt.Errorf("failed to open workbook %s: %w", s.Path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.Sheet)
	if err != nil {
		return models.RowSet{}, fmt.Errorf("failed to read sheet %q: %w", s.Sheet, err)
	}
	if len(rows) == 0 {
		return models.RowSet{}, fmt.Errorf("sheet %q is empty", s.Sheet)
	}

	header := rows[0]
	rs := models.RowSet{
		Columns: header,
		Rows:    make([][]models.CellValue, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		cells := make([]models.CellValue, len(header))
		for col := range header {
			if col < len(row) {
				cells[col] = classifyCell(row[col])
			} else {
				// GetRows trims trailing empties; pad the schema out.
				cells[col] = models.MissingCell()
			}
		}
		rs.Rows = append(rs.Rows, cells)
	}
	return rs, nil
}

// classifyCell tags a formatted cell value. excelize hands back formatted
// strings, so dates and clock texts stay text (the normalizer parses them);
// plain numerics become number cells so fractional-hour times work.
func classifyCell(s string) models.CellValue {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return models.MissingCell()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return models.NumberCell(n)
	}
	return models.TextCell(trimmed)
}
