package schedule

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/borgmon/rollout-board/pkg/models"
)

// Column name synonyms accepted from the source spreadsheet, in priority
// order. Date and name are mandatory; the rest default to absent.
var (
	DateColumns          = []string{"Data", "DATA", "data", "Dia", "Dia agendado"}
	TimeColumns          = []string{"Hora formatada", "Hora", "HORA", "Agendamento", "Horário"}
	NameColumns          = []string{"Nome", "NOME", "Colaborador", "Usuário", "Pessoa"}
	UnitPrimaryColumns   = []string{"Diretoria", "DIRETORIA", "Dir"}
	UnitSecondaryColumns = []string{"Gerencia", "Gerência", "GERENCIA", "GERÊNCIA", "Ger"}
)

// PlaceholderName substitutes for an empty or missing subject name.
const PlaceholderName = "Sem nome"

// Sentinel used to order entries without a time within a day.
var endOfDay = models.WallClock{Hour: 23, Minute: 59}

// ResolveColumn finds the index of the first candidate present in the
// schema: exact matches win over case-insensitive ones.
func ResolveColumn(columns []string, candidates []string) (int, bool) {
	for _, want := range candidates {
		for i, col := range columns {
			if col == want {
				return i, true
			}
		}
	}
	lower := make(map[string]int, len(columns))
	for i, col := range columns {
		key := strings.ToLower(col)
		if _, seen := lower[key]; !seen {
			lower[key] = i
		}
	}
	for _, want := range candidates {
		if i, ok := lower[strings.ToLower(want)]; ok {
			return i, true
		}
	}
	return 0, false
}

// BuildEntries turns a raw row set into the canonical entry collection.
//
// Rows without a parseable date and rows falling on a weekend are dropped.
// If the date or name column cannot be resolved at all the whole batch is
// rejected (empty result), which callers must treat as "no data available"
// rather than "no entries".
func BuildEntries(rs models.RowSet) []models.Entry {
	dateCol, ok := ResolveColumn(rs.Columns, DateColumns)
	if !ok {
		log.Printf("[SCHEMA] missing mandatory date column (candidates: %v)", DateColumns)
		return nil
	}
	nameCol, ok := ResolveColumn(rs.Columns, NameColumns)
	if !ok {
		log.Printf("[SCHEMA] missing mandatory name column (candidates: %v)", NameColumns)
		return nil
	}
	timeCol, hasTimeCol := ResolveColumn(rs.Columns, TimeColumns)
	primaryCol, hasPrimary := ResolveColumn(rs.Columns, UnitPrimaryColumns)
	secondaryCol, hasSecondary := ResolveColumn(rs.Columns, UnitSecondaryColumns)

	var dropped int
	entries := make([]models.Entry, 0, len(rs.Rows))
	for i := range rs.Rows {
		date, ok := ParseDate(rs.Cell(i, dateCol))
		if !ok {
			dropped++
			continue
		}
		weekday := mondayIndexed(date)
		if weekday > 4 {
			// Weekend rows never reach the board.
			continue
		}

		entry := models.Entry{
			ID:      uuid.NewString(),
			Date:    date,
			Name:    nameText(rs.Cell(i, nameCol)),
			Weekday: weekday,
		}
		entry.ISOYear, entry.ISOWeek = date.ISOWeek()

		if hasTimeCol {
			if clock, ok := ParseTime(rs.Cell(i, timeCol)); ok {
				c := clock
				entry.Time = &c
			}
		}
		if hasPrimary {
			entry.UnitPrimary = cellText(rs.Cell(i, primaryCol))
		}
		if hasSecondary {
			entry.UnitSecondary = cellText(rs.Cell(i, secondaryCol))
		}

		entries = append(entries, entry)
	}

	// Canonical display order: (date, time with end-of-day sentinel, name),
	// original row order breaking ties.
	sort.SliceStable(entries, func(a, b int) bool {
		ea, eb := entries[a], entries[b]
		if !ea.Date.Equal(eb.Date) {
			return ea.Date.Before(eb.Date)
		}
		ta, tb := sortClock(ea), sortClock(eb)
		if ta != tb {
			return ta < tb
		}
		return ea.Name < eb.Name
	})

	if dropped > 0 {
		log.Printf("[SUMMARY] ingestion kept %d entries, dropped %d rows without a parseable date", len(entries), dropped)
	}
	return entries
}

func sortClock(e models.Entry) int {
	if e.Time == nil {
		return endOfDay.Minutes()
	}
	return e.Time.Minutes()
}

func nameText(v models.CellValue) string {
	s := cellText(v)
	if s == "" {
		return PlaceholderName
	}
	return s
}

func cellText(v models.CellValue) string {
	switch v.Kind {
	case models.CellText:
		return strings.TrimSpace(v.Text)
	case models.CellNumber:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v.Number), "0"), ".")
	case models.CellDate:
		return v.Date.Format("02/01/2006")
	case models.CellTime:
		return v.Clock.String()
	default:
		return ""
	}
}

// mondayIndexed maps time.Weekday to the Monday-based 0..6 index.
func mondayIndexed(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
