package source

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/borgmon/rollout-board/pkg/models"
)

// ICalSource adapts a subscribed iCalendar feed into the same raw-row shape
// the spreadsheet produces, so teams that publish their rollout slots as a
// calendar feed appear on the board alongside the workbook.
type ICalSource struct {
	ID   string `json:"id"`   // Unique identifier
	Name string `json:"name"` // Display name; becomes the unit-primary column
	URL  string `json:"url"`  // iCal URL
}

// Validate checks if the iCal source has required fields.
func (s *ICalSource) Validate() bool {
	return s.Name != "" && s.URL != ""
}

// Rows fetches the feed and converts its events into raw rows. Each event
// becomes one row: date and time from DTSTART as native cells, the summary
// as the subject name.
func (s *ICalSource) Rows() (models.RowSet, error) {
	resp, err := http.Get(s.URL)
	if err != nil {
		return models.RowSet{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.RowSet{}, fmt.Errorf("failed to read response body: %w", err)
	}

	bodyStr := string(body)

	// Check if response is HTML instead of iCalendar
	upper := strings.ToUpper(strings.TrimSpace(bodyStr))
	if strings.HasPrefix(upper, "<!DOCTYPE") || strings.HasPrefix(upper, "<HTML") {
		return models.RowSet{}, fmt.Errorf("received HTML instead of iCalendar data - check if URL requires authentication")
	}
	if !strings.HasPrefix(strings.TrimSpace(bodyStr), "BEGIN:VCALENDAR") {
		return models.RowSet{}, fmt.Errorf("invalid iCalendar format - expected BEGIN:VCALENDAR")
	}

	return s.parseRows(strings.NewReader(bodyStr))
}

func (s *ICalSource) parseRows(r io.Reader) (models.RowSet, error) {
	decoder := ical.NewDecoder(r)

	rs := models.RowSet{
		// Primary synonyms, so ingestion resolves them directly.
		Columns: []string{"Data", "Hora", "Nome", "Diretoria", "Gerencia"},
	}

	var skippedCancelled, skippedNoStart int
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.RowSet{}, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}

			if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil && statusProp.Value == "CANCELLED" {
				skippedCancelled++
				continue
			}

			startProp := comp.Props.Get(ical.PropDateTimeStart)
			if startProp == nil {
				skippedNoStart++
				continue
			}
			start, err := parseDateTimeProperty(startProp)
			if err != nil {
				skippedNoStart++
				continue
			}

			name := ""
			if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
				name = summaryProp.Value
			}

			starts := []time.Time{start}
			if rruleProp := comp.Props.Get(ical.PropRecurrenceRule); rruleProp != nil {
				starts = expandOccurrences(start, rruleProp.Value, time.Now())
			}

			for _, occurrence := range starts {
				row := []models.CellValue{
					models.DateCell(occurrence),
					models.MissingCell(),
					models.TextCell(name),
					models.TextCell(s.Name),
					models.MissingCell(),
				}
				// All-day events (DATE-valued DTSTART) stay timeless on the board.
				if !isDateOnly(startProp) {
					row[1] = models.TimeCell(models.WallClock{Hour: occurrence.Hour(), Minute: occurrence.Minute()})
				}
				rs.Rows = append(rs.Rows, row)
			}
		}
	}

	if skippedCancelled+skippedNoStart > 0 {
		log.Printf("[SUMMARY] ical source %q: %d rows, skipped %d cancelled, %d without start",
			s.Name, len(rs.Rows), skippedCancelled, skippedNoStart)
	}
	return rs, nil
}

func isDateOnly(prop *ical.Prop) bool {
	if prop.Params.Get(ical.ParamValue) == "DATE" {
		return true
	}
	return len(prop.Value) == 8 && !strings.Contains(prop.Value, "T")
}

// parseDateTimeProperty attempts to parse a datetime property with multiple strategies
func parseDateTimeProperty(prop *ical.Prop) (time.Time, error) {
	// First try the standard DateTime method with local timezone
	if t, err := prop.DateTime(time.Local); err == nil {
		return t.In(time.Local), nil
	}

	// If that fails, try parsing the raw value directly
	value := prop.Value

	// Try multiple datetime formats
	formats := []string{
		"20060102T150405",     // Basic format: YYYYMMDDTHHMMSS
		"20060102T150405Z",    // UTC format
		"20060102",            // Date-only
		time.RFC3339,          // Standard RFC3339
		"2006-01-02T15:04:05", // ISO 8601 without timezone
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", value)
}
