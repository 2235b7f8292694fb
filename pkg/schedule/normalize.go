package schedule

import (
	"log"
	"math"
	"strings"
	"time"

	"github.com/borgmon/rollout-board/pkg/models"
)

// Known text layouts, tried in this order before the generic fallback.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"02/01/06",
}

// Fallback layouts for the generic day-first parse. These cover the loose
// values that show up in hand-edited spreadsheets.
var genericDateLayouts = []string{
	"2/1/2006",
	"2/1/06",
	"2.1.2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
}

var genericTimeLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate normalizes a raw cell into a calendar date (local midnight).
// Returns false for missing cells and values that cannot be read as a date;
// the failure is logged and the caller treats the entry as having no date.
func ParseDate(v models.CellValue) (time.Time, bool) {
	switch v.Kind {
	case models.CellDate:
		return truncateToDay(v.Date), true
	case models.CellText:
		s := strings.TrimSpace(v.Text)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return truncateToDay(t), true
			}
		}
		for _, layout := range genericDateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return truncateToDay(t), true
			}
		}
		log.Printf("[DROP] unparseable date value: %q", s)
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// ParseTime normalizes a raw cell into a minute-precision wall clock.
// Numeric cells are fractional hours (9.5 means 09:30). Returns false when
// the value cannot be read as a time; absent time means all-day, never 00:00.
func ParseTime(v models.CellValue) (models.WallClock, bool) {
	switch v.Kind {
	case models.CellTime:
		return v.Clock, true
	case models.CellDate:
		// Datetime cells carry the clock in the date payload; seconds and
		// below are truncated.
		return models.WallClock{Hour: v.Date.Hour(), Minute: v.Date.Minute()}, true
	case models.CellNumber:
		return clockFromHours(v.Number)
	case models.CellText:
		return parseClockText(v.Text)
	default:
		return models.WallClock{}, false
	}
}

func clockFromHours(n float64) (models.WallClock, bool) {
	if n < 0 || n >= 24 {
		return models.WallClock{}, false
	}
	hour := int(n)
	minute := int(math.Round((n - float64(hour)) * 60))
	if minute > 59 {
		return models.WallClock{}, false
	}
	return models.WallClock{Hour: hour, Minute: minute}, true
}

func parseClockText(s string) (models.WallClock, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.WallClock{}, false
	}

	// "9h30" style separators become "9:30"; a bare hour becomes "9:00".
	s = strings.ReplaceAll(s, "h", ":")
	s = strings.ReplaceAll(s, "H", ":")
	if !strings.Contains(s, ":") && isDigits(s) {
		s += ":00"
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.WallClock{Hour: t.Hour(), Minute: t.Minute()}, true
		}
	}
	for _, layout := range genericTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.WallClock{Hour: t.Hour(), Minute: t.Minute()}, true
		}
	}
	log.Printf("[DROP] unparseable time value: %q", s)
	return models.WallClock{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
