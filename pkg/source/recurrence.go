package source

import (
	"log"
	"strings"
	"time"
)

// How far past and future a recurring feed event is expanded around now.
// The board only pages through weeks that actually hold entries, so a tight
// window keeps standing appointments from flooding the week dropdown.
const (
	recurrenceLookbehind = 4 * 7 * 24 * time.Hour
	recurrenceLookahead  = 8 * 7 * 24 * time.Hour
)

// expandOccurrences turns a recurring start into the concrete instants inside
// the expansion window. Only DAILY and WEEKLY frequencies are handled; other
// patterns fall back to the single base occurrence.
func expandOccurrences(start time.Time, rrule string, now time.Time) []time.Time {
	var step time.Duration
	switch {
	case strings.Contains(rrule, "FREQ=DAILY"):
		step = 24 * time.Hour
	case strings.Contains(rrule, "FREQ=WEEKLY"):
		step = 7 * 24 * time.Hour
	default:
		log.Printf("[RECURRING] unsupported RRULE pattern: %s", rrule)
		return []time.Time{start}
	}

	windowStart := now.Add(-recurrenceLookbehind)
	windowEnd := now.Add(recurrenceLookahead)

	occurrences := []time.Time{}
	for current := start; current.Before(windowEnd); current = current.Add(step) {
		if current.Before(windowStart) {
			continue
		}
		occurrences = append(occurrences, current)
	}
	return occurrences
}
