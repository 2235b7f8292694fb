package models

import (
	"fmt"
	"strings"
	"time"
)

// WallClock is a minute-precision time of day. The zero value is 00:00, which
// is a valid scheduled time; absence of a time is expressed with a nil
// *WallClock, never with 00:00.
type WallClock struct {
	Hour   int
	Minute int
}

func (w WallClock) String() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

// Minutes returns the clock as minutes since midnight, used for ordering.
func (w WallClock) Minutes() int {
	return w.Hour*60 + w.Minute
}

// Duration returns the offset from midnight.
func (w WallClock) Duration() time.Duration {
	return time.Duration(w.Hour)*time.Hour + time.Duration(w.Minute)*time.Minute
}

// Entry is one normalized appointment. Entries are immutable once built; the
// whole collection is replaced on every dataset reload.
type Entry struct {
	ID            string     // internal row identity (UUID), not user-visible
	Date          time.Time  // normalized to local midnight, always present
	Time          *WallClock // nil for all-day / unscheduled entries
	Name          string     // subject name, never empty (placeholder substituted)
	UnitPrimary   string     // Diretoria
	UnitSecondary string     // Gerencia
	ISOYear       int
	ISOWeek       int
	Weekday       int // 0 = Monday .. 4 = Friday
}

// HasTime reports whether the entry carries a scheduled time of day.
func (e Entry) HasTime() bool {
	return e.Time != nil
}

// DisplayName is the abbreviated name shown on cards and used as alert
// identity. Two distinct people sharing the same first two words collide and
// their alerts merge; that is the established identity scheme.
func (e Entry) DisplayName() string {
	return AbbreviateName(e.Name)
}

// AbbreviateName shortens a full name to its first two words.
func AbbreviateName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name
	}
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, " ")
}
