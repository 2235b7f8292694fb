package schedule

import (
	"sort"
	"time"

	"github.com/borgmon/rollout-board/pkg/models"
)

// MondayFriday returns the Monday and Friday of the given ISO week
// (ISO 8601: weeks start Monday, week 1 contains the year's first Thursday).
func MondayFriday(isoYear, isoWeek int) (time.Time, time.Time) {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.Local)
	week1Monday := jan4.AddDate(0, 0, -mondayIndexed(jan4))
	monday := week1Monday.AddDate(0, 0, 7*(isoWeek-1))
	return monday, monday.AddDate(0, 0, 4)
}

// GroupWeek partitions the entries of one ISO week by weekday (0 = Monday ..
// 4 = Friday). Each day is ordered with timed entries first (by clock, then
// name) and untimed entries last.
func GroupWeek(entries []models.Entry, isoYear, isoWeek int) map[int][]models.Entry {
	monday, friday := MondayFriday(isoYear, isoWeek)

	byDay := make(map[int][]models.Entry, 5)
	for i := 0; i < 5; i++ {
		byDay[i] = []models.Entry{}
	}

	for _, e := range entries {
		if e.Date.Before(monday) || e.Date.After(friday) {
			continue
		}
		byDay[e.Weekday] = append(byDay[e.Weekday], e)
	}

	for day := range byDay {
		list := byDay[day]
		sort.SliceStable(list, func(a, b int) bool {
			ea, eb := list[a], list[b]
			// Entries with no time sort after every timed entry.
			if (ea.Time == nil) != (eb.Time == nil) {
				return eb.Time == nil
			}
			ta, tb := sortClock(ea), sortClock(eb)
			if ta != tb {
				return ta < tb
			}
			return ea.Name < eb.Name
		})
	}
	return byDay
}

// WeekRef identifies one ISO week present in a dataset.
type WeekRef struct {
	Year int
	Week int
}

// Weeks lists the distinct ISO weeks covered by the entries, ascending.
func Weeks(entries []models.Entry) []WeekRef {
	seen := make(map[WeekRef]bool)
	refs := make([]WeekRef, 0)
	for _, e := range entries {
		ref := WeekRef{Year: e.ISOYear, Week: e.ISOWeek}
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(a, b int) bool {
		if refs[a].Year != refs[b].Year {
			return refs[a].Year < refs[b].Year
		}
		return refs[a].Week < refs[b].Week
	})
	return refs
}
