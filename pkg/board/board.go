package board

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/borgmon/rollout-board/pkg/deadline"
	"github.com/borgmon/rollout-board/pkg/models"
	"github.com/borgmon/rollout-board/pkg/schedule"
)

// ViewMode selects between the full Monday-Friday grid and the single-day
// focus view.
type ViewMode string

const (
	ViewWeek ViewMode = "week"
	ViewDay  ViewMode = "day"
)

// Source produces one batch of raw rows from an authoritative dataset.
type Source interface {
	// Rows reads the full dataset. An error means the source could not be
	// read at all; the board then keeps its previous data.
	Rows() (models.RowSet, error)
}

// Board owns the live state the tick loop and the presentation share: the
// canonical entry collection, the selected week and view mode, and the
// deadline trackers for today's displayed entries. All state flows through
// this one object; there are no package-level globals.
//
// Methods are safe to call from the UI thread and the tick goroutine; the
// internal mutex serializes them so a reload can never observe a tick halfway
// through.
type Board struct {
	mu sync.Mutex

	sources  []Source
	clock    deadline.Clock
	notifier deadline.Notifier

	entries  []models.Entry
	loaded   bool // at least one reload produced a usable batch
	year     int
	week     int
	view     ViewMode
	trackers []*deadline.Tracker
	agg      *deadline.Aggregator
}

// New creates an empty board. Call Reload to populate it.
func New(sources []Source, clock deadline.Clock, notifier deadline.Notifier) *Board {
	return &Board{
		sources:  sources,
		clock:    clock,
		notifier: notifier,
		view:     ViewWeek,
		agg:      deadline.NewAggregator(),
	}
}

// SetSources swaps the source list. Takes effect on the next Reload.
func (b *Board) SetSources(sources []Source) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sources = sources
}

// Reload re-reads every source and replaces the entry collection wholesale.
// Live trackers are discarded and rebuilt from the fresh data, which resets
// their alert latches. If every source fails the previous dataset is kept
// untouched and the error is returned for logging.
func (b *Board) Reload() error {
	type result struct {
		rows models.RowSet
		err  error
	}
	b.mu.Lock()
	sources := b.sources
	b.mu.Unlock()

	results := make([]result, 0, len(sources))
	failures := 0
	for _, src := range sources {
		rows, err := src.Rows()
		if err != nil {
			failures++
			log.Printf("[RELOAD] source read failed: %v", err)
		}
		results = append(results, result{rows: rows, err: err})
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(sources) > 0 && failures == len(sources) {
		// Keep showing the last good dataset.
		return errors.New("all sources failed; keeping previous dataset")
	}

	entries := make([]models.Entry, 0)
	for _, res := range results {
		if res.err != nil {
			continue
		}
		entries = append(entries, schedule.BuildEntries(res.rows)...)
	}

	b.entries = entries
	b.loaded = len(entries) > 0

	if b.year == 0 {
		b.selectInitialWeek()
	}
	b.rebuildTrackers()
	return nil
}

// selectInitialWeek picks the current ISO week when the dataset covers it,
// otherwise the last week available.
func (b *Board) selectInitialWeek() {
	year, week := b.clock.Now().ISOWeek()
	refs := schedule.Weeks(b.entries)
	for _, ref := range refs {
		if ref.Year == year && ref.Week == week {
			b.year, b.week = year, week
			return
		}
	}
	if len(refs) > 0 {
		last := refs[len(refs)-1]
		b.year, b.week = last.Year, last.Week
		return
	}
	b.year, b.week = year, week
}

// HasData reports whether the last successful reload yielded any entries.
// False covers both an unreadable source and a batch rejected for missing
// mandatory columns.
func (b *Board) HasData() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Weeks lists the ISO weeks present in the dataset for the week selector.
func (b *Board) Weeks() []schedule.WeekRef {
	b.mu.Lock()
	defer b.mu.Unlock()
	return schedule.Weeks(b.entries)
}

// SelectedWeek returns the ISO week currently shown.
func (b *Board) SelectedWeek() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.year, b.week
}

// View returns the active view mode.
func (b *Board) View() ViewMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// SetWeek switches the displayed ISO week and rebuilds the trackers for the
// new selection.
func (b *Board) SetWeek(year, week int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.year, b.week = year, week
	b.rebuildTrackers()
}

// OffsetWeek moves the selection by delta whole weeks.
func (b *Board) OffsetWeek(delta int) {
	b.mu.Lock()
	year, week := b.year, b.week
	b.mu.Unlock()
	monday, _ := schedule.MondayFriday(year, week)
	b.SetWeek(monday.AddDate(0, 0, 7*delta).ISOWeek())
}

// SetView toggles between week and day view. Like any re-render this
// discards and recreates the trackers, so an alert that already fired can
// fire again after a mere view toggle; that is the established behavior.
func (b *Board) SetView(view ViewMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.view == view {
		return
	}
	b.view = view
	b.rebuildTrackers()
}

// WeekEntries groups the selected week's entries per weekday for rendering.
func (b *Board) WeekEntries() map[int][]models.Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return schedule.GroupWeek(b.entries, b.year, b.week)
}

// FocusDay returns the weekday index (0..4) and date the day view shows:
// today clamped into the selected week's Monday-Friday span.
func (b *Board) FocusDay() (int, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.focusDayLocked()
}

func (b *Board) focusDayLocked() (int, time.Time) {
	monday, _ := schedule.MondayFriday(b.year, b.week)
	idx := int(deadline.Today(b.clock).Sub(monday).Hours() / 24)
	if idx < 0 {
		idx = 0
	}
	if idx > 4 {
		idx = 4
	}
	return idx, monday.AddDate(0, 0, idx)
}

// TickDeadlines advances every live tracker against one captured instant,
// forwards the raised signals to the notification sink, and refreshes the
// alert banner sets. It reports whether the banner membership changed.
func (b *Board) TickDeadlines(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range b.trackers {
		for _, sig := range t.Tick(now) {
			if b.notifier == nil {
				continue
			}
			// A failed notification is logged and not retried; the latch
			// already recorded the alert as fired.
			if err := b.notifier.Notify(sig); err != nil {
				log.Printf("[ALERT] notification failed for %q (%s): %v", sig.Name, sig.Kind, err)
			}
		}
	}
	return b.agg.Rebuild(b.trackers)
}

// Trackers returns the live tracker collection for rendering.
func (b *Board) Trackers() []*deadline.Tracker {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trackers
}

// Tracker looks up the live tracker for a display name, or nil. Entries
// sharing a display name share a banner item but keep separate trackers;
// lookup returns the first.
func (b *Board) Tracker(name string) *deadline.Tracker {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.trackers {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// Approaching returns the banner's warning-state names.
func (b *Board) Approaching() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.agg.Approaching()
}

// Overdue returns the banner's overdue names.
func (b *Board) Overdue() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.agg.Overdue()
}

// rebuildTrackers replaces the tracker collection with fresh instances for
// the currently visible entries that are scheduled today with a time.
// Latches start clear on every rebuild.
func (b *Board) rebuildTrackers() {
	today := deadline.Today(b.clock)
	grouped := schedule.GroupWeek(b.entries, b.year, b.week)

	var visible []models.Entry
	if b.view == ViewDay {
		idx, _ := b.focusDayLocked()
		visible = grouped[idx]
	} else {
		for day := 0; day < 5; day++ {
			visible = append(visible, grouped[day]...)
		}
	}

	trackers := make([]*deadline.Tracker, 0)
	for _, e := range visible {
		if !e.HasTime() || !e.Date.Equal(today) {
			continue
		}
		target := deadline.Target(e.Date, *e.Time)
		trackers = append(trackers, deadline.NewTracker(e.DisplayName(), target))
	}
	b.trackers = trackers
	b.agg.Reset()
}
