package board

import (
	"errors"
	"testing"
	"time"

	"github.com/borgmon/rollout-board/pkg/deadline"
	"github.com/borgmon/rollout-board/pkg/models"
)

// Wednesday, ISO week 45 of 2025.
var testNow = time.Date(2025, time.November, 5, 10, 0, 0, 0, time.Local)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type stubSource struct {
	rows models.RowSet
	err  error
}

func (s *stubSource) Rows() (models.RowSet, error) {
	if s.err != nil {
		return models.RowSet{}, s.err
	}
	return s.rows, nil
}

type recordingNotifier struct {
	signals []deadline.Signal
	err     error
}

func (n *recordingNotifier) Notify(sig deadline.Signal) error {
	n.signals = append(n.signals, sig)
	return n.err
}

func scheduleRows(rows ...[]models.CellValue) models.RowSet {
	return models.RowSet{
		Columns: []string{"Data", "Hora", "Nome"},
		Rows:    rows,
	}
}

func row(date, clock, name string) []models.CellValue {
	cells := []models.CellValue{models.TextCell(date)}
	if clock == "" {
		cells = append(cells, models.MissingCell())
	} else {
		cells = append(cells, models.TextCell(clock))
	}
	return append(cells, models.TextCell(name))
}

func TestReloadSelectsCurrentWeek(t *testing.T) {
	t.Parallel()

	src := &stubSource{rows: scheduleRows(
		row("05/11/2025", "9:30", "Ana Maria Silva"),
		row("12/11/2025", "8:00", "Bruno Costa"),
	)}
	b := New([]Source{src}, &fakeClock{now: testNow}, nil)

	if err := b.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !b.HasData() {
		t.Fatal("HasData = false after successful reload")
	}

	year, week := b.SelectedWeek()
	if year != 2025 || week != 45 {
		t.Fatalf("selected week = %d/%d, want 45/2025", week, year)
	}

	wed := b.WeekEntries()[2]
	if len(wed) != 1 || wed[0].Name != "Ana Maria Silva" {
		t.Fatalf("wednesday = %+v", wed)
	}

	refs := b.Weeks()
	if len(refs) != 2 || refs[0].Week != 45 || refs[1].Week != 46 {
		t.Fatalf("weeks = %v", refs)
	}
}

func TestReloadFallsBackToLastWeek(t *testing.T) {
	t.Parallel()

	// Dataset only covers a future week; selection falls back to it.
	src := &stubSource{rows: scheduleRows(
		row("12/11/2025", "8:00", "Bruno Costa"),
	)}
	b := New([]Source{src}, &fakeClock{now: testNow}, nil)

	if err := b.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	year, week := b.SelectedWeek()
	if year != 2025 || week != 46 {
		t.Fatalf("selected week = %d/%d, want 46/2025", week, year)
	}
}

func TestReloadFailureKeepsPreviousDataset(t *testing.T) {
	t.Parallel()

	src := &stubSource{rows: scheduleRows(
		row("05/11/2025", "9:30", "Ana Maria Silva"),
	)}
	b := New([]Source{src}, &fakeClock{now: testNow}, nil)

	if err := b.Reload(); err != nil {
		t.Fatalf("first reload: %v", err)
	}

	src.err = errors.New("file locked")
	if err := b.Reload(); err == nil {
		t.Fatal("second reload should report the failure")
	}

	// The previous dataset survives a failed reconciliation.
	if !b.HasData() {
		t.Fatal("HasData = false after failed reload")
	}
	wed := b.WeekEntries()[2]
	if len(wed) != 1 || wed[0].Name != "Ana Maria Silva" {
		t.Fatalf("wednesday after failed reload = %+v", wed)
	}
}

func TestReloadPartialFailure(t *testing.T) {
	t.Parallel()

	good := &stubSource{rows: scheduleRows(row("05/11/2025", "9:30", "Ana Maria Silva"))}
	bad := &stubSource{err: errors.New("unreachable")}
	b := New([]Source{good, bad}, &fakeClock{now: testNow}, nil)

	// One healthy source is enough; the batch still replaces the dataset.
	if err := b.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	wed := b.WeekEntries()[2]
	if len(wed) != 1 {
		t.Fatalf("wednesday = %+v", wed)
	}
}

func TestTickDeadlines(t *testing.T) {
	t.Parallel()

	src := &stubSource{rows: scheduleRows(
		row("05/11/2025", "9:30", "Ana Maria Silva Santos"), // deadline 13:00
		row("05/11/2025", "", "Sem Hora"),                   // untimed: no tracker
		row("06/11/2025", "9:30", "Amanha Silva"),           // not today: no tracker
	)}
	notifier := &recordingNotifier{}
	b := New([]Source{src}, &fakeClock{now: testNow}, notifier)

	if err := b.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := len(b.Trackers()); got != 1 {
		t.Fatalf("trackers = %d, want 1 (today's timed entry only)", got)
	}

	deadlineAt := time.Date(2025, time.November, 5, 13, 0, 0, 0, time.Local)

	// Outside the warning window: nothing fires.
	if changed := b.TickDeadlines(deadlineAt.Add(-time.Hour)); changed {
		t.Fatal("early tick reported a banner change")
	}
	if len(notifier.signals) != 0 {
		t.Fatalf("early tick notified %v", notifier.signals)
	}

	// Warning crossing notifies once, under the abbreviated display name.
	if changed := b.TickDeadlines(deadlineAt.Add(-10 * time.Minute)); !changed {
		t.Fatal("warning crossing not reported")
	}
	if len(notifier.signals) != 1 || notifier.signals[0].Kind != deadline.SignalApproaching {
		t.Fatalf("signals = %v", notifier.signals)
	}
	if notifier.signals[0].Name != "Ana Maria" {
		t.Fatalf("signal name = %q, want abbreviated", notifier.signals[0].Name)
	}
	if got := b.Approaching(); len(got) != 1 || got[0] != "Ana Maria" {
		t.Fatalf("banner approaching = %v", got)
	}

	// Repeated ticks stay quiet.
	if changed := b.TickDeadlines(deadlineAt.Add(-9 * time.Minute)); changed {
		t.Fatal("repeated tick reported a change")
	}
	if len(notifier.signals) != 1 {
		t.Fatalf("repeated tick notified again: %v", notifier.signals)
	}

	// Overdue crossing moves the name between banner sets.
	if changed := b.TickDeadlines(deadlineAt); !changed {
		t.Fatal("overdue crossing not reported")
	}
	if len(notifier.signals) != 2 || notifier.signals[1].Kind != deadline.SignalOverdue {
		t.Fatalf("signals = %v", notifier.signals)
	}
	if got := b.Overdue(); len(got) != 1 || got[0] != "Ana Maria" {
		t.Fatalf("banner overdue = %v", got)
	}
	if got := b.Approaching(); len(got) != 0 {
		t.Fatalf("banner approaching after overdue = %v", got)
	}

	if tr := b.Tracker("Ana Maria"); tr == nil || tr.Status() != deadline.StatusOverdue {
		t.Fatalf("tracker lookup = %+v", tr)
	}
}

func TestTickDeadlinesNotifierFailureStillLatches(t *testing.T) {
	t.Parallel()

	src := &stubSource{rows: scheduleRows(row("05/11/2025", "9:30", "Ana Maria"))}
	notifier := &recordingNotifier{err: errors.New("audio device busy")}
	b := New([]Source{src}, &fakeClock{now: testNow}, notifier)

	if err := b.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	deadlineAt := time.Date(2025, time.November, 5, 13, 0, 0, 0, time.Local)
	b.TickDeadlines(deadlineAt.Add(-10 * time.Minute))
	b.TickDeadlines(deadlineAt.Add(-9 * time.Minute))

	// The failed delivery is not retried.
	if len(notifier.signals) != 1 {
		t.Fatalf("signals = %v, want a single attempt", notifier.signals)
	}
}

func TestWeekNavigation(t *testing.T) {
	t.Parallel()

	src := &stubSource{rows: scheduleRows(row("05/11/2025", "9:30", "Ana"))}
	b := New([]Source{src}, &fakeClock{now: testNow}, nil)
	if err := b.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	b.OffsetWeek(1)
	if year, week := b.SelectedWeek(); year != 2025 || week != 46 {
		t.Fatalf("after +1: %d/%d", week, year)
	}
	b.OffsetWeek(-2)
	if year, week := b.SelectedWeek(); year != 2025 || week != 44 {
		t.Fatalf("after -2: %d/%d", week, year)
	}

	// Offsets cross year boundaries through the calendar, not arithmetic.
	b.SetWeek(2026, 1)
	b.OffsetWeek(-1)
	if year, week := b.SelectedWeek(); year != 2025 || week != 52 {
		t.Fatalf("across year boundary: %d/%d", week, year)
	}
}

func TestSetViewRebuildsTrackers(t *testing.T) {
	t.Parallel()

	src := &stubSource{rows: scheduleRows(row("05/11/2025", "9:30", "Ana Maria"))}
	b := New([]Source{src}, &fakeClock{now: testNow}, nil)
	if err := b.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	deadlineAt := time.Date(2025, time.November, 5, 13, 0, 0, 0, time.Local)
	b.TickDeadlines(deadlineAt.Add(-10 * time.Minute))
	if tr := b.Tracker("Ana Maria"); !tr.WarningFired() {
		t.Fatal("warning latch not set")
	}

	// A view change recreates trackers with clear latches.
	b.SetView(ViewDay)
	if tr := b.Tracker("Ana Maria"); tr == nil || tr.WarningFired() {
		t.Fatalf("tracker after view change = %+v", tr)
	}

	idx, date := b.FocusDay()
	if idx != 2 {
		t.Fatalf("focus day index = %d, want 2", idx)
	}
	if want := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local); !date.Equal(want) {
		t.Fatalf("focus day date = %v, want %v", date, want)
	}
}

func TestHasDataFalseWhenSchemaRejected(t *testing.T) {
	t.Parallel()

	// Readable source, but the batch lacks mandatory columns.
	src := &stubSource{rows: models.RowSet{
		Columns: []string{"Coluna", "Outra"},
		Rows:    [][]models.CellValue{{models.TextCell("x"), models.TextCell("y")}},
	}}
	b := New([]Source{src}, &fakeClock{now: testNow}, nil)

	if err := b.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if b.HasData() {
		t.Fatal("HasData = true for a schema-rejected batch")
	}
}
