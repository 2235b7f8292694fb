package schedule

import (
	"testing"
	"time"

	"github.com/borgmon/rollout-board/pkg/models"
)

func TestParseDateTextLayouts(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local)

	cases := []struct {
		name string
		in   string
	}{
		{"day first slashes", "05/11/2025"},
		{"iso", "2025-11-05"},
		{"day first dashes", "05-11-2025"},
		{"two digit year", "05/11/25"},
		{"no leading zeros", "5/11/2025"},
		{"datetime keeps date only", "05/11/2025 14:30:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDate(models.TextCell(tc.in))
			if !ok {
				t.Fatalf("ParseDate(%q) failed", tc.in)
			}
			if !got.Equal(want) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, want)
			}
		})
	}
}

func TestParseDateDayFirstWins(t *testing.T) {
	t.Parallel()

	// 02/01/2026 is January 2nd, not February 1st.
	got, ok := ParseDate(models.TextCell("02/01/2026"))
	if !ok {
		t.Fatal("ParseDate failed")
	}
	want := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}
}

func TestParseDateNativeCell(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, time.November, 5, 14, 30, 12, 0, time.Local)
	got, ok := ParseDate(models.DateCell(in))
	if !ok {
		t.Fatal("ParseDate failed on native date cell")
	}
	want := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want truncated %v", got, want)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"abc", "", "32/13/2025"} {
		if _, ok := ParseDate(models.TextCell(in)); ok {
			t.Fatalf("ParseDate(%q) unexpectedly succeeded", in)
		}
	}
	if _, ok := ParseDate(models.MissingCell()); ok {
		t.Fatal("ParseDate on missing cell unexpectedly succeeded")
	}
	if _, ok := ParseDate(models.NumberCell(9.5)); ok {
		t.Fatal("ParseDate on number cell unexpectedly succeeded")
	}
}

func TestParseTimeText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want models.WallClock
	}{
		{"colon", "9:30", models.WallClock{Hour: 9, Minute: 30}},
		{"h separator", "9h30", models.WallClock{Hour: 9, Minute: 30}},
		{"capital h", "9H30", models.WallClock{Hour: 9, Minute: 30}},
		{"bare hour", "14", models.WallClock{Hour: 14, Minute: 0}},
		{"with seconds", "09:30:45", models.WallClock{Hour: 9, Minute: 30}},
		{"midnight", "0:00", models.WallClock{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseTime(models.TextCell(tc.in))
			if !ok {
				t.Fatalf("ParseTime(%q) failed", tc.in)
			}
			if got != tc.want {
				t.Fatalf("ParseTime(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseTimeFractionalHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want models.WallClock
	}{
		{9.5, models.WallClock{Hour: 9, Minute: 30}},
		{14.0, models.WallClock{Hour: 14, Minute: 0}},
		{0.25, models.WallClock{Hour: 0, Minute: 15}},
		{23.983333, models.WallClock{Hour: 23, Minute: 59}},
	}

	for _, tc := range cases {
		got, ok := ParseTime(models.NumberCell(tc.in))
		if !ok {
			t.Fatalf("ParseTime(%v) failed", tc.in)
		}
		if got != tc.want {
			t.Fatalf("ParseTime(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	for _, in := range []float64{-1, 24, 25.5} {
		if _, ok := ParseTime(models.NumberCell(in)); ok {
			t.Fatalf("ParseTime(%v) unexpectedly succeeded", in)
		}
	}
	if _, ok := ParseTime(models.TextCell("99:99")); ok {
		t.Fatal("ParseTime(99:99) unexpectedly succeeded")
	}
	if _, ok := ParseTime(models.MissingCell()); ok {
		t.Fatal("ParseTime on missing cell unexpectedly succeeded")
	}
}

func TestParseTimeNativeCells(t *testing.T) {
	t.Parallel()

	clock := models.WallClock{Hour: 9, Minute: 30}
	got, ok := ParseTime(models.TimeCell(clock))
	if !ok || got != clock {
		t.Fatalf("ParseTime(TimeCell) = %v, %v", got, ok)
	}

	dt := time.Date(2025, time.November, 5, 9, 30, 59, 0, time.Local)
	got, ok = ParseTime(models.DateCell(dt))
	if !ok || got != clock {
		t.Fatalf("ParseTime(DateCell) = %v, %v, want %v", got, ok, clock)
	}
}
