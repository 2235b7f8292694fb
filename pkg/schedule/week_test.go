package schedule

import (
	"testing"
	"time"

	"github.com/borgmon/rollout-board/pkg/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestMondayFriday(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		year, week int
		monday     time.Time
	}{
		{"mid year", 2025, 45, day(2025, time.November, 3)},
		{"week one spans previous year", 2025, 1, day(2024, time.December, 30)},
		{"week 53", 2020, 53, day(2020, time.December, 28)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			monday, friday := MondayFriday(tc.year, tc.week)
			if !monday.Equal(tc.monday) {
				t.Fatalf("monday = %v, want %v", monday, tc.monday)
			}
			if want := tc.monday.AddDate(0, 0, 4); !friday.Equal(want) {
				t.Fatalf("friday = %v, want %v", friday, want)
			}
			if monday.Weekday() != time.Monday || friday.Weekday() != time.Friday {
				t.Fatalf("weekdays = %v, %v", monday.Weekday(), friday.Weekday())
			}
		})
	}
}

func clockPtr(h, m int) *models.WallClock {
	return &models.WallClock{Hour: h, Minute: m}
}

func TestGroupWeek(t *testing.T) {
	t.Parallel()

	entries := []models.Entry{
		{Date: day(2025, time.November, 5), Weekday: 2, Name: "Ana", Time: clockPtr(9, 0)},
		{Date: day(2025, time.November, 5), Weekday: 2, Name: "Bia"},
		{Date: day(2025, time.November, 5), Weekday: 2, Name: "Caio", Time: clockPtr(8, 0)},
		{Date: day(2025, time.November, 3), Weekday: 0, Name: "Dani", Time: clockPtr(10, 0)},
		{Date: day(2025, time.November, 12), Weekday: 2, Name: "Outra Semana", Time: clockPtr(9, 0)},
	}

	byDay := GroupWeek(entries, 2025, 45)

	// Every weekday key exists even when empty.
	for i := 0; i < 5; i++ {
		if _, ok := byDay[i]; !ok {
			t.Fatalf("missing day key %d", i)
		}
	}
	if len(byDay[1]) != 0 || len(byDay[3]) != 0 || len(byDay[4]) != 0 {
		t.Fatal("expected empty Tuesday, Thursday and Friday")
	}

	if len(byDay[0]) != 1 || byDay[0][0].Name != "Dani" {
		t.Fatalf("monday = %+v", byDay[0])
	}

	// Wednesday ordered by time, untimed last; next week's entry excluded.
	wed := byDay[2]
	if len(wed) != 3 {
		t.Fatalf("wednesday has %d entries, want 3", len(wed))
	}
	for i, want := range []string{"Caio", "Ana", "Bia"} {
		if wed[i].Name != want {
			t.Fatalf("wednesday[%d] = %q, want %q", i, wed[i].Name, want)
		}
	}
}

func TestWeeks(t *testing.T) {
	t.Parallel()

	entries := []models.Entry{
		{ISOYear: 2026, ISOWeek: 2},
		{ISOYear: 2025, ISOWeek: 45},
		{ISOYear: 2025, ISOWeek: 45},
		{ISOYear: 2025, ISOWeek: 50},
	}

	refs := Weeks(entries)
	want := []WeekRef{{2025, 45}, {2025, 50}, {2026, 2}}
	if len(refs) != len(want) {
		t.Fatalf("Weeks = %v, want %v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Fatalf("Weeks[%d] = %v, want %v", i, refs[i], want[i])
		}
	}
}
