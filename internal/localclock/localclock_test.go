package localclock

import (
	"testing"
	"time"
)

func TestToInstant(t *testing.T) {
	// 10:00 in Colombo (UTC+05:30, offset -330) is 04:30 UTC.
	got, err := ToInstant("2026-03-10", "10:00", -330)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 3, 10, 4, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestToInstant_Invalid(t *testing.T) {
	for _, tc := range []struct{ date, hhmm string }{
		{"2026-13-01", "10:00"},
		{"2026-03-10", "25:00"},
		{"not-a-date", "10:00"},
		{"2026-03-10", ""},
	} {
		if _, err := ToInstant(tc.date, tc.hhmm, 0); err == nil {
			t.Errorf("ToInstant(%q, %q) accepted invalid input", tc.date, tc.hhmm)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	offsets := []int{0, -330, 330, -60, 45, -720, 720}
	dates := []string{"2026-01-01", "2026-02-28", "2024-02-29", "2026-12-31"}
	times := []string{"00:00", "09:45", "12:00", "23:45"}

	for _, off := range offsets {
		for _, d := range dates {
			for _, hm := range times {
				inst, err := ToInstant(d, hm, off)
				if err != nil {
					t.Fatalf("ToInstant(%s %s %d): %v", d, hm, off, err)
				}
				back := FromInstant(inst, off)
				if back.Date != d || back.HHMM() != hm {
					t.Errorf("round trip (%s %s off=%d) = (%s %s)", d, hm, off, back.Date, back.HHMM())
				}
			}
		}
	}
}

func TestAddDays(t *testing.T) {
	cases := []struct {
		date string
		n    int
		want string
	}{
		{"2026-03-10", 1, "2026-03-11"},
		{"2026-03-31", 1, "2026-04-01"},
		{"2026-12-31", 1, "2027-01-01"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2026-01-01", -1, "2025-12-31"},
		{"2026-03-10", 0, "2026-03-10"},
	}
	for _, tc := range cases {
		got, err := AddDays(tc.date, tc.n)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("AddDays(%s, %d) = %s, want %s", tc.date, tc.n, got, tc.want)
		}
	}
}

func TestDayWindow(t *testing.T) {
	from, to, err := DayWindow("2026-03-10", -330)
	if err != nil {
		t.Fatal(err)
	}
	// Local midnight in Colombo is 18:30 UTC the previous evening.
	wantFrom := time.Date(2026, 3, 9, 18, 30, 0, 0, time.UTC)
	wantTo := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)
	if !from.Equal(wantFrom) || !to.Equal(wantTo) {
		t.Fatalf("window = [%s, %s), want [%s, %s)", from, to, wantFrom, wantTo)
	}
	if to.Sub(from) != 24*time.Hour {
		t.Fatalf("window width = %s", to.Sub(from))
	}
}
