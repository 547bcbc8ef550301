package booking

import (
	"testing"
	"time"

	"github.com/nallenclassics/barber-booking/internal/localclock"
)

const colombo = -330 // UTC+05:30

func instant(t *testing.T, date, hhmm string) time.Time {
	t.Helper()
	inst, err := localclock.ToInstant(date, hhmm, colombo)
	if err != nil {
		t.Fatal(err)
	}
	return inst
}

func contains(slots []string, hhmm string) bool {
	for _, s := range slots {
		if s == hhmm {
			return true
		}
	}
	return false
}

func TestAvailableSlots_AroundBookedInterval(t *testing.T) {
	h := defaultHours()
	date := "2026-03-10"

	// Booked 10:00-10:30 local; 15-minute service.
	busy := []Interval{{
		Start: instant(t, date, "10:00"),
		End:   instant(t, date, "10:30"),
	}}
	// Well before the day opens.
	now := instant(t, date, "00:00")

	slots, err := AvailableSlots(date, h, 15, colombo, busy, now)
	if err != nil {
		t.Fatal(err)
	}

	// A 15-min slot at 10:00 or 10:15 overlaps the booking; 10:30 touches the
	// booked end and is free again.
	for _, want := range []string{"10:30", "10:45"} {
		if !contains(slots, want) {
			t.Errorf("expected %s available", want)
		}
	}
	for _, taken := range []string{"10:00", "10:15"} {
		if contains(slots, taken) {
			t.Errorf("expected %s excluded", taken)
		}
	}
}

func TestAvailableSlots_PastBoundaryInclusive(t *testing.T) {
	h := defaultHours()
	date := "2026-03-10"

	// now is exactly 10:30 local: 10:30 itself must not be bookable.
	now := instant(t, date, "10:30")
	slots, err := AvailableSlots(date, h, 15, colombo, nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if contains(slots, "10:30") {
		t.Error("slot equal to now must be excluded")
	}
	if !contains(slots, "10:45") {
		t.Error("first future slot missing")
	}
	if contains(slots, "10:00") || contains(slots, "10:15") {
		t.Error("past slots must be excluded")
	}
}

func TestAvailableSlots_ServiceMustEndByClosing(t *testing.T) {
	h := defaultHours()
	date := "2026-03-10"
	now := instant(t, date, "00:00")

	slots, err := AvailableSlots(date, h, 30, colombo, nil, now)
	if err != nil {
		t.Fatal(err)
	}
	// A 30-minute service starting 20:45 would run past 21:00.
	if contains(slots, "20:45") {
		t.Error("20:45 must be excluded for a 30-minute service")
	}
	if !contains(slots, "20:30") {
		t.Error("20:30 ends exactly at closing and must be included")
	}
	if len(slots) != 43 {
		t.Errorf("expected 43 slots for 30-minute service, got %d", len(slots))
	}
}

func TestAvailableSlots_ChronologicalOrder(t *testing.T) {
	h := defaultHours()
	date := "2026-03-10"
	now := instant(t, date, "00:00")

	slots, err := AvailableSlots(date, h, 15, colombo, nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 44 {
		t.Fatalf("expected full grid of 44, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots out of order: %s before %s", slots[i-1], slots[i])
		}
	}
}

func TestValidSlotStart(t *testing.T) {
	h := defaultHours()
	if !ValidSlotStart(instant(t, "2026-03-10", "10:00"), h, colombo) {
		t.Error("10:00 local must be a valid slot start")
	}
	if ValidSlotStart(instant(t, "2026-03-10", "10:07"), h, colombo) {
		t.Error("10:07 local is off the slot grid")
	}
	if ValidSlotStart(instant(t, "2026-03-10", "21:00"), h, colombo) {
		t.Error("closing time is not a valid start")
	}
	if ValidSlotStart(instant(t, "2026-03-10", "09:45"), h, colombo) {
		t.Error("before opening is not a valid start")
	}
}
