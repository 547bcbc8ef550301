package booking

import "testing"

func defaultHours() Hours {
	return Hours{OpenHour: 10, CloseHour: 21, SlotMinutes: 15}
}

func TestDaySlots_Default(t *testing.T) {
	slots := DaySlots(defaultHours())
	if len(slots) != 44 {
		t.Fatalf("expected 44 slots, got %d", len(slots))
	}
	if slots[0] != "10:00" {
		t.Errorf("first slot = %s", slots[0])
	}
	if slots[len(slots)-1] != "20:45" {
		t.Errorf("last slot = %s", slots[len(slots)-1])
	}
}

func TestDaySlots_CountAndOrder(t *testing.T) {
	cases := []Hours{
		{OpenHour: 10, CloseHour: 21, SlotMinutes: 15},
		{OpenHour: 9, OpenMinute: 30, CloseHour: 17, CloseMinute: 30, SlotMinutes: 30},
		{OpenHour: 8, CloseHour: 20, SlotMinutes: 60},
		{OpenHour: 0, CloseHour: 24, SlotMinutes: 15},
	}
	for _, h := range cases {
		slots := DaySlots(h)
		want := (h.closeTotal() - h.openTotal()) / h.SlotMinutes
		if len(slots) != want {
			t.Errorf("%+v: expected %d slots, got %d", h, want, len(slots))
		}
		for i := 1; i < len(slots); i++ {
			if slots[i] <= slots[i-1] {
				t.Errorf("%+v: slots not strictly increasing at %d: %s, %s", h, i, slots[i-1], slots[i])
			}
		}
	}
}

func TestOnSlotBoundary(t *testing.T) {
	h := defaultHours()
	cases := []struct {
		hour, minute int
		want         bool
	}{
		{10, 0, true},
		{10, 15, true},
		{20, 45, true},
		{21, 0, false},  // closing minute is not a start
		{9, 45, false},  // before opening
		{10, 7, false},  // off grid
		{23, 0, false},  // after closing
		{12, 30, true},
	}
	for _, tc := range cases {
		if got := h.OnSlotBoundary(tc.hour, tc.minute); got != tc.want {
			t.Errorf("OnSlotBoundary(%02d:%02d) = %v, want %v", tc.hour, tc.minute, got, tc.want)
		}
	}
}
