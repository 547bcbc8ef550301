package booking

import "fmt"

// Hours are the salon operating hours and slot width, identical every day.
type Hours struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
	SlotMinutes int
}

func (h Hours) openTotal() int  { return h.OpenHour*60 + h.OpenMinute }
func (h Hours) closeTotal() int { return h.CloseHour*60 + h.CloseMinute }

func (h Hours) OpenHHMM() string {
	return fmt.Sprintf("%02d:%02d", h.OpenHour, h.OpenMinute)
}

func (h Hours) CloseHHMM() string {
	return fmt.Sprintf("%02d:%02d", h.CloseHour, h.CloseMinute)
}

// DaySlots returns every valid slot start as "HH:MM", chronological. A start
// s is included iff openTotal <= s < closeTotal (half-open, so the closing
// minute itself is never a start).
func DaySlots(h Hours) []string {
	var slots []string
	for total := h.openTotal(); total < h.closeTotal(); total += h.SlotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", total/60, total%60))
	}
	return slots
}

// OnSlotBoundary reports whether a wall-clock reading is a valid slot start:
// aligned to the slot width and inside operating hours.
func (h Hours) OnSlotBoundary(hour, minute int) bool {
	if minute%h.SlotMinutes != 0 {
		return false
	}
	total := hour*60 + minute
	return total >= h.openTotal() && total < h.closeTotal()
}
