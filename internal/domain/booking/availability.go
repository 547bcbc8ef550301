package booking

import (
	"time"

	"github.com/nallenclassics/barber-booking/internal/localclock"
)

// AvailableSlots filters the day's slot grid down to starts where a service
// of durationMinutes can actually run: the start is strictly in the future,
// the appointment ends by closing time, and it overlaps none of the busy
// intervals. Emission order follows the grid (chronological).
func AvailableSlots(
	date string,
	h Hours,
	durationMinutes int,
	offsetMinutes int,
	busy []Interval,
	now time.Time,
) ([]string, error) {

	closing, err := localclock.ToInstant(date, h.CloseHHMM(), offsetMinutes)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(durationMinutes) * time.Minute
	var available []string

	for _, hhmm := range DaySlots(h) {
		start, err := localclock.ToInstant(date, hhmm, offsetMinutes)
		if err != nil {
			return nil, err
		}

		// "now" itself is not bookable.
		if !start.After(now) {
			continue
		}

		end := start.Add(duration)
		if end.After(closing) {
			continue
		}

		if OverlapsAny(start, end, busy) {
			continue
		}

		available = append(available, hhmm)
	}

	return available, nil
}

// ValidSlotStart reports whether an absolute instant lands on a bookable
// slot boundary of the salon-local day.
func ValidSlotStart(start time.Time, h Hours, offsetMinutes int) bool {
	local := localclock.FromInstant(start, offsetMinutes)
	return h.OnSlotBoundary(local.Hour, local.Minute)
}
