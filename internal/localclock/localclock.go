// Package localclock converts between salon wall-clock time and absolute
// instants under a single fixed UTC offset. The salon runs in one timezone
// with no daylight saving, so a constant offset is enough; every business
// hour comparison in the booking core goes through this package instead of
// the server's own local zone.
//
// The offset follows the JavaScript getTimezoneOffset convention: minutes to
// add to local time to reach UTC. Sri Lanka (UTC+05:30) is -330.
package localclock

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Clock is a salon-local wall-clock reading.
type Clock struct {
	Date   string
	Hour   int
	Minute int
}

func (c Clock) HHMM() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ToInstant interprets date ("YYYY-MM-DD") and hhmm ("HH:MM") as salon-local
// wall-clock time and returns the corresponding absolute instant.
func ToInstant(date, hhmm string, offsetMinutes int) (time.Time, error) {
	t, err := time.Parse(dateLayout+" "+timeLayout, date+" "+hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(time.Duration(offsetMinutes) * time.Minute), nil
}

// FromInstant projects an absolute instant back onto the salon wall clock.
func FromInstant(t time.Time, offsetMinutes int) Clock {
	local := t.UTC().Add(-time.Duration(offsetMinutes) * time.Minute)
	return Clock{
		Date:   local.Format(dateLayout),
		Hour:   local.Hour(),
		Minute: local.Minute(),
	}
}

// AddDays shifts a "YYYY-MM-DD" date by n calendar days. Pure UTC calendar
// arithmetic, no offset involved.
func AddDays(date string, n int) (string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(dateLayout), nil
}

// DayWindow returns the absolute instants of local midnight on date and local
// midnight on the following day. Appointment queries for a salon day must use
// this window; UTC midnights are wrong whenever the offset is non-zero.
func DayWindow(date string, offsetMinutes int) (time.Time, time.Time, error) {
	from, err := ToInstant(date, "00:00", offsetMinutes)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	next, err := AddDays(date, 1)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := ToInstant(next, "00:00", offsetMinutes)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
