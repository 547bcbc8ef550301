package booking

import (
	"context"
	"time"

	domain "github.com/nallenclassics/barber-booking/internal/domain/booking"
	"github.com/nallenclassics/barber-booking/internal/localclock"
)

type GetAvailability struct {
	repo          domain.Repository
	hours         domain.Hours
	offsetMinutes int
}

func NewGetAvailability(repo domain.Repository, hours domain.Hours, offsetMinutes int) *GetAvailability {
	return &GetAvailability{
		repo:          repo,
		hours:         hours,
		offsetMinutes: offsetMinutes,
	}
}

// Execute returns the open slot starts ("HH:MM", chronological) for the
// barber and service on a salon-local date.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
	barberID uint,
	serviceID uint,
	now time.Time,
) ([]string, error) {

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	// The busy window spans the full LOCAL day; with a non-zero offset the
	// UTC-midnight window would clip or leak appointments.
	from, to, err := localclock.DayWindow(date, uc.offsetMinutes)
	if err != nil {
		return nil, err
	}

	busy, err := uc.repo.BusyIntervals(ctx, barberID, from, to)
	if err != nil {
		return nil, err
	}

	return domain.AvailableSlots(
		date,
		uc.hours,
		service.DurationMinutes,
		uc.offsetMinutes,
		busy,
		now,
	)
}
