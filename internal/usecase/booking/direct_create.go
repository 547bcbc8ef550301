package booking

import (
	"context"
	"time"

	"github.com/nallenclassics/barber-booking/internal/audit"
	domain "github.com/nallenclassics/barber-booking/internal/domain/booking"
	"github.com/nallenclassics/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type DirectCreateInput struct {
	ActorID uint // barber performing the creation

	CustomerName  string
	CustomerPhone string
	BarberID      uint
	ServiceID     uint
	StartTime     time.Time
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

// DirectCreate books an appointment from behind the counter. No payment
// intent and no slot-grid restriction, but the same conflict detection
// under the same per-barber serialization as the customer path.
type DirectCreate struct {
	repo  domain.Repository
	locks *domain.LockTable
	audit *audit.Dispatcher
}

func NewDirectCreate(
	repo domain.Repository,
	locks *domain.LockTable,
	auditDispatcher *audit.Dispatcher,
) *DirectCreate {
	return &DirectCreate{
		repo:  repo,
		locks: locks,
		audit: auditDispatcher,
	}
}

func (uc *DirectCreate) Execute(
	ctx context.Context,
	in DirectCreateInput,
) (*models.Appointment, error) {

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		BarberID:      in.BarberID,
		ServiceID:     in.ServiceID,
		StartTime:     in.StartTime,
		EndTime:       in.StartTime.Add(time.Duration(service.DurationMinutes) * time.Minute),
		Notes:         in.Notes,
	}

	unlock := uc.locks.Acquire(barberKey(in.BarberID))
	err = func() error {
		defer unlock()
		return uc.repo.ReserveAppointment(ctx, ap)
	}()
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserType: models.UserTypeBarber,
		UserID:   &in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
