package booking

import (
	"context"
	"sync"
	"time"

	domain "github.com/nallenclassics/barber-booking/internal/domain/booking"
	"github.com/nallenclassics/barber-booking/internal/httperr"
	"github.com/nallenclassics/barber-booking/internal/models"
)

// fakeRepo is an in-memory domain.Repository with the same atomicity the
// gorm implementation gets from its transaction: reserve and finalize run
// under one mutex, so concurrent callers observe check-then-insert as a
// single step.
type fakeRepo struct {
	mu sync.Mutex

	barbers      map[uint]*models.Barber
	services     map[uint]*models.Service
	appointments []*models.Appointment
	payments     map[string]*models.Payment

	nextAppointmentID uint
	nextPaymentID     uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:  make(map[uint]*models.Barber),
		services: make(map[uint]*models.Service),
		payments: make(map[string]*models.Payment),
	}
}

func (r *fakeRepo) addBarber(id uint, name string) {
	r.barbers[id] = &models.Barber{ID: id, Name: name}
}

func (r *fakeRepo) addService(id uint, name string, durationMinutes int) {
	r.services[id] = &models.Service{ID: id, Name: name, DurationMinutes: durationMinutes}
}

func (r *fakeRepo) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[id]
	if !ok {
		return nil, httperr.ErrBusiness("invalid_barber")
	}
	return b, nil
}

func (r *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrBusiness("invalid_service")
	}
	return s, nil
}

func (r *fakeRepo) BusyIntervals(ctx context.Context, barberID uint, from, to time.Time) ([]domain.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var busy []domain.Interval
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && ap.StartTime.Before(to) && ap.EndTime.After(from) {
			busy = append(busy, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
		}
	}
	return busy, nil
}

func (r *fakeRepo) ReserveAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reserveLocked(ap)
}

func (r *fakeRepo) reserveLocked(ap *models.Appointment) error {
	for _, other := range r.appointments {
		if other.BarberID == ap.BarberID &&
			ap.StartTime.Before(other.EndTime) && ap.EndTime.After(other.StartTime) {
			return httperr.ErrBusiness("slot_taken")
		}
	}
	r.nextAppointmentID++
	ap.ID = r.nextAppointmentID
	r.appointments = append(r.appointments, ap)
	return nil
}

func (r *fakeRepo) CreatePayment(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextPaymentID++
	p.ID = r.nextPaymentID
	copied := *p
	r.payments[p.OrderID] = &copied
	return nil
}

func (r *fakeRepo) GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[orderID]
	if !ok {
		return nil, httperr.ErrBusiness("order_not_found")
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) FinalizeOrder(ctx context.Context, orderID string, paid bool, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[orderID]
	if !ok {
		return httperr.ErrBusiness("order_not_found")
	}
	if p.Status != string(domain.PaymentPending) {
		return httperr.ErrBusiness("order_finalized")
	}

	if !paid {
		p.Status = string(domain.PaymentFailed)
		return nil
	}

	if err := r.reserveLocked(ap); err != nil {
		return err
	}
	p.Status = string(domain.PaymentPaid)
	p.AppointmentID = &ap.ID
	return nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (r *fakeRepo) DeleteAppointment(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ap := range r.appointments {
		if ap.ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func seedAppointment(barberID uint, start time.Time, durationMinutes int) *models.Appointment {
	return &models.Appointment{
		CustomerName:  "Walk In",
		CustomerPhone: "0770000001",
		BarberID:      barberID,
		ServiceID:     1,
		StartTime:     start,
		EndTime:       start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

func (r *fakeRepo) appointmentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appointments)
}
