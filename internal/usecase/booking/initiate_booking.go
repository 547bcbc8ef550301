package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nallenclassics/barber-booking/internal/audit"
	domain "github.com/nallenclassics/barber-booking/internal/domain/booking"
	"github.com/nallenclassics/barber-booking/internal/httperr"
	"github.com/nallenclassics/barber-booking/internal/models"
	"github.com/nallenclassics/barber-booking/internal/payhere"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type InitiateInput struct {
	CustomerID    uint
	CustomerName  string
	CustomerPhone string

	BarberID  uint
	ServiceID uint
	StartTime time.Time
	Notes     string
}

type InitiateResult struct {
	PaymentRequired bool
	OrderID         string

	// No-gateway mode: the confirmed appointment.
	AppointmentID uint

	// Gateway mode: where and what the customer's browser posts.
	CheckoutURL string
	Params      map[string]string
}

// ======================================================
// USE CASE
// ======================================================

// InitiateBooking runs Requested -> Pending (and, without a configured
// gateway, straight through to Confirmed).
type InitiateBooking struct {
	repo          domain.Repository
	locks         *domain.LockTable
	gateway       *payhere.Gateway
	audit         *audit.Dispatcher
	hours         domain.Hours
	offsetMinutes int
	fee           float64
	currency      string
}

func NewInitiateBooking(
	repo domain.Repository,
	locks *domain.LockTable,
	gateway *payhere.Gateway,
	auditDispatcher *audit.Dispatcher,
	hours domain.Hours,
	offsetMinutes int,
	fee float64,
	currency string,
) *InitiateBooking {
	return &InitiateBooking{
		repo:          repo,
		locks:         locks,
		gateway:       gateway,
		audit:         auditDispatcher,
		hours:         hours,
		offsetMinutes: offsetMinutes,
		fee:           fee,
		currency:      currency,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *InitiateBooking) Execute(
	ctx context.Context,
	in InitiateInput,
) (*InitiateResult, error) {

	now := time.Now()

	// --------------------------------------------------
	// Validation: no state is created past this block.
	// --------------------------------------------------
	if !domain.ValidSlotStart(in.StartTime, uc.hours, uc.offsetMinutes) {
		return nil, httperr.ErrBusiness("invalid_slot")
	}
	if !in.StartTime.After(now) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	end := in.StartTime.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// Serialize check-then-reserve per barber. The repository transaction
	// and the exclusion constraint hold the same line across processes.
	unlock := uc.locks.Acquire(barberKey(in.BarberID))
	defer unlock()

	busy, err := uc.repo.BusyIntervals(ctx, in.BarberID, in.StartTime, end)
	if err != nil {
		return nil, err
	}
	if domain.OverlapsAny(in.StartTime, end, busy) {
		return nil, httperr.ErrBusiness("slot_taken")
	}

	// --------------------------------------------------
	// Pending intent with the full booking snapshot.
	// --------------------------------------------------
	orderID := newOrderID(now)
	payment := &models.Payment{
		OrderID:       orderID,
		Amount:        uc.fee,
		Currency:      uc.currency,
		Status:        string(domain.PaymentPending),
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		BarberID:      in.BarberID,
		ServiceID:     in.ServiceID,
		StartTime:     in.StartTime,
		Notes:         in.Notes,
	}
	if err := uc.repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// No gateway configured: confirm synchronously.
	// --------------------------------------------------
	if !uc.gateway.Enabled() {
		ap := appointmentFromPayment(payment, service.DurationMinutes)
		if err := uc.repo.FinalizeOrder(ctx, orderID, true, ap); err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			UserType: models.UserTypeCustomer,
			UserID:   &in.CustomerID,
			Action:   "appointment_booked",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})

		return &InitiateResult{
			PaymentRequired: false,
			OrderID:         orderID,
			AppointmentID:   ap.ID,
		}, nil
	}

	// --------------------------------------------------
	// Gateway mode: hand the customer to the checkout.
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserType: models.UserTypeCustomer,
		UserID:   &in.CustomerID,
		Action:   "booking_intent_created",
		Entity:   "payment",
		EntityID: &payment.ID,
	})

	return &InitiateResult{
		PaymentRequired: true,
		OrderID:         orderID,
		CheckoutURL:     uc.gateway.CheckoutURL(),
		Params: uc.gateway.CheckoutParams(
			orderID,
			uc.fee,
			uc.currency,
			in.CustomerName,
			in.CustomerPhone,
		),
	}, nil
}

func newOrderID(now time.Time) string {
	return fmt.Sprintf("BK-%d-%s", now.Unix(), uuid.NewString()[:8])
}

func barberKey(id uint) string {
	return fmt.Sprintf("barber:%d", id)
}

func appointmentFromPayment(p *models.Payment, durationMinutes int) *models.Appointment {
	return &models.Appointment{
		CustomerName:  p.CustomerName,
		CustomerPhone: p.CustomerPhone,
		BarberID:      p.BarberID,
		ServiceID:     p.ServiceID,
		StartTime:     p.StartTime,
		EndTime:       p.StartTime.Add(time.Duration(durationMinutes) * time.Minute),
		Notes:         p.Notes,
	}
}
