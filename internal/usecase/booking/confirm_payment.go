package booking

import (
	"context"
	"time"

	"github.com/nallenclassics/barber-booking/internal/audit"
	domain "github.com/nallenclassics/barber-booking/internal/domain/booking"
	"github.com/nallenclassics/barber-booking/internal/httperr"
	"github.com/nallenclassics/barber-booking/internal/models"
	"github.com/nallenclassics/barber-booking/internal/payhere"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ConfirmInput struct {
	OrderID    string
	StatusCode string

	// SignatureOK is the gateway's md5sig verdict. A bad signature is
	// handled as a failure indicator, never trusted as success.
	SignatureOK bool
}

type ConfirmOutcome string

const (
	// OutcomeConfirmed: pending -> paid, appointment created.
	OutcomeConfirmed ConfirmOutcome = "confirmed"
	// OutcomeFailed: pending -> failed, no appointment.
	OutcomeFailed ConfirmOutcome = "failed"
	// OutcomeNoop: unknown or already finalized order. Re-deliveries of
	// the gateway callback land here and are still acknowledged.
	OutcomeNoop ConfirmOutcome = "noop"
)

type ConfirmResult struct {
	Outcome       ConfirmOutcome
	AppointmentID uint
}

// ======================================================
// USE CASE
// ======================================================

// ConfirmPayment settles a pending order exactly once: Pending -> Confirmed
// on a verified success callback, Pending -> Failed on anything else.
type ConfirmPayment struct {
	repo  domain.Repository
	locks *domain.LockTable
	audit *audit.Dispatcher
}

func NewConfirmPayment(
	repo domain.Repository,
	locks *domain.LockTable,
	auditDispatcher *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:  repo,
		locks: locks,
		audit: auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	in ConfirmInput,
) (*ConfirmResult, error) {

	// Serialize deliveries for the same order. The gateway retries the
	// callback, sometimes concurrently.
	unlock := uc.locks.Acquire("order:" + in.OrderID)
	defer unlock()

	payment, err := uc.repo.GetPaymentByOrderID(ctx, in.OrderID)
	if err != nil {
		if httperr.IsBusiness(err, "order_not_found") {
			return &ConfirmResult{Outcome: OutcomeNoop}, nil
		}
		return nil, err
	}

	if domain.Finalized(domain.PaymentStatus(payment.Status)) {
		return &ConfirmResult{Outcome: OutcomeNoop}, nil
	}

	if !in.SignatureOK || in.StatusCode != payhere.StatusSuccess {
		return uc.fail(ctx, payment)
	}

	// The appointment end is recomputed from the service's duration as it
	// stands now, not from the duration at intent time.
	service, err := uc.repo.GetService(ctx, payment.ServiceID)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_service") {
			return uc.fail(ctx, payment)
		}
		return nil, err
	}

	ap := &models.Appointment{
		CustomerName:  payment.CustomerName,
		CustomerPhone: payment.CustomerPhone,
		BarberID:      payment.BarberID,
		ServiceID:     payment.ServiceID,
		StartTime:     payment.StartTime,
		EndTime:       payment.StartTime.Add(time.Duration(service.DurationMinutes) * time.Minute),
		Notes:         payment.Notes,
	}

	// Hold the barber's line while reserving, same as the booking path.
	unlockBarber := uc.locks.Acquire(barberKey(payment.BarberID))
	err = func() error {
		defer unlockBarber()
		return uc.repo.FinalizeOrder(ctx, in.OrderID, true, ap)
	}()
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "slot_taken"):
			// The slot was sold out from under the pending order. The
			// payment cannot convert, so it settles as failed.
			return uc.fail(ctx, payment)
		case httperr.IsBusiness(err, "order_finalized"):
			return &ConfirmResult{Outcome: OutcomeNoop}, nil
		default:
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserType: models.UserTypeCustomer,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: in.OrderID,
	})

	return &ConfirmResult{
		Outcome:       OutcomeConfirmed,
		AppointmentID: ap.ID,
	}, nil
}

func (uc *ConfirmPayment) fail(
	ctx context.Context,
	payment *models.Payment,
) (*ConfirmResult, error) {

	if err := uc.repo.FinalizeOrder(ctx, payment.OrderID, false, nil); err != nil {
		if httperr.IsBusiness(err, "order_finalized") {
			return &ConfirmResult{Outcome: OutcomeNoop}, nil
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserType: models.UserTypeCustomer,
		Action:   "payment_failed",
		Entity:   "payment",
		EntityID: &payment.ID,
		Metadata: payment.OrderID,
	})

	return &ConfirmResult{Outcome: OutcomeFailed}, nil
}
