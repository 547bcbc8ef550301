package booking

import (
	"context"
	"time"

	"github.com/nallenclassics/barber-booking/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Availability --------
	// BusyIntervals returns every appointment interval for the barber that
	// intersects [from, to), ordered by start.
	BusyIntervals(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]Interval, error)

	// -------- Reserve (conflict check + insert, atomic) --------
	// ReserveAppointment fails with the slot_taken business error when the
	// interval overlaps an existing appointment for the barber.
	ReserveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Payment intent --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetPaymentByOrderID(
		ctx context.Context,
		orderID string,
	) (*models.Payment, error)

	// FinalizeOrder moves a pending payment to paid (reserving ap in the
	// same transaction) or failed. A payment that already left pending
	// fails with the order_finalized business error.
	FinalizeOrder(
		ctx context.Context,
		orderID string,
		paid bool,
		ap *models.Appointment,
	) error

	// -------- Appointment (staff) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}
